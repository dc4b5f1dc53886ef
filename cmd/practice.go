package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xamuil2/digitalludus/internal/app"
	"github.com/xamuil2/digitalludus/internal/catalog"
	"github.com/xamuil2/digitalludus/internal/drill"
	"github.com/xamuil2/digitalludus/internal/pool"
	"github.com/xamuil2/digitalludus/internal/quiz"
	"github.com/xamuil2/digitalludus/internal/screen"
	"github.com/xamuil2/digitalludus/internal/screens/session"
	"github.com/xamuil2/digitalludus/internal/shuffle"
)

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Practise vocabulary with flashcards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isInteractive() {
			return runDrill(cmd)
		}
		sel, f, mode, err := drillSelection(cmd)
		if err != nil {
			return err
		}
		return runTUI(cmd, app.WithStartScreen(func(d screen.Deps) screen.Screen {
			return session.NewDrill(d, sel, f, mode)
		}))
	},
}

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Answer multiple choice questions on a lesson",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isInteractive() {
			return runQuiz(cmd)
		}
		sel, f, err := readSelection(cmd)
		if err != nil {
			return err
		}
		return runTUI(cmd, app.WithStartScreen(func(d screen.Deps) screen.Screen {
			return session.NewQuiz(d, sel, f)
		}))
	},
}

func init() {
	drillCmd.Flags().AddFlagSet(selectionFlags())
	drillCmd.Flags().AddFlagSet(modeFlags())
	quizCmd.Flags().AddFlagSet(selectionFlags())
}

func drillSelection(cmd *cobra.Command) (pool.Selector, pool.Filter, drill.Mode, error) {
	sel, f, err := readSelection(cmd)
	if err != nil {
		return pool.Selector{}, "", "", err
	}
	mode, err := readMode(cmd)
	if err != nil {
		return pool.Selector{}, "", "", err
	}
	return sel, f, mode, nil
}

// runDrill plays a drill on plain stdin/stdout.
func runDrill(cmd *cobra.Command) error {
	lessons, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	sel, f, mode, err := drillSelection(cmd)
	if err != nil {
		return err
	}
	d, err := drill.Start(lessons, sel, f, drill.WithMode(mode), drill.WithRand(shuffle.Default))
	if err != nil {
		return selectionError(err)
	}
	return playDrill(cmd.InOrStdin(), cmd.OutOrStdout(), d)
}

// runQuiz plays a quiz on plain stdin/stdout.
func runQuiz(cmd *cobra.Command) error {
	lessons, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	sel, f, err := readSelection(cmd)
	if err != nil {
		return err
	}
	q, err := quiz.Start(lessons, sel, f, quiz.WithRand(shuffle.Default))
	if err != nil {
		return selectionError(err)
	}
	return playQuiz(cmd.InOrStdin(), cmd.OutOrStdout(), q)
}

func selectionError(err error) error {
	if errors.Is(err, catalog.ErrLessonNotFound) {
		return fmt.Errorf("%w (see `ludus lessons`)", err)
	}
	return err
}
