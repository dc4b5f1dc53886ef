package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/xamuil2/digitalludus/internal/drill"
	"github.com/xamuil2/digitalludus/internal/pool"
)

// selectionFlags returns a fresh set of the flags that pick a practice
// pool. Each command gets its own set so values never leak between them.
func selectionFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("selection", pflag.ContinueOnError)
	fs.StringP("lessons", "l", "1", "Lessons to practise, e.g. 1,2")
	fs.StringP("difficulty", "d", "all", "Difficulty filter: all, easy, medium or hard")
	return fs
}

func modeFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("mode", pflag.ContinueOnError)
	fs.StringP("mode", "m", "la", "Card direction: la (Latin to English) or en (English to Latin)")
	return fs
}

func readSelection(cmd *cobra.Command) (pool.Selector, pool.Filter, error) {
	lessons, _ := cmd.Flags().GetString("lessons")
	difficulty, _ := cmd.Flags().GetString("difficulty")

	sel, err := pool.ParseSelector(lessons)
	if err != nil {
		return pool.Selector{}, "", err
	}
	f, err := pool.ParseFilter(difficulty)
	if err != nil {
		return pool.Selector{}, "", err
	}
	return sel, f, nil
}

// readMode defaults to Latin to English on commands without --mode.
func readMode(cmd *cobra.Command) (drill.Mode, error) {
	m, err := cmd.Flags().GetString("mode")
	if err != nil || m == "" {
		return drill.LatinToEnglish, nil
	}
	return drill.ParseMode(m)
}
