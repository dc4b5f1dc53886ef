package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xamuil2/digitalludus/internal/store"
	"github.com/xamuil2/digitalludus/internal/tutor"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the Latin tutor a question",
	RunE: func(cmd *cobra.Command, args []string) error {
		if history, _ := cmd.Flags().GetBool("history"); history {
			return showHistory(cmd)
		}

		message := strings.TrimSpace(strings.Join(args, " "))
		if message == "" {
			return errors.New("a question is required")
		}

		lessons, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		q := tutor.Question{Message: message}
		q.Context, _ = cmd.Flags().GetString("context")
		if id, _ := cmd.Flags().GetInt("lesson"); id > 0 {
			if !lessons.HasLesson(id) {
				return fmt.Errorf("lesson %d does not exist (see `ludus lessons`)", id)
			}
			q.Lesson = &id
		}

		st, err := openStore(cmd)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Tutor history unavailable:", err)
		} else {
			defer st.Close()
		}

		reply, err := newRelay(cmd.Context(), lessons, st, "cli").Ask(cmd.Context(), q)
		if err != nil && !errors.Is(err, tutor.ErrUpstreamUnavailable) {
			return err
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "Tutor request failed:", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
		return nil
	},
}

func init() {
	askCmd.Flags().IntP("lesson", "L", 0, "Lesson the question is about")
	askCmd.Flags().String("context", "", "Where the question comes from, e.g. a page of the lesson")
	askCmd.Flags().Bool("history", false, "List recent tutor exchanges instead of asking")
	askCmd.Flags().IntP("limit", "n", 20, "Number of exchanges to show with --history")
}

func showHistory(cmd *cobra.Command) error {
	limit, _ := cmd.Flags().GetInt("limit")

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	exchanges, err := st.TutorRepo().RecentExchanges(cmd.Context(), store.QueryOpts{Limit: limit})
	if err != nil {
		return fmt.Errorf("query exchanges: %w", err)
	}
	printExchanges(cmd.OutOrStdout(), exchanges)
	return nil
}

func printExchanges(w io.Writer, exchanges []store.TutorExchange) {
	if len(exchanges) == 0 {
		fmt.Fprintln(w, "No tutor exchanges recorded yet.")
		return
	}

	for _, e := range exchanges {
		lesson := "-"
		if e.Lesson != nil {
			lesson = fmt.Sprintf("L%d", *e.Lesson)
		}
		flags := ""
		switch {
		case e.Fallback:
			flags = "  [failed]"
		case e.Demo:
			flags = "  [demo]"
		}
		fmt.Fprintf(w, "%s  %-4s  %-3s  %dms%s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Channel, lesson, e.LatencyMs, flags)
		fmt.Fprintf(w, "  Q: %s\n", e.Question)
		fmt.Fprintf(w, "  A: %s\n\n", e.Reply)
	}
}
