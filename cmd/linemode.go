package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xamuil2/digitalludus/internal/drill"
	"github.com/xamuil2/digitalludus/internal/quiz"
	"github.com/xamuil2/digitalludus/internal/scoring"
)

const lineEmptyPool = "Nothing matches this selection. Try another --difficulty or more --lessons."

// prompter reads one answer per line. ok is false once input is exhausted
// or the learner typed q.
type prompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

func (p prompter) ask(prompt string) (string, bool) {
	fmt.Fprint(p.out, prompt)
	if !p.sc.Scan() {
		fmt.Fprintln(p.out)
		return "", false
	}
	line := strings.TrimSpace(p.sc.Text())
	if strings.EqualFold(line, "q") {
		return "", false
	}
	return line, true
}

func playDrill(in io.Reader, out io.Writer, d *drill.Session) error {
	if d.Complete() {
		fmt.Fprintln(out, lineEmptyPool)
		return nil
	}
	p := prompter{sc: bufio.NewScanner(in), out: out}

	for !d.Complete() {
		st := d.Snapshot()
		fmt.Fprintf(out, "\nCard %d/%d\n  %s", st.Cursor+1, st.Size, st.Card.Prompt)
		if st.Card.PartOfSpeech != "" {
			fmt.Fprintf(out, "  (%s)", st.Card.PartOfSpeech)
		}
		fmt.Fprintln(out)

		if _, ok := p.ask("Press Enter to reveal, q to stop: "); !ok {
			fmt.Fprintln(out, "Drill stopped.")
			return nil
		}
		if err := d.Reveal(); err != nil {
			return err
		}
		card := d.Snapshot().Card
		fmt.Fprintf(out, "  ➜ %s\n", card.Answer)
		for _, extra := range []string{card.PrincipalParts, card.Etymology, card.Notes} {
			if extra != "" {
				fmt.Fprintf(out, "    %s\n", extra)
			}
		}

		knew, ok := askYesNo(p)
		if !ok {
			fmt.Fprintln(out, "Drill stopped.")
			return nil
		}
		if err := d.Mark(knew); err != nil {
			return err
		}
	}

	printSummary(out, d.Summary(), "drill")
	return nil
}

func askYesNo(p prompter) (bool, bool) {
	for {
		answer, ok := p.ask("Did you know it? [y/n]: ")
		if !ok {
			return false, false
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, true
		case "n", "no":
			return false, true
		}
	}
}

func playQuiz(in io.Reader, out io.Writer, q *quiz.Session) error {
	if q.Complete() {
		fmt.Fprintln(out, lineEmptyPool)
		return nil
	}
	p := prompter{sc: bufio.NewScanner(in), out: out}

	for !q.Complete() {
		question, _ := q.Current()
		fmt.Fprintf(out, "\nQuestion %d/%d [%s]\n  %s\n", q.Cursor()+1, q.Len(), question.Category, question.Question)
		for i, opt := range question.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
		}

		for {
			answer, ok := p.ask(fmt.Sprintf("Answer [1-%d]: ", len(question.Options)))
			if !ok {
				fmt.Fprintln(out, "Quiz stopped.")
				return nil
			}
			n, err := strconv.Atoi(answer)
			if err == nil && q.SelectAnswer(n-1) == nil {
				break
			}
			fmt.Fprintf(out, "Pick a number between 1 and %d.\n", len(question.Options))
		}
		if err := q.Submit(); err != nil {
			return err
		}

		hist := q.History()
		if hist[len(hist)-1].Correct {
			fmt.Fprintln(out, "  Correct!")
		} else {
			fmt.Fprintf(out, "  Not quite. The answer is %s.\n", question.CorrectOption())
		}
		if question.Explanation != "" {
			fmt.Fprintf(out, "  %s\n", question.Explanation)
		}
		if err := q.Advance(); err != nil {
			return err
		}
	}

	printSummary(out, q.Summary(), "quiz")
	return nil
}

func printSummary(out io.Writer, sum scoring.Summary, command string) {
	fmt.Fprintf(out, "\n%s\n%d of %d correct (%d%%)\n", sum.Headline, sum.Correct, sum.Total, sum.Percentage)
	if sum.Message != "" {
		fmt.Fprintln(out, sum.Message)
	}
	if sum.Kind == scoring.KindDrill && sum.BestStreak > 0 {
		fmt.Fprintf(out, "Best streak: %d\n", sum.BestStreak)
	}
	if sum.NextLesson != nil {
		fmt.Fprintf(out, "Next up: ludus %s --lessons %d\n", command, *sum.NextLesson)
	}
}
