package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xamuil2/digitalludus/internal/catalog"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List the textbook lessons",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lessons, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		list := lessons.Lessons()
		if tier, _ := cmd.Flags().GetString("difficulty"); tier != "" {
			t := catalog.Tier(strings.ToLower(tier))
			if !t.Valid() {
				return fmt.Errorf("unknown difficulty %q (want beginner, intermediate or advanced)", tier)
			}
			list = lessons.LessonsByDifficulty(t)
		}
		printLessons(cmd.OutOrStdout(), list)
		return nil
	},
}

var lessonsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one lesson: objectives, vocabulary and grammar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid lesson id %q: %w", args[0], err)
		}
		lessons, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		l, err := lessons.LessonByID(id)
		if err != nil {
			return selectionError(err)
		}
		printLesson(cmd.OutOrStdout(), l)
		return nil
	},
}

func init() {
	lessonsCmd.Flags().StringP("difficulty", "d", "", "Only lessons of this tier: beginner, intermediate or advanced")
	lessonsCmd.AddCommand(lessonsShowCmd)
}

func lessonTitle(l catalog.Lesson) string {
	if l.Subtitle == "" {
		return l.Title
	}
	return l.Title + ": " + l.Subtitle
}

func printLessons(w io.Writer, lessons []catalog.Lesson) {
	if len(lessons) == 0 {
		fmt.Fprintln(w, "No lessons found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-44s  %-12s  %5s  %5s\n", "ID", "Title", "Difficulty", "Words", "Min")
	fmt.Fprintln(w, strings.Repeat("─", 78))
	for _, l := range lessons {
		fmt.Fprintf(w, "%-4d  %-44s  %-12s  %5d  %5d\n",
			l.ID, truncate(lessonTitle(l), 44), l.Difficulty, len(l.Vocabulary), l.EstimatedTime)
	}
}

func printLesson(w io.Writer, l catalog.Lesson) {
	sep := strings.Repeat("─", 60)

	fmt.Fprintln(w, lessonTitle(l))
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "Difficulty:  %s\n", l.Difficulty)
	fmt.Fprintf(w, "Time:        %d min\n", l.EstimatedTime)
	if page := l.FirstPage(); page > 0 {
		fmt.Fprintf(w, "Textbook:    page %d\n", page)
	}
	if l.Description != "" {
		fmt.Fprintf(w, "\n%s\n", l.Description)
	}

	if len(l.Objectives) > 0 {
		fmt.Fprintln(w, "\nObjectives")
		for _, o := range l.Objectives {
			fmt.Fprintf(w, "  • %s\n", o)
		}
	}

	if len(l.Vocabulary) > 0 {
		fmt.Fprintln(w, "\nVocabulary")
		for _, v := range l.Vocabulary {
			latin := v.Latin
			if v.PrincipalParts != "" {
				latin = v.PrincipalParts
			}
			fmt.Fprintf(w, "  %-32s  %-28s  %s\n", truncate(latin, 32), truncate(v.English, 28), v.Difficulty)
		}
	}

	if len(l.KeyConcepts) > 0 {
		fmt.Fprintln(w, "\nGrammar")
		for _, c := range l.KeyConcepts {
			fmt.Fprintf(w, "  %s\n", c.Title)
			for _, r := range c.Rules {
				fmt.Fprintf(w, "    - %s\n", r)
			}
		}
	}
}
