package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xamuil2/digitalludus/internal/catalog"
	"github.com/xamuil2/digitalludus/internal/llm"
	"github.com/xamuil2/digitalludus/internal/store"
	"github.com/xamuil2/digitalludus/internal/tutor"
)

var rootCmd = &cobra.Command{
	Use:   "ludus",
	Short: "Latin textbook companion",
	Long:  "Ludus: vocabulary drills, lesson quizzes and a Latin tutor for the Ludus textbook.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LUDUS_DB env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a catalog JSON file (overrides LUDUS_CATALOG env var)")
	rootCmd.Flags().AddFlagSet(selectionFlags())

	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LUDUS_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// loadCatalog returns the catalog named by --catalog or LUDUS_CATALOG, or
// the embedded one.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = os.Getenv("LUDUS_CATALOG")
	}
	c, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

// newRelay builds the tutor for channel. Without a configured provider the
// tutor answers in demo mode. st may be nil, which turns off logging.
func newRelay(ctx context.Context, lessons *catalog.Catalog, st *store.Store, channel string) *tutor.Relay {
	var events store.LLMEventWriter
	var opts []tutor.Option
	if st != nil {
		events = st.EventRepo()
		opts = append(opts, tutor.WithExchangeLog(st.TutorRepo(), channel))
	}

	provider, err := llm.NewProviderFromEnv(ctx, events)
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		}
		provider = nil
	}
	return tutor.New(provider, lessons, opts...)
}
