package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/xamuil2/digitalludus/internal/app"
	"github.com/xamuil2/digitalludus/internal/catalog"
	"github.com/xamuil2/digitalludus/internal/screen"
	"github.com/xamuil2/digitalludus/internal/store"
)

func isInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// runApp launches the TUI, or a line-mode drill when stdin is not a
// terminal.
func runApp(cmd *cobra.Command) error {
	if !isInteractive() {
		return runDrill(cmd)
	}
	return runTUI(cmd)
}

// runTUI opens the store, builds dependencies, and launches the TUI.
func runTUI(cmd *cobra.Command, opts ...app.Option) error {
	lessons, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	// The TUI runs without the tutor log if the database is unavailable.
	st, err := openStore(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Tutor history unavailable:", err)
	} else {
		defer st.Close()
	}

	return app.Run(newDeps(cmd, lessons, st), opts...)
}

func newDeps(cmd *cobra.Command, lessons *catalog.Catalog, st *store.Store) screen.Deps {
	deps := screen.Deps{
		Catalog: lessons,
		Tutor:   newRelay(cmd.Context(), lessons, st, "tui"),
	}
	if st != nil {
		deps.Exchanges = st.TutorRepo()
	}
	return deps
}
