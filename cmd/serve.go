package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xamuil2/digitalludus/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API and the textbook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		lessons, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		cfg := api.ConfigFromEnv()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		if pdf, _ := cmd.Flags().GetString("textbook"); pdf != "" {
			cfg.Textbook = pdf
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		relay := newRelay(ctx, lessons, st, "http")
		if relay.Demo() {
			fmt.Fprintln(os.Stderr, "No LLM provider configured; the tutor answers in demo mode.")
		}
		return api.New(cfg, lessons, relay).ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides LUDUS_ADDR, default :8080)")
	serveCmd.Flags().String("textbook", "", "Path to the textbook PDF (overrides LUDUS_TEXTBOOK)")
}
