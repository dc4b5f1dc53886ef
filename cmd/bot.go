package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xamuil2/digitalludus/internal/bot"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		token, _ := cmd.Flags().GetString("token")
		if token == "" {
			token = os.Getenv("LUDUS_TELEGRAM_TOKEN")
		}

		lessons, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		b, err := bot.New(token, lessons, newRelay(ctx, lessons, st, "bot"))
		if err != nil {
			return err
		}
		return b.Run(ctx)
	},
}

func init() {
	botCmd.Flags().String("token", "", "Telegram bot token (overrides LUDUS_TELEGRAM_TOKEN)")
}
