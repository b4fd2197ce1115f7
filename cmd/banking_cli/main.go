package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/SscSPs/internet_banking/internal/console"
	"github.com/SscSPs/internet_banking/internal/core/domain"
	"github.com/SscSPs/internet_banking/internal/core/services"
	"github.com/SscSPs/internet_banking/internal/platform/config"
	"github.com/SscSPs/internet_banking/internal/repositories/memory"
	charmlog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	timeZone string
	verbose  bool
)

// rootCmd represents the interactive banking form
var rootCmd = &cobra.Command{
	Use:   "banking_cli",
	Short: "Withdraw, deposit and view the statement of a session account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		level := charmlog.WarnLevel
		if verbose {
			level = charmlog.DebugLevel
		}
		handler := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
			Prefix:          "banking",
			Level:           level,
			ReportTimestamp: true,
		})
		logger := slog.New(handler)
		slog.SetDefault(logger)

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		loc := cfg.Location
		if cmd.Flags().Changed("timezone") {
			if loc, err = time.LoadLocation(timeZone); err != nil {
				return fmt.Errorf("invalid timezone %q: %w", timeZone, err)
			}
		}

		ledgerService := services.NewLedgerService(
			memory.NewSessionRepository(cfg.SessionTTL, cfg.SessionCleanupInterval),
			services.WithLedgerOptions(domain.WithLocation(loc)),
		)

		sessionID := uuid.NewString()
		logger.Info("Starting terminal session", slog.String("session_id", sessionID), slog.String("timezone", loc.String()))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		app := console.NewApp(ledgerService, sessionID, console.NewFormPrompter(), cmd.OutOrStdout(), loc, logger)
		return app.Run(ctx)
	},
}

func init() {
	rootCmd.Flags().StringVar(&timeZone, "timezone", domain.ReferenceTimeZone, "Reference time zone for timestamps and the daily withdrawal count.")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr.")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
