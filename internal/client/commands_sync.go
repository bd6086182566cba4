package client

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-fit-sync/internal/workers"
	"github.com/MKhiriev/go-fit-sync/models"
)

var ErrSyncFailed = errors.New("sync failed")

func (a *App) syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push local changes and pull remote ones",
		Long: `Run one reconciliation pass. A pass keeps running in the background
when the command is interrupted, and finishes before the process exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result := a.session.sync.Sync(ctx, a.session.userID, a.session.role)
			printResult(cmd.OutOrStdout(), result)
			if !result.Success {
				return fmt.Errorf("%w: %s", ErrSyncFailed, result.Message)
			}
			return nil
		},
	}
}

func (a *App) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the sync status and the number of pending changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pending, err := a.session.rows.PendingCount(cmd.Context(), a.session.userID)
			if err != nil {
				return err
			}
			status := a.session.sync.GetSyncStatus(cmd.Context())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "USER     %s (%s)\n", a.session.userID, a.session.role)
			fmt.Fprintf(out, "STATUS   %s\n", status.Status)
			if status.LastSyncAt != nil {
				fmt.Fprintf(out, "LAST     %s\n", status.LastSyncAt.Local().Format(time.RFC3339))
			}
			if status.LastError != nil {
				fmt.Fprintf(out, "ERROR    %s\n", *status.LastError)
			}
			fmt.Fprintf(out, "SYNCED   %d\n", status.TotalSynced)
			fmt.Fprintf(out, "PENDING  %d\n", pending)
			return nil
		},
	}
}

func (a *App) cardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "card",
		Short: "Open the interactive sync card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.session.card(cmd.Context())
		},
	}
}

func (a *App) daemonCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Sync in the background until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("interval") {
				interval = a.session.workers.SyncInterval
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "syncing %s every %s, press Ctrl+C to stop\n", a.session.userID, intervalOrDefault(interval))

			workers.NewWorkers(
				workers.NewClientSync(a.session.job, a.session.userID, a.session.role, interval, a.session.logger),
			).Run(ctx)

			if last, ok := a.session.sync.LastResult(); ok {
				printResult(cmd.OutOrStdout(), last)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 0, "time between passes (default 5m)")

	return cmd
}

func intervalOrDefault(interval time.Duration) time.Duration {
	if interval <= 0 {
		return 5 * time.Minute
	}
	return interval
}

func printResult(out io.Writer, result models.SyncResult) {
	if result.Success {
		fmt.Fprintf(out, "OK pushed %d, pulled %d\n", result.PushedCount, result.PulledCount)
	} else {
		fmt.Fprintf(out, "FAILED %s\n", result.Message)
	}
	for _, msg := range result.Errors {
		fmt.Fprintf(out, "  - %s\n", msg)
	}
}
