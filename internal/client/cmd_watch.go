package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-safe-keeper/internal/service"
	"github.com/MKhiriev/go-safe-keeper/internal/workers"
	"github.com/spf13/cobra"
)

func newWatchCommand(a *app) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow ledger events and keep the local access cache current",
		Long: `Polls the ledger for capability, recovery and claim events until
interrupted. Vaults that became reachable through a recovery or a claim
are reported and acknowledged when the watch ends.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withServices(cmd, func(ctx context.Context, s *service.ClientServices, out io.Writer) error {
				if once {
					n, err := s.Reconcile.Poll(ctx)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, mutedColor.Sprintf("%d event(s) applied", n))
				} else {
					sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
					defer stop()

					fmt.Fprintln(out, mutedColor.Sprintf("Watching every %s, ctrl+c to stop", a.cfg.Workers.PollInterval))
					if err := workers.NewWorkers(s, a.cfg.Workers).Run(sigCtx); err != nil {
						return err
					}
				}

				return reportNewlyAvailable(ctx, s, out)
			})
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "poll a single time and exit")
	return cmd
}

func reportNewlyAvailable(ctx context.Context, s *service.ClientServices, out io.Writer) error {
	pairings, err := s.Reconcile.NewlyAvailable(ctx)
	if err != nil {
		return err
	}
	for _, p := range pairings {
		how := "held directly"
		if p.SafeID != "" {
			how = "through safe " + p.SafeID.String()
		}
		printSuccess(out, "Vault %s is now yours (%s)", p.VaultID, how)
		if err = s.Reconcile.Acknowledge(ctx, p.VaultID); err != nil {
			return err
		}
	}
	return nil
}
