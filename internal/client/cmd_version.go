package client

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/tui"
	"github.com/spf13/cobra"
)

const versionProbeTimeout = 2 * time.Second

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), versionProbeTimeout)
			defer cancel()

			devnet, err := adapter.ServerVersion(ctx, a.cfg.Adapter)
			if err != nil {
				a.log.Debug().Err(err).Str("func", "version").Msg("gateway version unavailable")
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderBuildInfo(a.opts.BuildInfo, devnet))
			return nil
		},
	}
}
