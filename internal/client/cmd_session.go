package client

import (
	"context"
	"io"

	"github.com/MKhiriev/go-safe-keeper/internal/service"
	"github.com/spf13/cobra"
)

func newSessionCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the cached key-service session",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget the cached session key so the next read asks for a new signature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withServices(cmd, func(ctx context.Context, s *service.ClientServices, out io.Writer) error {
				if err := s.Sessions.Invalidate(ctx); err != nil {
					return err
				}
				printSuccess(out, "Session cleared")
				return nil
			})
		},
	})

	return cmd
}
