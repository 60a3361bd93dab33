package client

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/MKhiriev/go-safe-keeper/internal/service"
	"github.com/spf13/cobra"
)

func newVaultCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Create vaults and list their items",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create NAME",
		Short: "Create a vault whose capability you hold directly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withServices(cmd, func(ctx context.Context, s *service.ClientServices, out io.Writer) error {
				var vaultID, capID string
				err := a.busy("Creating vault...", func() error {
					p, err := s.Vaults.CreateVault(ctx, args[0])
					vaultID, capID = p.VaultID.String(), p.CapID.String()
					return err
				})
				if err != nil {
					return err
				}

				printSuccess(out, "Vault %s created", args[0])
				printField(out, "Vault", vaultID)
				printField(out, "Cap", capID)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "items VAULT",
		Short: "List the items of a vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vaultID, err := parseObjectID(args[0], "vault")
			if err != nil {
				return err
			}

			return a.withServices(cmd, func(ctx context.Context, s *service.ClientServices, out io.Writer) error {
				items, err := s.Vaults.ListItems(ctx, vaultID)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					fmt.Fprintln(out, mutedColor.Sprint("(no items)"))
					return nil
				}

				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tCREATED")
				for _, it := range items {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.ID, it.Name, it.Category, it.CreatedAt.Format("2006-01-02 15:04"))
				}
				return tw.Flush()
			})
		},
	})

	return cmd
}
