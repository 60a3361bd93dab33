package client

import (
	"github.com/spf13/cobra"
)

func newIdentityCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Create or inspect the local signing identity",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "new",
		Short: "Generate an identity key sealed under a passphrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pass, err := a.passphrase(cmd.Context(), true)
			if err != nil {
				return err
			}

			ks := a.keystore()
			if _, err = ks.Create(pass); err != nil {
				return err
			}
			addr, err := ks.Address()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSuccess(out, "Identity created")
			printField(out, "Address", addr)
			printField(out, "Keystore", ks.Path())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the identity address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ks := a.keystore()
			addr, err := ks.Address()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printField(out, "Address", addr)
			printField(out, "Keystore", ks.Path())
			return nil
		},
	})

	return cmd
}
