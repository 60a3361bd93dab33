package client

import (
	"fmt"

	"github.com/MKhiriev/go-safe-keeper/internal/config"
	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree. Configuration flags are shared
// by every command.
func NewRootCommand(opts Options) *cobra.Command {
	a := newApp(opts)

	root := &cobra.Command{
		Use:           "safe-keeper",
		Short:         "Keep vault secrets behind a ledger-held capability",
		Long:          `Stores secrets in vaults whose access is controlled by a capability held on a ledger, with guardian recovery and inactivity inheritance through safes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newIdentityCommand(a),
		newVaultCommand(a),
		newItemCommand(a),
		newSafeCommand(a),
		newSessionCommand(a),
		newWatchCommand(a),
		newVersionCommand(a),
	)
	return root
}

func parseObjectID(arg, what string) (models.ObjectID, error) {
	id, err := models.ParseObjectID(arg)
	if err != nil {
		return "", fmt.Errorf("invalid %s id %q: %w", what, arg, err)
	}
	return id, nil
}

func parseAddresses(args []string) ([]models.Address, error) {
	out := make([]models.Address, 0, len(args))
	for _, arg := range args {
		addr, err := models.ParseAddress(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid address %q: %w", arg, err)
		}
		out = append(out, addr)
	}
	return out, nil
}
