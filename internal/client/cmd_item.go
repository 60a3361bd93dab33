package client

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-safe-keeper/internal/service"
	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

func newItemCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Add and read encrypted items",
	}
	cmd.AddCommand(newItemAddCommand(a), newItemReadCommand(a))
	return cmd
}

func newItemAddCommand(a *app) *cobra.Command {
	var (
		name     string
		category string
		value    string
	)

	cmd := &cobra.Command{
		Use:   "add VAULT",
		Short: "Encrypt a secret and add it to a vault",
		Long: `Encrypts a secret under a fresh policy and records it in the vault.

The secret is taken from --value, or read from standard input when the
flag is absent.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vaultID, err := parseObjectID(args[0], "vault")
			if err != nil {
				return err
			}

			plaintext := []byte(value)
			if !cmd.Flags().Changed("value") {
				if plaintext, err = io.ReadAll(cmd.InOrStdin()); err != nil {
					return fmt.Errorf("read secret: %w", err)
				}
				plaintext = []byte(strings.TrimRight(string(plaintext), "\r\n"))
			}

			return a.withServices(cmd, func(ctx context.Context, s *service.ClientServices, out io.Writer) error {
				var item models.Item
				err := a.busy("Encrypting item...", func() error {
					var err error
					item, err = s.Vaults.AddItem(ctx, vaultID, service.NewItem{
						Name:      name,
						Category:  models.ItemCategory(category),
						Plaintext: plaintext,
					})
					return err
				})
				if err != nil {
					return err
				}

				printSuccess(out, "Item %s added", item.Name)
				printField(out, "Item", item.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "item name")
	cmd.Flags().StringVar(&category, "category", string(models.CategoryLogin), "item category (login, note, card, file)")
	cmd.Flags().StringVar(&value, "value", "", "secret value; read from stdin when absent")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newItemReadCommand(a *app) *cobra.Command {
	var toClipboard bool

	cmd := &cobra.Command{
		Use:   "read VAULT ITEM",
		Short: "Decrypt an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vaultID, err := parseObjectID(args[0], "vault")
			if err != nil {
				return err
			}
			itemID, err := parseObjectID(args[1], "item")
			if err != nil {
				return err
			}

			return a.withServices(cmd, func(ctx context.Context, s *service.ClientServices, out io.Writer) error {
				var plaintext []byte
				err := a.busy("Decrypting...", func() error {
					var err error
					plaintext, err = s.Decrypt.Decrypt(ctx, vaultID, itemID)
					return err
				})
				if err != nil {
					return err
				}

				if toClipboard {
					if err = writeClipboard(string(plaintext)); err != nil {
						return fmt.Errorf("copy to clipboard: %w", err)
					}
					printSuccess(out, "Copied to clipboard")
					return nil
				}
				fmt.Fprintln(out, string(plaintext))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&toClipboard, "copy", false, "copy the secret to the clipboard instead of printing it")
	return cmd
}
