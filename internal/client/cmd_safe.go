package client

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/go-safe-keeper/internal/service"
	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/spf13/cobra"
)

func newSafeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "safe",
		Short: "Escrow a vault capability with guardians and an heir",
		Long: `A safe escrows a vault's capability. Guardians can vote to move it to a
new owner, and a beneficiary can claim it after a period of owner
inactivity.`,
	}

	cmd.AddCommand(
		newSafeCreateCommand(a),
		newSafeShowCommand(a),
		newSafeTransitionCommand(a, "heartbeat SAFE", "Prove the owner is still active", "Heartbeat recorded",
			func(ctx context.Context, s *service.ClientServices, safeID models.ObjectID, _ []string) error {
				return s.Safes.Heartbeat(ctx, safeID)
			}),
		newSafeTransitionCommand(a, "approve SAFE CANDIDATE", "Vote, as a guardian, to hand the safe to CANDIDATE", "Vote cast",
			func(ctx context.Context, s *service.ClientServices, safeID models.ObjectID, args []string) error {
				candidate, err := models.ParseAddress(args[0])
				if err != nil {
					return fmt.Errorf("invalid candidate %q: %w", args[0], err)
				}
				return s.Safes.ApproveRecovery(ctx, safeID, candidate)
			}),
		newSafeTransitionCommand(a, "claim SAFE", "Claim the capability as beneficiary", "Capability claimed",
			func(ctx context.Context, s *service.ClientServices, safeID models.ObjectID, _ []string) error {
				return s.Safes.Claim(ctx, safeID)
			}),
		newSafeTransitionCommand(a, "disable SAFE", "Return the capability to the owner and retire the safe", "Safe disabled",
			func(ctx context.Context, s *service.ClientServices, safeID models.ObjectID, _ []string) error {
				return s.Safes.Disable(ctx, safeID)
			}),
		newSafeUpdateDeadmanCommand(a),
		newSafeUpdateGuardiansCommand(a),
	)
	return cmd
}

func newSafeCreateCommand(a *app) *cobra.Command {
	var (
		guardians   []string
		threshold   int
		beneficiary string
		inactivity  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "create VAULT",
		Short: "Escrow the vault capability in a new safe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vaultID, err := parseObjectID(args[0], "vault")
			if err != nil {
				return err
			}
			guardianAddrs, err := parseAddresses(guardians)
			if err != nil {
				return err
			}
			deadman, err := deadmanFromFlags(beneficiary, inactivity)
			if err != nil {
				return err
			}

			return a.withServices(cmd, func(ctx context.Context, s *service.ClientServices, out io.Writer) error {
				var created *models.Safe
				err := a.busy("Creating safe...", func() error {
					var err error
					created, err = s.Safes.CreateSafe(ctx, vaultID, service.SafeSettings{
						Guardians: guardianAddrs,
						Threshold: threshold,
						Deadman:   deadman,
					})
					return err
				})
				if err != nil {
					return err
				}

				printSuccess(out, "Safe created")
				printSafe(out, created)
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&guardians, "guardian", nil, "guardian address (repeatable)")
	cmd.Flags().IntVar(&threshold, "threshold", 0, "guardian votes needed for recovery")
	cmd.Flags().StringVar(&beneficiary, "beneficiary", "", "address that may claim after inactivity")
	cmd.Flags().DurationVar(&inactivity, "inactivity", 0, "inactivity period before the beneficiary may claim (e.g. 168h)")
	return cmd
}

func newSafeShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show VAULT",
		Short: "Show the safe escrowing a vault's capability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vaultID, err := parseObjectID(args[0], "vault")
			if err != nil {
				return err
			}

			return a.withServices(cmd, func(ctx context.Context, s *service.ClientServices, out io.Writer) error {
				found, err := s.Safes.LocateSafe(ctx, vaultID)
				if err != nil {
					return err
				}
				printSafe(out, found)
				return nil
			})
		},
	}
}

// newSafeTransitionCommand builds a command taking a safe id followed by
// the extra positional arguments named in use.
func newSafeTransitionCommand(
	a *app,
	use, short, done string,
	run func(ctx context.Context, s *service.ClientServices, safeID models.ObjectID, args []string) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(len(strings.Fields(use)) - 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			safeID, err := parseObjectID(args[0], "safe")
			if err != nil {
				return err
			}

			return a.withServices(cmd, func(ctx context.Context, s *service.ClientServices, out io.Writer) error {
				if err := a.busy("Submitting...", func() error { return run(ctx, s, safeID, args[1:]) }); err != nil {
					return err
				}
				printSuccess(out, "%s", done)
				return nil
			})
		},
	}
}

func newSafeUpdateDeadmanCommand(a *app) *cobra.Command {
	var (
		beneficiary string
		inactivity  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "update-deadman SAFE",
		Short: "Replace the beneficiary and inactivity period",
		Long:  `Replaces the inheritance settings. Without --beneficiary inheritance is removed.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			safeID, err := parseObjectID(args[0], "safe")
			if err != nil {
				return err
			}
			deadman, err := deadmanFromFlags(beneficiary, inactivity)
			if err != nil {
				return err
			}

			return a.withServices(cmd, func(ctx context.Context, s *service.ClientServices, out io.Writer) error {
				if err := a.busy("Submitting...", func() error { return s.Safes.UpdateDeadman(ctx, safeID, deadman) }); err != nil {
					return err
				}
				printSuccess(out, "Inheritance updated")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&beneficiary, "beneficiary", "", "address that may claim after inactivity")
	cmd.Flags().DurationVar(&inactivity, "inactivity", 0, "inactivity period before the beneficiary may claim")
	return cmd
}

func newSafeUpdateGuardiansCommand(a *app) *cobra.Command {
	var (
		guardians []string
		threshold int
	)

	cmd := &cobra.Command{
		Use:   "update-guardians SAFE",
		Short: "Replace the guardian set and recovery threshold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			safeID, err := parseObjectID(args[0], "safe")
			if err != nil {
				return err
			}
			guardianAddrs, err := parseAddresses(guardians)
			if err != nil {
				return err
			}

			return a.withServices(cmd, func(ctx context.Context, s *service.ClientServices, out io.Writer) error {
				err := a.busy("Submitting...", func() error {
					return s.Safes.UpdateGuardians(ctx, safeID, guardianAddrs, threshold)
				})
				if err != nil {
					return err
				}
				printSuccess(out, "Guardians updated")
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&guardians, "guardian", nil, "guardian address (repeatable)")
	cmd.Flags().IntVar(&threshold, "threshold", 0, "guardian votes needed for recovery")
	return cmd
}

func deadmanFromFlags(beneficiary string, inactivity time.Duration) (*models.Deadman, error) {
	if beneficiary == "" {
		return nil, nil
	}
	addr, err := models.ParseAddress(beneficiary)
	if err != nil {
		return nil, fmt.Errorf("invalid beneficiary %q: %w", beneficiary, err)
	}
	return &models.Deadman{Beneficiary: addr, InactivityPeriod: inactivity}, nil
}

func printSafe(out io.Writer, s *models.Safe) {
	printField(out, "Safe", s.ID)
	printField(out, "Vault", s.VaultID)
	printField(out, "Owner", s.Owner)
	printField(out, "State", s.State())
	printField(out, "Last activity", s.LastActivity.Format(time.RFC3339))

	if len(s.Guardians) > 0 {
		printField(out, "Threshold", fmt.Sprintf("%d of %d", s.Threshold, len(s.Guardians)))
		for _, g := range s.Guardians {
			printField(out, "Guardian", g)
		}
	}

	candidates := make([]models.Address, 0, len(s.RecoveryVotes))
	for c := range s.RecoveryVotes {
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
	for _, c := range candidates {
		printField(out, "Votes", fmt.Sprintf("%s %d/%d", c, s.Votes(c), s.Threshold))
	}

	if s.Deadman != nil {
		printField(out, "Beneficiary", s.Deadman.Beneficiary)
		printField(out, "Inactivity", s.Deadman.InactivityPeriod)
		if at, ok := s.ClaimableAt(); ok {
			printField(out, "Claimable at", at.Format(time.RFC3339))
		}
	}
}
