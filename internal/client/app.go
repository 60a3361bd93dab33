package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/clock"
	"github.com/MKhiriev/go-safe-keeper/internal/config"
	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/internal/identity"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/internal/service"
	"github.com/MKhiriev/go-safe-keeper/internal/store"
	"github.com/MKhiriev/go-safe-keeper/internal/tui"
	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/spf13/cobra"
)

// Options customise the command tree. Zero values select the terminal
// defaults.
type Options struct {
	BuildInfo models.AppBuildInfo
	// Prompter defaults to terminal prompts on stdin and stderr.
	Prompter Prompter
	// Logger defaults to a log file next to the executable.
	Logger *logger.Logger
	Clock  clock.Clock
}

// app is the state of one command invocation.
type app struct {
	opts     Options
	cfg      *config.ClientConfig
	log      *logger.Logger
	keyChain crypto.KeyChainService
	prompter Prompter
	activity *activity

	storages *store.ClientStorages
	adapters *adapter.Adapters
	services *service.ClientServices
}

func newApp(opts Options) *app {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	return &app{opts: opts, keyChain: crypto.NewKeyChainService()}
}

// load reads the configuration from the flags of cmd. It runs before every
// command.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.GetClientConfig(cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = a.opts.Logger
	if a.log == nil {
		a.log = logger.NewClientLogger("safe-keeper", "")
	}

	a.prompter = a.opts.Prompter
	if a.prompter == nil {
		a.prompter = tui.New(os.Stdin, os.Stderr)
	}
	a.activity = newActivity(cmd.ErrOrStderr())

	cmd.SetContext(a.log.WithContext(cmd.Context()))
	return nil
}

func (a *app) keystore() *identity.Keystore {
	return identity.NewKeystore(a.cfg.App.KeystorePath, a.keyChain)
}

func (a *app) passphrase(ctx context.Context, confirm bool) (string, error) {
	if a.cfg.App.Passphrase != "" {
		return a.cfg.App.Passphrase, nil
	}
	return a.prompter.Passphrase(ctx, confirm)
}

func (a *app) approver() identity.Approver {
	if a.cfg.App.AutoApprove {
		return identity.AutoApprover{}
	}
	return pausingApprover{prompter: a.prompter, activity: a.activity}
}

// unlock opens the keystore and returns the signing identity.
func (a *app) unlock(ctx context.Context) (*identity.LocalIdentity, error) {
	ks := a.keystore()
	if _, err := ks.Address(); err != nil {
		if errors.Is(err, identity.ErrKeystoreNotFound) {
			return nil, fmt.Errorf("%w at %s, run `identity new` first", err, ks.Path())
		}
		return nil, err
	}

	pass, err := a.passphrase(ctx, false)
	if err != nil {
		return nil, err
	}
	priv, err := ks.Open(pass)
	if err != nil {
		return nil, err
	}
	return identity.NewLocalIdentity(priv, a.approver()), nil
}

// open unlocks the identity and wires storages, adapters and services.
// Callers must close the app.
func (a *app) open(ctx context.Context) (*service.ClientServices, error) {
	id, err := a.unlock(ctx)
	if err != nil {
		return nil, err
	}

	a.adapters, err = adapter.NewHTTPAdapters(a.cfg.Adapter, a.cfg.Events, a.log)
	if err != nil {
		return nil, fmt.Errorf("create adapters: %w", err)
	}

	sealer := store.NewSessionSealer(a.keyChain, id.SessionCacheKey())
	a.storages, err = store.NewClientStorages(ctx, a.cfg.Storage, sealer, a.log)
	if err != nil {
		return nil, fmt.Errorf("open local cache: %w", err)
	}

	a.services = service.NewClientServices(a.storages, a.adapters, id, a.keyChain, a.opts.Clock, a.cfg)
	return a.services, nil
}

func (a *app) close() {
	if a.storages != nil {
		if err := a.storages.Close(); err != nil {
			a.log.Err(err).Str("func", "*app.close").Msg("error closing local cache")
		}
	}
	if a.adapters != nil && a.adapters.Publisher != nil {
		if err := a.adapters.Publisher.Close(); err != nil {
			a.log.Err(err).Str("func", "*app.close").Msg("error closing event publisher")
		}
	}
}

// withServices runs fn with wired services and always closes the app.
func (a *app) withServices(cmd *cobra.Command, fn func(ctx context.Context, s *service.ClientServices, out io.Writer) error) error {
	ctx := cmd.Context()
	defer a.close()

	s, err := a.open(ctx)
	if err != nil {
		return err
	}
	return fn(ctx, s, cmd.OutOrStdout())
}

// busy runs fn behind the spinner.
func (a *app) busy(message string, fn func() error) error {
	a.activity.start(message)
	defer a.activity.stop()
	return fn()
}
