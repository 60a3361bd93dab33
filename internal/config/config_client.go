package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	KeystorePath        string
	Passphrase          string
	SessionTTL          time.Duration
	Scope               string
	EncryptionThreshold int
	AutoApprove         bool
	Version             string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	LedgerAddress     string
	KeyServiceAddress string
	BlobStoreAddress  string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryBaseDelay time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite path or PostgreSQL URL of the local cache.
	DSN string
}

// ClientRedis configures the optional Redis session cache.
type ClientRedis struct {
	Address  string
	Password string
	DB       int
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB    ClientDB
	Redis ClientRedis
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// PollInterval defines how often the reconciliation loop runs.
	PollInterval time.Duration
	// PageSize bounds one queryEvents page.
	PageSize int
}

// ClientEvents configures the produced-event publisher.
type ClientEvents struct {
	Brokers []string
	Topic   string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Events  ClientEvents
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig(fs *pflag.FlagSet) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(fs)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			KeystorePath:        cfg.App.KeystorePath,
			Passphrase:          cfg.App.Passphrase,
			SessionTTL:          cfg.App.SessionTTL,
			Scope:               cfg.App.Scope,
			EncryptionThreshold: cfg.App.EncryptionThreshold,
			AutoApprove:         cfg.App.AutoApprove,
			Version:             cfg.App.Version,
		},
		Adapter: ClientAdapter{
			LedgerAddress:     cfg.Adapter.LedgerAddress,
			KeyServiceAddress: cfg.Adapter.KeyServiceAddress,
			BlobStoreAddress:  cfg.Adapter.BlobStoreAddress,
			RequestTimeout:    cfg.Adapter.RequestTimeout,
			RetryAttempts:     cfg.Adapter.RetryAttempts,
			RetryBaseDelay:    cfg.Adapter.RetryBaseDelay,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
			Redis: ClientRedis{
				Address:  cfg.Storage.Redis.Address,
				Password: cfg.Storage.Redis.Password,
				DB:       cfg.Storage.Redis.DB,
			},
		},
		Workers: ClientWorkers{
			PollInterval: cfg.Workers.PollInterval,
			PageSize:     cfg.Workers.PageSize,
		},
		Events: ClientEvents{
			Brokers: cfg.Events.Brokers,
			Topic:   cfg.Events.Topic,
		},
	}
}
