package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
)

// fileConfig mirrors [StructuredConfig] for config files. Durations are
// written as strings ("10m") in both JSON and TOML.
type fileConfig struct {
	App struct {
		KeystorePath        string   `json:"keystore_path" toml:"keystore_path"`
		Passphrase          string   `json:"passphrase" toml:"passphrase"`
		SessionTTL          Duration `json:"session_ttl" toml:"session_ttl"`
		Scope               string   `json:"scope" toml:"scope"`
		EncryptionThreshold int      `json:"encryption_threshold" toml:"encryption_threshold"`
		AutoApprove         bool     `json:"auto_approve" toml:"auto_approve"`
	} `json:"app" toml:"app"`

	Adapter struct {
		LedgerAddress     string   `json:"ledger_address" toml:"ledger_address"`
		KeyServiceAddress string   `json:"key_service_address" toml:"key_service_address"`
		BlobStoreAddress  string   `json:"blob_store_address" toml:"blob_store_address"`
		RequestTimeout    Duration `json:"request_timeout" toml:"request_timeout"`
		RetryAttempts     int      `json:"retry_attempts" toml:"retry_attempts"`
		RetryBaseDelay    Duration `json:"retry_base_delay" toml:"retry_base_delay"`
	} `json:"adapter" toml:"adapter"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" toml:"dsn"`
		} `json:"db" toml:"db"`
		Redis struct {
			Address  string `json:"address" toml:"address"`
			Password string `json:"password" toml:"password"`
			DB       int    `json:"db" toml:"db"`
		} `json:"redis" toml:"redis"`
		Files struct {
			BlobDir string `json:"blob_dir" toml:"blob_dir"`
		} `json:"files" toml:"files"`
	} `json:"storage" toml:"storage"`

	Server struct {
		HTTPAddress       string   `json:"http_address" toml:"http_address"`
		RequestTimeout    Duration `json:"request_timeout" toml:"request_timeout"`
		KeyServers        int      `json:"key_servers" toml:"key_servers"`
		KeyServersOffline int      `json:"key_servers_offline" toml:"key_servers_offline"`
	} `json:"server" toml:"server"`

	Workers struct {
		PollInterval Duration `json:"poll_interval" toml:"poll_interval"`
		PageSize     int      `json:"page_size" toml:"page_size"`
	} `json:"workers" toml:"workers"`

	Events struct {
		Brokers []string `json:"brokers" toml:"brokers"`
		Topic   string   `json:"topic" toml:"topic"`
	} `json:"events" toml:"events"`
}

// parseFile reads a config file. ".toml" files are decoded as TOML; any
// other extension is read as JSON, with comments and trailing commas
// allowed.
func parseFile(path string) (*StructuredConfig, error) {
	var fc fileConfig

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			return nil, fmt.Errorf("error decoding toml configs: %w", err)
		}
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading a config file: %w", err)
		}
		if err = json.Unmarshal(jsonc.ToJSON(data), &fc); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			KeystorePath:        fc.App.KeystorePath,
			Passphrase:          fc.App.Passphrase,
			SessionTTL:          time.Duration(fc.App.SessionTTL),
			Scope:               fc.App.Scope,
			EncryptionThreshold: fc.App.EncryptionThreshold,
			AutoApprove:         fc.App.AutoApprove,
		},
		Adapter: Adapter{
			LedgerAddress:     fc.Adapter.LedgerAddress,
			KeyServiceAddress: fc.Adapter.KeyServiceAddress,
			BlobStoreAddress:  fc.Adapter.BlobStoreAddress,
			RequestTimeout:    time.Duration(fc.Adapter.RequestTimeout),
			RetryAttempts:     fc.Adapter.RetryAttempts,
			RetryBaseDelay:    time.Duration(fc.Adapter.RetryBaseDelay),
		},
		Storage: Storage{
			DB: DB{DSN: fc.Storage.DB.DSN},
			Redis: Redis{
				Address:  fc.Storage.Redis.Address,
				Password: fc.Storage.Redis.Password,
				DB:       fc.Storage.Redis.DB,
			},
			Files: Files{BlobDir: fc.Storage.Files.BlobDir},
		},
		Server: Server{
			HTTPAddress:       fc.Server.HTTPAddress,
			RequestTimeout:    time.Duration(fc.Server.RequestTimeout),
			KeyServers:        fc.Server.KeyServers,
			KeyServersOffline: fc.Server.KeyServersOffline,
		},
		Workers: Workers{
			PollInterval: time.Duration(fc.Workers.PollInterval),
			PageSize:     fc.Workers.PageSize,
		},
		Events: Events{
			Brokers: fc.Events.Brokers,
			Topic:   fc.Events.Topic,
		},
	}
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" and from integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.UnmarshalText([]byte(value))
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

// UnmarshalText lets TOML decode durations from strings.
func (d *Duration) UnmarshalText(text []byte) error {
	tmp, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
