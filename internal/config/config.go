// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/spf13/pflag"
)

// StructuredConfig is the top-level configuration container for the
// go-safe-keeper client and devnet. It is populated by merging defaults,
// an optional config file, environment variables and command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds identity, session and encryption settings.
	App App `envPrefix:"APP_"`

	// Adapter holds the addresses of the ledger, key service and blob store
	// and the retry policy used against them.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the local cache database and the optional Redis
	// session cache.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the devnet listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds the reconciliation loop settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Events holds the optional Kafka publisher settings.
	Events Events `envPrefix:"EVENTS_"`

	// ConfigFilePath is the optional path to a JSON (with comments) or TOML
	// config file. Populated via the CONFIG environment variable or the
	// -c / --config flag.
	ConfigFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// KeystorePath is the file holding the sealed identity key.
	// Env: APP_KEYSTORE_PATH
	KeystorePath string `env:"KEYSTORE_PATH"`

	// Passphrase unlocks the keystore. When empty the client asks for it.
	// Env: APP_PASSPHRASE
	Passphrase string `env:"PASSPHRASE"`

	// SessionTTL is how long a minted session key may be reused.
	// Env: APP_SESSION_TTL
	SessionTTL time.Duration `env:"SESSION_TTL"`

	// Scope is the authorization domain session challenges are bound to.
	// Env: APP_SCOPE
	Scope string `env:"SCOPE"`

	// EncryptionThreshold is the number of key servers required to open an
	// item sealed by this client.
	// Env: APP_ENCRYPTION_THRESHOLD
	EncryptionThreshold int `env:"ENCRYPTION_THRESHOLD"`

	// AutoApprove signs every request without prompting. Devnet only.
	// Env: APP_AUTO_APPROVE
	AutoApprove bool `env:"AUTO_APPROVE"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Adapter holds outbound collaborator settings.
type Adapter struct {
	// Env: ADAPTER_LEDGER_ADDRESS
	LedgerAddress string `env:"LEDGER_ADDRESS"`
	// Env: ADAPTER_KEY_SERVICE_ADDRESS
	KeyServiceAddress string `env:"KEY_SERVICE_ADDRESS"`
	// Env: ADAPTER_BLOB_STORE_ADDRESS
	BlobStoreAddress string `env:"BLOB_STORE_ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RetryAttempts is the number of retries after a transient failure.
	// Env: ADAPTER_RETRY_ATTEMPTS
	RetryAttempts int `env:"RETRY_ATTEMPTS"`

	// RetryBaseDelay is the first backoff interval; it doubles per retry.
	// Env: ADAPTER_RETRY_BASE_DELAY
	RetryBaseDelay time.Duration `env:"RETRY_BASE_DELAY"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the local cache database connection settings.
	DB DB `envPrefix:"DB_"`

	// Redis holds the optional shared session cache.
	Redis Redis `envPrefix:"REDIS_"`

	// Files holds the devnet blob directory.
	Files Files `envPrefix:"FILES_"`
}

// DB holds the local cache database DSN: a SQLite file path or a
// postgres:// URL.
type DB struct {
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Redis holds the session cache connection. An empty Address keeps session
// keys in the local database.
type Redis struct {
	// Env: STORAGE_REDIS_ADDRESS
	Address string `env:"ADDRESS"`
	// Env: STORAGE_REDIS_PASSWORD
	Password string `env:"PASSWORD"`
	// Env: STORAGE_REDIS_DB
	DB int `env:"DB"`
}

// Files holds file-system settings for the devnet blob store.
type Files struct {
	// BlobDir is where blobs are written. Empty keeps them in memory.
	// Env: STORAGE_FILES_BLOB_DIR
	BlobDir string `env:"BLOB_DIR"`
}

// Server holds the devnet listener settings.
type Server struct {
	// HTTPAddress is the TCP address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// KeyServers is the number of simulated key servers.
	// Env: SERVER_KEY_SERVERS
	KeyServers int `env:"KEY_SERVERS"`

	// KeyServersOffline is how many of them refuse to answer.
	// Env: SERVER_KEY_SERVERS_OFFLINE
	KeyServersOffline int `env:"KEY_SERVERS_OFFLINE"`
}

// Workers holds configuration for the reconciliation loop.
type Workers struct {
	// Env: WORKERS_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`
	// PageSize is the queryEvents page limit.
	// Env: WORKERS_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`
}

// Events holds the Kafka publisher settings. No brokers means events are
// only logged.
type Events struct {
	// Env: EVENTS_BROKERS (comma separated)
	Brokers []string `env:"BROKERS" envSeparator:","`
	// Env: EVENTS_TOPIC
	Topic string `env:"TOPIC"`
}

// GetStructuredConfig loads and merges the configuration from all sources,
// in increasing priority:
//  1. Built-in defaults
//  2. Config file (path resolved from sources 3 and 4)
//  3. Environment variables
//  4. Command-line flags registered on fs (nil skips flags)
func GetStructuredConfig(fs *pflag.FlagSet) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(fs).
		withFile().
		build()
}
