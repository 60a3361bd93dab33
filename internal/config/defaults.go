package config

import "time"

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			KeystorePath:        "identity.key",
			SessionTTL:          10 * time.Minute,
			Scope:               "safekeeper",
			EncryptionThreshold: 2,
			Version:             "dev",
		},
		Adapter: Adapter{
			LedgerAddress:     "localhost:8080",
			KeyServiceAddress: "localhost:8080",
			BlobStoreAddress:  "localhost:8080",
			RequestTimeout:    10 * time.Second,
			RetryAttempts:     3,
			RetryBaseDelay:    200 * time.Millisecond,
		},
		Storage: Storage{
			DB: DB{DSN: "safekeeper.db"},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
			KeyServers:     3,
		},
		Workers: Workers{
			PollInterval: 5 * time.Second,
			PageSize:     50,
		},
		Events: Events{
			Topic: "safekeeper.events",
		},
	}
}
