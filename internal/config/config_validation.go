// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks settings shared by every binary.
func (cfg *StructuredConfig) validate() error {
	if cfg.Adapter.RetryAttempts < 0 {
		return fmt.Errorf("%w: negative retry attempts", ErrInvalidAdapterConfigs)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if strings.TrimSpace(cfg.Storage.DB.DSN) == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.LedgerAddress == "" || cfg.Adapter.KeyServiceAddress == "" ||
		cfg.Adapter.BlobStoreAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.PollInterval <= 0 || cfg.Workers.PageSize <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.KeystorePath == "" || cfg.App.Scope == "" ||
		cfg.App.SessionTTL <= 0 || cfg.App.EncryptionThreshold < 1 {
		return ErrInvalidAppConfigs
	}

	return nil
}

func (cfg *DevnetConfig) validate() error {
	if cfg.HTTPAddress == "" || cfg.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}
	if cfg.KeyServers < 1 || cfg.KeyServersOffline < 0 || cfg.KeyServersOffline > cfg.KeyServers {
		return fmt.Errorf("%w: key servers %d, offline %d", ErrInvalidServerConfigs, cfg.KeyServers, cfg.KeyServersOffline)
	}
	return nil
}
