package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// DevnetConfig is the configuration of the local collaborator stack.
type DevnetConfig struct {
	HTTPAddress       string
	RequestTimeout    time.Duration
	KeyServers        int
	KeyServersOffline int
	// BlobDir stores blobs on disk when set.
	BlobDir string
	Version string
}

// GetDevnetConfig builds and validates the devnet view of the merged
// configuration.
func GetDevnetConfig(fs *pflag.FlagSet) (*DevnetConfig, error) {
	cfg, err := GetStructuredConfig(fs)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	devnetCfg := &DevnetConfig{
		HTTPAddress:       cfg.Server.HTTPAddress,
		RequestTimeout:    cfg.Server.RequestTimeout,
		KeyServers:        cfg.Server.KeyServers,
		KeyServersOffline: cfg.Server.KeyServersOffline,
		BlobDir:           cfg.Storage.Files.BlobDir,
		Version:           cfg.App.Version,
	}
	return devnetCfg, devnetCfg.validate()
}
