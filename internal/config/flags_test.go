package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only port no host", addr: NetAddress{Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		want        NetAddress
	}{
		{name: "localhost", input: "localhost:8080", want: NetAddress{Host: "localhost", Port: 8080}},
		{name: "ipv4", input: "127.0.0.1:9000", want: NetAddress{Host: "127.0.0.1", Port: 9000}},
		{name: "any interface", input: ":8080", want: NetAddress{Port: 8080}},
		{name: "missing port", input: "localhost", expectError: true},
		{name: "non numeric port", input: "localhost:http", expectError: true},
		{name: "zero port", input: "localhost:0", expectError: true},
		{name: "hostname is not an ip", input: "example.com:80", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a)
		})
	}
}

func TestNetAddress_Type(t *testing.T) {
	assert.Equal(t, "address", (&NetAddress{}).Type())
}

func TestParseFlags_AllFlags(t *testing.T) {
	fs := newFlagSet(t,
		"-a", "localhost:9001",
		"-c", "/etc/safekeeper.toml",
		"-d", "cache.db",
		"--keystore", "id.key",
		"--session-ttl", "20m",
		"--scope", "flags",
		"--threshold", "3",
		"--auto-approve",
		"--ledger", "http://ledger",
		"--key-service", "http://keys",
		"--blob-store", "http://blobs",
		"--request-timeout", "3s",
		"--retries", "5",
		"--redis", "localhost:6379",
		"--poll-interval", "1s",
		"--kafka-brokers", "k1:9092,k2:9092",
		"--kafka-topic", "t",
		"--blob-dir", "/tmp/blobs",
		"--key-servers", "4",
		"--key-servers-offline", "1",
	)

	cfg, err := ParseFlags(fs)
	require.NoError(t, err)

	assert.Equal(t, "localhost:9001", cfg.Server.HTTPAddress)
	assert.Equal(t, "/etc/safekeeper.toml", cfg.ConfigFilePath)
	assert.Equal(t, "cache.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "id.key", cfg.App.KeystorePath)
	assert.Equal(t, 20*time.Minute, cfg.App.SessionTTL)
	assert.Equal(t, "flags", cfg.App.Scope)
	assert.Equal(t, 3, cfg.App.EncryptionThreshold)
	assert.True(t, cfg.App.AutoApprove)
	assert.Equal(t, "http://ledger", cfg.Adapter.LedgerAddress)
	assert.Equal(t, "http://keys", cfg.Adapter.KeyServiceAddress)
	assert.Equal(t, "http://blobs", cfg.Adapter.BlobStoreAddress)
	assert.Equal(t, 3*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 5, cfg.Adapter.RetryAttempts)
	assert.Equal(t, "localhost:6379", cfg.Storage.Redis.Address)
	assert.Equal(t, time.Second, cfg.Workers.PollInterval)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.Brokers)
	assert.Equal(t, "t", cfg.Events.Topic)
	assert.Equal(t, "/tmp/blobs", cfg.Storage.Files.BlobDir)
	assert.Equal(t, 4, cfg.Server.KeyServers)
	assert.Equal(t, 1, cfg.Server.KeyServersOffline)
}

func TestParseFlags_UnsetFlagsStayZero(t *testing.T) {
	cfg, err := ParseFlags(newFlagSet(t))
	require.NoError(t, err)
	assert.Empty(t, cfg.ConfigFilePath)
	assert.Empty(t, cfg.Server.HTTPAddress)
	assert.Empty(t, cfg.Adapter.LedgerAddress)
	assert.Zero(t, cfg.App.SessionTTL)
	assert.Zero(t, cfg.App.EncryptionThreshold)
	assert.Empty(t, cfg.Events.Brokers)
}

func TestParseFlags_InvalidAddress(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	assert.Error(t, fs.Parse([]string{"-a", "nohost"}))
}

func TestRegisterFlags_Idempotent(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	assert.NotPanics(t, func() { RegisterFlags(fs) })
}
