package config

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// RegisterFlags declares every configuration flag on fs. Call it once
// before fs is parsed; cobra parses persistent flags itself.
//
// Flags:
//
//	-a/--address         devnet address in format [host]:[port]
//	-c/--config          config file path (.json, .jsonc or .toml)
//	-d/--dsn             local cache database DSN
//	--keystore           identity keystore path
//	--session-ttl        session key lifetime (e.g. "10m")
//	--scope              session authorization domain
//	--threshold          key servers required to decrypt new items
//	--ledger             ledger base URL
//	--key-service        key service base URL
//	--blob-store         blob store base URL
//	--request-timeout    outbound request timeout
//	--retries            retries after a transient failure
//	--redis              Redis address for the session cache
//	--poll-interval      reconciliation interval
//	--kafka-brokers      Kafka brokers for produced events
//	--blob-dir           devnet blob directory
//	--key-servers        devnet key server count
func RegisterFlags(fs *pflag.FlagSet) {
	if fs.Lookup("config") != nil {
		return
	}
	fs.VarP(&NetAddress{}, "address", "a", "Devnet address host:port")
	fs.StringP("config", "c", "", "Config file path (.json, .jsonc, .toml)")
	fs.StringP("dsn", "d", "", "Local cache database DSN")
	fs.String("keystore", "", "Identity keystore path")
	fs.Duration("session-ttl", 0, "Session key lifetime (e.g. 10m)")
	fs.String("scope", "", "Session authorization domain")
	fs.Int("threshold", 0, "Key servers required to decrypt new items")
	fs.Bool("auto-approve", false, "Sign without prompting (devnet only)")
	fs.String("ledger", "", "Ledger base URL")
	fs.String("key-service", "", "Key service base URL")
	fs.String("blob-store", "", "Blob store base URL")
	fs.Duration("request-timeout", 0, "Request timeout (e.g. 30s)")
	fs.Int("retries", 0, "Retries after a transient failure")
	fs.String("redis", "", "Redis address for the session cache")
	fs.Duration("poll-interval", 0, "Reconciliation interval (e.g. 5s)")
	fs.StringSlice("kafka-brokers", nil, "Kafka brokers for produced events")
	fs.String("kafka-topic", "", "Kafka topic for produced events")
	fs.String("blob-dir", "", "Devnet blob directory")
	fs.Int("key-servers", 0, "Devnet key server count")
	fs.Int("key-servers-offline", 0, "Devnet key servers refusing requests")
}

// ParseFlags reads the values registered by [RegisterFlags] from a parsed
// fs. Flags left unset stay zero so lower layers show through.
func ParseFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	RegisterFlags(fs)

	var errs []error
	str := func(name string) string {
		v, err := fs.GetString(name)
		errs = append(errs, err)
		return v
	}
	num := func(name string) int {
		v, err := fs.GetInt(name)
		errs = append(errs, err)
		return v
	}
	dur := func(name string) time.Duration {
		v, err := fs.GetDuration(name)
		errs = append(errs, err)
		return v
	}
	brokers, err := fs.GetStringSlice("kafka-brokers")
	errs = append(errs, err)
	autoApprove, err := fs.GetBool("auto-approve")
	errs = append(errs, err)

	cfg := &StructuredConfig{
		App: App{
			KeystorePath:        str("keystore"),
			SessionTTL:          dur("session-ttl"),
			Scope:               str("scope"),
			EncryptionThreshold: num("threshold"),
			AutoApprove:         autoApprove,
		},
		Adapter: Adapter{
			LedgerAddress:     str("ledger"),
			KeyServiceAddress: str("key-service"),
			BlobStoreAddress:  str("blob-store"),
			RequestTimeout:    dur("request-timeout"),
			RetryAttempts:     num("retries"),
		},
		Storage: Storage{
			DB:    DB{DSN: str("dsn")},
			Redis: Redis{Address: str("redis")},
			Files: Files{BlobDir: str("blob-dir")},
		},
		Server: Server{
			HTTPAddress:       fs.Lookup("address").Value.String(),
			KeyServers:        num("key-servers"),
			KeyServersOffline: num("key-servers-offline"),
		},
		Workers: Workers{
			PollInterval: dur("poll-interval"),
		},
		Events: Events{
			Brokers: brokers,
			Topic:   str("kafka-topic"),
		},
		ConfigFilePath: str("config"),
	}

	return cfg, errors.Join(errs...)
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string { return "address" }
