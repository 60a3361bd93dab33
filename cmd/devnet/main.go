package main

import (
	"os"

	"github.com/MKhiriev/go-safe-keeper/internal/clock"
	"github.com/MKhiriev/go-safe-keeper/internal/config"
	"github.com/MKhiriev/go-safe-keeper/internal/devnet"
	"github.com/MKhiriev/go-safe-keeper/internal/handler"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/internal/server"
	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/spf13/pflag"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	log := logger.NewLogger("safe-keeper-devnet")
	log.Info().
		Str("version", info.BuildVersion()).
		Str("date", info.BuildDate()).
		Str("commit", info.BuildCommit()).
		Msg("starting devnet")

	fs := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.GetDevnetConfig(fs)
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if info.BuildVersion() != "" {
		cfg.Version = info.BuildVersion()
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	d, err := devnet.New(cfg, clock.Real(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating devnet")
	}

	handlers, err := handler.NewHandlers(d, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
