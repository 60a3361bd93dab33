package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-safe-keeper/internal/client"
	"github.com/MKhiriev/go-safe-keeper/internal/tui"
	"github.com/MKhiriev/go-safe-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	root := client.NewRootCommand(client.Options{
		BuildInfo: models.NewAppBuildInfo(buildVersion, buildDate, buildCommit),
	})

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, client.FormatError(tui.Humanize(err)))
		os.Exit(1)
	}
}
