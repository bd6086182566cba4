package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-fit-sync/internal/client"
	"github.com/MKhiriev/go-fit-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	app := client.NewApp(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	if err := app.Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "fitsync:", err)
		os.Exit(1)
	}
}
