package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fit-sync/internal/config"
	"github.com/MKhiriev/go-fit-sync/internal/handler"
	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/internal/server"
	"github.com/MKhiriev/go-fit-sync/internal/service"
	"github.com/MKhiriev/go-fit-sync/internal/store"
	"github.com/MKhiriev/go-fit-sync/internal/workers"
	"github.com/MKhiriev/go-fit-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(build)

	log := logger.NewLogger("go-fit-sync-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, *cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	background := workers.NewWorkers(
		workers.NewReceiptCompactor(storages.ReceiptRepository, cfg.Workers, log),
	)

	srv, err := server.NewServer(handlers, background, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(build models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", build.BuildVersion)
	fmt.Printf("Build date: %s\n", build.BuildDate)
	fmt.Printf("Build commit: %s\n", build.BuildCommit)
}
