package main

import (
	"context"
	"fmt"

	"github.com/baliestri/calliope/internal/config"
	myHTTP "github.com/baliestri/calliope/internal/handler/http"
	"github.com/baliestri/calliope/internal/logger"
	"github.com/baliestri/calliope/internal/server"
	"github.com/baliestri/calliope/internal/service"
	"github.com/baliestri/calliope/internal/store"
	"github.com/baliestri/calliope/internal/validators"
	"github.com/baliestri/calliope/internal/workers"
	"github.com/baliestri/calliope/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("calliope-auth-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err = migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	repositories := store.NewRepositories(db, log)

	services, err := service.NewServices(repositories, cfg.Auth, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handler := myHTTP.NewHandler(services, validators.NewUserValidator(), log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	backgroundWorkers := workers.NewWorkers(repositories, cfg.Workers, log)
	backgroundWorkers.Run()
	defer backgroundWorkers.Stop()

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
