// Package main is the entry point for the advice API server.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/user/crypto-advisor/internal/api"
	"github.com/user/crypto-advisor/internal/storage"
	"github.com/user/crypto-advisor/pkg/config"
	"github.com/user/crypto-advisor/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl := logger.New(cfg.App.LogLevel, cfg.IsDevelopment())

	// Bootstrap the schema before the first request can read it. Safe to
	// run on every start, including concurrent starts.
	repo, err := storage.NewRepository(cfg.Database.Path)
	if err != nil {
		zl.Fatal().Err(err).Msg("failed to open database")
	}
	if err := repo.EnsureSchema(); err != nil {
		zl.Fatal().Err(err).Msg("schema migration failed")
	}
	repo.Close()

	server := api.NewServer(storage.NewReadStore(cfg.Database.Path), zl, cfg.IsProduction())

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	zl.Info().Str("addr", addr).Msg("advice API listening")
	if err := server.Run(addr); err != nil {
		zl.Fatal().Err(err).Msg("server stopped")
	}
}
