// Package main runs one advice generation, for the upstream orchestrator:
// read context resources, call the model, validate and persist one row.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/user/crypto-advisor/internal/advisor"
	"github.com/user/crypto-advisor/internal/llm"
	"github.com/user/crypto-advisor/internal/resources"
	"github.com/user/crypto-advisor/internal/storage"
	"github.com/user/crypto-advisor/pkg/config"
	"github.com/user/crypto-advisor/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	symbol := flag.String("symbol", "", "Symbol to generate advice for, e.g. BTC")
	analysisFile := flag.String("analysis", "", "File with the upstream analysis digest (stdin when omitted)")
	flag.Parse()

	if *symbol == "" {
		log.Fatal("-symbol is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl := logger.New(cfg.App.LogLevel, cfg.IsDevelopment())

	analysisResults, err := readAnalysis(*analysisFile)
	if err != nil {
		zl.Fatal().Err(err).Msg("failed to read analysis digest")
	}

	repo, err := storage.NewRepository(cfg.Database.Path)
	if err != nil {
		zl.Fatal().Err(err).Msg("failed to open database")
	}
	defer repo.Close()
	if err := repo.EnsureSchema(); err != nil {
		zl.Fatal().Err(err).Msg("schema migration failed")
	}

	provider := llm.NewOpenAIProvider(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.RequestTimeout)
	reader := resources.NewReader(cfg.Resources.Dir, zl)
	engine := advisor.NewEngine(reader, provider, repo, zl)

	if err := engine.Generate(context.Background(), *symbol, analysisResults); err != nil {
		zl.Fatal().Err(err).Str("symbol", *symbol).Msg("advice generation failed")
	}
}

func readAnalysis(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
