package main

import (
	"log"

	"github.com/joho/godotenv"

	"cleansheet/adapters/cleaning"
	"cleansheet/app"
	"cleansheet/internal/config"
	"cleansheet/ui"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	pipelineConfig := cleaning.DefaultConfig()
	pipelineConfig.Workers = cfg.Data.Workers

	service := app.NewAnalysisService(pipelineConfig)
	server := ui.NewServer(cfg.Server, service)

	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
