package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/dipeshtilara/NotesHub/internal/config"
	httpserver "github.com/dipeshtilara/NotesHub/internal/http"
	"github.com/dipeshtilara/NotesHub/internal/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer appLog.Sync()

	srv, err := httpserver.NewServer(cfg, appLog)
	if err != nil {
		appLog.Fatal("failed to create server", "error", err)
	}

	if err := srv.Run(); err != nil {
		appLog.Fatal("server stopped with error", "error", err)
	}
}
