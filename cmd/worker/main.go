package main

import (
	"flag"
	"log"
	"time"

	"labelr/internal/engine/history"
	"labelr/internal/pkg/logger"
	"labelr/internal/platform/config"
	"labelr/internal/platform/database"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Logging)

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	recorder := history.NewRecorder(db)

	log.Println("Starting Labelr background workers...")

	go runHistoryPruner(recorder, cfg.History)

	// Keep process alive
	select {}
}

func runHistoryPruner(recorder *history.Recorder, cfg config.HistoryConfig) {
	interval := cfg.PruneInterval
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		pruned, err := recorder.Prune(cfg.Retention)
		if err != nil {
			log.Printf("Error pruning render history: %v", err)
			continue
		}
		if pruned > 0 {
			log.Printf("Pruned %d render history entries older than %v", pruned, cfg.Retention)
		}
	}
}
