package main

import (
	"log"

	"github.com/globalgrad/counsellor/internal/counsel/app"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	worker, err := app.NewWorker(cfg)
	if err != nil {
		log.Fatalf("failed to initialize agent: %v", err)
	}

	if err := worker.Run(); err != nil {
		log.Fatalf("agent error: %v", err)
	}
}
