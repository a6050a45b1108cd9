package main

import (
	"log"

	"edugpt/backend/config"
	"edugpt/backend/routes"
	"edugpt/backend/store"
	"edugpt/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := store.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Build app and start server
	app := routes.NewApp(db, cfg, logger)
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
