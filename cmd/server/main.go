package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload"

	"github.com/frencon/backend/internal/config"
	"github.com/frencon/backend/internal/database"
	"github.com/frencon/backend/internal/server"
)

func main() {
	cfg := config.Load()

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	srv := server.New(cfg, db)

	log.Printf("server starting on port %s", cfg.ServerPort)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
