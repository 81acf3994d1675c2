// Command migrate creates or updates the database schema and exits.
package main

import (
	"log"

	"nextcut/internal/config"
	"nextcut/internal/storage"
)

func main() {
	if err := config.LoadEnvFile(); err != nil {
		log.Fatal("loading .env: ", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := storage.ConnectDatabase(cfg.DSN(), true)
	if err != nil {
		log.Fatal(err)
	}
	if err := storage.Migrate(db); err != nil {
		log.Fatal(err)
	}
	log.Println("migrations applied")
}
