package main

import (
	"context"
	"flag"
	"log"

	"github.com/MuseLink-app/muselink-backend/config"
	"github.com/MuseLink-app/muselink-backend/internal/bootstrap"
)

func main() {
	status := flag.Bool("status", false, "print migration status instead of applying")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	dsn := cfg.Database.DSN()

	if *status {
		if err := bootstrap.MigrationStatus(dsn); err != nil {
			log.Fatalf("migration status: %v", err)
		}
		return
	}

	if err := bootstrap.Migrate(context.Background(), dsn); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}
