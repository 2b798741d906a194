package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"menulink/internal/config"
	"menulink/internal/database"
	"menulink/internal/logger"
	"menulink/internal/migrations"
)

func main() {
	reset := flag.Bool("reset", false, "drop and recreate the order tables")
	flag.Parse()

	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()
	log := logger.New(logger.Options{ServiceName: "menulink-init-db", Level: cfg.LogLevel, Format: "console"})
	ctx := context.Background()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Error(ctx).Err(err).Msg("failed to connect to database")
		os.Exit(1)
	}

	if *reset {
		err = migrations.Reset(ctx, db, log)
	} else {
		err = migrations.RunMigrations(ctx, db, log)
	}
	if err != nil {
		log.Error(ctx).Err(err).Msg("migration failed")
		os.Exit(1)
	}

	fmt.Println("Database initialization completed successfully!")
}
