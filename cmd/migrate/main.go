// Command migrate applies or rolls back the database schema without
// starting the web service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"ms-booking/internal/config"
	"ms-booking/internal/database"
	"ms-booking/internal/database/migrations"
	"ms-booking/internal/logger"
)

func main() {
	down := flag.Bool("down", false, "roll back all migrations instead of applying them")
	skipSeed := flag.Bool("skip-seed", false, "apply schema migrations only, without the genre seed data")
	flag.Parse()

	appLog := logger.NewLogger()
	defer appLog.Close()

	if err := godotenv.Load(); err != nil {
		appLog.Warn("CONFIG", ".env file not found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.Open(cfg.Database, appLog)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if !database.IsPostgres(cfg.Database.URL) {
		if *down {
			appLog.Fatal("DATABASE", "Rollback is only supported for postgres; delete the sqlite file instead")
		}
		if err := migrations.Bootstrap(context.Background(), db); err != nil {
			appLog.Fatal("DATABASE", fmt.Sprintf("Schema bootstrap failed: %v", err))
		}
		appLog.Info("DATABASE", "sqlite schema bootstrapped")
		return
	}

	opts := migrations.DefaultOptions()
	opts.MigrationsDir = cfg.Database.MigrationsDir
	opts.SeedData = !*skipSeed
	runner := migrations.NewRunner(db, opts)
	defer runner.Close()

	if *down {
		if err := runner.MigrateDown(); err != nil {
			appLog.Fatal("DATABASE", fmt.Sprintf("Migration down failed: %v", err))
		}
		appLog.Info("DATABASE", "Migrations rolled back")
		return
	}

	if err := runner.MigrateUp(); err != nil {
		appLog.Fatal("DATABASE", fmt.Sprintf("Migration up failed: %v", err))
	}
	version, dirty, err := runner.Version()
	if err != nil {
		appLog.Fatal("DATABASE", fmt.Sprintf("Failed to read schema version: %v", err))
	}
	appLog.Info("DATABASE", fmt.Sprintf("Schema at version %d (dirty=%v)", version, dirty))
}
