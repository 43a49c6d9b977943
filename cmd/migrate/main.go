// Package main implements the database migration utility for the sms-messaging service.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/popeskul/sms-messaging/internal/config"
	"github.com/popeskul/sms-messaging/internal/infrastructure/migrate"
	"github.com/popeskul/sms-messaging/internal/logger"
)

const defaultMigrateSteps = 1

func main() {
	var (
		configPath     string
		migrationsPath string
		steps          int
	)

	flag.StringVar(&configPath, "config", "config.yaml", "Path to config file")
	flag.StringVar(&migrationsPath, "path", "", "Path to migrations directory (overrides config)")
	flag.IntVar(&steps, "steps", defaultMigrateSteps, "Number of migrations to apply for up/down")
	flag.Parse()

	_ = godotenv.Load()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Please specify a command: up, down, or version")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = cfg.Database.GetURL()
	}
	if migrationsPath == "" {
		migrationsPath = cfg.Database.MigrationsPath
	}

	runner := migrate.NewRunner(&migrate.Config{
		DatabaseURL:    databaseURL,
		MigrationsPath: migrationsPath,
	}, log)

	switch command := args[0]; command {
	case "up":
		err = runner.Steps(steps)
	case "down":
		err = runner.Steps(-steps)
	case "version":
		var (
			version uint
			dirty   bool
		)
		version, dirty, err = runner.Version()
		if err == nil {
			log.Info("Current schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		}
	default:
		log.Fatal("Unknown command, use up, down or version", zap.String("command", command))
	}

	if err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
}
