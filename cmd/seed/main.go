// Package main provides a CLI tool for seeding the store with demo data.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"lumbertrace/internal/app"
	"lumbertrace/internal/config"
	"lumbertrace/internal/infrastructure/fixtures"
	"lumbertrace/pkg/logger"
)

func main() {
	configPath := flag.String("config", os.Getenv("LUMBERTRACE_CONFIG"), "path to config file")
	reset := flag.Bool("reset", false, "wipe all data before seeding")
	file := flag.String("file", "", "fixture YAML to load instead of the built-in demo set")
	flag.Parse()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(context.Background(), log, *configPath, *file, *reset); err != nil {
		log.Fatalw("seeding failed", "error", err)
	}
	log.Info("seeding completed successfully")
}

func run(ctx context.Context, log *logger.Logger, configPath, file string, reset bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	set, err := loadSet(file)
	if err != nil {
		return err
	}

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer application.Close()

	ctx = logger.WithLogger(ctx, log)

	if reset {
		if err := application.Backend.Wipe(ctx); err != nil {
			return fmt.Errorf("wipe: %w", err)
		}
		log.Warn("all data wiped")
	} else {
		empty, err := application.Backend.IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			log.Info("store already has data, existing records with fixture ids are overwritten")
		}
	}

	return fixtures.Seed(ctx, set, application.Materials, application.Suppliers)
}

func loadSet(file string) (*fixtures.Set, error) {
	if file == "" {
		return fixtures.Demo()
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return fixtures.Parse(data)
}
