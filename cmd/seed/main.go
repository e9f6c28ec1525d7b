package main

import (
	"context"
	"os"

	"usersapi/config"
	"usersapi/internal/db"
	"usersapi/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		logging.New(os.Stderr, "error").Error(ctx, "config load failed", "error", err)
		os.Exit(1)
	}
	log := logging.New(os.Stdout, cfg.LogLevel)

	gormDB, err := db.NewDB(cfg.DSN)
	if err != nil {
		log.Error(ctx, "db connect failed", "error", err)
		os.Exit(1)
	}
	defer db.Close(gormDB)

	mail := os.Getenv("SEED_MAIL")
	created, err := db.SeedUser(ctx, gormDB, os.Getenv("SEED_NAME"), mail, os.Getenv("SEED_PASSWORD"), cfg.BcryptCost)
	if err != nil {
		log.Error(ctx, "seed user failed", "error", err)
		os.Exit(1)
	}
	if created {
		log.Info(ctx, "user seeded", "mail", mail)
	} else {
		log.Info(ctx, "user already exists", "mail", mail)
	}
}
