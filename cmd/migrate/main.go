package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/nmdong/VietThanhProductions/config"
	"github.com/nmdong/VietThanhProductions/database"
	"github.com/nmdong/VietThanhProductions/utils"
)

func main() {
	seed := flag.Bool("seed", false, "create the admin user from ADMIN_USERNAME and ADMIN_PASSWORD")
	flag.Parse()

	if err := config.LoadENV(); err != nil {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Get()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(utils.NewLogger(cfg.LogLevel))

	store, err := database.StartGORM(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	if *seed {
		seeder := database.NewSeeder(store.GetDB())
		if err := seeder.SeedAdminUser(os.Getenv("ADMIN_USERNAME"), os.Getenv("ADMIN_PASSWORD")); err != nil {
			slog.Error("seeding failed", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("migration completed")
}
