package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nmdong/VietThanhProductions/api"
	"github.com/nmdong/VietThanhProductions/config"
	"github.com/nmdong/VietThanhProductions/database"
	"github.com/nmdong/VietThanhProductions/router"
	"github.com/nmdong/VietThanhProductions/services/cron"
	"github.com/nmdong/VietThanhProductions/utils"
	"github.com/nmdong/VietThanhProductions/utils/auth"
	"github.com/nmdong/VietThanhProductions/utils/cache"
	"github.com/nmdong/VietThanhProductions/utils/middleware"
)

const shutdownTimeout = 10 * time.Second

func SetupAndRunServer() error {
	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	cfg, err := config.Get()
	if err != nil {
		return err
	}

	slog.SetDefault(utils.NewLogger(cfg.LogLevel))

	// Initialize GORM database connection
	store, err := database.StartGORM(cfg)
	if err != nil {
		slog.Error("database connection failed", "driver", cfg.DB.Driver, "error", err)
		return err
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Redis is optional unless it backs the denylist
	var redisCache *cache.RedisCache
	if cfg.Redis.URL != "" {
		redisCache, err = cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			if cfg.Redis.DenylistBackend == "redis" {
				return fmt.Errorf("connect redis: %w", err)
			}
			slog.Warn("redis unavailable, continuing without it", "error", err)
			redisCache = nil
		} else {
			defer redisCache.Close()
		}
	}

	denylist := newDenylist(cfg, store, redisCache)

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret:        cfg.JWT.Secret,
		Expiry:        cfg.JWT.AccessTTL,
		RefreshExpiry: cfg.JWT.RefreshTTL,
		Issuer:        cfg.JWT.Issuer,
	}, denylist)

	// Initialize Cron Manager (only if enabled)
	if cfg.Cron.Enabled {
		cronManager := cron.NewCronManager(store.GetDB(), denylist, cfg.Cron.PruneSchedule)
		if err := cronManager.Start(); err != nil {
			// Don't fail the app, pruning is housekeeping only
			slog.Warn("failed to start cron jobs", "error", err)
		} else {
			defer cronManager.Stop()
		}
	}

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", cfg.Port), api.ServerConfig{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	})
	app := server.GetEngine()

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	deps := router.Dependencies{
		DB:         store.GetDB(),
		JWTManager: jwtManager,
		DBPing:     store.HealthCheck,
		Redis:      redisCache,
	}
	if err := router.SetupRoutes(app, deps); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Run()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func newDenylist(cfg *config.Config, store *database.GORMStore, redisCache *cache.RedisCache) auth.Denylist {
	if cfg.Redis.DenylistBackend == "redis" && redisCache != nil {
		slog.Info("token denylist backed by redis")
		return auth.NewRedisDenylist(redisCache)
	}
	slog.Info("token denylist backed by database")
	return auth.NewBlacklistService(store.GetDB())
}
