package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nmdong/VietThanhProductions/utils/response"
)

// ServerConfig holds the HTTP server settings
type ServerConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type APIServer struct {
	app           *fiber.App
	listenAddress string
}

func NewAPIServer(listenAddress string, cfg ServerConfig) *APIServer {
	return &APIServer{
		app:           NewApp(cfg),
		listenAddress: listenAddress,
	}
}

// NewApp builds a fiber app whose errors all leave as error envelopes
func NewApp(cfg ServerConfig) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "storefront-api",
		ErrorHandler:          response.ErrorHandler,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           cfg.IdleTimeout,
		DisableStartupMessage: true,
	})
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	slog.Info("starting API server", "address", s.listenAddress)
	return s.app.Listen(s.listenAddress)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *APIServer) Shutdown(ctx context.Context) error {
	slog.Info("shutting down API server")
	return s.app.ShutdownWithContext(ctx)
}
