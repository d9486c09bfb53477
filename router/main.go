package router

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/nmdong/VietThanhProductions/handlers"
	auth_handlers "github.com/nmdong/VietThanhProductions/handlers/auth"
	order_handlers "github.com/nmdong/VietThanhProductions/handlers/order"
	product_handlers "github.com/nmdong/VietThanhProductions/handlers/product"
	"github.com/nmdong/VietThanhProductions/services"
	"github.com/nmdong/VietThanhProductions/utils/auth"
	"github.com/nmdong/VietThanhProductions/utils/cache"
	"github.com/nmdong/VietThanhProductions/utils/middleware"
	"gorm.io/gorm"
)

// Dependencies are the shared components routes are built from
type Dependencies struct {
	DB         *gorm.DB
	JWTManager *auth.JWTManager
	// DBPing backs the readiness probe
	DBPing func(ctx context.Context) error
	// Redis is optional
	Redis *cache.RedisCache
}

func SetupRoutes(app *fiber.App, deps Dependencies) error {
	authMiddleware := middleware.NewAuthMiddleware(deps.JWTManager)

	// Health
	checks := map[string]handlers.Pinger{}
	if deps.DBPing != nil {
		checks["database"] = handlers.PingFunc(deps.DBPing)
	}
	if deps.Redis != nil {
		checks["redis"] = deps.Redis
	}
	healthHandler := handlers.NewHealthHandler(checks)
	app.Get("/health", healthHandler.Health)
	app.Get("/health/ready", healthHandler.Ready)

	// Auth
	authHandler := auth_handlers.NewAuthHandler(services.NewUserService(deps.DB), deps.JWTManager)
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authMiddleware.RequiredRefresh(), authHandler.Refresh)
	authGroup.Post("/logout_access", authMiddleware.Required(), authHandler.LogoutAccess)
	authGroup.Post("/logout_refresh", authMiddleware.RequiredRefresh(), authHandler.LogoutRefresh)
	authGroup.Get("/me", authMiddleware.Required(), authHandler.Me)

	// Catalog
	registry, err := CatalogRegistry(deps.DB)
	if err != nil {
		return err
	}
	registry.Mount(app, authMiddleware.Required())

	return nil
}

// CatalogRegistry builds the product and order resources
func CatalogRegistry(db *gorm.DB) (*Registry, error) {
	productHandler := product_handlers.NewProductHandler(services.NewProductService(db))
	orderHandler := order_handlers.NewOrderHandler(services.NewOrderService(db))

	registry := NewRegistry()
	resources := []Resource{
		{
			Name:   "products",
			Prefix: "/products",
			Routes: []Route{
				{Method: fiber.MethodGet, Path: "", Protected: true, Handler: productHandler.ListProducts},
				{Method: fiber.MethodGet, Path: "/:id", Protected: true, Handler: productHandler.GetProduct},
				{Method: fiber.MethodPost, Path: "", Protected: true, Handler: productHandler.CreateProduct},
				{Method: fiber.MethodPut, Path: "/:id", Protected: true, Handler: productHandler.UpdateProduct},
				{Method: fiber.MethodDelete, Path: "/:id", Protected: true, Handler: productHandler.DeleteProduct},
			},
		},
		{
			Name:   "orders",
			Prefix: "/orders",
			Routes: []Route{
				{Method: fiber.MethodGet, Path: "", Handler: orderHandler.ListOrders},
				{Method: fiber.MethodGet, Path: "/:id", Handler: orderHandler.GetOrder},
				{Method: fiber.MethodPost, Path: "", Protected: true, Handler: orderHandler.CreateOrder},
				{Method: fiber.MethodPut, Path: "/:id", Protected: true, Handler: orderHandler.UpdateOrder},
				{Method: fiber.MethodPost, Path: "/:id/items", Protected: true, Handler: orderHandler.AddItem},
				{Method: fiber.MethodDelete, Path: "/:id", Protected: true, Handler: orderHandler.DeleteOrder},
			},
		},
	}
	for _, res := range resources {
		if err := registry.Register(res); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
