// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/KrishKoria/Qest/internal/config"
	"github.com/KrishKoria/Qest/internal/handler"
	"github.com/KrishKoria/Qest/internal/middleware"
)

// RegisterRoutes registers the service-level endpoints: the root banner
// and the health check used by load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)
}

// RegisterAgent registers the two agent roles under /api/v1. Both are
// POST endpoints taking a natural-language query; support may trigger
// domain writes, dashboard is read-only.
func RegisterAgent(e *echo.Echo, a *handler.AgentHandler, cfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/api/v1")
	g.Use(middleware.NewTokenBucket(cfg, rdb))
	g.POST("/support", a.Support)
	g.POST("/dashboard", a.Dashboard)
}

// RegisterAPI registers the record-store REST endpoints under /api/v1.
// Reads go through the Redis response cache; writes bypass it because
// the cache middleware only handles configured methods.
func RegisterAPI(
	e *echo.Echo,
	clients *handler.ClientHandler,
	orders *handler.OrderHandler,
	catalog *handler.CatalogHandler,
	analytics *handler.AnalyticsHandler,
	cacheCfg config.CacheConfig,
	rateCfg config.RateLimitConfig,
	rdb *redis.Client,
) {
	g := e.Group("/api/v1")
	g.Use(middleware.NewTokenBucket(rateCfg, rdb))
	g.Use(middleware.NewRedisCache(cacheCfg, rdb))

	g.GET("/clients", clients.ListClients)
	g.GET("/clients/:id", clients.GetClient)
	g.POST("/clients", clients.CreateClient)

	g.GET("/orders", orders.ListOrders)
	g.GET("/orders/:id", orders.GetOrder)
	g.POST("/orders", orders.CreateOrder)
	g.POST("/orders/:id/payments", orders.ProcessPayment)

	g.GET("/courses", catalog.ListCourses)
	g.GET("/classes", catalog.ListClasses)

	g.GET("/analytics/revenue", analytics.Revenue)
	g.GET("/analytics/clients", analytics.Clients)
}
