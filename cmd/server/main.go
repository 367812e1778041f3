package main

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/KrishKoria/Qest/internal/agent"
	"github.com/KrishKoria/Qest/internal/analytics"
	"github.com/KrishKoria/Qest/internal/config"
	"github.com/KrishKoria/Qest/internal/database"
	"github.com/KrishKoria/Qest/internal/handler"
	"github.com/KrishKoria/Qest/internal/integration"
	"github.com/KrishKoria/Qest/internal/query"
	"github.com/KrishKoria/Qest/internal/queue"
	"github.com/KrishKoria/Qest/internal/repository"
	"github.com/KrishKoria/Qest/internal/router"
	"github.com/KrishKoria/Qest/internal/seed"
	"github.com/KrishKoria/Qest/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	clients := repository.NewClientRepo(db)
	orders := repository.NewOrderRepo(db)
	payments := repository.NewPaymentRepo(db)
	courses := repository.NewCourseRepo(db)
	classes := repository.NewClassRepo(db)
	attendance := repository.NewAttendanceRepo(db)

	if cfg.SeedOnStartup {
		seeder := &seed.Seeder{
			Clients:    clients,
			Orders:     orders,
			Payments:   payments,
			Courses:    courses,
			Classes:    classes,
			Attendance: attendance,
		}
		sctx, scancel := context.WithTimeout(context.Background(), 2*time.Minute)
		if err := seeder.Run(sctx); err != nil {
			log.Printf("seed: %v", err)
		}
		scancel()
	}

	// Notification events flow through RabbitMQ; the consumer reconnects on
	// its own and the server runs fine while the broker is down.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	sim := integration.NewSimulator()
	sim.GatewayRate = cfg.GatewayRate
	sim.NotifyRate = cfg.NotifyRate
	sim.Publish = queue.PublishNotification

	agg := &analytics.Aggregator{
		Clients:    clients,
		Orders:     orders,
		Payments:   payments,
		Courses:    courses,
		Classes:    classes,
		Attendance: attendance,
		SampleData: cfg.SampleData,
	}

	exec := &query.Executor{
		Clients:    clients,
		Orders:     orders,
		Payments:   payments,
		Courses:    courses,
		Classes:    classes,
		Attendance: attendance,
		Reports:    agg,
		SampleData: cfg.SampleData,
	}

	svc := &service.Service{
		Clients:  clients,
		Orders:   orders,
		Payments: payments,
		Courses:  courses,
		Classes:  classes,
		Sim:      sim,
		TaxRate:  cfg.TaxRate,
	}

	runtime := &agent.Runtime{Exec: exec, Svc: svc}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, running without cache and rate limiting")
	}
	cacheCfg := config.LoadCacheConfig()
	rateCfg := config.LoadRateLimitConfig()

	validate := validator.New()
	agentH := handler.NewAgentHandler(runtime, validate)
	clientH := handler.NewClientHandler(clients, svc, validate)
	orderH := handler.NewOrderHandler(orders, svc, validate)
	catalogH := handler.NewCatalogHandler(courses, classes)
	analyticsH := handler.NewAnalyticsHandler(agg)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAgent(e, agentH, rateCfg, rdb)
	router.RegisterAPI(e, clientH, orderH, catalogH, analyticsH, cacheCfg, rateCfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
