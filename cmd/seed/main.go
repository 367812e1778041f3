// Command seed fills an empty record store with demo data. It shares the
// seeding logic with SEED_ON_STARTUP and exists for operators who want to
// seed once without flipping the server flag.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/KrishKoria/Qest/internal/config"
	"github.com/KrishKoria/Qest/internal/database"
	"github.com/KrishKoria/Qest/internal/repository"
	"github.com/KrishKoria/Qest/internal/seed"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	seeder := &seed.Seeder{
		Clients:    repository.NewClientRepo(db),
		Orders:     repository.NewOrderRepo(db),
		Payments:   repository.NewPaymentRepo(db),
		Courses:    repository.NewCourseRepo(db),
		Classes:    repository.NewClassRepo(db),
		Attendance: repository.NewAttendanceRepo(db),
	}
	if err := seeder.Run(ctx); err != nil {
		log.Fatalf("seed: %v", err)
	}
}
