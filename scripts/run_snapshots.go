// Manually triggered analytics snapshot sweep.
//
// The same sweep runs inside the main application on the configured daily
// schedule. This script exists for one-off runs, for example after a bulk
// data import or to backfill a missed day.
//
// Usage: go run scripts/run_snapshots.go [YYYY-MM-DD]

package main

import (
	"coachpro_backend/internal/config"
	"coachpro_backend/internal/repository"
	"coachpro_backend/internal/service"
	"coachpro_backend/pkg/database"
	"coachpro_backend/pkg/logger"
	"context"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("failed to parse config file: %v", err)
	}

	logger.InitLogger(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	report := service.NewReportService(
		repository.NewAnalyticsRepository(db),
		repository.NewProgressRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewProgramRepository(db),
		nil,
	)

	ctx := context.Background()
	programRepo := repository.NewProgramRepository(db)

	if len(os.Args) > 1 {
		day, err := time.ParseInLocation("2006-01-02", os.Args[1], time.Local)
		if err != nil {
			log.Fatalf("day must be YYYY-MM-DD: %v", err)
		}
		ids, err := programRepo.ListIDs(ctx)
		if err != nil {
			log.Fatalf("failed to list programs: %v", err)
		}
		for _, id := range ids {
			if _, err := report.RecomputeSnapshot(ctx, id, day); err != nil {
				log.Printf("program %d: %v", id, err)
			}
		}
		log.Printf("snapshot backfill for %s finished", os.Args[1])
		return
	}

	log.Println("running snapshot sweep for yesterday...")
	report.RunDailySnapshots(ctx)
	log.Println("done")
}
