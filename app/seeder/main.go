// Seeder replaces the local job catalog with the marketplace's current
// active projects. Run it on a schedule or by hand.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/gigfeed/gigfeed/config"
	"github.com/gigfeed/gigfeed/internal/logger"
	"github.com/gigfeed/gigfeed/internal/marketplace"
	"github.com/gigfeed/gigfeed/internal/models"
	pgrepo "github.com/gigfeed/gigfeed/internal/repositories/postgres"
	"github.com/gigfeed/gigfeed/internal/services"
)

func main() {
	_ = godotenv.Load()

	l := logger.New()

	baseURL := os.Getenv("FREELANCER_API_URL")
	apiKey := os.Getenv("FREELANCER_API_KEY")
	if baseURL == "" || apiKey == "" {
		log.Fatal("FREELANCER_API_URL and FREELANCER_API_KEY must be set")
	}

	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.PostgresDB.AutoMigrate(&models.JobPosting{}); err != nil {
		log.Fatalf("PostgreSQL migrate error: %v", err)
	}

	jobs := pgrepo.NewJobRepo(config.PostgresDB)
	market := marketplace.New(baseURL, apiKey)
	svc := services.NewJobService(jobs, nil, market, nil, l)

	count, err := svc.SyncFromMarketplace(context.Background())
	if err != nil {
		log.Fatalf("seeding error: %v", err)
	}
	l.WithField("stored", count).Info("seeding complete")
}
