package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/gigfeed/gigfeed/config"
	"github.com/gigfeed/gigfeed/internal/api/handlers"
	"github.com/gigfeed/gigfeed/internal/api/middleware"
	"github.com/gigfeed/gigfeed/internal/api/routes"
	"github.com/gigfeed/gigfeed/internal/cache"
	"github.com/gigfeed/gigfeed/internal/extract"
	"github.com/gigfeed/gigfeed/internal/logger"
	"github.com/gigfeed/gigfeed/internal/marketplace"
	"github.com/gigfeed/gigfeed/internal/models"
	"github.com/gigfeed/gigfeed/internal/providers/llm"
	mongorepo "github.com/gigfeed/gigfeed/internal/repositories/mongo"
	pgrepo "github.com/gigfeed/gigfeed/internal/repositories/postgres"
	"github.com/gigfeed/gigfeed/internal/services"
	"github.com/gigfeed/gigfeed/internal/storage"
)

func main() {
	_ = godotenv.Load()

	l := logger.New()
	ctx := context.Background()

	// Init MongoDB
	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}
	l.Info("MongoDB connected")

	// Init PostgreSQL
	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.PostgresDB.AutoMigrate(&models.JobPosting{}); err != nil {
		log.Fatalf("PostgreSQL migrate error: %v", err)
	}
	l.Info("PostgreSQL connected")

	// Init Redis
	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	l.Info("Redis connected")

	// Object store
	bucket := os.Getenv("GCS_BUCKET")
	if bucket == "" {
		log.Fatal("GCS_BUCKET environment variable is not set")
	}
	store, err := storage.NewGCSStore(ctx, bucket)
	if err != nil {
		log.Fatalf("GCS init error: %v", err)
	}
	defer store.Close()

	// Generative model: credential is resolved per call, not at startup
	provider := llm.EnvGemini{Model: os.Getenv("GEMINI_MODEL")}

	mongoDB := config.MongoDatabase()
	userDocs := mongorepo.NewUserDocRepo(mongoDB)
	drafts := mongorepo.NewDraftRepo(mongoDB)
	jobs := pgrepo.NewJobRepo(config.PostgresDB)
	jobCache := cache.NewRedisCache(config.RedisClient)

	var market *marketplace.Client
	if base := os.Getenv("FREELANCER_API_URL"); base != "" {
		market = marketplace.New(base, os.Getenv("FREELANCER_API_KEY"))
	}

	resumeSvc := services.NewResumeService(store, extract.PDFExtractor{}, provider, userDocs, l)
	draftSvc := services.NewDraftService(userDocs, drafts, provider, l)
	profileSvc := services.NewProfileService(userDocs)
	jobSvc := services.NewJobService(jobs, userDocs, market, jobCache, l)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		Resume:  handlers.NewResumeHandler(resumeSvc, store, l),
		Draft:   handlers.NewDraftHandler(draftSvc, l),
		Profile: handlers.NewProfileHandler(profileSvc),
		Job:     handlers.NewJobHandler(jobSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
