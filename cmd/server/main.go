package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nlpdform/internal/cache"
	"nlpdform/internal/config"
	"nlpdform/internal/repository"
	"nlpdform/internal/service"
	"nlpdform/internal/transport/rest"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	aiConfig := config.DefaultAIConfig()
	if aiConfig.IsEnabled() {
		log.Printf("AI assistant: %s (configured)", aiConfig.AssistantID)
	} else {
		log.Println("AI assistant: NOT SET (using templated fallback)")
	}

	// Storage: MongoDB when configured, in-memory otherwise
	var submissionRepo repository.SubmissionRepo
	var statusRepo repository.StatusCheckRepo
	var emailRepo repository.EmailOutputRepo

	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal("Failed to connect to MongoDB:", err)
		}
		defer mongoClient.Disconnect(ctx)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := mongoClient.Ping(pingCtx, nil); err != nil {
			log.Fatal("Failed to ping MongoDB:", err)
		}
		log.Println("Connected to MongoDB")

		db := mongoClient.Database(cfg.DBName)
		if err := repository.EnsureIndexes(ctx, db); err != nil {
			log.Fatal("Failed to create indexes:", err)
		}

		submissionRepo = repository.NewSubmissionRepo(db)
		statusRepo = repository.NewStatusCheckRepo(db)
		emailRepo = repository.NewEmailOutputRepo(db)
	} else {
		log.Println("Warning: MONGO_URI not set, using in-memory store (non-durable)")
		submissionRepo = repository.NewMemorySubmissionRepo()
		statusRepo = repository.NewMemoryStatusCheckRepo()
		emailRepo = repository.NewMemoryEmailOutputRepo()
	}

	// Optional Redis cache for analysis results
	var analysisCache cache.AnalysisCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
		defer rdb.Close()

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Fatal("Failed to ping Redis:", err)
		}
		log.Println("Connected to Redis")
		analysisCache = cache.NewAnalysisCache(rdb)
	} else {
		log.Println("REDIS_ADDR not set, analysis cache disabled")
	}

	// Initialize services
	submissionSvc := service.NewSubmissionService(submissionRepo)
	statsSvc := service.NewStatsService(submissionRepo)
	analysisSvc := service.NewAnalysisService(aiConfig, analysisCache)
	statusSvc := service.NewStatusService(statusRepo)
	emailSvc := service.NewEmailService(emailRepo)

	// Create router with container
	container := &rest.Container{
		SubmissionService: submissionSvc,
		StatsService:      statsSvc,
		AnalysisService:   analysisSvc,
		StatusService:     statusSvc,
		EmailService:      emailSvc,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  GET   /api/health")
		log.Println("  POST/GET /api/submissions")
		log.Println("  GET   /api/submissions/{id}")
		log.Println("  PATCH /api/submissions/{id}/status")
		log.Println("  GET   /api/stats")
		log.Println("  POST  /api/analyze")
		log.Println("  POST/GET /api/emails")
		log.Println("  POST/GET /api/status")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
