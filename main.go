package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"curriculum-service/internal/config"
	"curriculum-service/internal/db"
	"curriculum-service/internal/event"
	"curriculum-service/internal/handlers"
	"curriculum-service/internal/progress"
	"curriculum-service/internal/repository"
	"curriculum-service/internal/service"
	"curriculum-service/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.Load()
	if cfg.MongoDB.URI == "" {
		log.Fatal("MONGO_URI is required")
	}

	db.InitMongo(cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	database := db.Client.Database(cfg.MongoDB.Database)
	redisClient := db.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	// RabbitMQ event publisher (optional, nil publisher is a no-op)
	var publisher *event.Publisher
	if cfg.RabbitMQ.URI != "" && cfg.RabbitMQ.Exchange != "" {
		var err error
		publisher, err = event.NewPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, events will not be published")
	}

	// Blob storage (optional; media uploads 503 without it)
	var blobs *storage.BlobStore
	if cfg.MinIO.Endpoint != "" {
		var err error
		blobs, err = storage.NewBlobStore(&cfg.MinIO)
		if err != nil {
			log.Fatalf("Failed to initialize blob storage: %v", err)
		}
	} else {
		log.Println("MinIO not configured, media uploads disabled")
	}

	// Repositories and services
	curriculumRepo := repository.NewCurriculumRepository(database)
	progressRepo := repository.NewProgressRepository(database)
	attemptRepo := repository.NewAttemptRepository(redisClient, cfg.Redis.AttemptTTL)

	curriculumService := service.NewCurriculumService(curriculumRepo, publisher)
	progressService := service.NewProgressService(progress.NewTracker(progressRepo), curriculumService, publisher)
	attemptService := service.NewAttemptService(attemptRepo, curriculumService, progressService, publisher)

	curriculumHandler := handlers.NewCurriculumHandler(curriculumService)
	attemptHandler := handlers.NewAttemptHandler(attemptService)
	progressHandler := handlers.NewProgressHandler(progressService)
	mediaHandler := handlers.NewMediaHandler(blobs)

	// Seed curricula from disk when configured
	if cfg.Seed.Dir != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		if err := curriculumService.SeedFromDir(ctx, cfg.Seed.Dir, cfg.Seed.OwnerID); err != nil {
			log.Printf("Curriculum seeding failed: %v", err)
		}
		cancel()
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Public routes - curriculum browsing
	publicCurriculum := r.Group("/public/curricula")
	{
		publicCurriculum.GET("/", curriculumHandler.ListCurricula)
		publicCurriculum.GET("/:id", curriculumHandler.GetCurriculum)
	}

	// Protected routes - require an authenticated user
	protected := r.Group("/protected/curricula")
	protected.Use(requireUser())
	{
		protected.POST("/import", curriculumHandler.ImportCurriculum)
		protected.DELETE("/:id", curriculumHandler.DeleteCurriculum)

		protected.POST("/media", mediaHandler.UploadMedia)

		protected.POST("/attempts", attemptHandler.StartAttempt)
		protected.GET("/attempts/:id", attemptHandler.GetAttempt)
		protected.POST("/attempts/:id/answer", attemptHandler.SubmitAnswer)
		protected.POST("/attempts/:id/advance", attemptHandler.Advance)

		protected.GET("/progress/:moduleId", progressHandler.GetProgress)
		protected.POST("/progress/:moduleId/resource", progressHandler.CompleteResource)
		protected.POST("/progress/:moduleId/assignment", progressHandler.CompleteAssignment)
		protected.POST("/progress/:moduleId/reset", progressHandler.ResetProgress)
	}

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// requireUser rejects requests without the user id header set by the auth
// gateway.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-User-ID") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
