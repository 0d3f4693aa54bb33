package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/smithrashell/CodeMaster-sub007/internal/cache"
	"github.com/smithrashell/CodeMaster-sub007/internal/db"
	"github.com/smithrashell/CodeMaster-sub007/internal/event"
	"github.com/smithrashell/CodeMaster-sub007/internal/handlers"
	"github.com/smithrashell/CodeMaster-sub007/internal/repository"
	"github.com/smithrashell/CodeMaster-sub007/internal/service"
	"github.com/smithrashell/CodeMaster-sub007/pkg/discovery"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	db.InitMongo(mongoURI)
	defer db.Disconnect()

	// RabbitMQ event publisher
	rabbitURL := os.Getenv("RABBITMQ_URI")
	eventExchange := os.Getenv("RABBITMQ_EXCHANGE")
	var publisher *event.EventPublisher
	if rabbitURL != "" && eventExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(rabbitURL, eventExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, practice events will not be published")
	}

	// Redis relationship snapshot cache
	var snapshots *cache.SnapshotCache
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisDB := 0
		if raw := os.Getenv("REDIS_DB"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil {
				redisDB = parsed
			}
		}
		snapshots = cache.NewSnapshotCache(redisAddr, os.Getenv("REDIS_PASSWORD"), redisDB)
		defer snapshots.Close()
	} else {
		log.Println("Redis not configured, relationship snapshots read straight from Mongo")
	}

	// Consul service registration
	if consulAddr := os.Getenv("CONSUL_ADDRESS"); consulAddr != "" {
		registry, err := discovery.NewServiceRegistry(discovery.ServiceInfo{
			Name:          "practice-scheduler-service",
			Address:       os.Getenv("SERVICE_ADDRESS"),
			Port:          6677,
			ConsulAddress: consulAddr,
		})
		if err != nil {
			log.Printf("Consul unavailable, running unregistered: %v", err)
		} else if err := registry.Register(); err != nil {
			log.Printf("Consul registration failed, running unregistered: %v", err)
		} else {
			defer registry.Deregister()
		}
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://codemaster.smithrashell.dev"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	mongoClient := db.Client
	database := mongoClient.Database("practice_scheduler")

	// Repositories
	problemRepo := repository.NewProblemRepository(database)
	attemptRepo := repository.NewAttemptRepository(database)
	relationshipRepo := repository.NewRelationshipRepository(database)
	tagGraphRepo := repository.NewTagRelationshipRepository(database)
	sessionStateRepo := repository.NewSessionStateRepository(database)
	analyticsRepo := repository.NewSessionAnalyticsRepository(database)
	reviewRepo := repository.NewReviewRepository(database)

	// Services
	practiceService := service.NewPracticeService(
		problemRepo,
		attemptRepo,
		relationshipRepo,
		tagGraphRepo,
		sessionStateRepo,
		analyticsRepo,
		reviewRepo,
		snapshots,
	)
	masteryService := service.NewMasteryService(problemRepo, attemptRepo, tagGraphRepo)

	// Handlers
	practiceHandler := handlers.NewPracticeHandler(practiceService, masteryService)
	problemHandler := handlers.NewProblemHandler(problemRepo, tagGraphRepo)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes - catalog reads
	publicProblem := r.Group("/public/practice/problem")
	{
		publicProblem.GET("/", problemHandler.ListProblems)
		publicProblem.GET("/:id", problemHandler.GetProblem)
		publicProblem.GET("/:id/related", practiceHandler.GetRelatedProblems)
	}
	publicTag := r.Group("/public/practice/tag")
	{
		publicTag.GET("/", problemHandler.ListTags)
	}

	setupPracticeRoutes(r, practiceHandler, problemHandler, publisher)

	r.Run(":6677")
}

func setupPracticeRoutes(r *gin.Engine, practiceHandler *handlers.PracticeHandler, problemHandler *handlers.ProblemHandler, publisher *event.EventPublisher) {
	protected := r.Group("/protected/practice")

	protected.Use(func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Next()
	})

	{
		// Catalog writes
		protected.POST("/problem", problemHandler.CreateProblem)

		// Batch graph rebuild
		protected.POST("/graph/rebuild", func(c *gin.Context) {
			practiceHandler.RebuildGraph(c)
			if publisher != nil && c.Writer.Status() < http.StatusBadRequest {
				publisher.Publish(event.TypeGraphRebuilt, gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"timestamp": time.Now(),
				})
			}
		})

		// Attempt recording feeds the pattern learner
		protected.POST("/attempt", func(c *gin.Context) {
			practiceHandler.RecordAttempt(c)
			if publisher != nil && c.Writer.Status() < http.StatusBadRequest {
				publisher.Publish(event.TypeAttemptRecorded, gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"timestamp": time.Now(),
				})
			}
		})

		// Session composition
		protected.POST("/session/compose", func(c *gin.Context) {
			practiceHandler.ComposeSession(c)
			if publisher != nil && c.Writer.Status() < http.StatusBadRequest {
				publisher.Publish(event.TypeSessionComposed, gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"timestamp": time.Now(),
				})
			}
		})

		// Session completion and difficulty progression
		protected.POST("/session/complete", func(c *gin.Context) {
			practiceHandler.CompleteSession(c)
			if publisher != nil && c.Writer.Status() < http.StatusBadRequest {
				publisher.Publish(event.TypeDifficultyChanged, gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"timestamp": time.Now(),
				})
			}
		})
		protected.POST("/progression/evaluate", practiceHandler.EvaluateProgression)
		protected.GET("/progression", practiceHandler.GetProgressionState)

		// Spaced repetition
		protected.GET("/review/schedule", func(c *gin.Context) {
			practiceHandler.GetReviewSchedule(c)
			if publisher != nil && c.Writer.Status() < http.StatusBadRequest {
				publisher.Publish(event.TypeReviewScheduled, gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"timestamp": time.Now(),
				})
			}
		})

		// Mastery summary
		protected.GET("/mastery", practiceHandler.GetMastery)
	}
}
