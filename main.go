package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"progress-service/internal/cache"
	"progress-service/internal/config"
	"progress-service/internal/db"
	"progress-service/internal/event"
	"progress-service/internal/handlers"
	"progress-service/internal/repository"
	"progress-service/internal/service"
	"progress-service/internal/stt"
	"progress-service/pkg/discovery"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	gin.SetMode(cfg.GinMode)

	db.InitMongo(cfg.MongoURI)
	database := db.Client.Database(cfg.MongoDatabase)

	// RabbitMQ event publisher
	var publisher *event.EventPublisher
	if cfg.RabbitMQURI != "" && cfg.RabbitMQExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(cfg.RabbitMQURI, cfg.RabbitMQExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, progress events will not be published")
	}

	// Consul service registration
	if cfg.ConsulAddress != "" {
		registry, err := discovery.InitServiceDiscovery(cfg)
		if err != nil {
			log.Fatalf("Failed to register with Consul: %v", err)
		}
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-quit
			if err := registry.Deregister(); err != nil {
				log.Printf("Failed to deregister service: %v", err)
			}
			os.Exit(0)
		}()
	} else {
		log.Println("Consul not configured, running unregistered")
	}

	statsCache := cache.NewStatsCache(cfg.RedisAddr, cfg.RedisPassword)

	// Repositories
	progressRepo := repository.NewProgressRepository(database)
	badgeRepo := repository.NewBadgeRepository(database)
	lessonRepo := repository.NewLessonRepository(database)
	learnerRepo := repository.NewLearnerRepository(database)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := progressRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create progress indexes: %v", err)
	}
	if err := badgeRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create badge indexes: %v", err)
	}
	cancel()

	// Services
	progressService := service.NewProgressService(progressRepo, badgeRepo, lessonRepo, learnerRepo, statsCache)
	sttClient := stt.NewClient(cfg.STTBaseURL, time.Duration(cfg.STTTimeoutSec)*time.Second)
	evaluationService := service.NewEvaluationService(learnerRepo, sttClient)

	// Handlers
	progressHandler := handlers.NewProgressHandler(progressService, evaluationService)
	evaluationHandler := handlers.NewEvaluationHandler(evaluationService, progressService)
	achievementHandler := handlers.NewAchievementHandler(progressService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://evolvia.phrimp.io.vn"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": cfg.ServiceName})
	})

	// Public routes - progress lookups
	publicProgress := r.Group("/public/progress/user")
	{
		publicProgress.GET("/:id", progressHandler.GetProgressByLearner)
		publicProgress.GET("/:id/stats", progressHandler.GetStats)
	}

	// Public routes - achievements
	publicAchievements := r.Group("/public/achievements")
	{
		publicAchievements.GET("/", achievementHandler.ListDefinitions)
		publicAchievements.GET("/user/:id", achievementHandler.GetBadgesByLearner)
	}

	// Protected routes - lesson lifecycle
	protectedProgress := r.Group("/protected/progress")
	protectedProgress.Use(requireUserID())
	{
		protectedProgress.POST("/:lessonId/start", func(c *gin.Context) {
			progressHandler.StartLesson(c)
			if publisher != nil && c.Writer.Status() < http.StatusBadRequest {
				publisher.Publish(event.LessonStarted, gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"lesson_id": c.Param("lessonId"),
				})
			}
		})
		protectedProgress.POST("/:lessonId/complete", func(c *gin.Context) {
			progressHandler.CompleteLesson(c)
			if publisher != nil && c.Writer.Status() < http.StatusBadRequest {
				publisher.Publish(event.LessonCompleted, gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"lesson_id": c.Param("lessonId"),
				})
				if badges, ok := c.Get("new_achievements"); ok {
					publisher.Publish(event.AchievementUnlocked, gin.H{
						"user_id": c.GetHeader("X-User-ID"),
						"badges":  badges,
					})
				}
			}
		})
		protectedProgress.POST("/:lessonId/reset", func(c *gin.Context) {
			progressHandler.ResetLesson(c)
			if publisher != nil && c.Writer.Status() < http.StatusBadRequest {
				publisher.Publish(event.LessonReset, gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"lesson_id": c.Param("lessonId"),
				})
			}
		})
	}

	// Protected routes - evaluation
	protectedEvaluation := r.Group("/protected/evaluation")
	protectedEvaluation.Use(requireUserID())
	{
		protectedEvaluation.POST("/answer", func(c *gin.Context) {
			evaluationHandler.EvaluateAnswer(c)
			if publisher != nil && c.Writer.Status() < http.StatusBadRequest {
				publisher.Publish(event.AnswerEvaluated, gin.H{
					"user_id": c.GetHeader("X-User-ID"),
				})
			}
		})
		protectedEvaluation.POST("/pronunciation", func(c *gin.Context) {
			evaluationHandler.EvaluatePronunciation(c)
			if publisher != nil && c.Writer.Status() < http.StatusBadRequest {
				publisher.Publish(event.PronunciationEvaluated, gin.H{
					"user_id": c.GetHeader("X-User-ID"),
				})
				if badges, ok := c.Get("new_achievements"); ok {
					publisher.Publish(event.AchievementUnlocked, gin.H{
						"user_id": c.GetHeader("X-User-ID"),
						"badges":  badges,
					})
				}
			}
		})
	}

	r.Run(":" + cfg.Port)
}

func requireUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
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
	}
}
