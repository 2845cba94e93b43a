package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"quiz-session-service/internal/config"
	"quiz-session-service/internal/db"
	"quiz-session-service/internal/event"
	"quiz-session-service/internal/handlers"
	"quiz-session-service/internal/jobs"
	"quiz-session-service/internal/repository"
	"quiz-session-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.Load()
	if cfg.MongoDB.URI == "" {
		log.Fatal("MONGO_URI is required")
	}

	client, err := db.Connect(context.Background(), cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Disconnect(ctx, client)
	}()
	database := client.Database(cfg.MongoDB.Database)

	// RabbitMQ event publisher
	var publisher *event.EventPublisher
	if cfg.RabbitMQ.URI != "" && cfg.RabbitMQ.Exchange != "" {
		publisher, err = event.NewEventPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, session events will not be published")
	}

	// Repositories
	questionRepo := repository.NewQuestionRepository(database)
	paperRepo := repository.NewPaperRepository(database)
	sessionRepo := repository.NewSessionRepository(database)
	bank := repository.NewBank(questionRepo, paperRepo)

	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := sessionRepo.CreateIndexes(ctx); err != nil {
			log.Printf("Failed to create session indexes: %v", err)
		}
		cancel()
	}

	// Services and handlers
	var events event.Publisher
	if publisher != nil {
		events = publisher
	}
	sessionService := service.NewSessionService(sessionRepo, bank, events, cfg.Session)
	contentService := service.NewContentService(questionRepo, paperRepo)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	questionHandler := handlers.NewQuestionHandler(contentService)

	// Daily rollover job
	rollover := jobs.NewDailyRollover(sessionRepo)
	if err := rollover.Start(); err != nil {
		log.Fatalf("Failed to start daily rollover job: %v", err)
	}
	defer rollover.Stop()

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "X-User-ID", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	session := r.Group("/quizz/session")
	{
		session.POST("", sessionHandler.Start)
		session.GET("/active", sessionHandler.GetActive)
		session.GET("/:id", sessionHandler.Get)
		session.POST("/:id/answer", sessionHandler.Submit)
		session.GET("/:id/report", sessionHandler.Report)
		session.GET("/:id/missed", sessionHandler.Missed)
	}

	r.GET("/quizz/topics", sessionHandler.Topics)
	r.GET("/quizz/years", sessionHandler.Years)

	question := r.Group("/quizz/question")
	{
		question.POST("", questionHandler.Create)
		question.POST("/bulk", questionHandler.CreateBulk)
		question.GET("/:id", questionHandler.Get)
	}
	r.POST("/quizz/paper", questionHandler.CreatePaper)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	log.Printf("Quiz session service listening on :%s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
