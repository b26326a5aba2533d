package main

import (
	"context"
	"log"
	"time"

	"lexai-backend/config"
	"lexai-backend/handlers"
	"lexai-backend/llm"
	"lexai-backend/mail"
	"lexai-backend/middleware"
	"lexai-backend/pkg/logger"
	"lexai-backend/repository"
	"lexai-backend/service"
	"lexai-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	logger.Init(&logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := initPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to initialize Postgres: ", err)
	}
	defer db.Close()

	fileStorage, err := storage.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	log.Println("Storage initialized")

	geminiClient, err := initGemini(cfg.GeminiAPIKey)
	if err != nil {
		log.Fatal("Failed to initialize Gemini: ", err)
	}
	defer geminiClient.Close()

	groqClient := llm.NewGroqClient(cfg.GroqAPIKey)
	visionClient := llm.NewVisionClient(geminiClient)
	mailer := mail.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	clauseRepo := repository.NewClauseRepository(db)
	savedClauseRepo := repository.NewSavedClauseRepository(db)
	chatRepo := repository.NewChatRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	benchmarkRepo := repository.NewBenchmarkRepository(db)
	contractFileRepo := repository.NewContractFileRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, mailer, activityRepo)
	ingestService := service.NewIngestService(visionClient)
	analysisService := service.NewAnalysisService(groqClient, documentRepo, clauseRepo, activityRepo)
	archiveService := service.NewArchiveService(fileStorage, contractFileRepo)
	chatService := service.NewChatService(groqClient, chatRepo, activityRepo)
	assistService := service.NewAssistService(groqClient, benchmarkRepo, activityRepo)
	negotiationService := service.NewNegotiationService(groqClient, activityRepo)
	disputeService := service.NewDisputeService(groqClient, activityRepo)
	savedClauseService := service.NewSavedClauseService(savedClauseRepo, activityRepo)
	statsService := service.NewStatsService(documentRepo, clauseRepo, savedClauseRepo, chatRepo, activityRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecret)
	documentHandler := handlers.NewDocumentHandler(ingestService, analysisService, archiveService)
	chatHandler := handlers.NewChatHandler(chatService)
	assistHandler := handlers.NewAssistHandler(assistService)
	negotiationHandler := handlers.NewNegotiationHandler(negotiationService)
	disputeHandler := handlers.NewDisputeHandler(disputeService)
	savedClauseHandler := handlers.NewSavedClauseHandler(savedClauseService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Setup Gin router
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Recovery())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	api := r.Group("/api")
	{
		// Public auth endpoints, rate limited against brute force
		auth := api.Group("/auth", middleware.RateLimit(10, time.Minute))
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/verify-otp", authHandler.VerifyOTP)
			auth.POST("/login", authHandler.Login)
		}

		authed := api.Group("", middleware.Auth(cfg.JWTSecret))
		{
			authed.GET("/auth/me", authHandler.Me)
			authed.POST("/auth/logout", authHandler.Logout)

			authed.POST("/parse-document", documentHandler.ParseDocument)
			authed.GET("/documents", documentHandler.ListDocuments)
			authed.GET("/documents/:id", documentHandler.GetDocument)
			authed.GET("/documents/:id/file", documentHandler.DownloadFile)
			authed.DELETE("/documents/:id", documentHandler.DeleteDocument)

			authed.GET("/chat", chatHandler.ListChats)
			authed.GET("/chat/:id", chatHandler.GetChat)
			authed.DELETE("/chat/:id", chatHandler.DeleteChat)

			authed.POST("/saved-clauses", savedClauseHandler.Save)
			authed.GET("/saved-clauses", savedClauseHandler.List)
			authed.PATCH("/saved-clauses/:id", savedClauseHandler.UpdateNotes)
			authed.DELETE("/saved-clauses/:id", savedClauseHandler.Delete)

			authed.POST("/generate-docx", disputeHandler.GenerateDocx)

			authed.GET("/stats", statsHandler.Overview)

			// Endpoints that spend model tokens get a tighter limit
			ai := authed.Group("", middleware.RateLimit(30, time.Minute))
			{
				ai.POST("/analyze-clauses", documentHandler.AnalyzeClauses)
				ai.POST("/chat", chatHandler.SendMessage)
				ai.POST("/quick-ask", chatHandler.QuickAsk)
				ai.POST("/compare-contracts", assistHandler.Compare)
				ai.POST("/counter-clause", assistHandler.CounterClause)
				ai.POST("/benchmark-clause", assistHandler.Benchmark)
				ai.POST("/negotiation-chat", negotiationHandler.Negotiate)
				ai.POST("/dispute-letter", disputeHandler.GenerateNotice)
			}
		}
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func initPostgres(connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	log.Println("Postgres connection established")
	return pool, nil
}

func initGemini(apiKey string) (*genai.Client, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	log.Println("Gemini client initialized")
	return client, nil
}
