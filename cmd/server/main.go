package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/barenakeddev/intelliplan-sub000/internal/api"
	"github.com/barenakeddev/intelliplan-sub000/internal/config"
	"github.com/barenakeddev/intelliplan-sub000/internal/conversation"
	"github.com/barenakeddev/intelliplan-sub000/internal/handlers"
	"github.com/barenakeddev/intelliplan-sub000/internal/integrations"
	"github.com/barenakeddev/intelliplan-sub000/internal/llm"
	"github.com/barenakeddev/intelliplan-sub000/internal/services"
	"github.com/barenakeddev/intelliplan-sub000/internal/store/postgres"
)

func main() {
	log.Println("Starting IntelliPlan Backend...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	// 2. Initialize Database Connection Pool
	dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer dbCancel()

	dbpool, err := pgxpool.New(dbCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Unable to create database connection pool: %v\n", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(dbCtx); err != nil {
		log.Fatalf("FATAL: Unable to ping database: %v\n", err)
	}
	log.Println("Database connection pool established and pinged successfully.")

	// 3. Initialize Dependencies (Store, Gateway, Services, Handlers)
	pgStore := postgres.NewPostgresStore(dbpool)
	log.Println("Postgres store initialized.")

	gateway := llm.NewOpenAIClient(llm.OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	})
	log.Printf("Completion gateway initialized (model %s).", cfg.OpenAIModel)

	conversations := conversation.NewStore()
	log.Println("Conversation store initialized.")

	// --- Optional RFP Delivery Targets ---
	var delivery *integrations.Registry
	if cfg.SlackBotToken != "" || cfg.NotionAPIKey != "" {
		delivery = integrations.NewRegistry()
		if cfg.SlackBotToken != "" && cfg.SlackChannelID != "" {
			delivery.Register(integrations.NewSlackDeliverer(cfg.SlackBotToken, cfg.SlackChannelID))
			log.Println("Slack delivery target registered.")
		}
		if cfg.NotionAPIKey != "" && cfg.NotionParentPageID != "" {
			delivery.Register(integrations.NewNotionDeliverer(cfg.NotionAPIKey, cfg.NotionParentPageID))
			log.Println("Notion delivery target registered.")
		}
	}

	// --- Initialize Services ---
	authService := services.NewAuthService(pgStore, cfg)
	log.Println("AuthService initialized.")
	eventService := services.NewEventService(pgStore)
	log.Println("EventService initialized.")
	summaryService := services.NewSummaryService(gateway)
	log.Println("SummaryService initialized.")
	extractionService := services.NewExtractionService(gateway, conversations, pgStore)
	log.Println("ExtractionService initialized.")
	recommendationService := services.NewRecommendationService(gateway, conversations)
	log.Println("RecommendationService initialized.")
	documentService := services.NewDocumentService(gateway, conversations, extractionService, pgStore, delivery)
	log.Println("DocumentService initialized.")
	rfpService := services.NewRFPService(gateway, conversations, summaryService, extractionService)
	log.Println("RFPService initialized.")

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	rfpHandlers := handlers.NewRFPHandlers(rfpService, extractionService, recommendationService, documentService, pgStore)
	floorplanHandler := handlers.NewFloorplanHandler()
	eventHandlers := handlers.NewEventHandlers(eventService)
	log.Println("Handlers initialized.")

	// 4. Setup Router & Inject Dependencies
	routerDeps := api.RouterDependencies{
		AuthHandler:      authHandler,
		RFPHandlers:      rfpHandlers,
		FloorplanHandler: floorplanHandler,
		EventHandlers:    eventHandlers,
		Config:           cfg,
	}
	router := api.NewRouter(routerDeps)
	log.Println("HTTP router configured.")

	// 5. Configure and Start HTTP Server
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
		// Production hardening: Set timeouts to avoid Slowloris attacks.
		// WriteTimeout stays above the router's request timeout so slow
		// document generations are cut off by the handler, not the server.
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting and listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Could not listen on %s: %v\n", cfg.HTTPPort, err)
		}
		log.Println("Server listener routine stopped.")
	}()

	<-stopChan
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARN: Server graceful shutdown failed: %v", err)
	}

	log.Println("Server shutdown complete.")
}
