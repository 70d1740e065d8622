package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/drewham94/AMai-Code/internal/auth"
	"github.com/drewham94/AMai-Code/internal/config"
	"github.com/drewham94/AMai-Code/internal/database"
	"github.com/drewham94/AMai-Code/internal/gateway"
	"github.com/drewham94/AMai-Code/internal/handlers"
	"github.com/drewham94/AMai-Code/internal/repository"
	"github.com/drewham94/AMai-Code/internal/security"
	"github.com/drewham94/AMai-Code/internal/service"
)

func main() {
	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	passageRepo := repository.NewPassageRepository(db)
	slangRepo := repository.NewSlangRepository(db)
	flashcardRepo := repository.NewFlashcardRepository(db)
	focusRepo := repository.NewFocusRepository(db)

	// Initialize the Gemini gateway
	ctx := context.Background()
	gw, err := gateway.NewGemini(ctx, gateway.GeminiConfig{
		APIKey:      cfg.GeminiAPIKey,
		TextModel:   cfg.TextModel,
		SpeechModel: cfg.SpeechModel,
	})
	if err != nil {
		log.Fatalf("Failed to initialize Gemini gateway: %v", err)
	}

	// Initialize services
	profileService := service.NewProfileService(profileRepo)
	studyService := service.NewStudyService(flashcardRepo, gw)
	focusService := service.NewFocusService(focusRepo)
	orchestrator := service.NewOrchestrator(gw, profileRepo, sessionRepo, passageRepo, slangRepo, flashcardRepo, studyService)

	// Initialize handlers
	tokens := auth.NewTokenManager(cfg.SessionSecret, cfg.SessionDuration)
	middleware := handlers.NewMiddleware(tokens)
	loginLimiter := security.NewRateLimiter(10, time.Minute)
	authHandler := handlers.NewAuthHandler(tokens, profileService)
	profileHandler := handlers.NewProfileHandler(profileService, orchestrator)
	collectionsHandler := handlers.NewCollectionsHandler(sessionRepo, passageRepo, slangRepo, flashcardRepo, focusService)
	practiceHandler := handlers.NewPracticeHandler(orchestrator, cfg.MaxUploadSize)
	studyHandler := handlers.NewStudyHandler(studyService, profileService, sessionRepo, focusService)

	// Setup routes
	mux := http.NewServeMux()

	// Auth routes
	mux.HandleFunc("POST /api/login", handlers.RateLimit(loginLimiter, authHandler.Login))
	mux.HandleFunc("POST /api/logout", middleware.RequireSession(authHandler.Logout))
	mux.HandleFunc("GET /api/me", authHandler.Me)

	// Reference data
	mux.HandleFunc("GET /api/catalog", handlers.Catalog)

	// Profile routes
	mux.HandleFunc("GET /api/profile", middleware.RequireSession(profileHandler.Get))
	mux.HandleFunc("POST /api/profile", middleware.RequireSession(profileHandler.Save))

	// Collection routes
	mux.HandleFunc("GET /api/sessions", middleware.RequireSession(collectionsHandler.ListSessions))
	mux.HandleFunc("POST /api/sessions", middleware.RequireSession(collectionsHandler.CreateSession))
	mux.HandleFunc("GET /api/passages", middleware.RequireSession(collectionsHandler.ListPassages))
	mux.HandleFunc("POST /api/passages", middleware.RequireSession(collectionsHandler.CreatePassage))
	mux.HandleFunc("GET /api/slang", middleware.RequireSession(collectionsHandler.ListSlang))
	mux.HandleFunc("POST /api/slang", middleware.RequireSession(collectionsHandler.CreateSlang))
	mux.HandleFunc("GET /api/flashcards", middleware.RequireSession(collectionsHandler.ListFlashcards))
	mux.HandleFunc("POST /api/flashcards", middleware.RequireSession(collectionsHandler.ReplaceFlashcards))
	mux.HandleFunc("GET /api/focus-sessions", middleware.RequireSession(collectionsHandler.ListFocusSessions))
	mux.HandleFunc("POST /api/focus-sessions", middleware.RequireSession(collectionsHandler.CreateFocusSession))
	mux.HandleFunc("POST /api/focus/start", middleware.RequireSession(collectionsHandler.StartFocusTimer))
	mux.HandleFunc("POST /api/focus/cancel", middleware.RequireSession(collectionsHandler.CancelFocusTimer))
	mux.HandleFunc("GET /api/focus/remaining", middleware.RequireSession(collectionsHandler.FocusTimerRemaining))

	// Practice routes
	mux.HandleFunc("POST /api/practice/start", middleware.RequireSession(practiceHandler.Start))
	mux.HandleFunc("POST /api/practice/submit", middleware.RequireSession(practiceHandler.Submit))
	mux.HandleFunc("POST /api/practice/speech", middleware.RequireSession(practiceHandler.Speak))

	// Study routes
	mux.HandleFunc("POST /api/study/start", middleware.RequireSession(studyHandler.StartRun))
	mux.HandleFunc("POST /api/study/answer", middleware.RequireSession(studyHandler.Answer))
	mux.HandleFunc("POST /api/flashcards/{id}/translate", middleware.RequireSession(studyHandler.Translate))
	mux.HandleFunc("GET /api/progress", middleware.RequireSession(studyHandler.Progress))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}
