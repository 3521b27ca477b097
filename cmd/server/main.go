package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindcare/internal/config"
	"mindcare/internal/database"
	"mindcare/internal/handlers"
	"mindcare/internal/repository"
	"mindcare/internal/retry"
	"mindcare/internal/security"
	"mindcare/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql). Startup is
	// bounded; a hung database fails loudly instead of blocking forever.
	db, err := initializeDatabase(cfg, 15*time.Second)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	moodRepo := repository.NewMoodRepository(db)
	goalRepo := repository.NewGoalRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.SessionDuration, cfg.TokenSecret)
	affirmationService := service.NewAffirmationService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	journalService := service.NewJournalService(moodRepo, affirmationService, retry.DefaultConfig())
	goalService := service.NewGoalService(goalRepo, moodRepo)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	digestService := service.NewDigestService(userRepo, journalService, emailService)

	// Initialize handlers
	limiter := security.NewRateLimiter(20, time.Minute)
	middleware := handlers.NewMiddleware(authService, limiter)
	authHandler := handlers.NewAuthHandler(authService)
	oauthHandler := handlers.NewOAuthHandler(authService, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthRedirectBase)
	moodHandler := handlers.NewMoodHandler(journalService)
	goalHandler := handlers.NewGoalHandler(goalService)
	profileHandler := handlers.NewProfileHandler(authService)
	affirmationHandler := handlers.NewAffirmationHandler(affirmationService)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /auth/google/start", oauthHandler.Start)
	mux.HandleFunc("GET /auth/google/callback", oauthHandler.Callback)

	// Affirmation proxy (open CORS, no auth)
	mux.HandleFunc("POST /api/affirmations", middleware.RateLimit(affirmationHandler.Generate))
	mux.HandleFunc("OPTIONS /api/affirmations", affirmationHandler.Generate)

	// Protected routes
	mux.HandleFunc("GET /api/auth/session", middleware.RequireAuth(authHandler.Session))
	mux.HandleFunc("POST /api/moods", middleware.RequireAuth(moodHandler.Submit))
	mux.HandleFunc("GET /api/moods", middleware.RequireAuth(moodHandler.List))
	mux.HandleFunc("GET /api/moods/trends", middleware.RequireAuth(moodHandler.Trends))
	mux.HandleFunc("GET /api/reports/weekly", middleware.RequireAuth(moodHandler.WeeklyReport))
	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(goalHandler.Create))
	mux.HandleFunc("GET /api/goals", middleware.RequireAuth(goalHandler.List))
	mux.HandleFunc("DELETE /api/goals/{id}", middleware.RequireAuth(goalHandler.Delete))
	mux.HandleFunc("GET /api/profile", middleware.RequireAuth(profileHandler.Get))
	mux.HandleFunc("PUT /api/profile", middleware.RequireAuth(profileHandler.Update))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Background workers
	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()
	go cleanupExpiredSessions(authService)
	go digestService.Start(bgCtx)

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
	bgCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}

// initializeDatabase opens the store and runs migrations within a deadline
func initializeDatabase(cfg *config.Config, timeout time.Duration) (*database.DB, error) {
	type initResult struct {
		db  *database.DB
		err error
	}

	resultCh := make(chan initResult, 1)
	go func() {
		db, err := database.InitializeWithConfig(cfg)
		if err == nil {
			err = db.RunMigrations(cfg.MigrationsPath)
			if err != nil {
				db.Close()
				db = nil
			} else {
				log.Println("Migrations completed successfully")
			}
		}
		resultCh <- initResult{db: db, err: err}
	}()

	select {
	case res := <-resultCh:
		return res.db, res.err
	case <-time.After(timeout):
		return nil, fmt.Errorf("database initialization timed out after %s", timeout)
	}
}

// cleanupExpiredSessions periodically removes expired sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		} else {
			log.Println("Expired sessions cleaned up")
		}
	}
}
