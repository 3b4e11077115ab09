package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio/api/config"
	"portfolio/api/database"
	"portfolio/api/handlers"
	"portfolio/api/services"
	"portfolio/api/store"
	"portfolio/api/utils"
)

func main() {
	cfg := config.Load()

	if os.Getenv("GIN_MODE") == "release" || cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Initialize SQLite database (visitors, contact messages, users) ---
	dbClient, err := database.NewSQLiteDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize SQLite database: %v", err)
	}
	defer dbClient.Close()

	// --- External adapters ---
	firebase := services.NewFirebaseService(cfg.FirebaseDatabaseURL, cfg.FirebaseDatabaseSecret)
	github := services.NewGitHubService(cfg.GitHubUsername, cfg.GitHubToken)

	// --- Stores ---
	visitorStore := store.NewVisitorStore(dbClient.DB)
	contactStore := store.NewContactStore(dbClient.DB)

	// --- Handlers ---
	analyticsHandlers := handlers.NewAnalyticsHandlers(visitorStore, firebase)
	contactHandlers := handlers.NewContactHandlers(contactStore)
	githubHandlers := handlers.NewGitHubHandlers(github)

	var authHandlers *handlers.AuthHandlers
	if cfg.AuthEnabled {
		tokens := utils.NewTokenManager(cfg.JWTSecretKey)
		authHandlers = handlers.NewAuthHandlers(store.NewUserStore(dbClient.DB), tokens)
		log.Println("Auth endpoints enabled.")
	}

	r := setupRouter(cfg, analyticsHandlers, contactHandlers, githubHandlers, authHandlers)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Keep-alive runs only on the hosted deployment and stops with the
	// process lifecycle.
	keepAliveCtx, stopKeepAlive := context.WithCancel(context.Background())
	defer stopKeepAlive()
	if cfg.IsProduction() {
		go services.NewKeepAlive(cfg.KeepAliveURL, cfg.KeepAliveInterval).Run(keepAliveCtx)
	}

	go func() {
		log.Printf("Portfolio API server starting on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Portfolio API server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	stopKeepAlive()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
