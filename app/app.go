// File: app/app.go
package app

import (
	"context"
	"go-auth-api/config"
	"go-auth-api/db"
	"go-auth-api/handler"
	"go-auth-api/logger"
	"go-auth-api/repository"
	"go-auth-api/router"
	"go-auth-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations("file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to redis: %v", err)
	}
	defer redisClient.Close()

	// --- Wiring All Layers Together ---
	userRepo := repository.NewUserRepository(database)
	resetTokenRepo := repository.NewResetTokenRepository(database)

	cfg := config.AppConfig
	hasher := service.NewHashService(cfg.Hash.BcryptCost)
	tokens := service.NewTokenService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	mailer := service.NewSMTPMailer()

	authService := service.NewAuthService(userRepo, hasher, tokens)
	resetService := service.NewPasswordResetService(userRepo, resetTokenRepo, hasher, mailer, cfg.Reset.TokenTTL, cfg.Reset.FrontendURL)
	userService := service.NewUserService(userRepo, redisClient)

	authHandler := handler.NewAuthHandler(authService, resetService)
	userHandler := handler.NewUserHandler(userService)

	// Expired reset tokens are rejected on redemption anyway; this purge
	// just keeps the table small.
	if purged, err := resetTokenRepo.DeleteExpired(context.Background()); err == nil && purged > 0 {
		logger.Log.WithField("count", purged).Info("Purged expired reset tokens")
	}

	r := router.NewRouter(authHandler, userHandler, tokens)

	// --- Start the Server with Graceful Shutdown ---
	port := cfg.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
