// file: app/test_app.go

package app

import (
	"go-auth-api/handler"
	"go-auth-api/repository"
	"go-auth-api/router"
	"go-auth-api/service"
	"net/http"
	"time"
)

// TestApp assembles the full handler pipeline on top of caller-supplied
// collaborators, so tests can exercise real routing and services against
// fake repositories, mailers and caches.
type TestApp struct {
	Router http.Handler
	Tokens *service.TokenService
	Hasher *service.HashService
}

// TestConfig carries the knobs integration-style tests tend to vary.
type TestConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	BcryptCost    int
	ResetTokenTTL time.Duration
	FrontendURL   string
}

func NewTestApp(
	cfg TestConfig,
	userRepo repository.IUserRepository,
	resetTokenRepo repository.IResetTokenRepository,
	mailer service.IMailer,
	cache service.ICacheClient,
) *TestApp {
	hasher := service.NewHashService(cfg.BcryptCost)
	tokens := service.NewTokenService(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	authService := service.NewAuthService(userRepo, hasher, tokens)
	resetService := service.NewPasswordResetService(userRepo, resetTokenRepo, hasher, mailer, cfg.ResetTokenTTL, cfg.FrontendURL)
	userService := service.NewUserService(userRepo, cache)

	authHandler := handler.NewAuthHandler(authService, resetService)
	userHandler := handler.NewUserHandler(userService)

	return &TestApp{
		Router: router.NewRouter(authHandler, userHandler, tokens),
		Tokens: tokens,
		Hasher: hasher,
	}
}
