package router

import (
	"go-auth-api/handler"
	"go-auth-api/model"
	"go-auth-api/service"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "go-auth-api/docs" // swagger artifacts
)

func NewRouter(authHandler *handler.AuthHandler, userHandler *handler.UserHandler, tokens *service.TokenService) http.Handler {
	mux := http.NewServeMux()

	authenticated := handler.AuthMiddleware(tokens)
	adminOnly := handler.RequireRoles(model.RoleAdmin)

	// Public auth endpoints.
	mux.Handle("POST /auth/signup", handler.ErrorHandlingMiddleware(authHandler.Signup))
	mux.Handle("POST /auth/login", handler.ErrorHandlingMiddleware(authHandler.Login))
	mux.Handle("POST /auth/refresh", handler.ErrorHandlingMiddleware(authHandler.Refresh))
	mux.Handle("POST /auth/forgot-password", handler.ErrorHandlingMiddleware(authHandler.ForgotPassword))
	mux.Handle("POST /auth/reset-password", handler.ErrorHandlingMiddleware(authHandler.ResetPassword))

	// Session teardown requires a valid access token.
	mux.Handle("POST /auth/logout", authenticated(handler.ErrorHandlingMiddleware(authHandler.Logout)))

	// Protected user-management surface.
	mux.Handle("GET /api/users/me", authenticated(handler.ErrorHandlingMiddleware(userHandler.GetMe)))
	mux.Handle("GET /api/users", authenticated(adminOnly(handler.ErrorHandlingMiddleware(userHandler.GetUsers))))
	mux.Handle("PATCH /api/users/{id}/role", authenticated(adminOnly(handler.ErrorHandlingMiddleware(userHandler.UpdateUserRole))))
	mux.Handle("DELETE /api/users/{id}", authenticated(adminOnly(handler.ErrorHandlingMiddleware(userHandler.DeleteUser))))

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return mux
}
