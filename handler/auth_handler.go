package handler

import (
	"go-auth-api/common"
	"go-auth-api/logger"
	"go-auth-api/model"
	"go-auth-api/service"
	"net/http"
)

type AuthHandler struct {
	authService  *service.AuthService
	resetService *service.PasswordResetService
}

func NewAuthHandler(authService *service.AuthService, resetService *service.PasswordResetService) *AuthHandler {
	return &AuthHandler{authService: authService, resetService: resetService}
}

// Signup godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      model.SignupRequest  true  "Signup payload"
// @Success      201   {object}  model.SuccessResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SignupRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	profile, pair, appErr := h.authService.Signup(r.Context(), req)
	if appErr != nil {
		return appErr
	}

	common.WriteSuccess(w, http.StatusCreated, model.SuccessResponse{
		Data:         profile,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
	return nil
}

// Login godoc
// @Summary      Authenticate with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      model.LoginRequest  true  "Login payload"
// @Success      200   {object}  model.SuccessResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	profile, pair, appErr := h.authService.Login(r.Context(), req.Email, req.Password)
	if appErr != nil {
		return appErr
	}

	common.WriteSuccess(w, http.StatusOK, model.SuccessResponse{
		Data:         profile,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
	return nil
}

// Refresh godoc
// @Summary      Exchange a refresh token for a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      model.RefreshRequest  true  "Refresh payload"
// @Success      200   {object}  model.SuccessResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RefreshRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	pair, appErr := h.authService.Refresh(r.Context(), req.RefreshToken)
	if appErr != nil {
		return appErr
	}

	common.WriteSuccess(w, http.StatusOK, model.SuccessResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
	return nil
}

// Logout godoc
// @Summary      Invalidate the current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.SuccessResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return common.NewUnauthorizedError("Invalid user ID in token")
	}

	if appErr := h.authService.Logout(r.Context(), userID); appErr != nil {
		return appErr
	}

	common.WriteSuccess(w, http.StatusOK, model.SuccessResponse{
		Message: "Logged out successfully",
	})
	return nil
}

// ForgotPassword godoc
// @Summary      Request a password-reset email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      model.ForgotPasswordRequest  true  "Email"
// @Success      200   {object}  model.SuccessResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.ForgotPasswordRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	logger.Log.Info("Password reset requested")

	message, appErr := h.resetService.RequestReset(r.Context(), req.Email)
	if appErr != nil {
		return appErr
	}

	common.WriteSuccess(w, http.StatusOK, model.SuccessResponse{Message: message})
	return nil
}

// ResetPassword godoc
// @Summary      Redeem a reset token and set a new password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      model.ResetPasswordRequest  true  "Token and new password"
// @Success      200   {object}  model.SuccessResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.ResetPasswordRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	if appErr := h.resetService.RedeemReset(r.Context(), req.Token, req.Password); appErr != nil {
		return appErr
	}

	common.WriteSuccess(w, http.StatusOK, model.SuccessResponse{
		Message: "Password has been reset successfully",
	})
	return nil
}
