package handler

import (
	"go-auth-api/common"
	"go-auth-api/logger"
	"go-auth-api/model"
	"go-auth-api/service"
	"net/http"

	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetUsers godoc
// @Summary      List all users (admin only)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.SuccessResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) *common.AppError {
	profiles, appErr := h.service.GetAllUsers(r.Context())
	if appErr != nil {
		return appErr
	}

	common.WriteSuccess(w, http.StatusOK, model.SuccessResponse{Data: profiles})
	return nil
}

// GetMe godoc
// @Summary      Return the authenticated user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.SuccessResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/users/me [get]
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return common.NewUnauthorizedError("Invalid user ID in token")
	}

	profile, appErr := h.service.GetUserByID(r.Context(), userID)
	if appErr != nil {
		return appErr
	}

	common.WriteSuccess(w, http.StatusOK, model.SuccessResponse{Data: profile})
	return nil
}

// UpdateUserRole godoc
// @Summary      Change a user's role (admin only)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                      true  "User ID"
// @Param        body  body      model.UpdateUserRoleRequest true  "New role"
// @Success      200   {object}  model.SuccessResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/users/{id}/role [patch]
func (h *UserHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.UpdateUserRoleRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	userID := r.PathValue("id")

	log := logger.Log.WithFields(logrus.Fields{
		"user_id":  userID,
		"new_role": req.Role,
	})
	log.Info("Update user role request received")

	if appErr := h.service.UpdateUserRole(r.Context(), userID, req.Role); appErr != nil {
		return appErr
	}

	common.WriteSuccess(w, http.StatusOK, model.SuccessResponse{
		Message: "User role updated successfully",
	})
	return nil
}

// DeleteUser godoc
// @Summary      Delete a user (admin only)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  model.SuccessResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID := r.PathValue("id")

	logger.Log.WithField("user_id", userID).Info("Delete user request received")

	if appErr := h.service.DeleteUser(r.Context(), userID); appErr != nil {
		return appErr
	}

	common.WriteSuccess(w, http.StatusOK, model.SuccessResponse{
		Message: "User deleted successfully",
	})
	return nil
}
