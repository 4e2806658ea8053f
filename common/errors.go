package common

import (
	"encoding/json"
	"go-auth-api/logger"
	"net/http"

	"github.com/sirupsen/logrus"
)

// AppError is the typed failure every core operation returns. Code is the
// HTTP status the boundary layer should emit; Err holds the internal cause
// and is logged but never sent to the client.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Constructors for the error taxonomy. Credential and reset-token failures
// keep deliberately generic messages so a caller cannot probe which part of
// the check failed.

func NewValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, nil)
}

func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, nil)
}

func NewUnauthorizedError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, nil)
}

func NewForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, nil)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, nil)
}

func NewInvalidOrExpiredError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, nil)
}

func NewInternalError(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, message, err)
}

// status returns the envelope status keyword: "fail" for client errors,
// "error" for server errors.
func (e *AppError) status() string {
	if e.Code >= http.StatusInternalServerError {
		return "error"
	}
	return "fail"
}

func (e *AppError) Send(w http.ResponseWriter) {
	if e.Err != nil {
		logger.Log.WithFields(logrus.Fields{
			"status_code":    e.Code,
			"internal_error": e.Err.Error(),
		}).Error(e.Message)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Code)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  e.status(),
		"message": e.Message,
	})
}
