package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/online-test-service/internal/auth"
	"github.com/SAP-F-2025/online-test-service/internal/services"
	"github.com/SAP-F-2025/online-test-service/internal/utils"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// ListResponse wraps a page of items with the total match count
type ListResponse struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Size  int         `json:"size"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging and error mapping for all handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"user_id", h.extractUserID(c),
	}
	fields = append(fields, additionalFields...)

	utils.GetLoggerFromContext(c, h.logger).Debug(message, fields...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"user_id", h.extractUserID(c),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	fields = append(fields, additionalFields...)

	utils.GetLoggerFromContext(c, h.logger).LogError(err, message, fields...)
}

func (h *BaseHandler) extractUserID(c *gin.Context) interface{} {
	if userID, ok := auth.UserID(c); ok {
		return userID
	}
	return nil
}

// RespondWithError sends a consistent error response
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, details ...interface{}) {
	errorResp := ErrorResponse{
		Message: message,
	}
	if len(details) > 0 {
		errorResp.Details = details[0]
	}
	c.JSON(statusCode, errorResp)
}

// currentUserID returns the authenticated caller, answering 401 when there is none
func (h *BaseHandler) currentUserID(c *gin.Context) (uint, bool) {
	userID, ok := auth.UserID(c)
	if !ok {
		h.RespondWithError(c, http.StatusUnauthorized, "User not authenticated")
		return 0, false
	}
	return userID, true
}

// handleServiceError maps service errors onto HTTP responses. Anything
// unclassified is logged and reported as a generic server error.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrTestNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Test not found")
	case errors.Is(err, services.ErrAudioNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Listening audio not found")
	case errors.Is(err, services.ErrAttemptNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Attempt not found")
	case errors.Is(err, services.ErrUserNotFound):
		h.RespondWithError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrTestHasAttempts):
		h.RespondWithError(c, http.StatusConflict, "Test cannot be changed - it has submitted attempts")
	case errors.Is(err, services.ErrEmailTaken):
		h.RespondWithError(c, http.StatusConflict, "Email is already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		h.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrAccountDisabled):
		h.RespondWithError(c, http.StatusForbidden, "Account is disabled")
	// Generic errors
	case services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err.Error())
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, "Resource not found")
	case services.IsUnauthorized(err):
		h.RespondWithError(c, http.StatusUnauthorized, "Unauthorized access")
	case services.IsForbidden(err):
		h.RespondWithError(c, http.StatusForbidden, "Forbidden - insufficient permissions")
	case services.IsConflict(err):
		h.RespondWithError(c, http.StatusConflict, "Resource conflict")
	default:
		h.LogError(c, err, "Unexpected service error")
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
