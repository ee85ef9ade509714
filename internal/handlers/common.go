package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Rtx09x/Meow-Mocks/internal/services"
	"github.com/Rtx09x/Meow-Mocks/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

const (
	codeValidation = "VALIDATION_FAILED"
	codeLoadFailed = "TEST_LOAD_FAILED"
	codeNotFound   = "NOT_FOUND"
	codeConflict   = "SESSION_SUBMITTED"
	codeInternal   = "INTERNAL_ERROR"
)

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging functionality for all handlers
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

// requestFields are attached to every handler log line
func (h *BaseHandler) requestFields(c *gin.Context, additionalFields ...interface{}) []interface{} {
	fields := []interface{}{
		"request_id", utils.GetRequestID(c),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	return append(fields, additionalFields...)
}

func (h *BaseHandler) requestContext(c *gin.Context) context.Context {
	return services.WithRequestID(c.Request.Context(), utils.GetRequestID(c))
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := h.requestFields(c, "remote_addr", c.ClientIP())
	h.logger.Info(message, append(fields, additionalFields...)...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	h.logger.LogError(err, message, h.requestFields(c, additionalFields...)...)
}

func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	h.logger.Warn(message, h.requestFields(c, additionalFields...)...)
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, code, message string, err error, details ...interface{}) {
	errorResp := ErrorResponse{
		Message: message,
		Code:    code,
	}

	if len(details) > 0 {
		errorResp.Details = details[0]
	}

	if statusCode >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", statusCode)
	} else {
		h.LogWarn(c, message, "status_code", statusCode, "error", err)
	}

	c.JSON(statusCode, errorResp)
}

// RespondWithSuccess sends a consistent success response
func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Message: message,
		Data:    data,
	})
}

// bindJSON decodes the body, answering 400 itself on failure
func (h *BaseHandler) bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, codeValidation, "Invalid request payload", err, err.Error())
		return false
	}
	return true
}

// handleServiceError maps service errors onto HTTP statuses
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	switch {
	case services.IsLoadError(err):
		h.RespondWithError(c, http.StatusUnprocessableEntity, codeLoadFailed, "Test definition could not be loaded", err, err.Error())
	case errors.As(err, &validationErrors):
		h.RespondWithError(c, http.StatusBadRequest, codeValidation, "Validation failed", err, validationErrors)
	case services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, codeValidation, "Invalid request", err, err.Error())
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, codeNotFound, notFoundMessage(err), err)
	case services.IsConflict(err):
		h.RespondWithError(c, http.StatusConflict, codeConflict, "Exam session already submitted", err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, codeInternal, "Internal server error", err)
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return "Exam session not found"
	case errors.Is(err, services.ErrResultNotFound):
		return "Exam result not found"
	default:
		return "Resource not found"
	}
}
