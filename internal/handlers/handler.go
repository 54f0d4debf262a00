package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edupay/fees-service/internal/services"
	"github.com/edupay/fees-service/internal/utils"
	"github.com/edupay/fees-service/internal/validator"
)

// ErrorResponse is the body returned on any failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// BaseHandler carries shared handler behavior.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string) {
	utils.FromContext(c.Request.Context(), h.logger).Debug(msg,
		"method", c.Request.Method,
		"path", c.Request.URL.Path)
}

// handleServiceError maps service error kinds to HTTP status codes. All
// domain errors are recoverable; only unknown failures become 500s.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case services.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: err.Error()})
	case services.IsConflictError(err):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "conflict", Message: err.Error()})
	case services.IsInvalidAmountError(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_amount", Message: err.Error()})
	case services.IsValidationError(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_failed", Message: err.Error()})
	case services.IsPermissionError(err), errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: err.Error()})
	default:
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_failed", Message: verrs.Error()})
			return
		}
		h.logger.Error("Unhandled service error", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal", Message: "internal server error"})
	}
}

// pathID parses the numeric :id path parameter.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid id parameter"})
		return 0, false
	}
	return uint(id), true
}

// identity pulls the authenticated username out of the request context.
func identity(c *gin.Context) (string, bool) {
	username := c.GetString("username")
	if username == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "user not authenticated"})
		return "", false
	}
	return username, true
}
