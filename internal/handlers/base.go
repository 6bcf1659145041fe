package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jrc-public-school/school-service/internal/utils"
)

// BaseHandler carries the behaviour shared by every HTTP handler:
// request/error logging and the common response envelope.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// ErrorResponse is the JSON body for all error statuses.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// APIResponse is the success envelope used by every endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// LogRequest logs an incoming request at debug level
func (h BaseHandler) LogRequest(c *gin.Context, msg string) {
	utils.FromContext(c.Request.Context(), h.logger).Debug(msg,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
}

// LogError logs an unexpected handler error
func (h BaseHandler) LogError(c *gin.Context, err error, msg string) {
	utils.FromContext(c.Request.Context(), h.logger).Error(msg,
		"error", err,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
}

// respondOK writes the success envelope
func (h BaseHandler) respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondError writes the error envelope
func (h BaseHandler) respondError(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Message: message,
		Details: details,
	})
}

// parseIDParam parses a numeric path parameter. On failure it writes a
// 400 response and returns 0; callers must return immediately when ok
// is false.
func (h BaseHandler) parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		h.respondError(c, http.StatusBadRequest, "Invalid "+name+" parameter", nil)
		return 0, false
	}
	return uint(id), true
}

// bindJSON binds the request body and writes a 400 response on failure.
func (h BaseHandler) bindJSON(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	return true
}
