package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrc-public-school/school-service/internal/services"
	"github.com/jrc-public-school/school-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	service services.AuthService
}

func NewAuthHandler(service services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// TeacherLogin authenticates the shared teacher credential and returns
// a session token.
func (h *AuthHandler) TeacherLogin(c *gin.Context) {
	h.LogRequest(c, "Teacher login")

	var req services.TeacherLoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.TeacherLogin(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Login successful",
		"token":     resp.Token,
		"expiresAt": resp.ExpiresAt,
	})
}

func (h *AuthHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		h.respondError(c, http.StatusBadRequest, "Validation failed", err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		h.respondError(c, http.StatusUnauthorized, "Invalid credentials", nil)
	default:
		h.LogError(c, err, "Unexpected service error")
		h.respondError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
