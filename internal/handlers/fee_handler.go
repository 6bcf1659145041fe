package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrc-public-school/school-service/internal/services"
	"github.com/jrc-public-school/school-service/internal/utils"
)

// FeeHandler serves the public fee schedule and estimator.
type FeeHandler struct {
	BaseHandler
	service services.FeeService
}

func NewFeeHandler(service services.FeeService, logger utils.Logger) *FeeHandler {
	return &FeeHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Structure returns the published fee schedule.
func (h *FeeHandler) Structure(c *gin.Context) {
	h.LogRequest(c, "Getting fee structure")

	h.respondOK(c, http.StatusOK, "", h.service.Structure())
}

// Calculate estimates the annual fee for a class and transport option.
func (h *FeeHandler) Calculate(c *gin.Context) {
	h.LogRequest(c, "Calculating fees")

	var req services.FeeCalculateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	calculation, err := h.service.Calculate(&req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, "", calculation)
}

func (h *FeeHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		h.respondError(c, http.StatusBadRequest, "Validation failed", err.Error())
	default:
		h.LogError(c, err, "Unexpected service error")
		h.respondError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
