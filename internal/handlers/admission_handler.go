package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jrc-public-school/school-service/internal/models"
	"github.com/jrc-public-school/school-service/internal/services"
	"github.com/jrc-public-school/school-service/internal/utils"
)

// AdmissionHandler serves the public admission enquiry form and the
// teacher-side review funnel.
type AdmissionHandler struct {
	BaseHandler
	service services.AdmissionService
}

func NewAdmissionHandler(service services.AdmissionService, logger utils.Logger) *AdmissionHandler {
	return &AdmissionHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Submit records a new admission enquiry from the public site.
func (h *AdmissionHandler) Submit(c *gin.Context) {
	h.LogRequest(c, "Submitting admission enquiry")

	var req services.SubmitAdmissionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	admission, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, http.StatusCreated, "Admission enquiry submitted", admission)
}

// List returns enquiries newest first with pagination and an optional
// status filter.
func (h *AdmissionHandler) List(c *gin.Context) {
	h.LogRequest(c, "Listing admission enquiries")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var status *models.AdmissionStatus
	if raw := c.Query("status"); raw != "" {
		s := models.AdmissionStatus(raw)
		status = &s
	}

	resp, err := h.service.List(c.Request.Context(), page, limit, status)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       resp.Admissions,
		"pagination": resp.Pagination,
	})
}

// Get returns a single enquiry.
func (h *AdmissionHandler) Get(c *gin.Context) {
	h.LogRequest(c, "Getting admission enquiry")

	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	admission, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, "", admission)
}

// UpdateStatus moves an enquiry through the funnel.
func (h *AdmissionHandler) UpdateStatus(c *gin.Context) {
	h.LogRequest(c, "Updating admission status")

	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateAdmissionStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	admission, err := h.service.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, "Admission status updated", admission)
}

// Delete removes an enquiry permanently.
func (h *AdmissionHandler) Delete(c *gin.Context) {
	h.LogRequest(c, "Deleting admission enquiry")

	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, "Admission enquiry deleted", nil)
}

// Stats returns per-status enquiry counts for the teacher dashboard.
func (h *AdmissionHandler) Stats(c *gin.Context) {
	h.LogRequest(c, "Getting admission stats")

	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, "", stats)
}

func (h *AdmissionHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		h.respondError(c, http.StatusBadRequest, "Validation failed", err.Error())
	case errors.Is(err, services.ErrAdmissionNotFound):
		h.respondError(c, http.StatusNotFound, "Admission enquiry not found", nil)
	case errors.Is(err, services.ErrServiceUnavailable):
		h.LogError(c, err, "Database unavailable")
		h.respondError(c, http.StatusServiceUnavailable, "Service temporarily unavailable", nil)
	default:
		h.LogError(c, err, "Unexpected service error")
		h.respondError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
