package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrc-public-school/school-service/internal/services"
	"github.com/jrc-public-school/school-service/internal/utils"
)

// NewsHandler serves the public news feed and the teacher-side CRUD.
type NewsHandler struct {
	BaseHandler
	service services.NewsService
}

func NewNewsHandler(service services.NewsService, logger utils.Logger) *NewsHandler {
	return &NewsHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListActive returns all active news items, newest first.
func (h *NewsHandler) ListActive(c *gin.Context) {
	h.LogRequest(c, "Listing active news")

	items, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, "", items)
}

// Create publishes a news item.
func (h *NewsHandler) Create(c *gin.Context) {
	h.LogRequest(c, "Creating news item")

	var req services.CreateNewsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, http.StatusCreated, "News item created", item)
}

// Update applies a partial update to a news item.
func (h *NewsHandler) Update(c *gin.Context) {
	h.LogRequest(c, "Updating news item")

	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateNewsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, "News item updated", item)
}

// Delete hides a news item from the public feed.
func (h *NewsHandler) Delete(c *gin.Context) {
	h.LogRequest(c, "Deleting news item")

	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, "News item deleted", nil)
}

func (h *NewsHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		h.respondError(c, http.StatusBadRequest, "Validation failed", err.Error())
	case errors.Is(err, services.ErrNewsNotFound):
		h.respondError(c, http.StatusNotFound, "News item not found", nil)
	case errors.Is(err, services.ErrServiceUnavailable):
		h.LogError(c, err, "Database unavailable")
		h.respondError(c, http.StatusServiceUnavailable, "Service temporarily unavailable", nil)
	default:
		h.LogError(c, err, "Unexpected service error")
		h.respondError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
