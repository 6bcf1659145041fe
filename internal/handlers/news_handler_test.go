package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jrc-public-school/school-service/internal/models"
	"github.com/jrc-public-school/school-service/internal/services"
	"github.com/jrc-public-school/school-service/internal/utils"
)

type stubNewsService struct {
	listErr error
	items   []*models.NewsItem
}

func (s *stubNewsService) ListActive(ctx context.Context) ([]*models.NewsItem, error) {
	return s.items, s.listErr
}

func (s *stubNewsService) Create(ctx context.Context, req *services.CreateNewsRequest) (*models.NewsItem, error) {
	return nil, nil
}

func (s *stubNewsService) Update(ctx context.Context, id uint, req *services.UpdateNewsRequest) (*models.NewsItem, error) {
	return nil, services.ErrNewsNotFound
}

func (s *stubNewsService) Delete(ctx context.Context, id uint) error {
	return services.ErrNewsNotFound
}

func newNewsTestRouter(service services.NewsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
	handler := NewNewsHandler(service, logger)

	router := gin.New()
	router.GET("/news/all", handler.ListActive)
	router.PATCH("/news/:id", handler.Update)
	return router
}

// A storage connectivity failure surfaces as 503, not a generic 500.
func TestNewsHandler_StoreUnavailable(t *testing.T) {
	service := &stubNewsService{
		listErr: fmt.Errorf("list news failed: %w", services.ErrServiceUnavailable),
	}
	router := newNewsTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/news/all", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestNewsHandler_NotFound(t *testing.T) {
	router := newNewsTestRouter(&stubNewsService{})

	req := httptest.NewRequest(http.MethodPatch, "/news/7", strings.NewReader(`{"title":"Updated"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
