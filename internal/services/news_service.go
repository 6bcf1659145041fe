package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/jrc-public-school/school-service/internal/models"
	"github.com/jrc-public-school/school-service/internal/repositories"
	"github.com/jrc-public-school/school-service/internal/validator"
)

type newsService struct {
	repo         repositories.Repository
	db           *gorm.DB
	logger       *slog.Logger
	validator    *validator.Validator
	notification NotificationEventService
}

func NewNewsService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, notification NotificationEventService) NewsService {
	return &newsService{
		repo:         repo,
		db:           db,
		logger:       logger,
		validator:    v,
		notification: notification,
	}
}

// ListActive returns the public news feed, newest date first
func (s *newsService) ListActive(ctx context.Context) ([]*models.NewsItem, error) {
	items, _, err := s.repo.News().List(ctx, nil, repositories.NewsFilters{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	return items, nil
}

func (s *newsService) Create(ctx context.Context, req *CreateNewsRequest) (*models.NewsItem, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationError(errs[0].Field, errs[0].Message, errs[0].Value)
	}

	newsType := models.NewsType(req.Type)
	if req.Type == "" {
		newsType = models.NewsGeneral
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	item := &models.NewsItem{
		Title:    req.Title,
		Content:  req.Content,
		Type:     newsType,
		Date:     date,
		IsActive: true,
	}

	if err := s.repo.News().Create(ctx, nil, item); err != nil {
		return nil, fmt.Errorf("failed to create news item: %w", err)
	}

	s.logger.InfoContext(ctx, "News item published",
		"news_id", item.ID,
		"type", item.Type)

	s.notification.NewsPublished(ctx, item)

	return item, nil
}

// Update applies a partial update; absent fields keep their values
func (s *newsService) Update(ctx context.Context, id uint, req *UpdateNewsRequest) (*models.NewsItem, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationError(errs[0].Field, errs[0].Message, errs[0].Value)
	}

	item, err := s.repo.News().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNewsNotFound
		}
		return nil, fmt.Errorf("failed to get news item: %w", err)
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Content != nil {
		item.Content = *req.Content
	}
	if req.Type != nil {
		item.Type = models.NewsType(*req.Type)
	}
	if req.Date != nil {
		item.Date = *req.Date
	}

	if err := s.repo.News().Update(ctx, nil, item); err != nil {
		return nil, fmt.Errorf("failed to update news item: %w", err)
	}

	s.logger.InfoContext(ctx, "News item updated", "news_id", item.ID)

	return item, nil
}

// Delete hides the item from the public feed rather than removing it
func (s *newsService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.News().Deactivate(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNewsNotFound
		}
		return fmt.Errorf("failed to delete news item: %w", err)
	}

	s.logger.InfoContext(ctx, "News item deactivated", "news_id", id)

	return nil
}
