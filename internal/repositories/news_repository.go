package repositories

import (
	"context"

	"github.com/jrc-public-school/school-service/internal/models"
	"gorm.io/gorm"
)

// NewsRepository interface for news feed operations
type NewsRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, tx *gorm.DB, item *models.NewsItem) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.NewsItem, error)
	Update(ctx context.Context, tx *gorm.DB, item *models.NewsItem) error

	// Soft delete: flips IsActive instead of removing the row
	Deactivate(ctx context.Context, tx *gorm.DB, id uint) error

	// Query operations (newest date first)
	List(ctx context.Context, tx *gorm.DB, filters NewsFilters) ([]*models.NewsItem, int64, error)
}
