package repositories

import (
	"context"

	"github.com/jrc-public-school/school-service/internal/models"
	"gorm.io/gorm"
)

// AdmissionRepository interface for admission enquiry operations
type AdmissionRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, tx *gorm.DB, admission *models.Admission) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Admission, error)
	Update(ctx context.Context, tx *gorm.DB, admission *models.Admission) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	// Query operations (newest first)
	List(ctx context.Context, tx *gorm.DB, filters AdmissionFilters) ([]*models.Admission, int64, error)

	// Statistics
	GetStats(ctx context.Context, tx *gorm.DB) (*AdmissionStats, error)
}
