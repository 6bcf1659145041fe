package repositories

import (
	"context"

	"github.com/jrc-public-school/school-service/internal/models"
	"gorm.io/gorm"
)

// StudentRepository interface for student directory operations
type StudentRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, tx *gorm.DB, student *models.Student) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Student, error)
	GetByClassRoll(ctx context.Context, tx *gorm.DB, class, rollNo string) (*models.Student, error)
	Update(ctx context.Context, tx *gorm.DB, student *models.Student) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	// Query operations
	List(ctx context.Context, tx *gorm.DB, filters StudentFilters) ([]*models.Student, int64, error)

	// Validation and checks
	ExistsByClassRoll(ctx context.Context, tx *gorm.DB, class, rollNo string) (bool, error)

	// Statistics
	GetRosterStats(ctx context.Context, tx *gorm.DB) (*RosterStats, error)
}

// ResultRepository interface for exam result operations (append-only)
type ResultRepository interface {
	Create(ctx context.Context, tx *gorm.DB, result *models.StudentResult) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.StudentResult, error)
	ListByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.StudentResult, error)
	DeleteByStudent(ctx context.Context, tx *gorm.DB, studentID uint) error
	CountByStudent(ctx context.Context, tx *gorm.DB, studentID uint) (int64, error)
}

// FeeRepository interface for fee record operations (append-only)
type FeeRepository interface {
	Create(ctx context.Context, tx *gorm.DB, fee *models.StudentFee) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.StudentFee, error)
	ListByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.StudentFee, error)
	DeleteByStudent(ctx context.Context, tx *gorm.DB, studentID uint) error
	CountByStudent(ctx context.Context, tx *gorm.DB, studentID uint) (int64, error)
}
