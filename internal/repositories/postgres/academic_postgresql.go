package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/jrc-public-school/school-service/internal/cache"
	"github.com/jrc-public-school/school-service/internal/models"
	"github.com/jrc-public-school/school-service/internal/repositories"
)

// ===== RESULT REPOSITORY =====

type ResultPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewResultPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.ResultRepository {
	return &ResultPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (r *ResultPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *ResultPostgreSQL) Create(ctx context.Context, tx *gorm.DB, result *models.StudentResult) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(result).Error; err != nil {
		return handleDBError(err, "create result")
	}

	cache.SafeDelete(ctx, r.cacheManager.Student, fmt.Sprintf("results:%d", result.StudentID))
	return nil
}

func (r *ResultPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.StudentResult, error) {
	db := r.getDB(tx)
	var result models.StudentResult

	if err := db.WithContext(ctx).First(&result, id).Error; err != nil {
		return nil, handleDBError(err, "get result by id")
	}

	return &result, nil
}

// ListByStudent returns the student's results in creation order
func (r *ResultPostgreSQL) ListByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.StudentResult, error) {
	if tx != nil {
		return r.listByStudentDB(ctx, tx, studentID)
	}

	cacheKey := fmt.Sprintf("results:%d", studentID)
	var results []*models.StudentResult

	err := r.cacheManager.Student.CacheOrExecute(ctx, cacheKey, &results, cache.StudentCacheConfig.TTL, func() (interface{}, error) {
		return r.listByStudentDB(ctx, r.db, studentID)
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *ResultPostgreSQL) listByStudentDB(ctx context.Context, db *gorm.DB, studentID uint) ([]*models.StudentResult, error) {
	var results []*models.StudentResult
	if err := db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, handleDBError(err, "list results by student")
	}
	return results, nil
}

func (r *ResultPostgreSQL) DeleteByStudent(ctx context.Context, tx *gorm.DB, studentID uint) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&models.StudentResult{}).Error; err != nil {
		return handleDBError(err, "delete results by student")
	}

	cache.SafeDelete(ctx, r.cacheManager.Student, fmt.Sprintf("results:%d", studentID))
	return nil
}

func (r *ResultPostgreSQL) CountByStudent(ctx context.Context, tx *gorm.DB, studentID uint) (int64, error) {
	db := r.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).
		Model(&models.StudentResult{}).
		Where("student_id = ?", studentID).
		Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count results by student")
	}
	return count, nil
}

// ===== FEE REPOSITORY =====

type FeePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewFeePostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.FeeRepository {
	return &FeePostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (f *FeePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return f.db
}

func (f *FeePostgreSQL) Create(ctx context.Context, tx *gorm.DB, fee *models.StudentFee) error {
	db := f.getDB(tx)
	if err := db.WithContext(ctx).Create(fee).Error; err != nil {
		return handleDBError(err, "create fee")
	}

	cache.SafeDelete(ctx, f.cacheManager.Student, fmt.Sprintf("fees:%d", fee.StudentID))
	return nil
}

func (f *FeePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.StudentFee, error) {
	db := f.getDB(tx)
	var fee models.StudentFee

	if err := db.WithContext(ctx).First(&fee, id).Error; err != nil {
		return nil, handleDBError(err, "get fee by id")
	}

	return &fee, nil
}

// ListByStudent returns the student's fee records in creation order
func (f *FeePostgreSQL) ListByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.StudentFee, error) {
	if tx != nil {
		return f.listByStudentDB(ctx, tx, studentID)
	}

	cacheKey := fmt.Sprintf("fees:%d", studentID)
	var fees []*models.StudentFee

	err := f.cacheManager.Student.CacheOrExecute(ctx, cacheKey, &fees, cache.StudentCacheConfig.TTL, func() (interface{}, error) {
		return f.listByStudentDB(ctx, f.db, studentID)
	})
	if err != nil {
		return nil, err
	}

	return fees, nil
}

func (f *FeePostgreSQL) listByStudentDB(ctx context.Context, db *gorm.DB, studentID uint) ([]*models.StudentFee, error) {
	var fees []*models.StudentFee
	if err := db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at ASC, id ASC").
		Find(&fees).Error; err != nil {
		return nil, handleDBError(err, "list fees by student")
	}
	return fees, nil
}

func (f *FeePostgreSQL) DeleteByStudent(ctx context.Context, tx *gorm.DB, studentID uint) error {
	db := f.getDB(tx)
	if err := db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&models.StudentFee{}).Error; err != nil {
		return handleDBError(err, "delete fees by student")
	}

	cache.SafeDelete(ctx, f.cacheManager.Student, fmt.Sprintf("fees:%d", studentID))
	return nil
}

func (f *FeePostgreSQL) CountByStudent(ctx context.Context, tx *gorm.DB, studentID uint) (int64, error) {
	db := f.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).
		Model(&models.StudentFee{}).
		Where("student_id = ?", studentID).
		Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count fees by student")
	}
	return count, nil
}
