package postgres

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/jrc-public-school/school-service/internal/cache"
	"github.com/jrc-public-school/school-service/internal/models"
	"github.com/jrc-public-school/school-service/internal/repositories"
)

type AdmissionPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewAdmissionPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.AdmissionRepository {
	return &AdmissionPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (a *AdmissionPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return a.db
}

func (a *AdmissionPostgreSQL) Create(ctx context.Context, tx *gorm.DB, admission *models.Admission) error {
	db := a.getDB(tx)
	if err := db.WithContext(ctx).Create(admission).Error; err != nil {
		return handleDBError(err, "create admission")
	}

	cache.InvalidateAdmissionCache(ctx, a.cacheManager)
	return nil
}

func (a *AdmissionPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Admission, error) {
	db := a.getDB(tx)
	var admission models.Admission

	if err := db.WithContext(ctx).First(&admission, id).Error; err != nil {
		return nil, handleDBError(err, "get admission by id")
	}

	return &admission, nil
}

func (a *AdmissionPostgreSQL) Update(ctx context.Context, tx *gorm.DB, admission *models.Admission) error {
	db := a.getDB(tx)
	if err := db.WithContext(ctx).Save(admission).Error; err != nil {
		return handleDBError(err, "update admission")
	}

	cache.InvalidateAdmissionCache(ctx, a.cacheManager)
	return nil
}

func (a *AdmissionPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := a.getDB(tx)
	if err := db.WithContext(ctx).Delete(&models.Admission{}, id).Error; err != nil {
		return handleDBError(err, "delete admission")
	}

	cache.InvalidateAdmissionCache(ctx, a.cacheManager)
	return nil
}

// List returns enquiries newest first
func (a *AdmissionPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.AdmissionFilters) ([]*models.Admission, int64, error) {
	db := a.getDB(tx)
	var admissions []*models.Admission
	var total int64

	query := db.WithContext(ctx).Model(&models.Admission{})
	query = a.applyAdmissionFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count admissions")
	}

	query = query.Order("submitted_at DESC, id DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&admissions).Error; err != nil {
		return nil, 0, handleDBError(err, "list admissions")
	}

	return admissions, total, nil
}

// GetStats aggregates enquiry counts per funnel status
func (a *AdmissionPostgreSQL) GetStats(ctx context.Context, tx *gorm.DB) (*repositories.AdmissionStats, error) {
	db := a.getDB(tx)
	stats := &repositories.AdmissionStats{}

	type statusCount struct {
		Status models.AdmissionStatus
		Count  int
	}
	var rows []statusCount

	if err := db.WithContext(ctx).
		Model(&models.Admission{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, handleDBError(err, "count admissions by status")
	}

	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case models.AdmissionPending:
			stats.Pending = row.Count
		case models.AdmissionContacted:
			stats.Contacted = row.Count
		case models.AdmissionAdmitted:
			stats.Admitted = row.Count
		case models.AdmissionRejected:
			stats.Rejected = row.Count
		}
	}

	return stats, nil
}

func (a *AdmissionPostgreSQL) applyAdmissionFilters(query *gorm.DB, filters repositories.AdmissionFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Class != nil {
		query = query.Where("class_applying = ?", *filters.Class)
	}
	if filters.DateFrom != nil {
		query = query.Where("submitted_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("submitted_at <= ?", *filters.DateTo)
	}
	return query
}
