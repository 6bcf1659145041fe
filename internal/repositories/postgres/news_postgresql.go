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

type NewsPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewNewsPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.NewsRepository {
	return &NewsPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (n *NewsPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return n.db
}

func (n *NewsPostgreSQL) Create(ctx context.Context, tx *gorm.DB, item *models.NewsItem) error {
	db := n.getDB(tx)
	if err := db.WithContext(ctx).Create(item).Error; err != nil {
		return handleDBError(err, "create news item")
	}

	cache.InvalidateNewsCache(ctx, n.cacheManager)
	return nil
}

func (n *NewsPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.NewsItem, error) {
	db := n.getDB(tx)
	var item models.NewsItem

	if err := db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, handleDBError(err, "get news item by id")
	}

	return &item, nil
}

func (n *NewsPostgreSQL) Update(ctx context.Context, tx *gorm.DB, item *models.NewsItem) error {
	db := n.getDB(tx)
	if err := db.WithContext(ctx).Save(item).Error; err != nil {
		return handleDBError(err, "update news item")
	}

	cache.InvalidateNewsCache(ctx, n.cacheManager)
	return nil
}

// Deactivate soft-deletes the item by flipping IsActive
func (n *NewsPostgreSQL) Deactivate(ctx context.Context, tx *gorm.DB, id uint) error {
	db := n.getDB(tx)
	result := db.WithContext(ctx).
		Model(&models.NewsItem{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return handleDBError(result.Error, "deactivate news item")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "deactivate news item")
	}

	cache.InvalidateNewsCache(ctx, n.cacheManager)
	return nil
}

// List returns news items newest date first. The public active-only feed
// with no extra filters is served from cache.
func (n *NewsPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.NewsFilters) ([]*models.NewsItem, int64, error) {
	if tx == nil && filters.ActiveOnly && filters.Type == nil && filters.Offset == 0 {
		cacheKey := fmt.Sprintf("list:active:%d", filters.Limit)
		var cached struct {
			Items []*models.NewsItem `json:"items"`
			Total int64              `json:"total"`
		}

		err := n.cacheManager.News.CacheOrExecute(ctx, cacheKey, &cached, cache.NewsCacheConfig.TTL, func() (interface{}, error) {
			items, total, err := n.listDB(ctx, n.db, filters)
			if err != nil {
				return nil, err
			}
			return struct {
				Items []*models.NewsItem `json:"items"`
				Total int64              `json:"total"`
			}{Items: items, Total: total}, nil
		})
		if err != nil {
			return nil, 0, err
		}

		return cached.Items, cached.Total, nil
	}

	return n.listDB(ctx, n.getDB(tx), filters)
}

func (n *NewsPostgreSQL) listDB(ctx context.Context, db *gorm.DB, filters repositories.NewsFilters) ([]*models.NewsItem, int64, error) {
	var items []*models.NewsItem
	var total int64

	query := db.WithContext(ctx).Model(&models.NewsItem{})
	if filters.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count news items")
	}

	query = query.Order("date DESC, id DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&items).Error; err != nil {
		return nil, 0, handleDBError(err, "list news items")
	}

	return items, total, nil
}
