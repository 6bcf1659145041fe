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

type StudentPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewStudentPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.StudentRepository {
	return &StudentPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (s *StudentPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.db
}

// Create inserts a student and invalidates roster listings. A duplicate
// (class, roll_no) surfaces as gorm.ErrDuplicatedKey from the unique index.
func (s *StudentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, student *models.Student) error {
	db := s.getDB(tx)
	if err := db.WithContext(ctx).Create(student).Error; err != nil {
		return handleDBError(err, "create student")
	}

	cache.SafeInvalidatePattern(ctx, s.cacheManager.Student, "list:*")
	return nil
}

// GetByID retrieves a student by ID with caching
func (s *StudentPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Student, error) {
	// Reads inside a transaction must see the transaction's view, not the cache
	if tx != nil {
		var student models.Student
		if err := tx.WithContext(ctx).First(&student, id).Error; err != nil {
			return nil, handleDBError(err, "get student by id")
		}
		return &student, nil
	}

	cacheKey := fmt.Sprintf("id:%d", id)
	var student models.Student

	err := s.cacheManager.Student.CacheOrExecute(ctx, cacheKey, &student, cache.StudentCacheConfig.TTL, func() (interface{}, error) {
		var dbStudent models.Student
		if err := s.db.WithContext(ctx).First(&dbStudent, id).Error; err != nil {
			return nil, handleDBError(err, "get student by id")
		}
		return &dbStudent, nil
	})
	if err != nil {
		return nil, err
	}

	return &student, nil
}

// GetByClassRoll retrieves a student by the (class, rollNo) identity pair.
// Not cached: it is the login path and must always see current credentials.
func (s *StudentPostgreSQL) GetByClassRoll(ctx context.Context, tx *gorm.DB, class, rollNo string) (*models.Student, error) {
	db := s.getDB(tx)
	var student models.Student

	if err := db.WithContext(ctx).
		Where("class = ? AND roll_no = ?", class, rollNo).
		First(&student).Error; err != nil {
		return nil, handleDBError(err, "get student by class and roll")
	}

	return &student, nil
}

// Update saves a student and invalidates its cached entries
func (s *StudentPostgreSQL) Update(ctx context.Context, tx *gorm.DB, student *models.Student) error {
	db := s.getDB(tx)
	if err := db.WithContext(ctx).Save(student).Error; err != nil {
		return handleDBError(err, "update student")
	}

	cache.InvalidateStudentCache(ctx, s.cacheManager, fmt.Sprintf("%d", student.ID))
	return nil
}

// Delete removes a student row and invalidates its cached entries
func (s *StudentPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := s.getDB(tx)
	if err := db.WithContext(ctx).Delete(&models.Student{}, id).Error; err != nil {
		return handleDBError(err, "delete student")
	}

	cache.InvalidateStudentCache(ctx, s.cacheManager, fmt.Sprintf("%d", id))
	return nil
}

// List returns the roster ordered by class then roll number
func (s *StudentPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	db := s.getDB(tx)
	var students []*models.Student
	var total int64

	query := db.WithContext(ctx).Model(&models.Student{})
	query = s.applyStudentFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count students")
	}

	sortColumns := map[string]string{
		"class":      "class",
		"roll_no":    "roll_no",
		"name":       "name",
		"created_at": "created_at",
		"id":         "id",
	}
	if filters.SortBy == "" {
		// Roster default: class sections, then roll order within each
		query = query.Order("class ASC, roll_no ASC")
	} else {
		query = applyPaginationAndSorting(query, 0, 0, filters.SortBy, filters.SortOrder, sortColumns, "class")
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&students).Error; err != nil {
		return nil, 0, handleDBError(err, "list students")
	}

	return students, total, nil
}

// ExistsByClassRoll checks whether a student already holds the (class, rollNo) pair
func (s *StudentPostgreSQL) ExistsByClassRoll(ctx context.Context, tx *gorm.DB, class, rollNo string) (bool, error) {
	db := s.getDB(tx)
	var count int64

	if err := db.WithContext(ctx).
		Model(&models.Student{}).
		Where("class = ? AND roll_no = ?", class, rollNo).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check student exists")
	}

	return count > 0, nil
}

// GetRosterStats aggregates per-class head counts and account coverage
func (s *StudentPostgreSQL) GetRosterStats(ctx context.Context, tx *gorm.DB) (*repositories.RosterStats, error) {
	db := s.getDB(tx)
	stats := &repositories.RosterStats{
		StudentsByClass: make(map[string]int),
	}

	type classCount struct {
		Class string
		Count int
	}
	var rows []classCount

	if err := db.WithContext(ctx).
		Model(&models.Student{}).
		Select("class, count(*) as count").
		Group("class").
		Scan(&rows).Error; err != nil {
		return nil, handleDBError(err, "count students by class")
	}

	for _, row := range rows {
		stats.StudentsByClass[row.Class] = row.Count
		stats.TotalStudents += row.Count
	}

	var withAccount int64
	if err := db.WithContext(ctx).
		Model(&models.Student{}).
		Where("password_hash IS NOT NULL AND password_hash <> ''").
		Count(&withAccount).Error; err != nil {
		return nil, handleDBError(err, "count students with account")
	}

	stats.WithAccount = int(withAccount)
	stats.WithoutAccount = stats.TotalStudents - stats.WithAccount

	return stats, nil
}

func (s *StudentPostgreSQL) applyStudentFilters(query *gorm.DB, filters repositories.StudentFilters) *gorm.DB {
	if filters.Class != nil {
		query = query.Where("class = ?", *filters.Class)
	}
	if filters.HasAccount != nil {
		if *filters.HasAccount {
			query = query.Where("password_hash IS NOT NULL AND password_hash <> ''")
		} else {
			query = query.Where("password_hash IS NULL OR password_hash = ''")
		}
	}
	return query
}
