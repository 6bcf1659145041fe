package services

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/jrc-public-school/school-service/internal/models"
	"github.com/jrc-public-school/school-service/internal/repositories"
)

// In-memory repository used by the service tests. Lookups return
// gorm.ErrRecordNotFound and duplicate creates return
// gorm.ErrDuplicatedKey so the error helpers behave as they do against
// a real database.

type mockRepository struct {
	students   *mockStudentRepo
	results    *mockResultRepo
	fees       *mockFeeRepo
	admissions *mockAdmissionRepo
	news       *mockNewsRepo
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		students:   &mockStudentRepo{students: map[uint]*models.Student{}},
		results:    &mockResultRepo{results: map[uint]*models.StudentResult{}},
		fees:       &mockFeeRepo{fees: map[uint]*models.StudentFee{}},
		admissions: &mockAdmissionRepo{admissions: map[uint]*models.Admission{}},
		news:       &mockNewsRepo{items: map[uint]*models.NewsItem{}},
	}
}

func (m *mockRepository) Student() repositories.StudentRepository     { return m.students }
func (m *mockRepository) Result() repositories.ResultRepository       { return m.results }
func (m *mockRepository) Fee() repositories.FeeRepository             { return m.fees }
func (m *mockRepository) Admission() repositories.AdmissionRepository { return m.admissions }
func (m *mockRepository) News() repositories.NewsRepository           { return m.news }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// ===== STUDENTS =====

type mockStudentRepo struct {
	students map[uint]*models.Student
	nextID   uint
}

func (r *mockStudentRepo) Create(ctx context.Context, tx *gorm.DB, student *models.Student) error {
	for _, existing := range r.students {
		if existing.Class == student.Class && existing.RollNo == student.RollNo {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	student.ID = r.nextID
	student.CreatedAt = time.Now()
	r.students[student.ID] = student
	return nil
}

func (r *mockStudentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Student, error) {
	student, ok := r.students[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return student, nil
}

func (r *mockStudentRepo) GetByClassRoll(ctx context.Context, tx *gorm.DB, class, rollNo string) (*models.Student, error) {
	for _, student := range r.students {
		if student.Class == class && student.RollNo == rollNo {
			return student, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockStudentRepo) Update(ctx context.Context, tx *gorm.DB, student *models.Student) error {
	if _, ok := r.students[student.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.students[student.ID] = student
	return nil
}

func (r *mockStudentRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if _, ok := r.students[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.students, id)
	return nil
}

func (r *mockStudentRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	var out []*models.Student
	for _, student := range r.students {
		if filters.Class != nil && student.Class != *filters.Class {
			continue
		}
		out = append(out, student)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *mockStudentRepo) ExistsByClassRoll(ctx context.Context, tx *gorm.DB, class, rollNo string) (bool, error) {
	_, err := r.GetByClassRoll(ctx, tx, class, rollNo)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *mockStudentRepo) GetRosterStats(ctx context.Context, tx *gorm.DB) (*repositories.RosterStats, error) {
	stats := &repositories.RosterStats{StudentsByClass: map[string]int{}}
	for _, student := range r.students {
		stats.TotalStudents++
		stats.StudentsByClass[student.Class]++
		if student.HasAccount() {
			stats.WithAccount++
		} else {
			stats.WithoutAccount++
		}
	}
	return stats, nil
}

// ===== RESULTS =====

type mockResultRepo struct {
	results map[uint]*models.StudentResult
	nextID  uint
}

func (r *mockResultRepo) Create(ctx context.Context, tx *gorm.DB, result *models.StudentResult) error {
	r.nextID++
	result.ID = r.nextID
	result.CreatedAt = time.Now()
	r.results[result.ID] = result
	return nil
}

func (r *mockResultRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.StudentResult, error) {
	result, ok := r.results[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return result, nil
}

func (r *mockResultRepo) ListByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.StudentResult, error) {
	var out []*models.StudentResult
	for _, result := range r.results {
		if result.StudentID == studentID {
			out = append(out, result)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *mockResultRepo) DeleteByStudent(ctx context.Context, tx *gorm.DB, studentID uint) error {
	for id, result := range r.results {
		if result.StudentID == studentID {
			delete(r.results, id)
		}
	}
	return nil
}

func (r *mockResultRepo) CountByStudent(ctx context.Context, tx *gorm.DB, studentID uint) (int64, error) {
	results, _ := r.ListByStudent(ctx, tx, studentID)
	return int64(len(results)), nil
}

// ===== FEES =====

type mockFeeRepo struct {
	fees   map[uint]*models.StudentFee
	nextID uint
}

func (r *mockFeeRepo) Create(ctx context.Context, tx *gorm.DB, fee *models.StudentFee) error {
	r.nextID++
	fee.ID = r.nextID
	fee.CreatedAt = time.Now()
	r.fees[fee.ID] = fee
	return nil
}

func (r *mockFeeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.StudentFee, error) {
	fee, ok := r.fees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return fee, nil
}

func (r *mockFeeRepo) ListByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.StudentFee, error) {
	var out []*models.StudentFee
	for _, fee := range r.fees {
		if fee.StudentID == studentID {
			out = append(out, fee)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *mockFeeRepo) DeleteByStudent(ctx context.Context, tx *gorm.DB, studentID uint) error {
	for id, fee := range r.fees {
		if fee.StudentID == studentID {
			delete(r.fees, id)
		}
	}
	return nil
}

func (r *mockFeeRepo) CountByStudent(ctx context.Context, tx *gorm.DB, studentID uint) (int64, error) {
	fees, _ := r.ListByStudent(ctx, tx, studentID)
	return int64(len(fees)), nil
}

// ===== ADMISSIONS =====

type mockAdmissionRepo struct {
	admissions map[uint]*models.Admission
	nextID     uint
}

func (r *mockAdmissionRepo) Create(ctx context.Context, tx *gorm.DB, admission *models.Admission) error {
	r.nextID++
	admission.ID = r.nextID
	r.admissions[admission.ID] = admission
	return nil
}

func (r *mockAdmissionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Admission, error) {
	admission, ok := r.admissions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return admission, nil
}

func (r *mockAdmissionRepo) Update(ctx context.Context, tx *gorm.DB, admission *models.Admission) error {
	if _, ok := r.admissions[admission.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.admissions[admission.ID] = admission
	return nil
}

func (r *mockAdmissionRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if _, ok := r.admissions[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.admissions, id)
	return nil
}

func (r *mockAdmissionRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.AdmissionFilters) ([]*models.Admission, int64, error) {
	var all []*models.Admission
	for _, admission := range r.admissions {
		if filters.Status != nil && admission.Status != *filters.Status {
			continue
		}
		all = append(all, admission)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := int64(len(all))
	if filters.Offset > 0 {
		if filters.Offset >= len(all) {
			all = nil
		} else {
			all = all[filters.Offset:]
		}
	}
	if filters.Limit > 0 && len(all) > filters.Limit {
		all = all[:filters.Limit]
	}
	return all, total, nil
}

func (r *mockAdmissionRepo) GetStats(ctx context.Context, tx *gorm.DB) (*repositories.AdmissionStats, error) {
	stats := &repositories.AdmissionStats{}
	for _, admission := range r.admissions {
		stats.Total++
		switch admission.Status {
		case models.AdmissionPending:
			stats.Pending++
		case models.AdmissionContacted:
			stats.Contacted++
		case models.AdmissionAdmitted:
			stats.Admitted++
		case models.AdmissionRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

// ===== NEWS =====

type mockNewsRepo struct {
	items  map[uint]*models.NewsItem
	nextID uint
}

func (r *mockNewsRepo) Create(ctx context.Context, tx *gorm.DB, item *models.NewsItem) error {
	r.nextID++
	item.ID = r.nextID
	item.CreatedAt = time.Now()
	r.items[item.ID] = item
	return nil
}

func (r *mockNewsRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.NewsItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *mockNewsRepo) Update(ctx context.Context, tx *gorm.DB, item *models.NewsItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[item.ID] = item
	return nil
}

func (r *mockNewsRepo) Deactivate(ctx context.Context, tx *gorm.DB, id uint) error {
	item, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.IsActive = false
	return nil
}

func (r *mockNewsRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.NewsFilters) ([]*models.NewsItem, int64, error) {
	var out []*models.NewsItem
	for _, item := range r.items {
		if filters.ActiveOnly && !item.IsActive {
			continue
		}
		if filters.Type != nil && item.Type != *filters.Type {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, int64(len(out)), nil
}

// ===== SHARED TEST FIXTURES =====

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}
