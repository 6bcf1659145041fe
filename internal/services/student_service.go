package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"gorm.io/gorm"

	"github.com/jrc-public-school/school-service/internal/auth"
	"github.com/jrc-public-school/school-service/internal/models"
	"github.com/jrc-public-school/school-service/internal/repositories"
	"github.com/jrc-public-school/school-service/internal/validator"
)

type studentService struct {
	repo         repositories.Repository
	db           *gorm.DB
	logger       *slog.Logger
	validator    *validator.Validator
	tokens       *auth.TokenManager
	notification NotificationEventService
}

func NewStudentService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, tokens *auth.TokenManager, notification NotificationEventService) StudentService {
	return &studentService{
		repo:         repo,
		db:           db,
		logger:       logger,
		validator:    v,
		tokens:       tokens,
		notification: notification,
	}
}

// ===== TEACHER-SIDE DIRECTORY MANAGEMENT =====

// Register creates a credential-less student record. The existence
// pre-check gives a clean conflict for the common case; the database
// unique index on (class, roll_no) stays the arbiter for concurrent
// registrations.
func (s *studentService) Register(ctx context.Context, req *RegisterStudentRequest) (*StudentResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationError(errs[0].Field, errs[0].Message, errs[0].Value)
	}

	exists, err := s.repo.Student().ExistsByClassRoll(ctx, nil, req.Class, req.RollNo)
	if err != nil {
		return nil, fmt.Errorf("failed to check student exists: %w", err)
	}
	if exists {
		return nil, ErrDuplicateStudent
	}

	student := &models.Student{
		Name:   req.Name,
		Class:  req.Class,
		RollNo: req.RollNo,
	}

	if err := s.repo.Student().Create(ctx, nil, student); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateStudent
		}
		return nil, fmt.Errorf("failed to register student: %w", err)
	}

	s.logger.InfoContext(ctx, "Student registered",
		"student_id", student.ID,
		"class", student.Class,
		"roll_no", student.RollNo)

	s.notification.StudentRegistered(ctx, student)

	return toStudentResponse(student), nil
}

// ResetPassword overwrites the student credential unconditionally
func (s *studentService) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return NewValidationError(errs[0].Field, errs[0].Message, errs[0].Value)
	}

	student, err := s.repo.Student().GetByID(ctx, nil, req.StudentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrStudentNotFound
		}
		return fmt.Errorf("failed to get student: %w", err)
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	student.PasswordHash = &hash
	if err := s.repo.Student().Update(ctx, nil, student); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	s.logger.InfoContext(ctx, "Student password reset", "student_id", student.ID)

	return nil
}

// Delete removes the student and all owned results and fees in one
// transaction, so no window exists where dependents reference a
// deleted student.
func (s *studentService) Delete(ctx context.Context, studentID uint) error {
	var deleted *models.Student

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		student, err := txRepo.Student().GetByID(ctx, nil, studentID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrStudentNotFound
			}
			return fmt.Errorf("failed to get student: %w", err)
		}

		if err := txRepo.Result().DeleteByStudent(ctx, nil, studentID); err != nil {
			return err
		}
		if err := txRepo.Fee().DeleteByStudent(ctx, nil, studentID); err != nil {
			return err
		}
		if err := txRepo.Student().Delete(ctx, nil, studentID); err != nil {
			return err
		}

		deleted = student
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Student deleted with academic records",
		"student_id", studentID,
		"class", deleted.Class,
		"roll_no", deleted.RollNo)

	s.notification.StudentDeleted(ctx, deleted)

	return nil
}

// List returns the roster ordered by class and roll number
func (s *studentService) List(ctx context.Context, filters repositories.StudentFilters) (*StudentListResponse, error) {
	students, total, err := s.repo.Student().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	responses := make([]*StudentResponse, len(students))
	for i, student := range students {
		responses[i] = toStudentResponse(student)
	}

	return &StudentListResponse{
		Students: responses,
		Total:    total,
	}, nil
}

// GetRosterStats aggregates per-class head counts and account coverage
func (s *studentService) GetRosterStats(ctx context.Context) (*repositories.RosterStats, error) {
	stats, err := s.repo.Student().GetRosterStats(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster stats: %w", err)
	}
	return stats, nil
}

// ===== STUDENT-SIDE ACCOUNT FLOWS =====

// SelfRegister creates or claims a student account. A credential-less
// record for the same (class, rollNo) is claimed and keeps its registered
// name; a record that already has a credential conflicts.
func (s *studentService) SelfRegister(ctx context.Context, req *SelfRegisterRequest) (*StudentAuthResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationError(errs[0].Field, errs[0].Message, errs[0].Value)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Student().GetByClassRoll(ctx, nil, req.Class, req.RollNo)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to look up student: %w", err)
	}

	var student *models.Student
	if existing != nil {
		if existing.HasAccount() {
			return nil, ErrAccountAlreadyExists
		}

		existing.PasswordHash = &hash
		if err := s.repo.Student().Update(ctx, nil, existing); err != nil {
			return nil, fmt.Errorf("failed to claim student record: %w", err)
		}
		student = existing

		s.logger.InfoContext(ctx, "Student claimed existing record",
			"student_id", student.ID,
			"class", student.Class,
			"roll_no", student.RollNo)
	} else {
		student = &models.Student{
			Name:         req.Name,
			Class:        req.Class,
			RollNo:       req.RollNo,
			PasswordHash: &hash,
		}
		if err := s.repo.Student().Create(ctx, nil, student); err != nil {
			if repositories.IsDuplicateKeyError(err) {
				return nil, ErrDuplicateStudent
			}
			return nil, fmt.Errorf("failed to self-register student: %w", err)
		}

		s.logger.InfoContext(ctx, "Student self-registered",
			"student_id", student.ID,
			"class", student.Class,
			"roll_no", student.RollNo)

		s.notification.StudentRegistered(ctx, student)
	}

	return s.issueStudentSession(student)
}

// Login authenticates a student. Unknown student, credential-less record
// and wrong password all fail identically.
func (s *studentService) Login(ctx context.Context, req *StudentLoginRequest) (*StudentAuthResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationError(errs[0].Field, errs[0].Message, errs[0].Value)
	}

	student, err := s.repo.Student().GetByClassRoll(ctx, nil, req.Class, req.RollNo)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up student: %w", err)
	}

	if !student.HasAccount() || !auth.CheckPassword(*student.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	s.logger.InfoContext(ctx, "Student logged in", "student_id", student.ID)

	return s.issueStudentSession(student)
}

// GetByID returns a student profile. A student actor may only read itself.
func (s *studentService) GetByID(ctx context.Context, studentID uint, actor Actor) (*StudentResponse, error) {
	if !actor.IsTeacher() && actor.StudentID != studentID {
		return nil, ErrStudentAccessDenied
	}

	student, err := s.repo.Student().GetByID(ctx, nil, studentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	return toStudentResponse(student), nil
}

// ===== HELPERS =====

func (s *studentService) issueStudentSession(student *models.Student) (*StudentAuthResponse, error) {
	token, expiresAt, err := s.tokens.IssueStudentToken(strconv.FormatUint(uint64(student.ID), 10))
	if err != nil {
		return nil, err
	}

	return &StudentAuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Student:   toStudentResponse(student),
	}, nil
}

func toStudentResponse(student *models.Student) *StudentResponse {
	return &StudentResponse{
		ID:         student.ID,
		Name:       student.Name,
		Class:      student.Class,
		RollNo:     student.RollNo,
		HasAccount: student.HasAccount(),
		CreatedAt:  student.CreatedAt,
	}
}
