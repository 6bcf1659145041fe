package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/jrc-public-school/school-service/internal/models"
	"github.com/jrc-public-school/school-service/internal/repositories"
	"github.com/jrc-public-school/school-service/internal/validator"
)

// Default fee description when none is supplied, carried from the
// school's original records ("fees" in Hindi)
const defaultFeeDescription = "फीस"

type academicService struct {
	repo         repositories.Repository
	db           *gorm.DB
	logger       *slog.Logger
	validator    *validator.Validator
	notification NotificationEventService
}

func NewAcademicService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, notification NotificationEventService) AcademicService {
	return &academicService{
		repo:         repo,
		db:           db,
		logger:       logger,
		validator:    v,
		notification: notification,
	}
}

// AddResult appends an exam result. Percentage, grade and pass/fail are
// derived here exactly once and persisted with the record; a result with
// missing marks stores nothing derived.
func (s *academicService) AddResult(ctx context.Context, req *AddResultRequest) (*models.StudentResult, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationError(errs[0].Field, errs[0].Message, errs[0].Value)
	}

	if _, err := s.repo.Student().GetByID(ctx, nil, req.StudentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	result := &models.StudentResult{
		StudentID:     req.StudentID,
		ExamName:      req.ExamName,
		Session:       req.Session,
		TotalMarks:    req.TotalMarks,
		ObtainedMarks: req.ObtainedMarks,
		Remarks:       req.Remarks,
	}

	for _, subject := range req.Subjects {
		result.Subjects = append(result.Subjects, models.SubjectMark{
			Name:          subject.Name,
			ObtainedMarks: subject.ObtainedMarks,
			MaxMarks:      subject.MaxMarks,
		})
	}

	if req.TotalMarks != nil && req.ObtainedMarks != nil && *req.TotalMarks > 0 {
		pct := Percentage(*req.ObtainedMarks, *req.TotalMarks)
		grade := LetterGrade(pct)
		passFail := PassFail(pct)

		result.Percentage = &pct
		result.Grade = &grade
		result.PassFail = &passFail
	}

	if err := s.repo.Result().Create(ctx, nil, result); err != nil {
		return nil, fmt.Errorf("failed to add result: %w", err)
	}

	s.logger.InfoContext(ctx, "Result added",
		"student_id", req.StudentID,
		"exam_name", req.ExamName,
		"result_id", result.ID)

	s.notification.ResultAdded(ctx, result)

	return result, nil
}

// AddFee appends a fee record with derived balance and status
func (s *academicService) AddFee(ctx context.Context, req *AddFeeRequest) (*models.StudentFee, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationError(errs[0].Field, errs[0].Message, errs[0].Value)
	}

	if _, err := s.repo.Student().GetByID(ctx, nil, req.StudentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	description := req.Description
	if description == "" {
		description = defaultFeeDescription
	}

	fee := &models.StudentFee{
		StudentID:   req.StudentID,
		Amount:      req.Amount,
		Paid:        req.Paid,
		Balance:     FeeBalance(req.Amount, req.Paid),
		Status:      FeeStatus(req.Amount, req.Paid),
		Session:     req.Session,
		Description: description,
		DueDate:     req.DueDate,
	}

	if err := s.repo.Fee().Create(ctx, nil, fee); err != nil {
		return nil, fmt.Errorf("failed to add fee: %w", err)
	}

	s.logger.InfoContext(ctx, "Fee added",
		"student_id", req.StudentID,
		"amount", req.Amount,
		"status", fee.Status,
		"fee_id", fee.ID)

	s.notification.FeeAdded(ctx, fee)

	return fee, nil
}

// ListResults returns a student's results in creation order. A student
// actor asking for another student's records is refused, not given an
// empty list. An unknown or deleted student id yields an empty list.
func (s *academicService) ListResults(ctx context.Context, studentID uint, actor Actor) ([]*models.StudentResult, error) {
	if err := s.checkReadAccess(studentID, actor); err != nil {
		return nil, err
	}

	results, err := s.repo.Result().ListByStudent(ctx, nil, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	return results, nil
}

// ListFees returns a student's fee records in creation order. An unknown
// or deleted student id yields an empty list.
func (s *academicService) ListFees(ctx context.Context, studentID uint, actor Actor) ([]*models.StudentFee, error) {
	if err := s.checkReadAccess(studentID, actor); err != nil {
		return nil, err
	}

	fees, err := s.repo.Fee().ListByStudent(ctx, nil, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fees: %w", err)
	}

	return fees, nil
}

func (s *academicService) checkReadAccess(studentID uint, actor Actor) error {
	if actor.IsTeacher() {
		return nil
	}
	if actor.StudentID != studentID {
		return ErrStudentAccessDenied
	}
	return nil
}
