package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/jrc-public-school/school-service/internal/models"
	"github.com/jrc-public-school/school-service/internal/repositories"
	"github.com/jrc-public-school/school-service/internal/validator"
)

type admissionService struct {
	repo         repositories.Repository
	db           *gorm.DB
	logger       *slog.Logger
	validator    *validator.Validator
	notification NotificationEventService
}

func NewAdmissionService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, notification NotificationEventService) AdmissionService {
	return &admissionService{
		repo:         repo,
		db:           db,
		logger:       logger,
		validator:    v,
		notification: notification,
	}
}

// Submit records a public admission enquiry at the start of the funnel
func (s *admissionService) Submit(ctx context.Context, req *SubmitAdmissionRequest) (*models.Admission, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationError(errs[0].Field, errs[0].Message, errs[0].Value)
	}

	admission := &models.Admission{
		StudentName:   req.StudentName,
		ClassApplying: req.ClassApplying,
		ParentMobile:  req.ParentMobile,
		Message:       req.Message,
		Status:        models.AdmissionPending,
		SubmittedAt:   time.Now(),
	}

	if err := s.repo.Admission().Create(ctx, nil, admission); err != nil {
		return nil, fmt.Errorf("failed to submit admission: %w", err)
	}

	s.logger.InfoContext(ctx, "Admission enquiry submitted",
		"admission_id", admission.ID,
		"class_applying", admission.ClassApplying)

	s.notification.AdmissionSubmitted(ctx, admission)

	return admission, nil
}

// List returns enquiries newest first with pagination metadata
func (s *admissionService) List(ctx context.Context, page, limit int, status *models.AdmissionStatus) (*AdmissionListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filters := repositories.AdmissionFilters{
		Status: status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	admissions, total, err := s.repo.Admission().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list admissions: %w", err)
	}

	pages := int((total + int64(limit) - 1) / int64(limit))

	return &AdmissionListResponse{
		Admissions: admissions,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

func (s *admissionService) GetByID(ctx context.Context, id uint) (*models.Admission, error) {
	admission, err := s.repo.Admission().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAdmissionNotFound
		}
		return nil, fmt.Errorf("failed to get admission: %w", err)
	}

	return admission, nil
}

// UpdateStatus moves an enquiry through the funnel. ContactedAt is set
// once, on the first transition into contacted, and never changed after.
func (s *admissionService) UpdateStatus(ctx context.Context, id uint, req *UpdateAdmissionStatusRequest) (*models.Admission, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationError(errs[0].Field, errs[0].Message, errs[0].Value)
	}

	admission, err := s.repo.Admission().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAdmissionNotFound
		}
		return nil, fmt.Errorf("failed to get admission: %w", err)
	}

	previousStatus := admission.Status
	admission.Status = req.Status
	if req.Notes != nil {
		admission.Notes = req.Notes
	}
	if req.Status == models.AdmissionContacted && admission.ContactedAt == nil {
		now := time.Now()
		admission.ContactedAt = &now
	}

	if err := s.repo.Admission().Update(ctx, nil, admission); err != nil {
		return nil, fmt.Errorf("failed to update admission status: %w", err)
	}

	s.logger.InfoContext(ctx, "Admission status updated",
		"admission_id", admission.ID,
		"from", previousStatus,
		"to", admission.Status)

	if previousStatus != admission.Status {
		s.notification.AdmissionStatusChanged(ctx, admission)
	}

	return admission, nil
}

func (s *admissionService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Admission().GetByID(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAdmissionNotFound
		}
		return fmt.Errorf("failed to get admission: %w", err)
	}

	if err := s.repo.Admission().Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete admission: %w", err)
	}

	s.logger.InfoContext(ctx, "Admission enquiry deleted", "admission_id", id)

	return nil
}

func (s *admissionService) GetStats(ctx context.Context) (*repositories.AdmissionStats, error) {
	stats, err := s.repo.Admission().GetStats(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get admission stats: %w", err)
	}
	return stats, nil
}
