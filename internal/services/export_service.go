package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jrc-public-school/school-service/internal/models"
	"github.com/jrc-public-school/school-service/internal/repositories"
	"github.com/jrc-public-school/school-service/internal/validator"
)

type exportService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewExportService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) ExportService {
	return &exportService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

// ExportStudents builds an xlsx roster sheet, optionally limited to one class
func (s *exportService) ExportStudents(ctx context.Context, classFilter *string) ([]byte, string, error) {
	if classFilter != nil && !models.IsValidClass(*classFilter) {
		return nil, "", NewValidationError("class", "is not a recognised class", *classFilter)
	}

	students, _, err := s.repo.Student().List(ctx, nil, repositories.StudentFilters{Class: classFilter})
	if err != nil {
		return nil, "", fmt.Errorf("failed to list students for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Students"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []string{"Name", "Class", "Roll No", "Account", "Registered"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, student := range students {
		account := "no"
		if student.HasAccount() {
			account = "yes"
		}
		values := []interface{}{
			student.Name,
			student.Class,
			student.RollNo,
			account,
			student.CreatedAt.Format("2006-01-02"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, "", fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 30); err != nil {
		return nil, "", fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "E", 16); err != nil {
		return nil, "", fmt.Errorf("failed to set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to serialize workbook: %w", err)
	}

	filename := fmt.Sprintf("students-%s.xlsx", time.Now().Format("2006-01-02"))
	if classFilter != nil {
		filename = fmt.Sprintf("students-%s-%s.xlsx", *classFilter, time.Now().Format("2006-01-02"))
	}

	s.logger.InfoContext(ctx, "Student roster exported",
		"count", len(students),
		"filename", filename)

	return buf.Bytes(), filename, nil
}
