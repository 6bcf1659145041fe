package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/jrc-public-school/school-service/internal/models"
	"github.com/jrc-public-school/school-service/internal/validator"
)

func TestExportService_ExportStudents(t *testing.T) {
	repo := newMockRepository()
	ctx := context.Background()

	hash := "x"
	for _, s := range []*models.Student{
		{Name: "Asha Kumari", Class: "5", RollNo: "12", PasswordHash: &hash},
		{Name: "Ravi Prakash", Class: "10", RollNo: "7"},
	} {
		if err := repo.Student().Create(ctx, nil, s); err != nil {
			t.Fatalf("seed student: %v", err)
		}
	}

	service := NewExportService(repo, newTestLogger(), validator.New())

	content, filename, err := service.ExportStudents(ctx, nil)
	if err != nil {
		t.Fatalf("ExportStudents() error = %v", err)
	}
	if !strings.HasPrefix(filename, "students-") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("filename = %q, want students-<date>.xlsx", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Students")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2 students", len(rows))
	}
	if rows[0][0] != "Name" || rows[0][3] != "Account" {
		t.Errorf("header row = %v", rows[0])
	}
	if rows[1][0] != "Asha Kumari" {
		t.Errorf("first student = %q, want Asha Kumari", rows[1][0])
	}
}

func TestExportService_ExportStudents_ClassFilter(t *testing.T) {
	repo := newMockRepository()
	ctx := context.Background()

	for _, s := range []*models.Student{
		{Name: "Asha Kumari", Class: "5", RollNo: "12"},
		{Name: "Ravi Prakash", Class: "10", RollNo: "7"},
	} {
		if err := repo.Student().Create(ctx, nil, s); err != nil {
			t.Fatalf("seed student: %v", err)
		}
	}

	service := NewExportService(repo, newTestLogger(), validator.New())

	class := "5"
	content, filename, err := service.ExportStudents(ctx, &class)
	if err != nil {
		t.Fatalf("ExportStudents() error = %v", err)
	}
	if !strings.Contains(filename, "-5-") {
		t.Errorf("filename = %q, want the class in the name", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Students")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("rows = %d, want header + 1 student", len(rows))
	}
}

func TestExportService_ExportStudents_InvalidClass(t *testing.T) {
	repo := newMockRepository()
	service := NewExportService(repo, newTestLogger(), validator.New())

	class := "13"
	_, _, err := service.ExportStudents(context.Background(), &class)
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("ExportStudents() error = %v, want ErrValidationFailed", err)
	}
}
