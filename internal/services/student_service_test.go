package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jrc-public-school/school-service/internal/auth"
	"github.com/jrc-public-school/school-service/internal/events"
	"github.com/jrc-public-school/school-service/internal/repositories"
	"github.com/jrc-public-school/school-service/internal/validator"
)

func newTestStudentService(repo *mockRepository) (StudentService, *events.MockEventPublisher) {
	logger := newTestLogger()
	v := validator.New()
	publisher := events.NewMockEventPublisher(logger)
	notification := NewNotificationEventService(publisher, logger)
	tokens := auth.NewTokenManager("test-secret", 12*time.Hour, 30*24*time.Hour)
	return NewStudentService(repo, nil, logger, v, tokens, notification), publisher
}

func TestStudentService_Register(t *testing.T) {
	repo := newMockRepository()
	service, publisher := newTestStudentService(repo)
	ctx := context.Background()

	student, err := service.Register(ctx, &RegisterStudentRequest{
		Name:   "Asha Kumari",
		Class:  "5",
		RollNo: "12",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if student.ID == 0 {
		t.Error("expected a persisted ID")
	}
	if student.HasAccount {
		t.Error("teacher-registered student must not have an account")
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventStudentRegistered {
		t.Errorf("expected one %s event, got %+v", events.EventStudentRegistered, published)
	}
}

func TestStudentService_Register_Duplicate(t *testing.T) {
	repo := newMockRepository()
	service, _ := newTestStudentService(repo)
	ctx := context.Background()

	req := &RegisterStudentRequest{Name: "Asha Kumari", Class: "5", RollNo: "12"}
	if _, err := service.Register(ctx, req); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := service.Register(ctx, &RegisterStudentRequest{Name: "Someone Else", Class: "5", RollNo: "12"})
	if !errors.Is(err, ErrDuplicateStudent) {
		t.Errorf("Register() error = %v, want ErrDuplicateStudent", err)
	}

	// Same roll number in another class is fine.
	if _, err := service.Register(ctx, &RegisterStudentRequest{Name: "Someone Else", Class: "6", RollNo: "12"}); err != nil {
		t.Errorf("Register() in other class error = %v", err)
	}
}

func TestStudentService_Register_InvalidClass(t *testing.T) {
	repo := newMockRepository()
	service, _ := newTestStudentService(repo)

	_, err := service.Register(context.Background(), &RegisterStudentRequest{
		Name:   "Asha Kumari",
		Class:  "13",
		RollNo: "12",
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("Register() error = %v, want ErrValidationFailed", err)
	}
}

func TestStudentService_SelfRegister_ClaimsExistingRecord(t *testing.T) {
	repo := newMockRepository()
	service, _ := newTestStudentService(repo)
	ctx := context.Background()

	registered, err := service.Register(ctx, &RegisterStudentRequest{
		Name:   "Asha Kumari",
		Class:  "5",
		RollNo: "12",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	resp, err := service.SelfRegister(ctx, &SelfRegisterRequest{
		Name:            "A. Kumari",
		Class:           "5",
		RollNo:          "12",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("SelfRegister() error = %v", err)
	}
	if resp.Student.ID != registered.ID {
		t.Errorf("claimed record ID = %d, want %d", resp.Student.ID, registered.ID)
	}
	// The claimed record keeps the name the teacher registered it under.
	if resp.Student.Name != "Asha Kumari" {
		t.Errorf("claimed record Name = %q, want the registered name", resp.Student.Name)
	}
	if !resp.Student.HasAccount {
		t.Error("claimed record should have an account")
	}
	if resp.Token == "" {
		t.Error("expected a session token")
	}
}

func TestStudentService_SelfRegister_ConflictsWithClaimedRecord(t *testing.T) {
	repo := newMockRepository()
	service, _ := newTestStudentService(repo)
	ctx := context.Background()

	req := &SelfRegisterRequest{
		Name:            "Asha Kumari",
		Class:           "5",
		RollNo:          "12",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
	if _, err := service.SelfRegister(ctx, req); err != nil {
		t.Fatalf("first SelfRegister() error = %v", err)
	}

	_, err := service.SelfRegister(ctx, req)
	if !errors.Is(err, ErrAccountAlreadyExists) {
		t.Errorf("SelfRegister() error = %v, want ErrAccountAlreadyExists", err)
	}
}

func TestStudentService_SelfRegister_CreatesFreshRecord(t *testing.T) {
	repo := newMockRepository()
	service, _ := newTestStudentService(repo)

	resp, err := service.SelfRegister(context.Background(), &SelfRegisterRequest{
		Name:            "Ravi Prakash",
		Class:           "10",
		RollNo:          "7",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("SelfRegister() error = %v", err)
	}
	if resp.Student.Name != "Ravi Prakash" {
		t.Errorf("Name = %q, want the submitted name", resp.Student.Name)
	}
	if !resp.Student.HasAccount {
		t.Error("fresh record should have an account")
	}
}

func TestStudentService_SelfRegister_PasswordMismatch(t *testing.T) {
	repo := newMockRepository()
	service, _ := newTestStudentService(repo)

	_, err := service.SelfRegister(context.Background(), &SelfRegisterRequest{
		Name:            "Ravi Prakash",
		Class:           "10",
		RollNo:          "7",
		Password:        "secret1",
		ConfirmPassword: "secret2",
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("SelfRegister() error = %v, want ErrValidationFailed", err)
	}
}

func TestStudentService_Login(t *testing.T) {
	repo := newMockRepository()
	service, _ := newTestStudentService(repo)
	ctx := context.Background()

	if _, err := service.SelfRegister(ctx, &SelfRegisterRequest{
		Name:            "Asha Kumari",
		Class:           "5",
		RollNo:          "12",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}); err != nil {
		t.Fatalf("SelfRegister() error = %v", err)
	}

	resp, err := service.Login(ctx, &StudentLoginRequest{Class: "5", RollNo: "12", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a session token")
	}
}

// Unknown student, credential-less record and wrong password must all
// fail with the same error so clients cannot enumerate the directory.
func TestStudentService_Login_UniformFailure(t *testing.T) {
	repo := newMockRepository()
	service, _ := newTestStudentService(repo)
	ctx := context.Background()

	// Credential-less record registered by the teacher.
	if _, err := service.Register(ctx, &RegisterStudentRequest{Name: "Asha Kumari", Class: "5", RollNo: "12"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	// Record with a credential.
	if _, err := service.SelfRegister(ctx, &SelfRegisterRequest{
		Name: "Ravi Prakash", Class: "10", RollNo: "7",
		Password: "secret1", ConfirmPassword: "secret1",
	}); err != nil {
		t.Fatalf("SelfRegister() error = %v", err)
	}

	tests := []struct {
		name string
		req  *StudentLoginRequest
	}{
		{name: "unknown student", req: &StudentLoginRequest{Class: "8", RollNo: "99", Password: "secret1"}},
		{name: "record without account", req: &StudentLoginRequest{Class: "5", RollNo: "12", Password: "secret1"}},
		{name: "wrong password", req: &StudentLoginRequest{Class: "10", RollNo: "7", Password: "wrong--"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(ctx, tt.req)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestStudentService_Delete_RemovesAcademicRecords(t *testing.T) {
	repo := newMockRepository()
	service, publisher := newTestStudentService(repo)
	ctx := context.Background()

	student, err := service.Register(ctx, &RegisterStudentRequest{Name: "Asha Kumari", Class: "5", RollNo: "12"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	academic := NewAcademicService(repo, nil, newTestLogger(), validator.New(),
		NewNotificationEventService(events.NewMockEventPublisher(newTestLogger()), newTestLogger()))

	total, obtained := 100.0, 85.0
	if _, err := academic.AddResult(ctx, &AddResultRequest{
		StudentID: student.ID, ExamName: "Half Yearly", TotalMarks: &total, ObtainedMarks: &obtained,
	}); err != nil {
		t.Fatalf("AddResult() error = %v", err)
	}
	if _, err := academic.AddFee(ctx, &AddFeeRequest{StudentID: student.ID, Amount: 5000}); err != nil {
		t.Fatalf("AddFee() error = %v", err)
	}

	publisher.ClearEvents()
	if err := service.Delete(ctx, student.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := repo.Student().GetByID(ctx, nil, student.ID); err == nil {
		t.Error("student should be gone")
	}
	if results, _ := repo.Result().ListByStudent(ctx, nil, student.ID); len(results) != 0 {
		t.Errorf("results remaining = %d, want 0", len(results))
	}
	if fees, _ := repo.Fee().ListByStudent(ctx, nil, student.ID); len(fees) != 0 {
		t.Errorf("fees remaining = %d, want 0", len(fees))
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventStudentDeleted {
		t.Errorf("expected one %s event, got %+v", events.EventStudentDeleted, published)
	}
}

func TestStudentService_Delete_NotFound(t *testing.T) {
	repo := newMockRepository()
	service, _ := newTestStudentService(repo)

	err := service.Delete(context.Background(), 42)
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("Delete() error = %v, want ErrStudentNotFound", err)
	}
}

func TestStudentService_GetByID_Scoping(t *testing.T) {
	repo := newMockRepository()
	service, _ := newTestStudentService(repo)
	ctx := context.Background()

	student, err := service.Register(ctx, &RegisterStudentRequest{Name: "Asha Kumari", Class: "5", RollNo: "12"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	teacher := Actor{Role: auth.RoleTeacher}
	self := Actor{Role: auth.RoleStudent, StudentID: student.ID}
	other := Actor{Role: auth.RoleStudent, StudentID: student.ID + 1}

	if _, err := service.GetByID(ctx, student.ID, teacher); err != nil {
		t.Errorf("teacher GetByID() error = %v", err)
	}
	if _, err := service.GetByID(ctx, student.ID, self); err != nil {
		t.Errorf("own GetByID() error = %v", err)
	}
	if _, err := service.GetByID(ctx, student.ID, other); !errors.Is(err, ErrStudentAccessDenied) {
		t.Errorf("cross-student GetByID() error = %v, want ErrStudentAccessDenied", err)
	}
}

func TestStudentService_List_FilterByClass(t *testing.T) {
	repo := newMockRepository()
	service, _ := newTestStudentService(repo)
	ctx := context.Background()

	for _, s := range []RegisterStudentRequest{
		{Name: "A", Class: "5", RollNo: "1"},
		{Name: "B", Class: "5", RollNo: "2"},
		{Name: "C", Class: "6", RollNo: "1"},
	} {
		req := s
		if _, err := service.Register(ctx, &req); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
	}

	class := "5"
	resp, err := service.List(ctx, repositories.StudentFilters{Class: &class})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("Total = %d, want 2", resp.Total)
	}
}

func TestStudentService_GetRosterStats(t *testing.T) {
	repo := newMockRepository()
	service, _ := newTestStudentService(repo)
	ctx := context.Background()

	for _, s := range []RegisterStudentRequest{
		{Name: "A", Class: "5", RollNo: "1"},
		{Name: "B", Class: "5", RollNo: "2"},
		{Name: "C", Class: "6", RollNo: "1"},
	} {
		req := s
		if _, err := service.Register(ctx, &req); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
	}
	if _, err := service.SelfRegister(ctx, &SelfRegisterRequest{
		Name: "A", Class: "5", RollNo: "1", Password: "secret123", ConfirmPassword: "secret123",
	}); err != nil {
		t.Fatalf("SelfRegister() error = %v", err)
	}

	stats, err := service.GetRosterStats(ctx)
	if err != nil {
		t.Fatalf("GetRosterStats() error = %v", err)
	}
	if stats.TotalStudents != 3 {
		t.Errorf("TotalStudents = %d, want 3", stats.TotalStudents)
	}
	if stats.StudentsByClass["5"] != 2 {
		t.Errorf(`StudentsByClass["5"] = %d, want 2`, stats.StudentsByClass["5"])
	}
	if stats.WithAccount != 1 || stats.WithoutAccount != 2 {
		t.Errorf("account coverage = %d/%d, want 1 with and 2 without", stats.WithAccount, stats.WithoutAccount)
	}
}
