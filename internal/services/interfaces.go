package services

import (
	"context"
	"time"

	"github.com/jrc-public-school/school-service/internal/auth"
	"github.com/jrc-public-school/school-service/internal/models"
	"github.com/jrc-public-school/school-service/internal/repositories"
)

// ===== REQUEST/RESPONSE DTOs =====

// Actor is the authenticated identity a request runs as, extracted from
// the session token by the auth middleware
type Actor struct {
	Role      auth.Role
	StudentID uint
}

// IsTeacher reports whether the actor holds the teacher role
func (a Actor) IsTeacher() bool {
	return a.Role == auth.RoleTeacher
}

type TeacherLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TeacherAuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type RegisterStudentRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	Class  string `json:"class" validate:"required,class_level"`
	RollNo string `json:"rollNo" validate:"required,max=20"`
}

type SelfRegisterRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Class           string `json:"class" validate:"required,class_level"`
	RollNo          string `json:"rollNo" validate:"required,max=20"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type StudentLoginRequest struct {
	Class    string `json:"class" validate:"required"`
	RollNo   string `json:"rollNo" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordRequest struct {
	StudentID   uint   `json:"studentId" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type StudentResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Class      string    `json:"class"`
	RollNo     string    `json:"rollNo"`
	HasAccount bool      `json:"hasAccount"`
	CreatedAt  time.Time `json:"createdAt"`
}

type StudentAuthResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	Student   *StudentResponse `json:"student"`
}

type StudentListResponse struct {
	Students []*StudentResponse `json:"students"`
	Total    int64              `json:"total"`
}

type SubjectMarkRequest struct {
	Name          string   `json:"name" validate:"required,max=100"`
	ObtainedMarks *float64 `json:"obtainedMarks" validate:"omitempty,gte=0"`
	MaxMarks      *float64 `json:"maxMarks" validate:"omitempty,gte=0"`
}

type AddResultRequest struct {
	StudentID     uint                 `json:"studentId" validate:"required"`
	ExamName      string               `json:"examName" validate:"required,max=200"`
	Session       string               `json:"session" validate:"omitempty,max=50"`
	TotalMarks    *float64             `json:"totalMarks" validate:"omitempty,gte=0"`
	ObtainedMarks *float64             `json:"obtainedMarks" validate:"omitempty,gte=0"`
	Subjects      []SubjectMarkRequest `json:"subjects" validate:"omitempty,dive"`
	Remarks       *string              `json:"remarks" validate:"omitempty,max=1000"`
}

type AddFeeRequest struct {
	StudentID   uint       `json:"studentId" validate:"required"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
	Paid        float64    `json:"paid" validate:"omitempty,gte=0"`
	Session     string     `json:"session" validate:"omitempty,max=50"`
	Description string     `json:"description" validate:"omitempty,max=200"`
	DueDate     *time.Time `json:"dueDate"`
}

type SubmitAdmissionRequest struct {
	StudentName   string  `json:"studentName" validate:"required,max=100"`
	ClassApplying string  `json:"classApplying" validate:"required,max=50"`
	ParentMobile  string  `json:"parentMobile" validate:"required,mobile"`
	Message       *string `json:"message" validate:"omitempty,max=2000"`
}

type UpdateAdmissionStatusRequest struct {
	Status models.AdmissionStatus `json:"status" validate:"required,admission_status"`
	Notes  *string                `json:"notes" validate:"omitempty,max=2000"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type AdmissionListResponse struct {
	Admissions []*models.Admission `json:"admissions"`
	Pagination Pagination          `json:"pagination"`
}

type CreateNewsRequest struct {
	Title   string     `json:"title" validate:"required,max=200"`
	Content string     `json:"content" validate:"required"`
	Type    string     `json:"type" validate:"omitempty,news_type"`
	Date    *time.Time `json:"date"`
}

type UpdateNewsRequest struct {
	Title   *string    `json:"title" validate:"omitempty,max=200"`
	Content *string    `json:"content"`
	Type    *string    `json:"type" validate:"omitempty,news_type"`
	Date    *time.Time `json:"date"`
}

type FeeCalculateRequest struct {
	Class     string `json:"class" validate:"required"`
	Transport string `json:"transport" validate:"omitempty"`
}

type FeeBreakdown struct {
	Tuition      float64 `json:"tuition"`
	OtherCharges float64 `json:"otherCharges"`
}

type FeeCalculation struct {
	Class        string       `json:"class"`
	ClassGroup   string       `json:"classGroup"`
	BaseFee      float64      `json:"baseFee"`
	TransportFee float64      `json:"transportFee"`
	Total        float64      `json:"total"`
	Breakdown    FeeBreakdown `json:"breakdown"`
}

type FeeStructureEntry struct {
	Group   string  `json:"group"`
	Classes string  `json:"classes"`
	Annual  float64 `json:"annualFee"`
}

type FeeStructureResponse struct {
	Schedule          []FeeStructureEntry `json:"schedule"`
	Transport         map[string]float64  `json:"transport"`
	AdditionalCharges []string            `json:"additionalCharges"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	// TeacherLogin validates the static teacher credential and issues a
	// 12-hour teacher session token
	TeacherLogin(ctx context.Context, req *TeacherLoginRequest) (*TeacherAuthResponse, error)
}

type StudentService interface {
	// Teacher-side directory management
	Register(ctx context.Context, req *RegisterStudentRequest) (*StudentResponse, error)
	ResetPassword(ctx context.Context, req *ResetPasswordRequest) error
	Delete(ctx context.Context, studentID uint) error
	List(ctx context.Context, filters repositories.StudentFilters) (*StudentListResponse, error)
	GetRosterStats(ctx context.Context) (*repositories.RosterStats, error)

	// Student-side account flows
	SelfRegister(ctx context.Context, req *SelfRegisterRequest) (*StudentAuthResponse, error)
	Login(ctx context.Context, req *StudentLoginRequest) (*StudentAuthResponse, error)

	// Profile lookup (scoped by actor)
	GetByID(ctx context.Context, studentID uint, actor Actor) (*StudentResponse, error)
}

type AcademicService interface {
	// Teacher-only appends
	AddResult(ctx context.Context, req *AddResultRequest) (*models.StudentResult, error)
	AddFee(ctx context.Context, req *AddFeeRequest) (*models.StudentFee, error)

	// Reads scoped by actor: a student token only reaches its own records
	ListResults(ctx context.Context, studentID uint, actor Actor) ([]*models.StudentResult, error)
	ListFees(ctx context.Context, studentID uint, actor Actor) ([]*models.StudentFee, error)
}

type AdmissionService interface {
	Submit(ctx context.Context, req *SubmitAdmissionRequest) (*models.Admission, error)
	List(ctx context.Context, page, limit int, status *models.AdmissionStatus) (*AdmissionListResponse, error)
	GetByID(ctx context.Context, id uint) (*models.Admission, error)
	UpdateStatus(ctx context.Context, id uint, req *UpdateAdmissionStatusRequest) (*models.Admission, error)
	Delete(ctx context.Context, id uint) error
	GetStats(ctx context.Context) (*repositories.AdmissionStats, error)
}

type NewsService interface {
	ListActive(ctx context.Context) ([]*models.NewsItem, error)
	Create(ctx context.Context, req *CreateNewsRequest) (*models.NewsItem, error)
	Update(ctx context.Context, id uint, req *UpdateNewsRequest) (*models.NewsItem, error)
	Delete(ctx context.Context, id uint) error
}

type FeeService interface {
	Structure() *FeeStructureResponse
	Calculate(req *FeeCalculateRequest) (*FeeCalculation, error)
}

type ExportService interface {
	// ExportStudents builds an xlsx roster, optionally limited to one class
	ExportStudents(ctx context.Context, classFilter *string) ([]byte, string, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	// Core service getters
	Auth() AuthService
	Student() StudentService
	Academic() AcademicService
	Admission() AdmissionService
	News() NewsService
	Fee() FeeService
	Export() ExportService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
