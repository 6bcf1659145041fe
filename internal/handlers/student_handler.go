package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrc-public-school/school-service/internal/services"
	"github.com/jrc-public-school/school-service/internal/utils"
)

// StudentHandler serves the student portal: account creation, login and
// read access to the student's own records.
type StudentHandler struct {
	BaseHandler
	studentService  services.StudentService
	academicService services.AcademicService
}

func NewStudentHandler(studentService services.StudentService, academicService services.AcademicService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler:     NewBaseHandler(logger),
		studentService:  studentService,
		academicService: academicService,
	}
}

// SelfRegister creates a student account, claiming an existing
// credential-less directory record when one matches.
func (h *StudentHandler) SelfRegister(c *gin.Context) {
	h.LogRequest(c, "Student self-registration")

	var req services.SelfRegisterRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.studentService.SelfRegister(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Registration successful",
		"token":     resp.Token,
		"expiresAt": resp.ExpiresAt,
		"student":   resp.Student,
	})
}

// Login authenticates a student by class, roll number and password.
func (h *StudentHandler) Login(c *gin.Context) {
	h.LogRequest(c, "Student login")

	var req services.StudentLoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.studentService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Login successful",
		"token":     resp.Token,
		"expiresAt": resp.ExpiresAt,
		"student":   resp.Student,
	})
}

// Me returns the authenticated student's own profile.
func (h *StudentHandler) Me(c *gin.Context) {
	h.LogRequest(c, "Getting student profile")

	actor, ok := GetActorFromContext(c)
	if !ok {
		h.respondError(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), actor.StudentID, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, "", student)
}

// MyResults returns the authenticated student's exam results.
func (h *StudentHandler) MyResults(c *gin.Context) {
	h.LogRequest(c, "Getting own results")

	actor, ok := GetActorFromContext(c)
	if !ok {
		h.respondError(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	results, err := h.academicService.ListResults(c.Request.Context(), actor.StudentID, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, "", results)
}

// MyFees returns the authenticated student's fee records.
func (h *StudentHandler) MyFees(c *gin.Context) {
	h.LogRequest(c, "Getting own fees")

	actor, ok := GetActorFromContext(c)
	if !ok {
		h.respondError(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	fees, err := h.academicService.ListFees(c.Request.Context(), actor.StudentID, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, "", fees)
}

func (h *StudentHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		h.respondError(c, http.StatusBadRequest, "Validation failed", err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		h.respondError(c, http.StatusUnauthorized, "Invalid credentials", nil)
	case errors.Is(err, services.ErrStudentAccessDenied), errors.Is(err, services.ErrForbidden):
		h.respondError(c, http.StatusForbidden, "Access denied", nil)
	case errors.Is(err, services.ErrStudentNotFound):
		h.respondError(c, http.StatusNotFound, "Student not found", nil)
	case errors.Is(err, services.ErrAccountAlreadyExists):
		h.respondError(c, http.StatusConflict, "Account already exists for this student", nil)
	case errors.Is(err, services.ErrDuplicateStudent):
		h.respondError(c, http.StatusConflict, "Student already exists for this class and roll number", nil)
	case errors.Is(err, services.ErrServiceUnavailable):
		h.LogError(c, err, "Database unavailable")
		h.respondError(c, http.StatusServiceUnavailable, "Service temporarily unavailable", nil)
	default:
		h.LogError(c, err, "Unexpected service error")
		h.respondError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
