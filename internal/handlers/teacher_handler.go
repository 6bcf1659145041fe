package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrc-public-school/school-service/internal/repositories"
	"github.com/jrc-public-school/school-service/internal/services"
	"github.com/jrc-public-school/school-service/internal/utils"
)

// TeacherHandler serves the teacher portal: student directory
// management, result and fee entry, and the roster export.
type TeacherHandler struct {
	BaseHandler
	studentService  services.StudentService
	academicService services.AcademicService
	exportService   services.ExportService
}

func NewTeacherHandler(studentService services.StudentService, academicService services.AcademicService, exportService services.ExportService, logger utils.Logger) *TeacherHandler {
	return &TeacherHandler{
		BaseHandler:     NewBaseHandler(logger),
		studentService:  studentService,
		academicService: academicService,
		exportService:   exportService,
	}
}

// RegisterStudent creates a directory record without credentials; the
// student can later claim it through self-registration.
func (h *TeacherHandler) RegisterStudent(c *gin.Context) {
	h.LogRequest(c, "Registering student")

	var req services.RegisterStudentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	student, err := h.studentService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, http.StatusCreated, "Student registered", student)
}

// ListStudents returns the directory, optionally limited to one class.
func (h *TeacherHandler) ListStudents(c *gin.Context) {
	h.LogRequest(c, "Listing students")

	filters := repositories.StudentFilters{}
	if class := c.Query("class"); class != "" {
		filters.Class = &class
	}

	resp, err := h.studentService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, "", resp)
}

// RosterStats returns per-class head counts and account coverage.
func (h *TeacherHandler) RosterStats(c *gin.Context) {
	h.LogRequest(c, "Getting roster stats")

	stats, err := h.studentService.GetRosterStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, "", stats)
}

// DeleteStudent removes a student and all of their results and fees.
func (h *TeacherHandler) DeleteStudent(c *gin.Context) {
	h.LogRequest(c, "Deleting student")

	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, "Student deleted", nil)
}

// ResetPassword overwrites a student's password.
func (h *TeacherHandler) ResetPassword(c *gin.Context) {
	h.LogRequest(c, "Resetting student password")

	var req services.ResetPasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.studentService.ResetPassword(c.Request.Context(), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, "Password reset", nil)
}

// AddResult appends an exam result to a student's record.
func (h *TeacherHandler) AddResult(c *gin.Context) {
	h.LogRequest(c, "Adding result")

	var req services.AddResultRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.academicService.AddResult(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, http.StatusCreated, "Result added", result)
}

// AddFee appends a fee record to a student's account.
func (h *TeacherHandler) AddFee(c *gin.Context) {
	h.LogRequest(c, "Adding fee")

	var req services.AddFeeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	fee, err := h.academicService.AddFee(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, http.StatusCreated, "Fee added", fee)
}

// StudentResults returns any student's results for the teacher view.
func (h *TeacherHandler) StudentResults(c *gin.Context) {
	h.LogRequest(c, "Getting student results")

	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, _ := GetActorFromContext(c)
	results, err := h.academicService.ListResults(c.Request.Context(), id, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, "", results)
}

// StudentFees returns any student's fee records for the teacher view.
func (h *TeacherHandler) StudentFees(c *gin.Context) {
	h.LogRequest(c, "Getting student fees")

	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, _ := GetActorFromContext(c)
	fees, err := h.academicService.ListFees(c.Request.Context(), id, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, "", fees)
}

// ExportStudents streams the roster as an xlsx workbook.
func (h *TeacherHandler) ExportStudents(c *gin.Context) {
	h.LogRequest(c, "Exporting students")

	var classFilter *string
	if class := c.Query("class"); class != "" {
		classFilter = &class
	}

	content, filename, err := h.exportService.ExportStudents(c.Request.Context(), classFilter)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

func (h *TeacherHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		h.respondError(c, http.StatusBadRequest, "Validation failed", err.Error())
	case errors.Is(err, services.ErrStudentNotFound):
		h.respondError(c, http.StatusNotFound, "Student not found", nil)
	case errors.Is(err, services.ErrDuplicateStudent):
		h.respondError(c, http.StatusConflict, "Student already exists for this class and roll number", nil)
	case errors.Is(err, services.ErrForbidden):
		h.respondError(c, http.StatusForbidden, "Access denied", nil)
	case errors.Is(err, services.ErrServiceUnavailable):
		h.LogError(c, err, "Database unavailable")
		h.respondError(c, http.StatusServiceUnavailable, "Service temporarily unavailable", nil)
	default:
		h.LogError(c, err, "Unexpected service error")
		h.respondError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
