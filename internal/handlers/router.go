package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrc-public-school/school-service/internal/auth"
	"github.com/jrc-public-school/school-service/internal/services"
	"github.com/jrc-public-school/school-service/internal/utils"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	studentHandler   *StudentHandler
	teacherHandler   *TeacherHandler
	admissionHandler *AdmissionHandler
	newsHandler      *NewsHandler
	feeHandler       *FeeHandler
	authMiddleware   *JWTAuthMiddleware

	serviceManager services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens *auth.TokenManager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.Auth(), logger),
		studentHandler:   NewStudentHandler(serviceManager.Student(), serviceManager.Academic(), logger),
		teacherHandler:   NewTeacherHandler(serviceManager.Student(), serviceManager.Academic(), serviceManager.Export(), logger),
		admissionHandler: NewAdmissionHandler(serviceManager.Admission(), logger),
		newsHandler:      NewNewsHandler(serviceManager.News(), logger),
		feeHandler:       NewFeeHandler(serviceManager.Fee(), logger),
		authMiddleware:   NewJWTAuthMiddleware(tokens, logger),
		serviceManager:   serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")

	// Public website endpoints
	{
		api.GET("/fees/structure", hm.feeHandler.Structure)
		api.POST("/fees/calculate", hm.feeHandler.Calculate)
		api.POST("/admissions", hm.admissionHandler.Submit)
		api.GET("/news/all", hm.newsHandler.ListActive)

		api.POST("/teacher/login", hm.authHandler.TeacherLogin)
		api.POST("/student/register", hm.studentHandler.SelfRegister)
		api.POST("/student/login", hm.studentHandler.Login)
	}

	// Student portal: requires a student session token
	studentAPI := api.Group("")
	studentAPI.Use(hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRoleMiddleware(auth.RoleStudent))
	{
		studentAPI.GET("/student/me", hm.studentHandler.Me)
		studentAPI.GET("/student/result", hm.studentHandler.MyResults)
		studentAPI.GET("/student/fees", hm.studentHandler.MyFees)
	}

	// Teacher portal: requires a teacher session token
	teacherAPI := api.Group("")
	teacherAPI.Use(hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRoleMiddleware(auth.RoleTeacher))
	{
		// Student directory
		teacherAPI.POST("/teacher/register-student", hm.teacherHandler.RegisterStudent)
		teacherAPI.GET("/student/list", hm.teacherHandler.ListStudents)
		teacherAPI.GET("/student/stats", hm.teacherHandler.RosterStats)
		teacherAPI.DELETE("/teacher/delete-student/:id", hm.teacherHandler.DeleteStudent)
		teacherAPI.POST("/teacher/reset-password", hm.teacherHandler.ResetPassword)
		teacherAPI.GET("/teacher/export-students", hm.teacherHandler.ExportStudents)

		// Results and fees
		teacherAPI.POST("/student/add-result", hm.teacherHandler.AddResult)
		teacherAPI.POST("/student/add-fee", hm.teacherHandler.AddFee)
		teacherAPI.GET("/student/:id/results", hm.teacherHandler.StudentResults)
		teacherAPI.GET("/student/:id/fees", hm.teacherHandler.StudentFees)

		// Admission review funnel
		teacherAPI.GET("/admissions", hm.admissionHandler.List)
		teacherAPI.GET("/admissions/stats", hm.admissionHandler.Stats)
		teacherAPI.GET("/admissions/:id", hm.admissionHandler.Get)
		teacherAPI.PATCH("/admissions/:id/status", hm.admissionHandler.UpdateStatus)
		teacherAPI.DELETE("/admissions/:id", hm.admissionHandler.Delete)

		// News management
		teacherAPI.POST("/news", hm.newsHandler.Create)
		teacherAPI.PATCH("/news/:id", hm.newsHandler.Update)
		teacherAPI.DELETE("/news/:id", hm.newsHandler.Delete)
	}

	// Health check endpoint
	router.GET("/health", hm.HealthCheck)
}

// HealthCheck reports service and dependency health.
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "school-service",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "school-service",
	})
}
