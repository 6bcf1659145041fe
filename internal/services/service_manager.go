package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/jrc-public-school/school-service/internal/auth"
	"github.com/jrc-public-school/school-service/internal/config"
	"github.com/jrc-public-school/school-service/internal/events"
	"github.com/jrc-public-school/school-service/internal/repositories"
	"github.com/jrc-public-school/school-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	EnableDebugLogging bool
	LogLevel           slog.Level

	// Service-specific configurations
	Student   ServiceConfig
	Academic  ServiceConfig
	Admission ServiceConfig
	News      ServiceConfig

	// Global settings
	DefaultTimeout time.Duration
}

type ServiceConfig struct {
	Enabled      bool
	CacheEnabled bool
	CacheTTL     time.Duration
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	tokens    *auth.TokenManager
	publisher events.EventPublisher
	appConfig *config.Config
	config    ServiceManagerConfig

	// Service instances
	authService         AuthService
	studentService      StudentService
	academicService     AcademicService
	admissionService    AdmissionService
	newsService         NewsService
	feeService          FeeService
	exportService       ExportService
	notificationService NotificationEventService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, v *validator.Validator, tokens *auth.TokenManager, publisher events.EventPublisher, appConfig *config.Config, smConfig ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: v,
		tokens:    tokens,
		publisher: publisher,
		appConfig: appConfig,
		config:    smConfig,
	}
}

// NewDefaultServiceManager creates a service manager with default configuration
func NewDefaultServiceManager(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, v *validator.Validator, tokens *auth.TokenManager, publisher events.EventPublisher, appConfig *config.Config) ServiceManager {
	smConfig := ServiceManagerConfig{
		EnableDebugLogging: false,
		LogLevel:           slog.LevelInfo,

		Student: ServiceConfig{
			Enabled:      true,
			CacheEnabled: true,
			CacheTTL:     5 * time.Minute,
		},
		Academic: ServiceConfig{
			Enabled:      true,
			CacheEnabled: true,
			CacheTTL:     5 * time.Minute,
		},
		Admission: ServiceConfig{
			Enabled:      true,
			CacheEnabled: false,
			CacheTTL:     2 * time.Minute,
		},
		News: ServiceConfig{
			Enabled:      true,
			CacheEnabled: true,
			CacheTTL:     10 * time.Minute,
		},

		DefaultTimeout: 30 * time.Second,
	}

	return NewServiceManager(db, repo, logger, v, tokens, publisher, appConfig, smConfig)
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.notificationService = NewNotificationEventService(sm.publisher, sm.logger)
	sm.logger.Info("Notification event service initialized")

	sm.authService = NewAuthService(sm.appConfig.TeacherUsername, sm.appConfig.TeacherPasswordHash, sm.tokens, sm.logger, sm.validator)
	sm.logger.Info("Auth service initialized")

	if sm.config.Student.Enabled {
		sm.studentService = NewStudentService(sm.repo, sm.db, sm.logger, sm.validator, sm.tokens, sm.notificationService)
		sm.logger.Info("Student service initialized")
	}

	if sm.config.Academic.Enabled {
		sm.academicService = NewAcademicService(sm.repo, sm.db, sm.logger, sm.validator, sm.notificationService)
		sm.logger.Info("Academic service initialized")
	}

	if sm.config.Admission.Enabled {
		sm.admissionService = NewAdmissionService(sm.repo, sm.db, sm.logger, sm.validator, sm.notificationService)
		sm.logger.Info("Admission service initialized")
	}

	if sm.config.News.Enabled {
		sm.newsService = NewNewsService(sm.repo, sm.db, sm.logger, sm.validator, sm.notificationService)
		sm.logger.Info("News service initialized")
	}

	sm.feeService = NewFeeService(sm.logger, sm.validator)
	sm.logger.Info("Fee service initialized")

	sm.exportService = NewExportService(sm.repo, sm.logger, sm.validator)
	sm.logger.Info("Export service initialized")

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

// Service getters
func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.authService
}

func (sm *serviceManager) Student() StudentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.Student.Enabled && sm.studentService != nil {
		return sm.studentService
	}

	panic("student service not enabled or not initialized")
}

func (sm *serviceManager) Academic() AcademicService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.Academic.Enabled && sm.academicService != nil {
		return sm.academicService
	}

	panic("academic service not enabled or not initialized")
}

func (sm *serviceManager) Admission() AdmissionService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.Admission.Enabled && sm.admissionService != nil {
		return sm.admissionService
	}

	panic("admission service not enabled or not initialized")
}

func (sm *serviceManager) News() NewsService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.News.Enabled && sm.newsService != nil {
		return sm.newsService
	}

	panic("news service not enabled or not initialized")
}

func (sm *serviceManager) Fee() FeeService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.feeService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.exportService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			sm.logger.Error("Failed to close event publisher", "error", err)
		}
	}

	if err := sm.repo.Close(); err != nil {
		sm.logger.Error("Failed to close repository", "error", err)
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}

// WithTimeout creates a context with the default timeout
func (sm *serviceManager) WithTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, sm.config.DefaultTimeout)
}
