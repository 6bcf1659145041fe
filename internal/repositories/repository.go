package repositories

import "context"

// Repository aggregates every domain repository behind one interface
type Repository interface {
	// Student directory
	Student() StudentRepository

	// Academic records (append-only)
	Result() ResultRepository
	Fee() FeeRepository

	// Admission funnel
	Admission() AdmissionRepository

	// News feed
	News() NewsRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
