package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/jrc-public-school/school-service/internal/repositories"
)

// handleDBError is a package-level helper for handling database errors.
// The original gorm error is preserved in the chain so callers can still
// match gorm.ErrRecordNotFound / gorm.ErrDuplicatedKey. Connectivity
// failures additionally carry repositories.ErrStoreUnavailable so the
// service layer can surface them as a 503 rather than a generic 500.
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}
	if isConnectionError(err) {
		return fmt.Errorf("%s failed: %w", operation, errors.Join(repositories.ErrStoreUnavailable, err))
	}
	return fmt.Errorf("%s failed: %w", operation, err)
}

// isConnectionError reports whether err means the database could not be
// reached, as opposed to a statement that ran and failed.
func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, gorm.ErrInvalidDB) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Postgres error class 08 is "connection exception", class 57 covers
	// server shutdown and admin-initiated disconnects.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57")
	}

	return false
}

// applyPaginationAndSorting applies pagination and sorting with SQL injection protection
func applyPaginationAndSorting(query *gorm.DB, limit, offset int, sortBy, sortOrder string, sortKeyToColumn map[string]string, defaultColumn string) *gorm.DB {
	// Validate and set sort column (map API key to SQL name, default if invalid)
	column, ok := sortKeyToColumn[sortBy]
	if !ok {
		column = defaultColumn
	}

	// Validate and set sort order
	order := "DESC"
	if sortOrder == "asc" || sortOrder == "ASC" {
		order = "ASC"
	}

	// Use only mapped SQL column name and constant sort order
	query = query.Order(fmt.Sprintf("%s %s", column, order))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}
