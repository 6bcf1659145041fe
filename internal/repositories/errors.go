package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ErrStoreUnavailable marks a failure to reach the database at all, as
// opposed to a query that ran and failed.
var ErrStoreUnavailable = errors.New("database unavailable")

// IsUnavailableError reports whether err is a storage connectivity failure.
func IsUnavailableError(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// IsNotFoundError reports whether err means the record does not exist.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKeyError reports whether err is a unique constraint violation.
// Relies on GORM error translation being enabled on the connection.
func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
