package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/jrc-public-school/school-service/internal/repositories"
)

func TestHandleDBError_ConnectivityClassification(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		wantUnavailable bool
	}{
		{name: "dial failure", err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}, wantUnavailable: true},
		{name: "bad connection", err: driver.ErrBadConn, wantUnavailable: true},
		{name: "invalid db handle", err: gorm.ErrInvalidDB, wantUnavailable: true},
		{name: "deadline exceeded", err: context.DeadlineExceeded, wantUnavailable: true},
		{name: "pg connection exception", err: &pgconn.PgError{Code: "08006"}, wantUnavailable: true},
		{name: "pg admin shutdown", err: &pgconn.PgError{Code: "57P01"}, wantUnavailable: true},
		{name: "record not found", err: gorm.ErrRecordNotFound, wantUnavailable: false},
		{name: "unique violation", err: gorm.ErrDuplicatedKey, wantUnavailable: false},
		{name: "pg constraint violation", err: &pgconn.PgError{Code: "23505"}, wantUnavailable: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := handleDBError(tt.err, "get student")
			if got := repositories.IsUnavailableError(wrapped); got != tt.wantUnavailable {
				t.Errorf("IsUnavailableError() = %v, want %v", got, tt.wantUnavailable)
			}
			// Wrapping must not mask the original error.
			if !errors.Is(wrapped, tt.err) {
				t.Errorf("wrapped error %v no longer matches %v", wrapped, tt.err)
			}
		})
	}
}

func TestHandleDBError_Nil(t *testing.T) {
	if err := handleDBError(nil, "get student"); err != nil {
		t.Errorf("handleDBError(nil) = %v, want nil", err)
	}
}
