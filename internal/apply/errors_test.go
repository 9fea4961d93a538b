package apply

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/JonMunkholm/migfix/internal/migration"
	"github.com/JonMunkholm/migfix/internal/sqlfix"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"input not found", fmt.Errorf("%w: migration-data.sql", migration.ErrInputNotFound), "MIG001"},
		{"arity mismatch", fmt.Errorf("line 3: %w", sqlfix.ErrArityMismatch), "MIG002"},
		{"unique violation by sqlstate", &pgconn.PgError{Code: "23505"}, "DB001"},
		{"foreign key by sqlstate", fmt.Errorf("execute script: %w", &pgconn.PgError{Code: "23503"}), "DB003"},
		{"undefined table", &pgconn.PgError{Code: "42P01"}, "DB009"},
		{"syntax error", &pgconn.PgError{Code: "42601"}, "DB010"},
		{"unmapped sqlstate falls back to text", &pgconn.PgError{Code: "XX000", Message: "duplicate key value"}, "DB001"},
		{"uuid text", errors.New(`invalid input syntax for type uuid: "12"`), "DB008"},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5432: connection refused"), "DB004"},
		{"deadline", context.DeadlineExceeded, "DB006"},
		{"unknown", errors.New("something odd"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, MapError(tt.err).Code)
		})
	}
}
