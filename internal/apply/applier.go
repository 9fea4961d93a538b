// Package apply executes a fixed migration script against PostgreSQL.
//
// The whole script runs inside one transaction, so a failing statement leaves
// the database untouched. Scripts are sent without arguments, which makes pgx
// use the simple query protocol and allows many statements (and DO blocks)
// in a single Exec.
package apply

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
)

// TxBeginner is satisfied by *pgxpool.Pool and *pgx.Conn.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Applier runs SQL scripts in a transaction.
type Applier struct {
	db      TxBeginner
	timeout time.Duration
	logger  *slog.Logger
}

// NewApplier creates an Applier. A zero timeout means no deadline beyond the
// caller's context.
func NewApplier(db TxBeginner, timeout time.Duration, logger *slog.Logger) *Applier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Applier{db: db, timeout: timeout, logger: logger}
}

// ApplyFile reads path and applies its contents.
func (a *Applier) ApplyFile(ctx context.Context, path string) error {
	script, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script %s: %w", path, err)
	}
	return a.Apply(ctx, string(script))
}

// Apply executes script and commits. Any failure rolls the transaction back.
func (a *Applier) Apply(ctx context.Context, script string) (err error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	tx, err := a.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(context.Background()); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			a.logger.Error("rollback failed", "error", rbErr)
		}
	}()

	tag, err := tx.Exec(ctx, script)
	if err != nil {
		return fmt.Errorf("execute script: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	a.logger.Info("script applied",
		"command", tag.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
