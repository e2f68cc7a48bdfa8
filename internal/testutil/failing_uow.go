package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/sitepace/internal/db"
)

// FailOnNthExecUoW is a test UoW that injects an error on the Nth ExecContext
// call within a transaction. This enables rollback integration tests by
// simulating failures at precise points in multi-write operations.
//
// ExecContext calls are counted starting at 1. QueryContext and QueryRowContext
// are not counted (reads pass through normally).
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return runWrapped(ctx, u.DB, fn, func(tx db.DBTX) db.DBTX {
		return &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err}
	})
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if n == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// FailMatchingExecUoW fails ExecContext calls whose SQL contains Match, for
// the first Times matching calls across all transactions it opens. It
// simulates a writer losing a race, e.g. Err is a version conflict and Match
// is "INSERT INTO baselines".
type FailMatchingExecUoW struct {
	DB    *sql.DB
	Match string
	Times int32
	Err   error

	failed   atomic.Int32
	attempts atomic.Int32
}

// Attempts reports how many transactions were opened.
func (u *FailMatchingExecUoW) Attempts() int {
	return int(u.attempts.Load())
}

func (u *FailMatchingExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	u.attempts.Add(1)
	return runWrapped(ctx, u.DB, fn, func(tx db.DBTX) db.DBTX {
		return &failMatchingExec{DBTX: tx, uow: u}
	})
}

type failMatchingExec struct {
	db.DBTX
	uow *FailMatchingExecUoW
}

func (f *failMatchingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.Contains(query, f.uow.Match) {
		if n := f.uow.failed.Add(1); n <= f.uow.Times {
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

func runWrapped(ctx context.Context, database *sql.DB, fn func(ctx context.Context, tx db.DBTX) error, wrap func(db.DBTX) db.DBTX) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if fnErr := fn(ctx, wrap(tx)); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}
