// Package testutil provides a gorm handle for usecase tests that fake every repository.
package testutil

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var errNoDatabase = errors.New("testutil: no database behind this gorm handle")

// TxLog counts the transactions opened on a handle from NewGormDB.
type TxLog struct {
	mu        sync.Mutex
	begins    int
	commits   int
	rollbacks int
}

func (l *TxLog) Begins() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.begins
}

func (l *TxLog) Commits() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.commits
}

// Rollbacks counts explicit rollbacks that happened before a commit.
func (l *TxLog) Rollbacks() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rollbacks
}

// NewGormDB opens a postgres-dialect gorm handle whose Begin, Commit and Rollback
// succeed without a server. Any SQL that reaches it fails.
func NewGormDB(t testing.TB) (*gorm.DB, *TxLog) {
	t.Helper()

	txLog := &TxLog{}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: &pool{log: txLog}}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}
	return db, txLog
}

type pool struct {
	log *TxLog
}

func (p *pool) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, errNoDatabase
}

func (p *pool) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, errNoDatabase
}

func (p *pool) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, errNoDatabase
}

func (p *pool) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return &sql.Row{}
}

func (p *pool) BeginTx(ctx context.Context, opts *sql.TxOptions) (gorm.ConnPool, error) {
	p.log.mu.Lock()
	p.log.begins++
	p.log.mu.Unlock()
	return &tx{pool: p}, nil
}

type tx struct {
	*pool
	done bool
}

func (t *tx) Commit() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	t.log.mu.Lock()
	t.log.commits++
	t.log.mu.Unlock()
	return nil
}

func (t *tx) Rollback() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	t.log.mu.Lock()
	t.log.rollbacks++
	t.log.mu.Unlock()
	return nil
}
