// Package repository implements the reservation.Store contract on top
// of MySQL.  Methods that participate in the create/cancel/check-in
// critical sections take row locks with SELECT ... FOR UPDATE so the
// decide-then-write span behaves as one atomic step per seat.
package repository

import (
    "context"
    "database/sql"

    "github.com/studyhub/seat-reservation/internal/reservation"
)

// Store holds the database handle.  It satisfies reservation.Store.
type Store struct {
    db *sql.DB
}

// NewStore returns a Store bound to the given database.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// DB exposes the underlying handle for health checks.
func (s *Store) DB() *sql.DB { return s.db }

var _ reservation.Store = (*Store)(nil)

// txStore wraps an open transaction.  It satisfies reservation.Tx.
type txStore struct {
    tx *sql.Tx
}

var _ reservation.Tx = (*txStore)(nil)

// InTx runs fn inside a transaction, committing on nil and rolling
// back on error or panic.
func (s *Store) InTx(ctx context.Context, fn func(tx reservation.Tx) error) error {
    tx, err := s.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if err := fn(&txStore{tx: tx}); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}
