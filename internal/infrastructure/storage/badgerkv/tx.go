package badgerkv

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"lumbertrace/internal/core/apperror"
)

type txnKey struct{}

// TxManager runs functions inside a badger read-write transaction.
// Repositories pick the transaction up from the context.
type TxManager struct {
	db *DB
}

// NewTxManager creates a transaction manager over db.
func NewTxManager(db *DB) *TxManager {
	return &TxManager{db: db}
}

// RunInTransaction executes fn within a transaction. Nested calls reuse the
// outer transaction.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txnKey{}).(*badger.Txn); ok {
		return fn(ctx)
	}

	err := m.db.db.Update(func(txn *badger.Txn) error {
		return fn(context.WithValue(ctx, txnKey{}, txn))
	})
	if errors.Is(err, badger.ErrConflict) {
		return apperror.NewConflict("record was modified concurrently, retry").WithCause(err)
	}
	return err
}

// update runs fn in the context transaction or a new read-write one.
func (d *DB) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if txn, ok := ctx.Value(txnKey{}).(*badger.Txn); ok {
		return fn(txn)
	}
	return d.db.Update(fn)
}

// view runs fn in the context transaction or a new read-only one.
func (d *DB) view(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if txn, ok := ctx.Value(txnKey{}).(*badger.Txn); ok {
		return fn(txn)
	}
	return d.db.View(fn)
}
