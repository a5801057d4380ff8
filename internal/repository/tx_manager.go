package repository

import (
	"context"

	"gorm.io/gorm"
)

// txCtxKey carries the open transaction through the context; repositories pick
// it up via GetDB so multi-step operations (quote conversion, number
// allocation, backup import) share one transaction without changing their
// signatures.
type txCtxKey struct{}

// TransactionManager runs a function inside a single database transaction.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type txManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) TransactionManager {
	return &txManager{db: db}
}

func (m *txManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txCtxKey{}, tx))
	})
}

// GetDB returns the transaction stashed in ctx by RunInTx, or rootDB when the
// call is not part of one.
func GetDB(ctx context.Context, rootDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txCtxKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return rootDB.WithContext(ctx)
}
