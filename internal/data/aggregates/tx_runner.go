package aggregates

import (
	"context"

	"gorm.io/gorm"

	domainagg "github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
)

// TxRunner opens the transaction a catalog write runs in.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

// NewGormTxRunner runs fn inside db.Transaction. A db that is already a
// transaction nests fn in a savepoint.
func NewGormTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	const op = "catalog.tx"
	switch {
	case fn == nil:
		return nil
	case r == nil || r.db == nil:
		return domainagg.NewError(domainagg.CodeInternal, op, "transaction runner has nil db", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	// A request that is already gone should not take row locks.
	if err := ctx.Err(); err != nil {
		return domainagg.NewError(domainagg.CodeRetryable, op, "context done before transaction start", err)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}
