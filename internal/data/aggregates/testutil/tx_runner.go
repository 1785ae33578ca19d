package testutil

import (
	"context"
	"sync"

	"github.com/yungbote/storefront-backend/internal/data/aggregates"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
)

// FaultyTxRunner wraps a real runner and injects failures around the body.
// FailAfterBody is returned from inside the transaction once the body has
// succeeded, so the inner runner rolls back every write the body made.
// With a nil Inner the body runs without a transaction.
type FaultyTxRunner struct {
	Inner aggregates.TxRunner

	FailBegin     error
	FailAfterBody error

	mu        sync.Mutex
	Calls     int
	Rollbacks int
}

var _ aggregates.TxRunner = (*FaultyTxRunner)(nil)

func (r *FaultyTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.Calls++
	failBegin, failAfter := r.FailBegin, r.FailAfterBody
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}
	body := func(dbc dbctx.Context) error {
		if fn != nil {
			if err := fn(dbc); err != nil {
				return err
			}
		}
		return failAfter
	}

	var err error
	if r.Inner != nil {
		err = r.Inner.InTx(ctx, body)
	} else {
		err = body(dbctx.Context{Ctx: ctx})
	}
	if err != nil {
		r.mu.Lock()
		r.Rollbacks++
		r.mu.Unlock()
	}
	return err
}
