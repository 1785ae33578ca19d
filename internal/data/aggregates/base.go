package aggregates

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/observability"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

const statusSuccess = "success"

type BaseDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Runner TxRunner
	Hooks  Hooks
}

func (d BaseDeps) withDefaults() BaseDeps {
	if d.Runner == nil {
		d.Runner = NewGormTxRunner(d.DB)
	}
	if d.Hooks == nil {
		d.Hooks = noopHooks{}
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	return d
}

// executeWrite runs fn in one transaction under a span named op, maps the
// outcome onto aggregate error codes and reports it to the hooks.
func executeWrite(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	start := time.Now()
	deps = deps.withDefaults()
	if op = strings.TrimSpace(op); op == "" {
		op = "aggregate.write"
	}

	ctx, span := observability.StartSpan(ctx, op)
	defer span.End()

	err := MapError(op, deps.Runner.InTx(ctx, fn))
	status := aggregateErrorStatus(err)
	report(deps, span, op, status, err)
	deps.Hooks.ObserveOperation(op, status, time.Since(start))
	return err
}

func report(deps BaseDeps, span trace.Span, op, status string, err error) {
	span.SetAttributes(attribute.String("aggregate.status", status))
	switch domainagg.ErrorCode(status) {
	case domainagg.CodeConflict, domainagg.CodeReferentialConflict:
		deps.Hooks.IncConflict(op)
		if n := domainagg.AsError(err); n != nil && n.Dependents > 0 {
			span.SetAttributes(attribute.Int64("aggregate.dependents", n.Dependents))
		}
	case domainagg.CodeRetryable:
		deps.Hooks.IncRetry(op)
	case domainagg.CodeInternal:
		deps.Log.Error("aggregate write failed", "op", op, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
	}
}

func aggregateErrorStatus(err error) string {
	if err == nil {
		return statusSuccess
	}
	code := domainagg.CodeOf(err)
	if code == "" {
		code = domainagg.CodeOf(MapError("aggregate.status", err))
	}
	if code == "" {
		return "failure"
	}
	return string(code)
}
