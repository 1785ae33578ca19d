// Package ctxutil carries per-request identity through context.Context.
package ctxutil

import "context"

type (
	traceDataKey struct{}
	staffDataKey struct{}
)

// TraceData correlates one request across logs, spans and response headers.
type TraceData struct {
	RequestID string
	TraceID   string
}

// LogFields returns the non-empty ids as logger key/value pairs.
func (td *TraceData) LogFields() []interface{} {
	if td == nil {
		return nil
	}
	var kv []interface{}
	if td.TraceID != "" {
		kv = append(kv, "trace_id", td.TraceID)
	}
	if td.RequestID != "" {
		kv = append(kv, "request_id", td.RequestID)
	}
	return kv
}

// StaffData identifies the admin console user behind a request.
type StaffData struct {
	Username string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	return lookup[TraceData](ctx, traceDataKey{})
}

func WithStaffData(ctx context.Context, sd *StaffData) context.Context {
	return context.WithValue(ctx, staffDataKey{}, sd)
}

func GetStaffData(ctx context.Context) *StaffData {
	return lookup[StaffData](ctx, staffDataKey{})
}

func lookup[T any](ctx context.Context, key any) *T {
	if ctx == nil {
		return nil
	}
	v, _ := ctx.Value(key).(*T)
	return v
}
