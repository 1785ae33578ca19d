package aggregates

import (
	"strings"
	"time"

	"github.com/yungbote/storefront-backend/internal/observability"
)

// Hooks receives one event per aggregate write plus the catalog events the
// write produced. Implementations must be safe for concurrent use.
type Hooks interface {
	ObserveOperation(name, status string, dur time.Duration)
	IncConflict(name string)
	IncRetry(name string)
	// DeletionBlocked fires when a delete is refused because dependents exist.
	DeletionBlocked(entity string)
	InventoryCleared(n int64)
	OrderPlaced(paymentStatus string)
}

type noopHooks struct{}

func (noopHooks) ObserveOperation(string, string, time.Duration) {}
func (noopHooks) IncConflict(string)                             {}
func (noopHooks) IncRetry(string)                                {}
func (noopHooks) DeletionBlocked(string)                         {}
func (noopHooks) InventoryCleared(int64)                         {}
func (noopHooks) OrderPlaced(string)                             {}

// inventorySourceAdmin labels inventory cleared through the admin bulk action.
const inventorySourceAdmin = "admin"

// metricsHooks forwards events to the process metrics registry.
type metricsHooks struct {
	m *observability.Metrics
}

// NewObservabilityHooks returns no-op hooks when metrics are disabled.
func NewObservabilityHooks(m *observability.Metrics) Hooks {
	if m == nil {
		return noopHooks{}
	}
	return metricsHooks{m: m}
}

func (h metricsHooks) ObserveOperation(name, status string, dur time.Duration) {
	h.m.ObserveAggregateOperation(strings.TrimSpace(name), strings.TrimSpace(status), dur)
}

func (h metricsHooks) IncConflict(name string)          { h.m.IncAggregateConflict(strings.TrimSpace(name)) }
func (h metricsHooks) IncRetry(name string)             { h.m.IncAggregateRetry(strings.TrimSpace(name)) }
func (h metricsHooks) DeletionBlocked(entity string)    { h.m.IncDeletionBlocked(strings.ToLower(entity)) }
func (h metricsHooks) InventoryCleared(n int64)         { h.m.AddInventoryCleared(inventorySourceAdmin, n) }
func (h metricsHooks) OrderPlaced(paymentStatus string) { h.m.IncOrderPlaced(paymentStatus) }
