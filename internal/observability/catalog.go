package observability

import "time"

func (m *Metrics) registerCatalog() {
	m.aggregateOps = register(m, NewCounterVec("sf_aggregate_operations_total", "Aggregate write operations by op/status.", []string{"op", "status"}))
	m.aggregateLatency = register(m, NewHistogramVec(
		"sf_aggregate_operation_duration_seconds",
		"Aggregate write latency in seconds by op.",
		[]string{"op"},
		nil,
	))
	m.aggregateConflicts = register(m, NewCounterVec("sf_aggregate_conflicts_total", "Aggregate writes rejected by a conflict, by op.", []string{"op"}))
	m.aggregateRetries = register(m, NewCounterVec("sf_aggregate_retryable_total", "Aggregate writes failing with a retryable error, by op.", []string{"op"}))
	m.deletionsBlocked = register(m, NewCounterVec("sf_deletions_blocked_total", "Deletes refused because dependents exist, by entity.", []string{"entity"}))
	m.inventoryCleared = register(m, NewCounterVec("sf_inventory_cleared_products_total", "Products whose inventory was cleared by the admin action.", []string{"source"}))
	m.ordersPlaced = register(m, NewCounterVec("sf_orders_placed_total", "Orders placed by payment status.", []string{"payment_status"}))
}

func (m *Metrics) ObserveAggregateOperation(op, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.aggregateOps.Inc(op, status)
	m.aggregateLatency.Observe(dur.Seconds(), op)
}

func (m *Metrics) IncAggregateConflict(op string) {
	if m != nil {
		m.aggregateConflicts.Inc(op)
	}
}

func (m *Metrics) IncAggregateRetry(op string) {
	if m != nil {
		m.aggregateRetries.Inc(op)
	}
}

// IncDeletionBlocked counts a delete refused by the referential guard.
func (m *Metrics) IncDeletionBlocked(entity string) {
	if m != nil {
		m.deletionsBlocked.Inc(entity)
	}
}

func (m *Metrics) AddInventoryCleared(source string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.inventoryCleared.Add(float64(n), source)
}

func (m *Metrics) IncOrderPlaced(paymentStatus string) {
	if m != nil {
		m.ordersPlaced.Inc(paymentStatus)
	}
}
