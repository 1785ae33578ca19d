package testutil

import (
	"sync"
	"time"

	"github.com/yungbote/storefront-backend/internal/data/aggregates"
)

// HooksRecorder keeps every hook event in arrival order. Read the slices only
// after the writes under test have returned.
type HooksRecorder struct {
	mu sync.Mutex

	Operations []OperationEvent
	Conflicts  []string
	Retries    []string

	BlockedDeletions []string
	ClearedInventory []int64
	OrdersPlaced     []string
}

type OperationEvent struct {
	Name     string
	Status   string
	Duration time.Duration
}

var _ aggregates.Hooks = (*HooksRecorder)(nil)

func record[T any](h *HooksRecorder, dst *[]T, v T) {
	h.mu.Lock()
	*dst = append(*dst, v)
	h.mu.Unlock()
}

func (h *HooksRecorder) ObserveOperation(name, status string, dur time.Duration) {
	record(h, &h.Operations, OperationEvent{Name: name, Status: status, Duration: dur})
}

func (h *HooksRecorder) IncConflict(name string)          { record(h, &h.Conflicts, name) }
func (h *HooksRecorder) IncRetry(name string)             { record(h, &h.Retries, name) }
func (h *HooksRecorder) DeletionBlocked(entity string)    { record(h, &h.BlockedDeletions, entity) }
func (h *HooksRecorder) InventoryCleared(n int64)         { record(h, &h.ClearedInventory, n) }
func (h *HooksRecorder) OrderPlaced(paymentStatus string) { record(h, &h.OrdersPlaced, paymentStatus) }

// OperationStatus returns the status of the last recorded run of name, or "".
func (h *HooksRecorder) OperationStatus(name string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := len(h.Operations) - 1; i >= 0; i-- {
		if h.Operations[i].Name == name {
			return h.Operations[i].Status
		}
	}
	return ""
}

// StatusCounts tallies recorded operations of name by status.
func (h *HooksRecorder) StatusCounts(name string) map[string]int {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := map[string]int{}
	for _, op := range h.Operations {
		if op.Name == name {
			out[op.Status]++
		}
	}
	return out
}
