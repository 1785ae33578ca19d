package schema

import (
	"encoding/json"
	"time"

	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/services"
)

type ClearInventoryRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

type ClearInventoryResponse struct {
	Updated int64  `json:"updated"`
	Message string `json:"message"`
}

type AdminProductRow struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	UnitPrice       Money  `json:"unit_price"`
	Inventory       int    `json:"inventory"`
	InventoryStatus string `json:"inventory_status"`
	Collection      uint   `json:"collection"`
	CollectionTitle string `json:"collection_title"`
}

func NewAdminProductRows(rows []services.AdminProductRow) []AdminProductRow {
	out := make([]AdminProductRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, AdminProductRow{
			ID:              r.ID,
			Title:           r.Title,
			UnitPrice:       NewMoney(r.UnitPrice),
			Inventory:       r.Inventory,
			InventoryStatus: r.InventoryStatus,
			Collection:      r.CollectionID,
			CollectionTitle: r.CollectionTitle,
		})
	}
	return out
}

type AdminCollectionRow struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	ProductsCount int64  `json:"products_count"`
	ProductsURL   string `json:"products_url"`
}

func NewAdminCollectionRows(rows []services.AdminCollectionRow) []AdminCollectionRow {
	out := make([]AdminCollectionRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, AdminCollectionRow(r))
	}
	return out
}

type AdminOrderRow struct {
	ID            uint      `json:"id"`
	PlacedAt      time.Time `json:"placed_at"`
	PaymentStatus string    `json:"payment_status"`
	Customer      uint      `json:"customer"`
	CustomerName  string    `json:"customer_name"`
}

func NewAdminOrderRows(rows []services.AdminOrderRow) []AdminOrderRow {
	out := make([]AdminOrderRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, AdminOrderRow{
			ID:            r.ID,
			PlacedAt:      r.PlacedAt,
			PaymentStatus: r.PaymentStatus,
			Customer:      r.CustomerID,
			CustomerName:  r.CustomerName,
		})
	}
	return out
}

type AdminLogEntry struct {
	ID         string          `json:"id"`
	Action     string          `json:"action"`
	ObjectType string          `json:"object_type"`
	ObjectIDs  json.RawMessage `json:"object_ids"`
	Message    string          `json:"message"`
	Details    json.RawMessage `json:"details,omitempty"`
	Actor      string          `json:"actor"`
	CreatedAt  time.Time       `json:"created_at"`
}

func NewAdminLogEntries(rows []*types.AdminLogEntry) []AdminLogEntry {
	out := make([]AdminLogEntry, 0, len(rows))
	for _, e := range rows {
		entry := AdminLogEntry{
			ID:         e.ID.String(),
			Action:     e.Action,
			ObjectType: e.ObjectType,
			Message:    e.Message,
			Actor:      e.Actor,
			CreatedAt:  e.CreatedAt,
		}
		if len(e.ObjectIDs) > 0 {
			entry.ObjectIDs = json.RawMessage(e.ObjectIDs)
		} else {
			entry.ObjectIDs = json.RawMessage("[]")
		}
		if len(e.Details) > 0 {
			entry.Details = json.RawMessage(e.Details)
		}
		out = append(out, entry)
	}
	return out
}

type AdminTokenRequest struct {
	Username string `json:"username" binding:"required,max=150"`
}

type AdminTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
