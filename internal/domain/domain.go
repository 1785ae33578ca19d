package domain

import (
	"github.com/yungbote/storefront-backend/internal/domain/adminlog"
	"github.com/yungbote/storefront-backend/internal/domain/store"
	"github.com/yungbote/storefront-backend/internal/domain/tags"
)

const (
	MembershipBronze = store.MembershipBronze
	MembershipSilver = store.MembershipSilver
	MembershipGold   = store.MembershipGold

	PaymentPending  = store.PaymentPending
	PaymentComplete = store.PaymentComplete
	PaymentFailed   = store.PaymentFailed

	LowInventoryThreshold = store.LowInventoryThreshold

	ObjectTypeProduct    = tags.ObjectTypeProduct
	ObjectTypeCollection = tags.ObjectTypeCollection

	AdminActionClearInventory = adminlog.ActionClearInventory
	AdminActionChange         = adminlog.ActionChange
)

type Collection = store.Collection
type CollectionWithCount = store.CollectionWithCount
type Product = store.Product
type Customer = store.Customer
type Order = store.Order
type OrderItem = store.OrderItem
type Review = store.Review

type Tag = tags.Tag
type TaggedItem = tags.TaggedItem

type AdminLogEntry = adminlog.LogEntry

// Models lists every persisted model in dependency order for migrations.
func Models() []any {
	return []any{
		&Collection{},
		&Product{},
		&Customer{},
		&Order{},
		&OrderItem{},
		&Review{},
		&Tag{},
		&TaggedItem{},
		&AdminLogEntry{},
	}
}
