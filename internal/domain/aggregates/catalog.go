package aggregates

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/yungbote/storefront-backend/internal/domain/store"
)

var CatalogAggregateContract = Contract{
	Name:   "Store.CatalogAggregate",
	OwnsTx: true,
	Guards: []ReferenceGuard{
		{Parent: "collection", Dependent: "product", Column: "collection_id"},
		{Parent: "product", Dependent: "order_item", Column: "product_id"},
	},
	Notes: "Inserts that add a reference share-lock the parent row.",
}

// CatalogAggregate owns the referential rules between collections, products and order items.
//
// Write method failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeReferentialConflict, CodeConflict, CodeRetryable, CodeInternal.
type CatalogAggregate interface {
	Aggregate

	// DeleteCollection removes a collection only when no product references it.
	DeleteCollection(ctx context.Context, in DeleteCollectionInput) (DeleteResult, error)

	// DeleteProduct removes a product only when no order item references it.
	DeleteProduct(ctx context.Context, in DeleteProductInput) (DeleteResult, error)

	// CreateProduct inserts a product while holding a share lock on its collection.
	CreateProduct(ctx context.Context, in CreateProductInput) (store.Product, error)

	// UpdateProduct rewrites a product; moving it to another collection share-locks the target.
	UpdateProduct(ctx context.Context, in UpdateProductInput) (store.Product, error)

	// SetProductPrice changes only unit_price under a row lock, leaving
	// inventory and the other columns as committed.
	SetProductPrice(ctx context.Context, in SetProductPriceInput) (store.Product, error)

	// CreateOrder inserts an order and all of its items, share-locking every product.
	CreateOrder(ctx context.Context, in CreateOrderInput) (store.Order, error)

	// ClearInventory sets inventory to zero for every selected product.
	ClearInventory(ctx context.Context, in ClearInventoryInput) (ClearInventoryResult, error)
}

type DeleteCollectionInput struct {
	CollectionID uint
}

type DeleteProductInput struct {
	ProductID uint
}

type DeleteResult struct {
	ID      uint
	Deleted bool
}

type ProductFields struct {
	Title        string
	Slug         string
	Description  *string
	UnitPrice    decimal.Decimal
	Inventory    int
	CollectionID uint
}

type CreateProductInput struct {
	ProductFields
}

type UpdateProductInput struct {
	ProductID uint
	ProductFields
}

type SetProductPriceInput struct {
	ProductID uint
	UnitPrice decimal.Decimal
}

type OrderLineInput struct {
	ProductID uint
	Quantity  int
}

type CreateOrderInput struct {
	CustomerID    uint
	PaymentStatus string
	Items         []OrderLineInput
}

type ClearInventoryInput struct {
	ProductIDs []uint
	Actor      string
}

type ClearInventoryResult struct {
	Updated int64
	Message string
}
