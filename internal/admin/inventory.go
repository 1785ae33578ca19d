package admin

import (
	"fmt"

	"github.com/yungbote/storefront-backend/internal/domain/store"
)

const (
	InventoryLow = "Low"
	InventoryOK  = "OK"
)

func InventoryStatus(inventory int) string {
	if inventory < store.LowInventoryThreshold {
		return InventoryLow
	}
	return InventoryOK
}

// ProductsURL links a collection row to the product list filtered by that collection.
func ProductsURL(collectionID uint) string {
	return fmt.Sprintf("/admin/api/products?collection_id=%d", collectionID)
}
