package aggregates

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/yungbote/storefront-backend/internal/data/repos"
	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/domain/adminlog"
	domainagg "github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/domain/tags"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
)

type CatalogAggregateDeps struct {
	Base BaseDeps

	Collections repos.CollectionRepo
	Products    repos.ProductRepo
	Customers   repos.CustomerRepo
	Orders      repos.OrderRepo
	OrderItems  repos.OrderItemRepo
	Reviews     repos.ReviewRepo
	TaggedItems repos.TaggedItemRepo
	AdminLog    repos.AdminLogEntryRepo
}

type catalogAggregate struct {
	deps CatalogAggregateDeps
}

func NewCatalogAggregate(deps CatalogAggregateDeps) domainagg.CatalogAggregate {
	deps.Base = deps.Base.withDefaults()
	return &catalogAggregate{deps: deps}
}

func (a *catalogAggregate) Contract() domainagg.Contract {
	return domainagg.CatalogAggregateContract
}

func (a *catalogAggregate) DeleteCollection(ctx context.Context, in domainagg.DeleteCollectionInput) (domainagg.DeleteResult, error) {
	const op = "Store.Catalog.DeleteCollection"
	out := domainagg.DeleteResult{ID: in.CollectionID}
	if in.CollectionID == 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing collection_id", nil)
	}
	if a.deps.Collections == nil || a.deps.Products == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "catalog aggregate repos not configured", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		c, err := a.deps.Collections.LockByID(dbc, in.CollectionID, repos.LockForUpdate)
		if err != nil {
			return err
		}
		if c == nil {
			return notFound(op, "collection", in.CollectionID)
		}

		n, err := a.deps.Products.CountByCollectionID(dbc, in.CollectionID)
		if err != nil {
			return err
		}
		if err := RequireNoDependents(op, "Collection", "product", n); err != nil {
			a.deps.Base.Hooks.DeletionBlocked("collection")
			return err
		}

		if a.deps.TaggedItems != nil {
			if _, err := a.deps.TaggedItems.DeleteForObject(dbc, tags.ObjectTypeCollection, in.CollectionID); err != nil {
				return err
			}
		}
		deleted, err := a.deps.Collections.Delete(dbc, in.CollectionID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return notFound(op, "collection", in.CollectionID)
		}
		out.Deleted = true
		return nil
	})
	return out, err
}

func (a *catalogAggregate) DeleteProduct(ctx context.Context, in domainagg.DeleteProductInput) (domainagg.DeleteResult, error) {
	const op = "Store.Catalog.DeleteProduct"
	out := domainagg.DeleteResult{ID: in.ProductID}
	if in.ProductID == 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing product_id", nil)
	}
	if a.deps.Products == nil || a.deps.OrderItems == nil || a.deps.Collections == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "catalog aggregate repos not configured", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		p, err := a.deps.Products.LockByID(dbc, in.ProductID, repos.LockForUpdate)
		if err != nil {
			return err
		}
		if p == nil {
			return notFound(op, "product", in.ProductID)
		}

		n, err := a.deps.OrderItems.CountByProductID(dbc, in.ProductID)
		if err != nil {
			return err
		}
		if err := RequireNoDependents(op, "Product", "order item", n); err != nil {
			a.deps.Base.Hooks.DeletionBlocked("product")
			return err
		}

		if _, err := a.deps.Collections.ClearFeaturedProduct(dbc, in.ProductID); err != nil {
			return err
		}
		if a.deps.Reviews != nil {
			if _, err := a.deps.Reviews.DeleteByProductID(dbc, in.ProductID); err != nil {
				return err
			}
		}
		if a.deps.TaggedItems != nil {
			if _, err := a.deps.TaggedItems.DeleteForObject(dbc, tags.ObjectTypeProduct, in.ProductID); err != nil {
				return err
			}
		}
		deleted, err := a.deps.Products.Delete(dbc, in.ProductID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return notFound(op, "product", in.ProductID)
		}
		out.Deleted = true
		return nil
	})
	return out, err
}

func validateProductFields(op string, f domainagg.ProductFields) error {
	checks := []error{
		RequireNonBlank("title", f.Title, 255),
		RequireNonBlank("slug", f.Slug, 255),
		RequireUnitPrice("unit_price", f.UnitPrice),
		RequireNonNegative("inventory", f.Inventory),
		RequireID("collection", f.CollectionID),
	}
	for _, err := range checks {
		if err != nil {
			return MapError(op, err)
		}
	}
	return nil
}

// lockCollectionForInsert share-locks the parent collection so a concurrent
// DeleteCollection either sees the new product or runs after it is gone.
func (a *catalogAggregate) lockCollectionForInsert(dbc dbctx.Context, collectionID uint) error {
	c, err := a.deps.Collections.LockByID(dbc, collectionID, repos.LockForShare)
	if err != nil {
		return err
	}
	if c == nil {
		return ValidationError(fmt.Sprintf("collection %d does not exist", collectionID))
	}
	return nil
}

func (a *catalogAggregate) CreateProduct(ctx context.Context, in domainagg.CreateProductInput) (types.Product, error) {
	const op = "Store.Catalog.CreateProduct"
	var out types.Product
	if err := validateProductFields(op, in.ProductFields); err != nil {
		return out, err
	}
	if a.deps.Collections == nil || a.deps.Products == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "catalog aggregate repos not configured", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.lockCollectionForInsert(dbc, in.CollectionID); err != nil {
			return err
		}
		row := &types.Product{
			Title:        strings.TrimSpace(in.Title),
			Slug:         strings.TrimSpace(in.Slug),
			Description:  in.Description,
			UnitPrice:    in.UnitPrice,
			Inventory:    in.Inventory,
			CollectionID: in.CollectionID,
		}
		created, err := a.deps.Products.Create(dbc, row)
		if err != nil {
			return err
		}
		out = *created
		return nil
	})
	return out, err
}

func (a *catalogAggregate) UpdateProduct(ctx context.Context, in domainagg.UpdateProductInput) (types.Product, error) {
	const op = "Store.Catalog.UpdateProduct"
	var out types.Product
	if in.ProductID == 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing product_id", nil)
	}
	if err := validateProductFields(op, in.ProductFields); err != nil {
		return out, err
	}
	if a.deps.Collections == nil || a.deps.Products == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "catalog aggregate repos not configured", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		cur, err := a.deps.Products.LockByID(dbc, in.ProductID, repos.LockForUpdate)
		if err != nil {
			return err
		}
		if cur == nil {
			return notFound(op, "product", in.ProductID)
		}
		if cur.CollectionID != in.CollectionID {
			if err := a.lockCollectionForInsert(dbc, in.CollectionID); err != nil {
				return err
			}
		}
		if err := a.deps.Products.UpdateFields(dbc, in.ProductID, map[string]interface{}{
			"title":         strings.TrimSpace(in.Title),
			"slug":          strings.TrimSpace(in.Slug),
			"description":   in.Description,
			"unit_price":    in.UnitPrice,
			"inventory":     in.Inventory,
			"collection_id": in.CollectionID,
			"last_update":   time.Now().UTC(),
		}); err != nil {
			return err
		}
		updated, err := a.deps.Products.GetByID(dbc, in.ProductID)
		if err != nil {
			return err
		}
		if updated == nil {
			return notFound(op, "product", in.ProductID)
		}
		out = *updated
		return nil
	})
	return out, err
}

func (a *catalogAggregate) SetProductPrice(ctx context.Context, in domainagg.SetProductPriceInput) (types.Product, error) {
	const op = "Store.Catalog.SetProductPrice"
	var out types.Product
	if in.ProductID == 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing product_id", nil)
	}
	if err := RequireUnitPrice("unit_price", in.UnitPrice); err != nil {
		return out, MapError(op, err)
	}
	if a.deps.Products == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "catalog aggregate repos not configured", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		cur, err := a.deps.Products.LockByID(dbc, in.ProductID, repos.LockForUpdate)
		if err != nil {
			return err
		}
		if cur == nil {
			return notFound(op, "product", in.ProductID)
		}
		if err := a.deps.Products.UpdateFields(dbc, in.ProductID, map[string]interface{}{
			"unit_price":  in.UnitPrice,
			"last_update": time.Now().UTC(),
		}); err != nil {
			return err
		}
		updated, err := a.deps.Products.GetByID(dbc, in.ProductID)
		if err != nil {
			return err
		}
		if updated == nil {
			return notFound(op, "product", in.ProductID)
		}
		out = *updated
		return nil
	})
	return out, err
}

func (a *catalogAggregate) CreateOrder(ctx context.Context, in domainagg.CreateOrderInput) (types.Order, error) {
	const op = "Store.Catalog.CreateOrder"
	var out types.Order
	if a.deps.Customers == nil || a.deps.Products == nil || a.deps.Orders == nil || a.deps.OrderItems == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "catalog aggregate repos not configured", nil)
	}
	status := strings.TrimSpace(in.PaymentStatus)
	if status == "" {
		status = types.PaymentPending
	}
	checks := []error{
		RequireID("customer", in.CustomerID),
		RequireOneOf("payment_status", status, types.PaymentPending, types.PaymentComplete, types.PaymentFailed),
	}
	if len(in.Items) == 0 {
		checks = append(checks, ValidationError("order must contain at least one item"))
	}
	productIDs := make([]uint, 0, len(in.Items))
	seen := map[uint]bool{}
	for i, it := range in.Items {
		checks = append(checks,
			RequireID(fmt.Sprintf("items[%d].product", i), it.ProductID),
			RequirePositive(fmt.Sprintf("items[%d].quantity", i), it.Quantity),
		)
		if it.ProductID != 0 && !seen[it.ProductID] {
			seen[it.ProductID] = true
			productIDs = append(productIDs, it.ProductID)
		}
	}
	for _, err := range checks {
		if err != nil {
			return out, MapError(op, err)
		}
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		cust, err := a.deps.Customers.LockByID(dbc, in.CustomerID, repos.LockForShare)
		if err != nil {
			return err
		}
		if cust == nil {
			return ValidationError(fmt.Sprintf("customer %d does not exist", in.CustomerID))
		}

		products, err := a.deps.Products.LockByIDs(dbc, productIDs, repos.LockForShare)
		if err != nil {
			return err
		}
		byID := make(map[uint]*types.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}
		for _, id := range productIDs {
			if byID[id] == nil {
				return ValidationError(fmt.Sprintf("product %d does not exist", id))
			}
		}

		order, err := a.deps.Orders.Create(dbc, &types.Order{CustomerID: in.CustomerID, PaymentStatus: status})
		if err != nil {
			return err
		}
		items := make([]*types.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, &types.OrderItem{
				OrderID:   order.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: byID[it.ProductID].UnitPrice,
			})
		}
		if _, err := a.deps.OrderItems.Create(dbc, items); err != nil {
			return err
		}

		loaded, err := a.deps.Orders.GetByID(dbc, order.ID)
		if err != nil {
			return err
		}
		if loaded == nil {
			return notFound(op, "order", order.ID)
		}
		out = *loaded
		return nil
	})
	if err == nil {
		a.deps.Base.Hooks.OrderPlaced(status)
	}
	return out, err
}

func (a *catalogAggregate) ClearInventory(ctx context.Context, in domainagg.ClearInventoryInput) (domainagg.ClearInventoryResult, error) {
	const op = "Store.Catalog.ClearInventory"
	var out domainagg.ClearInventoryResult
	ids := uniqueIDs(in.ProductIDs)
	if len(ids) == 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "no products selected", nil)
	}
	if a.deps.Products == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "catalog aggregate repos not configured", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		n, err := a.deps.Products.SetInventory(dbc, ids, 0)
		if err != nil {
			return err
		}
		out.Updated = n
		out.Message = fmt.Sprintf("%d products were successfully updated.", n)

		if a.deps.AdminLog == nil {
			return nil
		}
		idsJSON, err := json.Marshal(ids)
		if err != nil {
			return err
		}
		details, err := json.Marshal(map[string]any{"requested": len(ids), "updated": n})
		if err != nil {
			return err
		}
		_, err = a.deps.AdminLog.Create(dbc, &types.AdminLogEntry{
			Action:     adminlog.ActionClearInventory,
			ObjectType: tags.ObjectTypeProduct,
			ObjectIDs:  datatypes.JSON(idsJSON),
			Message:    out.Message,
			Details:    datatypes.JSON(details),
			Actor:      strings.TrimSpace(in.Actor),
		})
		return err
	})
	if err == nil {
		a.deps.Base.Hooks.InventoryCleared(out.Updated)
	}
	return out, err
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
