package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	types "github.com/yungbote/storefront-backend/internal/domain"
)

func Money(tb testing.TB, v string) decimal.Decimal {
	tb.Helper()
	d, err := decimal.NewFromString(v)
	if err != nil {
		tb.Fatalf("money %q: %v", v, err)
	}
	return d
}

func SeedCollection(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *types.Collection {
	tb.Helper()
	c := &types.Collection{Title: title}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed collection: %v", err)
	}
	return c
}

func SeedProduct(tb testing.TB, ctx context.Context, tx *gorm.DB, collectionID uint, title, price string, inventory int) *types.Product {
	tb.Helper()
	p := &types.Product{
		Title:        title,
		Slug:         fmt.Sprintf("%s-%d", slugify(title), collectionID),
		UnitPrice:    Money(tb, price),
		Inventory:    inventory,
		CollectionID: collectionID,
	}
	if err := tx.WithContext(ctx).Omit("Collection", "Reviews").Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

func SeedCustomer(tb testing.TB, ctx context.Context, tx *gorm.DB, first, last, email string) *types.Customer {
	tb.Helper()
	c := &types.Customer{
		FirstName:  first,
		LastName:   last,
		Email:      email,
		Phone:      "555-0100",
		Membership: types.MembershipBronze,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed customer: %v", err)
	}
	return c
}

// SeedOrder creates an order with one item per product, quantity 1 at the product's price.
func SeedOrder(tb testing.TB, ctx context.Context, tx *gorm.DB, customerID uint, products ...*types.Product) *types.Order {
	tb.Helper()
	o := &types.Order{CustomerID: customerID, PaymentStatus: types.PaymentPending}
	if err := tx.WithContext(ctx).Omit("Customer", "Items").Create(o).Error; err != nil {
		tb.Fatalf("seed order: %v", err)
	}
	for _, p := range products {
		it := &types.OrderItem{OrderID: o.ID, ProductID: p.ID, Quantity: 1, UnitPrice: p.UnitPrice}
		if err := tx.WithContext(ctx).Omit("Product").Create(it).Error; err != nil {
			tb.Fatalf("seed order item: %v", err)
		}
		o.Items = append(o.Items, *it)
	}
	return o
}

func SeedReview(tb testing.TB, ctx context.Context, tx *gorm.DB, productID uint, name string) *types.Review {
	tb.Helper()
	r := &types.Review{ProductID: productID, Name: name, Description: "review by " + name}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed review: %v", err)
	}
	return r
}

func PtrUint(v uint) *uint { return &v }

func slugify(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		default:
			out = append(out, '-')
		}
	}
	return string(out)
}
