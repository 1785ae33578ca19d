package aggregates

import (
	"testing"

	"github.com/shopspring/decimal"

	domainagg "github.com/yungbote/storefront-backend/internal/domain/aggregates"
)

func TestRequireNoDependents(t *testing.T) {
	if err := RequireNoDependents("op", "Collection", "product", 0); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	err := RequireNoDependents("op", "Collection", "product", 3)
	if !domainagg.IsCode(err, domainagg.CodeReferentialConflict) {
		t.Fatalf("expected referential_conflict, got %v", err)
	}
	var aggErr *domainagg.Error
	if !asAggErr(err, &aggErr) || aggErr.Dependents != 3 {
		t.Fatalf("dependents not recorded: %+v", err)
	}
	if want := "Collection cannot be deleted because it is referenced by 3 products"; aggErr.Message != want {
		t.Fatalf("message: want=%q got=%q", want, aggErr.Message)
	}
}

func TestRequireUnitPrice(t *testing.T) {
	ok := []string{"1", "1.00", "20.5", "9999.99"}
	for _, v := range ok {
		if err := RequireUnitPrice("unit_price", decimal.RequireFromString(v)); err != nil {
			t.Fatalf("%s should be accepted: %v", v, err)
		}
	}
	bad := []string{"0", "0.99", "-5", "10000", "1.005"}
	for _, v := range bad {
		if err := RequireUnitPrice("unit_price", decimal.RequireFromString(v)); err == nil {
			t.Fatalf("%s should be rejected", v)
		}
	}
}

func TestRequireNonBlank(t *testing.T) {
	if err := RequireNonBlank("title", "  ", 255); err == nil {
		t.Fatalf("blank should be rejected")
	}
	if err := RequireNonBlank("title", "abcd", 3); err == nil {
		t.Fatalf("too long should be rejected")
	}
	if err := RequireNonBlank("title", "Bread", 255); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestIntegerGuards(t *testing.T) {
	if RequireNonNegative("inventory", 0) != nil || RequireNonNegative("inventory", -1) == nil {
		t.Fatalf("RequireNonNegative misbehaves")
	}
	if RequirePositive("quantity", 1) != nil || RequirePositive("quantity", 0) == nil {
		t.Fatalf("RequirePositive misbehaves")
	}
	if RequireID("collection", 0) == nil || RequireID("collection", 2) != nil {
		t.Fatalf("RequireID misbehaves")
	}
	if RequireOneOf("payment_status", "X", "P", "C", "F") == nil || RequireOneOf("payment_status", "C", "P", "C", "F") != nil {
		t.Fatalf("RequireOneOf misbehaves")
	}
}

func asAggErr(err error, target **domainagg.Error) bool {
	e, ok := err.(*domainagg.Error)
	if ok {
		*target = e
	}
	return ok
}
