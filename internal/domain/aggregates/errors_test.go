package aggregates

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewReferentialConflict(t *testing.T) {
	err := NewReferentialConflict("catalog.delete_collection", "Collection", "product", 3)
	if !IsCode(err, CodeReferentialConflict) {
		t.Fatalf("expected referential_conflict, got %v", CodeOf(err))
	}
	want := "Collection cannot be deleted because it is referenced by 3 products"
	if got := errMessage(err); got != want {
		t.Fatalf("message: want=%q got=%q", want, got)
	}
	var aggErr *Error
	if !errors.As(err, &aggErr) || aggErr.Dependents != 3 {
		t.Fatalf("dependents not carried: %#v", aggErr)
	}
}

func TestNewReferentialConflictSingular(t *testing.T) {
	err := NewReferentialConflict("catalog.delete_product", "Product", "order item", 1)
	want := "Product cannot be deleted because it is referenced by 1 order item"
	if got := errMessage(err); got != want {
		t.Fatalf("message: want=%q got=%q", want, got)
	}
}

func TestWrapAndCodeOf(t *testing.T) {
	base := errors.New("boom")
	err := fmt.Errorf("outer: %w", Wrap(CodeRetryable, "catalog.create_order", base))
	if CodeOf(err) != CodeRetryable {
		t.Fatalf("code: want=%s got=%s", CodeRetryable, CodeOf(err))
	}
	if !errors.Is(err, base) {
		t.Fatalf("cause should unwrap")
	}
	if Wrap(CodeInternal, "op", nil) != nil {
		t.Fatalf("Wrap(nil) must be nil")
	}
	if CodeOf(base) != "" || errMessage(base) != "" {
		t.Fatalf("plain errors carry no code")
	}
}

func TestErrorString(t *testing.T) {
	cases := []struct {
		err  *Error
		want string
	}{
		{&Error{Code: CodeNotFound, Op: "op", Message: "missing"}, "op: missing (not_found)"},
		{&Error{Code: CodeNotFound, Op: "op"}, "op (not_found)"},
		{&Error{Code: CodeNotFound, Message: "missing"}, "missing (not_found)"},
		{&Error{Code: CodeNotFound}, "not_found"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Fatalf("want=%q got=%q", tc.want, got)
		}
	}
}

func TestCatalogContract(t *testing.T) {
	if !CatalogAggregateContract.OwnsTx {
		t.Fatalf("catalog writes must own their transaction")
	}
	g, ok := CatalogAggregateContract.GuardFor("product")
	if !ok || g.Dependent != "order_item" || g.Column != "product_id" {
		t.Fatalf("unexpected product guard: %#v ok=%v", g, ok)
	}
	if _, ok := CatalogAggregateContract.GuardFor("customer"); ok {
		t.Fatalf("customer has no guard")
	}
}

func TestAsError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewError(CodeNotFound, "op", "product 3 not found", nil))
	aggErr := AsError(wrapped)
	if aggErr == nil || aggErr.Code != CodeNotFound {
		t.Fatalf("expected not_found aggregate error, got %#v", aggErr)
	}
	if AsError(errors.New("plain")) != nil {
		t.Fatalf("plain error should not convert")
	}
}

func TestErrorsIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("delete: %w", NewReferentialConflict("op", "Product", "order item", 2))
	if !errors.Is(err, &Error{Code: CodeReferentialConflict}) {
		t.Fatalf("errors.Is should match on code")
	}
	if errors.Is(err, &Error{Code: CodeNotFound}) {
		t.Fatalf("different code must not match")
	}
	if IsCode(errors.New("plain"), "") {
		t.Fatalf("empty code never matches")
	}
}

// errMessage returns the client-facing text of an aggregate error.
func errMessage(err error) string {
	if e := AsError(err); e != nil {
		return e.Message
	}
	return ""
}
