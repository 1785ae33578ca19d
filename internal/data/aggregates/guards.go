package aggregates

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	domainagg "github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/domain/store"
)

var (
	minUnitPrice = decimal.NewFromInt(1)
	// numeric(6,2)
	maxUnitPrice = decimal.RequireFromString("9999.99")
)

// RequireNoDependents is the deletion guard: any referencing row blocks the delete.
func RequireNoDependents(op, entity, dependent string, n int64) error {
	if n <= 0 {
		return nil
	}
	return domainagg.NewReferentialConflict(op, entity, dependent, n)
}

func RequireNonBlank(field, v string, maxLen int) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return ValidationError(field + " is required")
	}
	if maxLen > 0 && utf8.RuneCountInString(v) > maxLen {
		return ValidationError(fmt.Sprintf("%s must be at most %d characters", field, maxLen))
	}
	return nil
}

// RequireUnitPrice enforces 1 <= price <= 9999.99 with at most two fraction digits.
func RequireUnitPrice(field string, v decimal.Decimal) error {
	if v.LessThan(minUnitPrice) {
		return ValidationError(field + " must be greater than or equal to 1")
	}
	if v.GreaterThan(maxUnitPrice) {
		return ValidationError(field + " must be at most 9999.99")
	}
	if !v.Equal(v.Round(store.MoneyPlaces)) {
		return ValidationError(field + " must have at most 2 decimal places")
	}
	return nil
}

func RequireNonNegative(field string, v int) error {
	if v < 0 {
		return ValidationError(field + " must be greater than or equal to 0")
	}
	return nil
}

func RequirePositive(field string, v int) error {
	if v < 1 {
		return ValidationError(field + " must be greater than or equal to 1")
	}
	return nil
}

func RequireID(field string, id uint) error {
	if id == 0 {
		return ValidationError(field + " is required")
	}
	return nil
}

func RequireOneOf(field, v string, allowed ...string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return ValidationError(fmt.Sprintf("%s must be one of %s", field, strings.Join(allowed, ", ")))
}

func notFound(op, entity string, id uint) error {
	return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("%s %d not found", entity, id), nil)
}
