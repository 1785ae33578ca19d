package schema

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yungbote/storefront-backend/internal/domain/store"
)

// Money renders as a JSON string with two fraction digits and accepts a JSON string or number.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money { return Money{Decimal: d} }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(store.MoneyPlaces) + `"`), nil
}

func (m *Money) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		return fmt.Errorf("money value must not be null")
	}
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	d, err := decimal.NewFromString(string(bytes.TrimSpace(raw)))
	if err != nil {
		return fmt.Errorf("invalid money value %q", string(raw))
	}
	m.Decimal = d
	return nil
}
