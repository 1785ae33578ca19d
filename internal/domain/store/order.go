package store

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentPending  = "P"
	PaymentComplete = "C"
	PaymentFailed   = "F"
)

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	PlacedAt      time.Time   `gorm:"autoCreateTime;not null;column:placed_at;index" json:"placed_at"`
	PaymentStatus string      `gorm:"type:varchar(1);not null;default:P;column:payment_status" json:"payment_status"`
	CustomerID    uint        `gorm:"not null;column:customer_id;index" json:"customer"`
	Customer      *Customer   `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT" json:"-"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT" json:"-"`
}

// "order" is reserved in SQL.
func (Order) TableName() string { return "customer_order" }

type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;column:order_id;index" json:"order"`
	ProductID uint            `gorm:"not null;column:product_id;index" json:"product"`
	Product   *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"-"`
	Quantity  int             `gorm:"not null;column:quantity" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(6,2);not null;column:unit_price" json:"unit_price"`
}

func (OrderItem) TableName() string { return "order_item" }

func (oi OrderItem) Subtotal() decimal.Decimal {
	return oi.UnitPrice.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

// Total sums item subtotals; items must be loaded.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}
