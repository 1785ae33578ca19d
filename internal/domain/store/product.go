package store

import (
	"time"

	"github.com/shopspring/decimal"
)

const LowInventoryThreshold = 10

type Product struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Title        string          `gorm:"type:varchar(255);not null;column:title;index" json:"title"`
	Slug         string          `gorm:"type:varchar(255);not null;column:slug;index" json:"slug"`
	Description  *string         `gorm:"type:text;column:description" json:"description"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(6,2);not null;column:unit_price" json:"unit_price"`
	Inventory    int             `gorm:"not null;default:0;column:inventory" json:"inventory"`
	LastUpdate   time.Time       `gorm:"autoUpdateTime;column:last_update" json:"last_update"`
	CollectionID uint            `gorm:"not null;column:collection_id;index" json:"collection"`
	Collection   *Collection     `gorm:"foreignKey:CollectionID;constraint:OnDelete:RESTRICT" json:"-"`
	Reviews      []Review        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Product) TableName() string { return "product" }

// PriceWithTax is derived at read time and never stored.
func (p Product) PriceWithTax() decimal.Decimal {
	return PriceWithTax(p.UnitPrice)
}

func (p Product) IsLowInventory() bool {
	return p.Inventory < LowInventoryThreshold
}
