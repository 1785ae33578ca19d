package store

import "time"

type Collection struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"type:varchar(255);not null;column:title" json:"title"`

	// FeaturedProductID closes a cycle with product.collection_id, so its foreign key
	// is added after both tables exist (see db.Migrate).
	FeaturedProductID *uint `gorm:"column:featured_product_id;index" json:"featured_product"`

	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}

func (Collection) TableName() string { return "collection" }

// CollectionWithCount is a collection row annotated with the number of products
// that reference it. ProductsCount is never persisted.
type CollectionWithCount struct {
	Collection
	ProductsCount int64 `gorm:"column:products_count;->" json:"products_count"`
}
