package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/storefront-backend/internal/domain"
)

const featuredProductFK = "fk_collection_featured_product"

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return ensureFeaturedProductFK(db)
}

// collection.featured_product_id and product.collection_id reference each other, so the
// first of the two constraints is added once both tables exist. SQLite cannot add
// constraints to an existing table; the catalog aggregate clears the pointer itself.
func ensureFeaturedProductFK(db *gorm.DB) error {
	if db.Dialector.Name() != DriverPostgres {
		return nil
	}
	if db.Migrator().HasConstraint(&types.Collection{}, featuredProductFK) {
		return nil
	}
	stmt := fmt.Sprintf(
		`ALTER TABLE collection ADD CONSTRAINT %s FOREIGN KEY (featured_product_id) REFERENCES product(id) ON DELETE SET NULL`,
		featuredProductFK,
	)
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("add %s: %w", featuredProductFK, err)
	}
	return nil
}
