package store

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type CollectionRepo interface {
	Create(dbc dbctx.Context, row *types.Collection) (*types.Collection, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Collection, error)
	ListWithProductCount(dbc dbctx.Context, search string) ([]*types.CollectionWithCount, error)
	GetWithProductCount(dbc dbctx.Context, id uint) (*types.CollectionWithCount, error)
	LockByID(dbc dbctx.Context, id uint, strength string) (*types.Collection, error)
	UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) error
	ClearFeaturedProduct(dbc dbctx.Context, productID uint) (int64, error)
	Delete(dbc dbctx.Context, id uint) (int64, error)
}

type collectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCollectionRepo(db *gorm.DB, baseLog *logger.Logger) CollectionRepo {
	return &collectionRepo{db: db, log: baseLog.With("repo", "CollectionRepo")}
}

func (r *collectionRepo) Create(dbc dbctx.Context, row *types.Collection) (*types.Collection, error) {
	if row == nil {
		return nil, fmt.Errorf("missing collection")
	}
	txx := dbc.DB(r.db)
	if err := txx.Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *collectionRepo) GetByID(dbc dbctx.Context, id uint) (*types.Collection, error) {
	if id == 0 {
		return nil, nil
	}
	txx := dbc.DB(r.db)
	var out types.Collection
	res := txx.
		Model(&types.Collection{}).
		Where("id = ?", id).
		Limit(1).
		Find(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &out, nil
}

// withProductCount annotates each collection with COUNT(product.id) in the same query,
// so empty collections report zero.
func (r *collectionRepo) withProductCount(dbc dbctx.Context) *gorm.DB {
	txx := dbc.DB(r.db)
	return txx.
		Table("collection").
		Select("collection.*, COUNT(product.id) AS products_count").
		Joins("LEFT JOIN product ON product.collection_id = collection.id").
		Group("collection.id")
}

func (r *collectionRepo) ListWithProductCount(dbc dbctx.Context, search string) ([]*types.CollectionWithCount, error) {
	q := r.withProductCount(dbc)
	if s := strings.TrimSpace(search); s != "" {
		q = q.Where("LOWER(collection.title) LIKE ?"+escapeLike, containsPattern(s))
	}
	var out []*types.CollectionWithCount
	if err := q.Order("collection.id ASC").Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *collectionRepo) GetWithProductCount(dbc dbctx.Context, id uint) (*types.CollectionWithCount, error) {
	if id == 0 {
		return nil, nil
	}
	var out []*types.CollectionWithCount
	if err := r.withProductCount(dbc).
		Where("collection.id = ?", id).
		Scan(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *collectionRepo) LockByID(dbc dbctx.Context, id uint, strength string) (*types.Collection, error) {
	if id == 0 {
		return nil, fmt.Errorf("missing id")
	}
	if !dbc.InTx() {
		return nil, fmt.Errorf("LockByID requires dbc.Tx")
	}
	lock, err := lockingClause(strength)
	if err != nil {
		return nil, err
	}
	var out types.Collection
	res := dbc.DB(nil).
		Clauses(lock).
		Where("id = ?", id).
		Limit(1).
		Find(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &out, nil
}

func (r *collectionRepo) UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) error {
	if id == 0 {
		return fmt.Errorf("missing id")
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["updated_at"] = time.Now().UTC()
	txx := dbc.DB(r.db)
	return txx.
		Model(&types.Collection{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *collectionRepo) ClearFeaturedProduct(dbc dbctx.Context, productID uint) (int64, error) {
	if productID == 0 {
		return 0, nil
	}
	txx := dbc.DB(r.db)
	res := txx.
		Model(&types.Collection{}).
		Where("featured_product_id = ?", productID).
		Updates(map[string]interface{}{
			"featured_product_id": nil,
			"updated_at":          time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *collectionRepo) Delete(dbc dbctx.Context, id uint) (int64, error) {
	if id == 0 {
		return 0, fmt.Errorf("missing id")
	}
	txx := dbc.DB(r.db)
	res := txx.
		Where("id = ?", id).
		Delete(&types.Collection{})
	return res.RowsAffected, res.Error
}
