package store

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

// ProductFilter narrows product listings. Zero values mean "no constraint".
type ProductFilter struct {
	CollectionID   *uint
	UnitPriceGT    *decimal.Decimal
	UnitPriceLT    *decimal.Decimal
	Search         string
	SearchTitle    bool
	LowInventory   bool
	Ordering       string
	WithCollection bool
	Limit          int
	Offset         int
}

var productOrderings = map[string]string{
	"unit_price":   "product.unit_price ASC, product.id ASC",
	"-unit_price":  "product.unit_price DESC, product.id ASC",
	"last_update":  "product.last_update ASC, product.id ASC",
	"-last_update": "product.last_update DESC, product.id ASC",
	"title":        "product.title ASC, product.id ASC",
	"-title":       "product.title DESC, product.id ASC",
	"id":           "product.id ASC",
	"-id":          "product.id DESC",
}

// IsProductOrdering reports whether v is an accepted ordering key.
func IsProductOrdering(v string) bool {
	_, ok := productOrderings[v]
	return ok
}

type ProductRepo interface {
	Create(dbc dbctx.Context, row *types.Product) (*types.Product, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Product, error)
	List(dbc dbctx.Context, f ProductFilter) ([]*types.Product, int64, error)
	CountByCollectionID(dbc dbctx.Context, collectionID uint) (int64, error)
	CountByCollection(dbc dbctx.Context) (map[uint]int64, error)
	LockByID(dbc dbctx.Context, id uint, strength string) (*types.Product, error)
	LockByIDs(dbc dbctx.Context, ids []uint, strength string) ([]*types.Product, error)
	UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) error
	SetInventory(dbc dbctx.Context, ids []uint, inventory int) (int64, error)
	Delete(dbc dbctx.Context, id uint) (int64, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return &productRepo{db: db, log: baseLog.With("repo", "ProductRepo")}
}

func (r *productRepo) Create(dbc dbctx.Context, row *types.Product) (*types.Product, error) {
	if row == nil {
		return nil, fmt.Errorf("missing product")
	}
	txx := dbc.DB(r.db)
	if err := txx.Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *productRepo) GetByID(dbc dbctx.Context, id uint) (*types.Product, error) {
	if id == 0 {
		return nil, nil
	}
	txx := dbc.DB(r.db)
	var out types.Product
	res := txx.
		Model(&types.Product{}).
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

func (r *productRepo) List(dbc dbctx.Context, f ProductFilter) ([]*types.Product, int64, error) {
	txx := dbc.DB(r.db)
	q := txx.Model(&types.Product{})
	if f.CollectionID != nil {
		q = q.Where("product.collection_id = ?", *f.CollectionID)
	}
	if f.UnitPriceGT != nil {
		q = q.Where("product.unit_price > ?", *f.UnitPriceGT)
	}
	if f.UnitPriceLT != nil {
		q = q.Where("product.unit_price < ?", *f.UnitPriceLT)
	}
	if f.LowInventory {
		q = q.Where("product.inventory < ?", types.LowInventoryThreshold)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := containsPattern(s)
		if f.SearchTitle {
			q = q.Where("LOWER(product.title) LIKE ?"+escapeLike, like)
		} else {
			q = q.Where("LOWER(product.title) LIKE ?"+escapeLike+" OR LOWER(COALESCE(product.description, '')) LIKE ?"+escapeLike, like, like)
		}
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := productOrderings[f.Ordering]
	if !ok {
		order = productOrderings["id"]
	}
	q = q.Order(order)
	if f.WithCollection {
		q = q.Joins("Collection")
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	var out []*types.Product
	if err := q.Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *productRepo) CountByCollectionID(dbc dbctx.Context, collectionID uint) (int64, error) {
	txx := dbc.DB(r.db)
	var n int64
	if err := txx.
		Model(&types.Product{}).
		Where("collection_id = ?", collectionID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// CountByCollection groups products per collection. Collections without products are absent.
func (r *productRepo) CountByCollection(dbc dbctx.Context) (map[uint]int64, error) {
	txx := dbc.DB(r.db)
	type row struct {
		CollectionID uint
		N            int64
	}
	var rows []row
	if err := txx.
		Model(&types.Product{}).
		Select("collection_id, COUNT(*) AS n").
		Group("collection_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]int64, len(rows))
	for _, rr := range rows {
		out[rr.CollectionID] = rr.N
	}
	return out, nil
}

func (r *productRepo) LockByID(dbc dbctx.Context, id uint, strength string) (*types.Product, error) {
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
	var out types.Product
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

// LockByIDs locks rows in ascending id order so concurrent callers cannot deadlock each other.
func (r *productRepo) LockByIDs(dbc dbctx.Context, ids []uint, strength string) ([]*types.Product, error) {
	if len(ids) == 0 {
		return []*types.Product{}, nil
	}
	if !dbc.InTx() {
		return nil, fmt.Errorf("LockByIDs requires dbc.Tx")
	}
	lock, err := lockingClause(strength)
	if err != nil {
		return nil, err
	}
	var out []*types.Product
	if err := dbc.DB(nil).
		Clauses(lock).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productRepo) UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) error {
	if id == 0 {
		return fmt.Errorf("missing id")
	}
	if len(updates) == 0 {
		return nil
	}
	txx := dbc.DB(r.db)
	return txx.
		Model(&types.Product{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *productRepo) SetInventory(dbc dbctx.Context, ids []uint, inventory int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	if inventory < 0 {
		return 0, fmt.Errorf("inventory must be >= 0")
	}
	txx := dbc.DB(r.db)
	res := txx.
		Model(&types.Product{}).
		Where("id IN ?", ids).
		Update("inventory", inventory)
	return res.RowsAffected, res.Error
}

func (r *productRepo) Delete(dbc dbctx.Context, id uint) (int64, error) {
	if id == 0 {
		return 0, fmt.Errorf("missing id")
	}
	txx := dbc.DB(r.db)
	res := txx.
		Where("id = ?", id).
		Delete(&types.Product{})
	return res.RowsAffected, res.Error
}
