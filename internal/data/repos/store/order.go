package store

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type OrderRepo interface {
	Create(dbc dbctx.Context, row *types.Order) (*types.Order, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Order, error)
	ListRecent(dbc dbctx.Context, limit, offset int) ([]*types.Order, error)
	Count(dbc dbctx.Context) (int64, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return &orderRepo{db: db, log: baseLog.With("repo", "OrderRepo")}
}

func (r *orderRepo) Create(dbc dbctx.Context, row *types.Order) (*types.Order, error) {
	if row == nil {
		return nil, fmt.Errorf("missing order")
	}
	txx := dbc.DB(r.db)
	// Items are inserted by OrderItemRepo once the order id exists.
	if err := txx.Omit("Items").Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// withRelations loads the customer through a join and items with their products
// through one batched preload per level, independent of the number of orders.
func (r *orderRepo) withRelations(dbc dbctx.Context) *gorm.DB {
	txx := dbc.DB(r.db)
	return txx.
		Model(&types.Order{}).
		Joins("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_item.id ASC") }).
		Preload("Items.Product")
}

func (r *orderRepo) GetByID(dbc dbctx.Context, id uint) (*types.Order, error) {
	if id == 0 {
		return nil, nil
	}
	var out []*types.Order
	if err := r.withRelations(dbc).
		Where("customer_order.id = ?", id).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *orderRepo) ListRecent(dbc dbctx.Context, limit, offset int) ([]*types.Order, error) {
	if limit <= 0 || limit > 200 {
		limit = 5
	}
	q := r.withRelations(dbc).
		Order("customer_order.placed_at DESC").
		Order("customer_order.id DESC").
		Limit(limit)
	if offset > 0 {
		q = q.Offset(offset)
	}
	var out []*types.Order
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) Count(dbc dbctx.Context) (int64, error) {
	txx := dbc.DB(r.db)
	var n int64
	if err := txx.Model(&types.Order{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
