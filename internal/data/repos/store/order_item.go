package store

import (
	"gorm.io/gorm"

	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type OrderItemRepo interface {
	Create(dbc dbctx.Context, rows []*types.OrderItem) ([]*types.OrderItem, error)
	CountByProductID(dbc dbctx.Context, productID uint) (int64, error)
}

type orderItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderItemRepo(db *gorm.DB, baseLog *logger.Logger) OrderItemRepo {
	return &orderItemRepo{db: db, log: baseLog.With("repo", "OrderItemRepo")}
}

func (r *orderItemRepo) Create(dbc dbctx.Context, rows []*types.OrderItem) ([]*types.OrderItem, error) {
	if len(rows) == 0 {
		return []*types.OrderItem{}, nil
	}
	txx := dbc.DB(r.db)
	if err := txx.Omit("Product").Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *orderItemRepo) CountByProductID(dbc dbctx.Context, productID uint) (int64, error) {
	txx := dbc.DB(r.db)
	var n int64
	if err := txx.
		Model(&types.OrderItem{}).
		Where("product_id = ?", productID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
