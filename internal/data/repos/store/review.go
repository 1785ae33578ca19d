package store

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

// ReviewRepo scopes every lookup by product so a review id never leaks across products.
type ReviewRepo interface {
	Create(dbc dbctx.Context, row *types.Review) (*types.Review, error)
	ListByProduct(dbc dbctx.Context, productID uint) ([]*types.Review, error)
	GetByProductAndID(dbc dbctx.Context, productID, id uint) (*types.Review, error)
	UpdateFields(dbc dbctx.Context, productID, id uint, updates map[string]interface{}) (int64, error)
	Delete(dbc dbctx.Context, productID, id uint) (int64, error)
	DeleteByProductID(dbc dbctx.Context, productID uint) (int64, error)
}

type reviewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	return &reviewRepo{db: db, log: baseLog.With("repo", "ReviewRepo")}
}

func (r *reviewRepo) Create(dbc dbctx.Context, row *types.Review) (*types.Review, error) {
	if row == nil || row.ProductID == 0 {
		return nil, fmt.Errorf("missing review product_id")
	}
	txx := dbc.DB(r.db)
	if err := txx.Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *reviewRepo) ListByProduct(dbc dbctx.Context, productID uint) ([]*types.Review, error) {
	txx := dbc.DB(r.db)
	var out []*types.Review
	if err := txx.
		Model(&types.Review{}).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *reviewRepo) GetByProductAndID(dbc dbctx.Context, productID, id uint) (*types.Review, error) {
	if productID == 0 || id == 0 {
		return nil, nil
	}
	txx := dbc.DB(r.db)
	var out types.Review
	res := txx.
		Model(&types.Review{}).
		Where("product_id = ? AND id = ?", productID, id).
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

func (r *reviewRepo) UpdateFields(dbc dbctx.Context, productID, id uint, updates map[string]interface{}) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	txx := dbc.DB(r.db)
	res := txx.
		Model(&types.Review{}).
		Where("product_id = ? AND id = ?", productID, id).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *reviewRepo) Delete(dbc dbctx.Context, productID, id uint) (int64, error) {
	txx := dbc.DB(r.db)
	res := txx.
		Where("product_id = ? AND id = ?", productID, id).
		Delete(&types.Review{})
	return res.RowsAffected, res.Error
}

func (r *reviewRepo) DeleteByProductID(dbc dbctx.Context, productID uint) (int64, error) {
	txx := dbc.DB(r.db)
	res := txx.
		Where("product_id = ?", productID).
		Delete(&types.Review{})
	return res.RowsAffected, res.Error
}
