package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/data/aggregates"
	"github.com/yungbote/storefront-backend/internal/data/repos"
	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type ReviewInput struct {
	Name        string
	Description string
}

// ReviewService scopes every review by its product; a review id under another product is not found.
type ReviewService interface {
	List(ctx context.Context, productID uint) ([]*types.Review, error)
	Get(ctx context.Context, productID, id uint) (*types.Review, error)
	Create(ctx context.Context, productID uint, in ReviewInput) (*types.Review, error)
	Update(ctx context.Context, productID, id uint, in ReviewInput) (*types.Review, error)
	Delete(ctx context.Context, productID, id uint) error
}

type reviewService struct {
	db       *gorm.DB
	log      *logger.Logger
	products repos.ProductRepo
	reviews  repos.ReviewRepo
}

func NewReviewService(db *gorm.DB, baseLog *logger.Logger, products repos.ProductRepo, reviews repos.ReviewRepo) ReviewService {
	return &reviewService{
		db:       db,
		log:      baseLog.With("service", "ReviewService"),
		products: products,
		reviews:  reviews,
	}
}

func validateReview(op string, in ReviewInput) error {
	if err := aggregates.RequireNonBlank("name", in.Name, 255); err != nil {
		return aggregates.MapError(op, err)
	}
	if err := aggregates.RequireNonBlank("description", in.Description, 0); err != nil {
		return aggregates.MapError(op, err)
	}
	return nil
}

func (s *reviewService) requireProduct(op string, dbc dbctx.Context, productID uint) error {
	p, err := s.products.GetByID(dbc, productID)
	if err != nil {
		return storeErr(op, err)
	}
	if p == nil {
		return notFound(op, "product", productID)
	}
	return nil
}

func (s *reviewService) List(ctx context.Context, productID uint) ([]*types.Review, error) {
	const op = "ReviewService.List"
	dbc := dbctx.Context{Ctx: ctx}
	if err := s.requireProduct(op, dbc, productID); err != nil {
		return nil, err
	}
	rows, err := s.reviews.ListByProduct(dbc, productID)
	if err != nil {
		return nil, storeErr(op, err)
	}
	return rows, nil
}

func (s *reviewService) Get(ctx context.Context, productID, id uint) (*types.Review, error) {
	const op = "ReviewService.Get"
	r, err := s.reviews.GetByProductAndID(dbctx.Context{Ctx: ctx}, productID, id)
	if err != nil {
		return nil, storeErr(op, err)
	}
	if r == nil {
		return nil, notFound(op, "review", id)
	}
	return r, nil
}

func (s *reviewService) Create(ctx context.Context, productID uint, in ReviewInput) (*types.Review, error) {
	const op = "ReviewService.Create"
	if err := validateReview(op, in); err != nil {
		return nil, err
	}
	var out *types.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		p, err := s.products.LockByID(dbc, productID, repos.LockForShare)
		if err != nil {
			return err
		}
		if p == nil {
			return notFound(op, "product", productID)
		}
		out, err = s.reviews.Create(dbc, &types.Review{
			ProductID:   productID,
			Name:        strings.TrimSpace(in.Name),
			Description: strings.TrimSpace(in.Description),
		})
		return err
	})
	if err != nil {
		return nil, storeErr(op, err)
	}
	return out, nil
}

func (s *reviewService) Update(ctx context.Context, productID, id uint, in ReviewInput) (*types.Review, error) {
	const op = "ReviewService.Update"
	if err := validateReview(op, in); err != nil {
		return nil, err
	}
	n, err := s.reviews.UpdateFields(dbctx.Context{Ctx: ctx}, productID, id, map[string]interface{}{
		"name":        strings.TrimSpace(in.Name),
		"description": strings.TrimSpace(in.Description),
	})
	if err != nil {
		return nil, storeErr(op, err)
	}
	if n == 0 {
		return nil, notFound(op, "review", id)
	}
	return s.Get(ctx, productID, id)
}

func (s *reviewService) Delete(ctx context.Context, productID, id uint) error {
	const op = "ReviewService.Delete"
	n, err := s.reviews.Delete(dbctx.Context{Ctx: ctx}, productID, id)
	if err != nil {
		return storeErr(op, err)
	}
	if n == 0 {
		return notFound(op, "review", id)
	}
	return nil
}
