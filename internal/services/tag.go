package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/data/aggregates"
	"github.com/yungbote/storefront-backend/internal/data/repos"
	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type TagService interface {
	ListForProduct(ctx context.Context, productID uint) ([]*types.Tag, error)
	// TagProduct links label to the product, creating the tag when needed. Linking twice is a no-op.
	TagProduct(ctx context.Context, productID uint, label string) (*types.Tag, error)
}

type tagService struct {
	db       *gorm.DB
	log      *logger.Logger
	products repos.ProductRepo
	tags     repos.TagRepo
	items    repos.TaggedItemRepo
}

func NewTagService(db *gorm.DB, baseLog *logger.Logger, products repos.ProductRepo, tags repos.TagRepo, items repos.TaggedItemRepo) TagService {
	return &tagService{
		db:       db,
		log:      baseLog.With("service", "TagService"),
		products: products,
		tags:     tags,
		items:    items,
	}
}

func (s *tagService) ListForProduct(ctx context.Context, productID uint) ([]*types.Tag, error) {
	const op = "TagService.ListForProduct"
	dbc := dbctx.Context{Ctx: ctx}
	p, err := s.products.GetByID(dbc, productID)
	if err != nil {
		return nil, storeErr(op, err)
	}
	if p == nil {
		return nil, notFound(op, "product", productID)
	}
	out, err := s.tags.ListForObject(dbc, types.ObjectTypeProduct, productID)
	if err != nil {
		return nil, storeErr(op, err)
	}
	return out, nil
}

func (s *tagService) TagProduct(ctx context.Context, productID uint, label string) (*types.Tag, error) {
	const op = "TagService.TagProduct"
	if err := aggregates.RequireNonBlank("label", label, 255); err != nil {
		return nil, aggregates.MapError(op, err)
	}
	var out *types.Tag
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		p, err := s.products.LockByID(dbc, productID, repos.LockForShare)
		if err != nil {
			return err
		}
		if p == nil {
			return notFound(op, "product", productID)
		}
		tag, err := s.tags.GetOrCreateByLabel(dbc, label)
		if err != nil {
			return err
		}
		if err := s.items.Link(dbc, tag.ID, types.ObjectTypeProduct, productID); err != nil {
			return err
		}
		out = tag
		return nil
	})
	if err != nil {
		return nil, storeErr(op, err)
	}
	return out, nil
}
