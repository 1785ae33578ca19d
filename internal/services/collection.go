package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/data/aggregates"
	"github.com/yungbote/storefront-backend/internal/data/repos"
	types "github.com/yungbote/storefront-backend/internal/domain"
	domainagg "github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type CollectionInput struct {
	Title             string
	FeaturedProductID *uint
}

type CollectionService interface {
	List(ctx context.Context, search string) ([]*types.CollectionWithCount, error)
	Get(ctx context.Context, id uint) (*types.CollectionWithCount, error)
	Create(ctx context.Context, in CollectionInput) (*types.CollectionWithCount, error)
	Update(ctx context.Context, id uint, in CollectionInput) (*types.CollectionWithCount, error)
	Delete(ctx context.Context, id uint) error
	// ProductCounts is the grouped product count per collection; empty collections are absent.
	ProductCounts(ctx context.Context) (map[uint]int64, error)
}

type collectionService struct {
	db          *gorm.DB
	log         *logger.Logger
	collections repos.CollectionRepo
	products    repos.ProductRepo
	catalog     domainagg.CatalogAggregate
}

func NewCollectionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	collections repos.CollectionRepo,
	products repos.ProductRepo,
	catalog domainagg.CatalogAggregate,
) CollectionService {
	return &collectionService{
		db:          db,
		log:         baseLog.With("service", "CollectionService"),
		collections: collections,
		products:    products,
		catalog:     catalog,
	}
}

func (s *collectionService) List(ctx context.Context, search string) ([]*types.CollectionWithCount, error) {
	rows, err := s.collections.ListWithProductCount(dbctx.Context{Ctx: ctx}, search)
	if err != nil {
		return nil, storeErr("CollectionService.List", err)
	}
	return rows, nil
}

func (s *collectionService) Get(ctx context.Context, id uint) (*types.CollectionWithCount, error) {
	const op = "CollectionService.Get"
	row, err := s.collections.GetWithProductCount(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, storeErr(op, err)
	}
	if row == nil {
		return nil, notFound(op, "collection", id)
	}
	return row, nil
}

func (s *collectionService) validate(op string, in CollectionInput) error {
	if err := aggregates.RequireNonBlank("title", in.Title, 255); err != nil {
		return aggregates.MapError(op, err)
	}
	return nil
}

// requireFeaturedProduct runs inside tx; the featured pointer has no FK on every dialect.
func (s *collectionService) requireFeaturedProduct(op string, dbc dbctx.Context, id *uint) error {
	if id == nil {
		return nil
	}
	p, err := s.products.LockByID(dbc, *id, repos.LockForShare)
	if err != nil {
		return err
	}
	if p == nil {
		return invalid(op, "featured_product does not exist")
	}
	return nil
}

func (s *collectionService) Create(ctx context.Context, in CollectionInput) (*types.CollectionWithCount, error) {
	const op = "CollectionService.Create"
	if err := s.validate(op, in); err != nil {
		return nil, err
	}
	var created *types.Collection
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.requireFeaturedProduct(op, dbc, in.FeaturedProductID); err != nil {
			return err
		}
		row, err := s.collections.Create(dbc, &types.Collection{
			Title:             strings.TrimSpace(in.Title),
			FeaturedProductID: in.FeaturedProductID,
		})
		if err != nil {
			return err
		}
		created = row
		return nil
	})
	if err != nil {
		return nil, storeErr(op, err)
	}
	s.log.Info("collection created", "collection_id", created.ID)
	return &types.CollectionWithCount{Collection: *created}, nil
}

func (s *collectionService) Update(ctx context.Context, id uint, in CollectionInput) (*types.CollectionWithCount, error) {
	const op = "CollectionService.Update"
	if err := s.validate(op, in); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		cur, err := s.collections.LockByID(dbc, id, repos.LockForUpdate)
		if err != nil {
			return err
		}
		if cur == nil {
			return notFound(op, "collection", id)
		}
		if err := s.requireFeaturedProduct(op, dbc, in.FeaturedProductID); err != nil {
			return err
		}
		return s.collections.UpdateFields(dbc, id, map[string]interface{}{
			"title":               strings.TrimSpace(in.Title),
			"featured_product_id": in.FeaturedProductID,
		})
	})
	if err != nil {
		return nil, storeErr(op, err)
	}
	return s.Get(ctx, id)
}

func (s *collectionService) Delete(ctx context.Context, id uint) error {
	_, err := s.catalog.DeleteCollection(ctx, domainagg.DeleteCollectionInput{CollectionID: id})
	if err != nil {
		if domainagg.IsCode(err, domainagg.CodeReferentialConflict) {
			s.log.Info("collection delete blocked", "collection_id", id, "error", err)
		}
		return err
	}
	return nil
}

func (s *collectionService) ProductCounts(ctx context.Context) (map[uint]int64, error) {
	counts, err := s.products.CountByCollection(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, storeErr("CollectionService.ProductCounts", err)
	}
	return counts, nil
}
