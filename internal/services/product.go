package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/data/repos"
	types "github.com/yungbote/storefront-backend/internal/domain"
	domainagg "github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

// ProductQuery mirrors the public product filters.
type ProductQuery struct {
	CollectionID *uint
	UnitPriceGT  *decimal.Decimal
	UnitPriceLT  *decimal.Decimal
	Search       string
	Ordering     string
	Page         int
	PageSize     int
}

type ProductPage struct {
	Products []*types.Product
	Count    int64
	Page     Page
}

type ProductService interface {
	List(ctx context.Context, q ProductQuery) (*ProductPage, error)
	Get(ctx context.Context, id uint) (*types.Product, error)
	Create(ctx context.Context, in domainagg.ProductFields) (*types.Product, error)
	Update(ctx context.Context, id uint, in domainagg.ProductFields) (*types.Product, error)
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	db       *gorm.DB
	log      *logger.Logger
	products repos.ProductRepo
	catalog  domainagg.CatalogAggregate
}

func NewProductService(db *gorm.DB, baseLog *logger.Logger, products repos.ProductRepo, catalog domainagg.CatalogAggregate) ProductService {
	return &productService{
		db:       db,
		log:      baseLog.With("service", "ProductService"),
		products: products,
		catalog:  catalog,
	}
}

func (s *productService) List(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	const op = "ProductService.List"
	if q.Ordering != "" && !repos.IsProductOrdering(q.Ordering) {
		return nil, invalid(op, "unsupported ordering: "+q.Ordering)
	}
	if q.UnitPriceGT != nil && q.UnitPriceLT != nil && !q.UnitPriceGT.LessThan(*q.UnitPriceLT) {
		return &ProductPage{Products: []*types.Product{}, Page: NewPage(q.Page, q.PageSize, DefaultPageSize)}, nil
	}
	page := NewPage(q.Page, q.PageSize, DefaultPageSize)
	rows, total, err := s.products.List(dbctx.Context{Ctx: ctx}, repos.ProductFilter{
		CollectionID: q.CollectionID,
		UnitPriceGT:  q.UnitPriceGT,
		UnitPriceLT:  q.UnitPriceLT,
		Search:       q.Search,
		Ordering:     q.Ordering,
		Limit:        page.Size,
		Offset:       page.Offset(),
	})
	if err != nil {
		return nil, storeErr(op, err)
	}
	return &ProductPage{Products: rows, Count: total, Page: page}, nil
}

func (s *productService) Get(ctx context.Context, id uint) (*types.Product, error) {
	const op = "ProductService.Get"
	p, err := s.products.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, storeErr(op, err)
	}
	if p == nil {
		return nil, notFound(op, "product", id)
	}
	return p, nil
}

func (s *productService) Create(ctx context.Context, in domainagg.ProductFields) (*types.Product, error) {
	p, err := s.catalog.CreateProduct(ctx, domainagg.CreateProductInput{ProductFields: in})
	if err != nil {
		return nil, err
	}
	s.log.Info("product created", "product_id", p.ID, "collection_id", p.CollectionID)
	return &p, nil
}

func (s *productService) Update(ctx context.Context, id uint, in domainagg.ProductFields) (*types.Product, error) {
	p, err := s.catalog.UpdateProduct(ctx, domainagg.UpdateProductInput{ProductID: id, ProductFields: in})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	_, err := s.catalog.DeleteProduct(ctx, domainagg.DeleteProductInput{ProductID: id})
	if err != nil && domainagg.IsCode(err, domainagg.CodeReferentialConflict) {
		s.log.Info("product delete blocked", "product_id", id, "error", err)
	}
	return err
}
