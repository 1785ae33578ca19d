package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/data/repos"
	types "github.com/yungbote/storefront-backend/internal/domain"
	domainagg "github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

const (
	DefaultRecentOrders = 5
	MaxRecentOrders     = 100
)

type OrderService interface {
	// ListRecent returns the newest orders with customer and items loaded in a fixed number of queries.
	ListRecent(ctx context.Context, limit, offset int) ([]*types.Order, int64, error)
	Get(ctx context.Context, id uint) (*types.Order, error)
	Create(ctx context.Context, in domainagg.CreateOrderInput) (*types.Order, error)
}

type orderService struct {
	db      *gorm.DB
	log     *logger.Logger
	orders  repos.OrderRepo
	catalog domainagg.CatalogAggregate
}

func NewOrderService(db *gorm.DB, baseLog *logger.Logger, orders repos.OrderRepo, catalog domainagg.CatalogAggregate) OrderService {
	return &orderService{
		db:      db,
		log:     baseLog.With("service", "OrderService"),
		orders:  orders,
		catalog: catalog,
	}
}

func (s *orderService) ListRecent(ctx context.Context, limit, offset int) ([]*types.Order, int64, error) {
	const op = "OrderService.ListRecent"
	if limit <= 0 {
		limit = DefaultRecentOrders
	}
	if limit > MaxRecentOrders {
		limit = MaxRecentOrders
	}
	if offset < 0 {
		offset = 0
	}
	dbc := dbctx.Context{Ctx: ctx}
	rows, err := s.orders.ListRecent(dbc, limit, offset)
	if err != nil {
		return nil, 0, storeErr(op, err)
	}
	total, err := s.orders.Count(dbc)
	if err != nil {
		return nil, 0, storeErr(op, err)
	}
	return rows, total, nil
}

func (s *orderService) Get(ctx context.Context, id uint) (*types.Order, error) {
	const op = "OrderService.Get"
	o, err := s.orders.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, storeErr(op, err)
	}
	if o == nil {
		return nil, notFound(op, "order", id)
	}
	return o, nil
}

func (s *orderService) Create(ctx context.Context, in domainagg.CreateOrderInput) (*types.Order, error) {
	o, err := s.catalog.CreateOrder(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info("order placed", "order_id", o.ID, "customer_id", o.CustomerID, "items", len(o.Items))
	return &o, nil
}
