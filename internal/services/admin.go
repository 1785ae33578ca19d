package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/admin"
	"github.com/yungbote/storefront-backend/internal/data/repos"
	types "github.com/yungbote/storefront-backend/internal/domain"
	domainagg "github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type AdminProductQuery struct {
	CollectionID *uint
	LowInventory bool
	Search       string
	Page         int
}

type AdminProductRow struct {
	ID              uint
	Title           string
	UnitPrice       decimal.Decimal
	Inventory       int
	InventoryStatus string
	CollectionID    uint
	CollectionTitle string
}

type AdminProductList struct {
	Rows  []AdminProductRow
	Count int64
	Page  Page
}

type AdminCollectionRow struct {
	ID            uint
	Title         string
	ProductsCount int64
	ProductsURL   string
}

type AdminCustomerList struct {
	Rows  []*types.Customer
	Count int64
	Page  Page
}

type AdminOrderRow struct {
	ID            uint
	PlacedAt      time.Time
	PaymentStatus string
	CustomerID    uint
	CustomerName  string
}

type AdminOrderList struct {
	Rows  []AdminOrderRow
	Count int64
	Page  Page
}

type AdminService interface {
	Registry() *admin.Registry
	Products(ctx context.Context, q AdminProductQuery) (*AdminProductList, error)
	ClearInventory(ctx context.Context, productIDs []uint, actor string) (domainagg.ClearInventoryResult, error)
	// UpdateProduct and UpdateCustomer accept only the entity's list_editable fields.
	UpdateProduct(ctx context.Context, id uint, updates map[string]any, actor string) (*types.Product, error)
	UpdateCustomer(ctx context.Context, id uint, updates map[string]any, actor string) (*types.Customer, error)
	Collections(ctx context.Context, search string) ([]AdminCollectionRow, error)
	Customers(ctx context.Context, search string, page int) (*AdminCustomerList, error)
	Orders(ctx context.Context, page int) (*AdminOrderList, error)
	Log(ctx context.Context, limit int) ([]*types.AdminLogEntry, error)
}

type adminService struct {
	db          *gorm.DB
	log         *logger.Logger
	registry    *admin.Registry
	catalog     domainagg.CatalogAggregate
	collections repos.CollectionRepo
	products    repos.ProductRepo
	customers   CustomerService
	orders      repos.OrderRepo
	adminLog    repos.AdminLogEntryRepo
}

type AdminServiceDeps struct {
	DB          *gorm.DB
	Log         *logger.Logger
	Registry    *admin.Registry
	Catalog     domainagg.CatalogAggregate
	Collections repos.CollectionRepo
	Products    repos.ProductRepo
	Customers   CustomerService
	Orders      repos.OrderRepo
	AdminLog    repos.AdminLogEntryRepo
}

func NewAdminService(deps AdminServiceDeps) (AdminService, error) {
	if deps.Registry == nil {
		return nil, fmt.Errorf("admin service: registry is required")
	}
	if deps.Catalog == nil {
		return nil, fmt.Errorf("admin service: catalog aggregate is required")
	}
	return &adminService{
		db:          deps.DB,
		log:         deps.Log.With("service", "AdminService"),
		registry:    deps.Registry,
		catalog:     deps.Catalog,
		collections: deps.Collections,
		products:    deps.Products,
		customers:   deps.Customers,
		orders:      deps.Orders,
		adminLog:    deps.AdminLog,
	}, nil
}

func (s *adminService) Registry() *admin.Registry { return s.registry }

func (s *adminService) Products(ctx context.Context, q AdminProductQuery) (*AdminProductList, error) {
	page := NewPage(q.Page, s.registry.PerPage(admin.EntityProduct), s.registry.PerPage(admin.EntityProduct))
	rows, total, err := s.products.List(dbctx.Context{Ctx: ctx}, repos.ProductFilter{
		CollectionID:   q.CollectionID,
		LowInventory:   q.LowInventory,
		Search:         q.Search,
		SearchTitle:    true,
		Ordering:       "title",
		WithCollection: true,
		Limit:          page.Size,
		Offset:         page.Offset(),
	})
	if err != nil {
		return nil, storeErr("AdminService.Products", err)
	}
	out := &AdminProductList{Rows: make([]AdminProductRow, 0, len(rows)), Count: total, Page: page}
	for _, p := range rows {
		row := AdminProductRow{
			ID:              p.ID,
			Title:           p.Title,
			UnitPrice:       p.UnitPrice,
			Inventory:       p.Inventory,
			InventoryStatus: admin.InventoryStatus(p.Inventory),
			CollectionID:    p.CollectionID,
		}
		if p.Collection != nil {
			row.CollectionTitle = p.Collection.Title
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func (s *adminService) ClearInventory(ctx context.Context, productIDs []uint, actor string) (domainagg.ClearInventoryResult, error) {
	if !s.registry.HasAction(admin.EntityProduct, admin.ActionClearInventory) {
		return domainagg.ClearInventoryResult{}, invalid("AdminService.ClearInventory", "clear_inventory is not enabled for products")
	}
	res, err := s.catalog.ClearInventory(ctx, domainagg.ClearInventoryInput{ProductIDs: productIDs, Actor: actor})
	if err != nil {
		return res, err
	}
	s.log.Info("inventory cleared", "updated", res.Updated, "requested", len(productIDs), "actor", actor)
	return res, nil
}

func rejectedFieldsErr(op, entity string, rejected []string) error {
	return invalid(op, fmt.Sprintf("fields not editable on %s: %s", entity, strings.Join(rejected, ", ")))
}

func (s *adminService) UpdateProduct(ctx context.Context, id uint, updates map[string]any, actor string) (*types.Product, error) {
	const op = "AdminService.UpdateProduct"
	kept, rejected := s.registry.EditableFields(admin.EntityProduct, updates)
	if len(rejected) > 0 {
		return nil, rejectedFieldsErr(op, admin.EntityProduct, rejected)
	}
	raw, ok := kept["unit_price"]
	if !ok {
		return nil, invalid(op, "no editable fields provided")
	}
	price, err := decimalFromAny(raw)
	if err != nil {
		return nil, invalid(op, "unit_price: "+err.Error())
	}
	out, err := s.catalog.SetProductPrice(ctx, domainagg.SetProductPriceInput{ProductID: id, UnitPrice: price})
	if err != nil {
		return nil, err
	}
	s.recordChange(ctx, types.ObjectTypeProduct, id, kept, actor)
	return &out, nil
}

func (s *adminService) UpdateCustomer(ctx context.Context, id uint, updates map[string]any, actor string) (*types.Customer, error) {
	const op = "AdminService.UpdateCustomer"
	kept, rejected := s.registry.EditableFields(admin.EntityCustomer, updates)
	if len(rejected) > 0 {
		return nil, rejectedFieldsErr(op, admin.EntityCustomer, rejected)
	}
	raw, ok := kept["membership"]
	if !ok {
		return nil, invalid(op, "no editable fields provided")
	}
	membership, ok := raw.(string)
	if !ok {
		return nil, invalid(op, "membership must be a string")
	}
	c, err := s.customers.UpdateMembership(ctx, id, membership)
	if err != nil {
		return nil, err
	}
	s.recordChange(ctx, "customer", id, kept, actor)
	return c, nil
}

// recordChange is best effort; the edit itself has already been committed.
func (s *adminService) recordChange(ctx context.Context, objectType string, id uint, changed map[string]any, actor string) {
	if s.adminLog == nil {
		return
	}
	ids, _ := json.Marshal([]uint{id})
	details, err := json.Marshal(changed)
	if err != nil {
		details = []byte("{}")
	}
	fields := make([]string, 0, len(changed))
	for k := range changed {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	if _, err := s.adminLog.Create(dbctx.Context{Ctx: ctx}, &types.AdminLogEntry{
		Action:     types.AdminActionChange,
		ObjectType: objectType,
		ObjectIDs:  datatypes.JSON(ids),
		Message:    fmt.Sprintf("Changed %s.", strings.Join(fields, ", ")),
		Details:    datatypes.JSON(details),
		Actor:      actor,
	}); err != nil {
		s.log.Warn("admin log write failed", "object_type", objectType, "object_id", id, "error", err)
	}
}

func (s *adminService) Collections(ctx context.Context, search string) ([]AdminCollectionRow, error) {
	rows, err := s.collections.ListWithProductCount(dbctx.Context{Ctx: ctx}, search)
	if err != nil {
		return nil, storeErr("AdminService.Collections", err)
	}
	out := make([]AdminCollectionRow, 0, len(rows))
	for _, c := range rows {
		out = append(out, AdminCollectionRow{
			ID:            c.ID,
			Title:         c.Title,
			ProductsCount: c.ProductsCount,
			ProductsURL:   admin.ProductsURL(c.ID),
		})
	}
	return out, nil
}

func (s *adminService) Customers(ctx context.Context, search string, page int) (*AdminCustomerList, error) {
	per := s.registry.PerPage(admin.EntityCustomer)
	res, err := s.customers.List(ctx, CustomerQuery{Search: search, Page: page, PageSize: per})
	if err != nil {
		return nil, err
	}
	return &AdminCustomerList{Rows: res.Customers, Count: res.Count, Page: res.Page}, nil
}

func (s *adminService) Orders(ctx context.Context, page int) (*AdminOrderList, error) {
	const op = "AdminService.Orders"
	per := s.registry.PerPage(admin.EntityOrder)
	p := NewPage(page, per, per)
	dbc := dbctx.Context{Ctx: ctx}
	rows, err := s.orders.ListRecent(dbc, p.Size, p.Offset())
	if err != nil {
		return nil, storeErr(op, err)
	}
	total, err := s.orders.Count(dbc)
	if err != nil {
		return nil, storeErr(op, err)
	}
	out := &AdminOrderList{Rows: make([]AdminOrderRow, 0, len(rows)), Count: total, Page: p}
	for _, o := range rows {
		row := AdminOrderRow{
			ID:            o.ID,
			PlacedAt:      o.PlacedAt,
			PaymentStatus: o.PaymentStatus,
			CustomerID:    o.CustomerID,
		}
		if o.Customer != nil {
			row.CustomerName = o.Customer.FullName()
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func (s *adminService) Log(ctx context.Context, limit int) ([]*types.AdminLogEntry, error) {
	rows, err := s.adminLog.ListRecent(dbctx.Context{Ctx: ctx}, limit)
	if err != nil {
		return nil, storeErr("AdminService.Log", err)
	}
	return rows, nil
}

// decimalFromAny accepts the shapes encoding/json produces for a money value.
func decimalFromAny(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case string:
		return decimal.NewFromString(strings.TrimSpace(t))
	case json.Number:
		return decimal.NewFromString(t.String())
	case float64:
		return decimal.NewFromString(fmt.Sprintf("%v", t))
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case decimal.Decimal:
		return t, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported value %v", v)
	}
}
