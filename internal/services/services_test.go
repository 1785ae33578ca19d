package services

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/admin"
	"github.com/yungbote/storefront-backend/internal/data/aggregates"
	"github.com/yungbote/storefront-backend/internal/data/repos"
	"github.com/yungbote/storefront-backend/internal/data/repos/testutil"
	types "github.com/yungbote/storefront-backend/internal/domain"
	domainagg "github.com/yungbote/storefront-backend/internal/domain/aggregates"
)

type fixture struct {
	db          *gorm.DB
	collections CollectionService
	products    ProductService
	reviews     ReviewService
	customers   CustomerService
	orders      OrderService
	tags        TagService
	admin       AdminService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	return newFixtureWithCatalog(t, nil)
}

// wrap, when set, decorates the catalog aggregate handed to the admin service.
func newFixtureWithCatalog(t *testing.T, wrap func(domainagg.CatalogAggregate) domainagg.CatalogAggregate) fixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	collectionRepo := repos.NewCollectionRepo(db, log)
	productRepo := repos.NewProductRepo(db, log)
	customerRepo := repos.NewCustomerRepo(db, log)
	orderRepo := repos.NewOrderRepo(db, log)
	reviewRepo := repos.NewReviewRepo(db, log)
	tagRepo := repos.NewTagRepo(db, log)
	taggedRepo := repos.NewTaggedItemRepo(db, log)
	logRepo := repos.NewAdminLogEntryRepo(db, log)

	catalog := aggregates.NewCatalogAggregate(aggregates.CatalogAggregateDeps{
		Base:        aggregates.BaseDeps{DB: db, Log: log},
		Collections: collectionRepo,
		Products:    productRepo,
		Customers:   customerRepo,
		Orders:      orderRepo,
		OrderItems:  repos.NewOrderItemRepo(db, log),
		Reviews:     reviewRepo,
		TaggedItems: taggedRepo,
		AdminLog:    logRepo,
	})
	customers := NewCustomerService(db, log, customerRepo)
	adminCatalog := catalog
	if wrap != nil {
		adminCatalog = wrap(catalog)
	}
	reg, err := admin.Default()
	require.NoError(t, err)
	adminSvc, err := NewAdminService(AdminServiceDeps{
		DB:          db,
		Log:         log,
		Registry:    reg,
		Catalog:     adminCatalog,
		Collections: collectionRepo,
		Products:    productRepo,
		Customers:   customers,
		Orders:      orderRepo,
		AdminLog:    logRepo,
	})
	require.NoError(t, err)

	return fixture{
		db:          db,
		collections: NewCollectionService(db, log, collectionRepo, productRepo, catalog),
		products:    NewProductService(db, log, productRepo, catalog),
		reviews:     NewReviewService(db, log, productRepo, reviewRepo),
		customers:   customers,
		orders:      NewOrderService(db, log, orderRepo, catalog),
		tags:        NewTagService(db, log, productRepo, tagRepo, taggedRepo),
		admin:       adminSvc,
	}
}

func requireCode(t *testing.T, err error, code domainagg.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, domainagg.CodeOf(err), "error: %v", err)
}

func TestCollectionServiceCountsAndDeletes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	full := testutil.SeedCollection(t, ctx, f.db, "Beauty")
	empty := testutil.SeedCollection(t, ctx, f.db, "Empty")
	testutil.SeedProduct(t, ctx, f.db, full.ID, "Soap", "4.00", 3)
	testutil.SeedProduct(t, ctx, f.db, full.ID, "Lotion", "9.00", 30)

	rows, err := f.collections.List(ctx, "")
	require.NoError(t, err)
	counts := map[uint]int64{}
	for _, r := range rows {
		counts[r.ID] = r.ProductsCount
	}
	assert.Equal(t, map[uint]int64{full.ID: 2, empty.ID: 0}, counts)

	grouped, err := f.collections.ProductCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[uint]int64{full.ID: 2}, grouped)

	err = f.collections.Delete(ctx, full.ID)
	requireCode(t, err, domainagg.CodeReferentialConflict)
	got, err := f.collections.Get(ctx, full.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.ProductsCount)

	require.NoError(t, f.collections.Delete(ctx, empty.ID))
	_, err = f.collections.Get(ctx, empty.ID)
	requireCode(t, err, domainagg.CodeNotFound)
}

func TestCollectionServiceCreateUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.collections.Create(ctx, CollectionInput{Title: "  "})
	requireCode(t, err, domainagg.CodeValidation)

	missing := uint(404)
	_, err = f.collections.Create(ctx, CollectionInput{Title: "Toys", FeaturedProductID: &missing})
	requireCode(t, err, domainagg.CodeValidation)

	c, err := f.collections.Create(ctx, CollectionInput{Title: " Toys "})
	require.NoError(t, err)
	assert.Equal(t, "Toys", c.Title)
	assert.EqualValues(t, 0, c.ProductsCount)

	p := testutil.SeedProduct(t, ctx, f.db, c.ID, "Kite", "15.00", 2)
	updated, err := f.collections.Update(ctx, c.ID, CollectionInput{Title: "Games", FeaturedProductID: &p.ID})
	require.NoError(t, err)
	assert.Equal(t, "Games", updated.Title)
	require.NotNil(t, updated.FeaturedProductID)
	assert.Equal(t, p.ID, *updated.FeaturedProductID)
	assert.EqualValues(t, 1, updated.ProductsCount)

	_, err = f.collections.Update(ctx, c.ID+9, CollectionInput{Title: "x"})
	requireCode(t, err, domainagg.CodeNotFound)
}

func TestProductServiceList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := testutil.SeedCollection(t, ctx, f.db, "A")
	b := testutil.SeedCollection(t, ctx, f.db, "B")
	testutil.SeedProduct(t, ctx, f.db, a.ID, "Cheap Pen", "2.00", 100)
	testutil.SeedProduct(t, ctx, f.db, a.ID, "Fancy Pen", "40.00", 5)
	testutil.SeedProduct(t, ctx, f.db, b.ID, "Notebook", "7.50", 12)

	page, err := f.products.List(ctx, ProductQuery{CollectionID: &a.ID, Ordering: "-unit_price"})
	require.NoError(t, err)
	require.Len(t, page.Products, 2)
	assert.EqualValues(t, 2, page.Count)
	assert.Equal(t, "Fancy Pen", page.Products[0].Title)

	gt := testutil.Money(t, "5")
	lt := testutil.Money(t, "20")
	page, err = f.products.List(ctx, ProductQuery{UnitPriceGT: &gt, UnitPriceLT: &lt})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Notebook", page.Products[0].Title)

	page, err = f.products.List(ctx, ProductQuery{Search: "PEN", Ordering: "title", PageSize: 1, Page: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Count)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Fancy Pen", page.Products[0].Title)
	assert.False(t, page.Page.HasNext(page.Count))
	assert.True(t, page.Page.HasPrevious())

	_, err = f.products.List(ctx, ProductQuery{Ordering: "inventory"})
	requireCode(t, err, domainagg.CodeValidation)
}

func TestProductServiceCRUD(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := testutil.SeedCollection(t, ctx, f.db, "Kitchen")

	p, err := f.products.Create(ctx, domainagg.ProductFields{
		Title:        "Pan",
		Slug:         "pan",
		UnitPrice:    testutil.Money(t, "20.00"),
		Inventory:    7,
		CollectionID: c.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "22.00", p.PriceWithTax().StringFixed(2))

	got, err := f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.UnitPrice.Equal(testutil.Money(t, "20")))

	require.NoError(t, f.products.Delete(ctx, p.ID))
	_, err = f.products.Get(ctx, p.ID)
	requireCode(t, err, domainagg.CodeNotFound)
	requireCode(t, f.products.Delete(ctx, p.ID), domainagg.CodeNotFound)
}

func TestReviewServiceScopesByProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := testutil.SeedCollection(t, ctx, f.db, "Books")
	p1 := testutil.SeedProduct(t, ctx, f.db, c.ID, "Novel", "12.00", 4)
	p2 := testutil.SeedProduct(t, ctx, f.db, c.ID, "Atlas", "30.00", 4)

	r, err := f.reviews.Create(ctx, p1.ID, ReviewInput{Name: "kim", Description: "great read"})
	require.NoError(t, err)
	assert.Equal(t, p1.ID, r.ProductID)

	_, err = f.reviews.Get(ctx, p2.ID, r.ID)
	requireCode(t, err, domainagg.CodeNotFound)
	requireCode(t, f.reviews.Delete(ctx, p2.ID, r.ID), domainagg.CodeNotFound)

	updated, err := f.reviews.Update(ctx, p1.ID, r.ID, ReviewInput{Name: "kim", Description: "still great"})
	require.NoError(t, err)
	assert.Equal(t, "still great", updated.Description)

	list, err := f.reviews.List(ctx, p1.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.reviews.Create(ctx, 999, ReviewInput{Name: "x", Description: "y"})
	requireCode(t, err, domainagg.CodeNotFound)
	_, err = f.reviews.Create(ctx, p1.ID, ReviewInput{Name: "", Description: "y"})
	requireCode(t, err, domainagg.CodeValidation)

	require.NoError(t, f.reviews.Delete(ctx, p1.ID, r.ID))
}

func TestCustomerService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c, err := f.customers.Create(ctx, CustomerInput{FirstName: "Mona", LastName: "Lisa", Email: "Mona@Example.com", Phone: "555"})
	require.NoError(t, err)
	assert.Equal(t, types.MembershipBronze, c.Membership)
	assert.Equal(t, "mona@example.com", c.Email)

	_, err = f.customers.Create(ctx, CustomerInput{FirstName: "M", LastName: "L", Email: "mona@example.com", Phone: "1"})
	requireCode(t, err, domainagg.CodeConflict)
	_, err = f.customers.Create(ctx, CustomerInput{FirstName: "M", LastName: "L", Email: "nope", Phone: "1"})
	requireCode(t, err, domainagg.CodeValidation)
	_, err = f.customers.Create(ctx, CustomerInput{FirstName: "M", LastName: "L", Email: "m@x.io", Phone: "1", Membership: "P"})
	requireCode(t, err, domainagg.CodeValidation)

	testutil.SeedCustomer(t, ctx, f.db, "Bob", "Monet", "bob@example.com")
	testutil.SeedCustomer(t, ctx, f.db, "Zed", "Zulu", "zed@example.com")
	page, err := f.customers.List(ctx, CustomerQuery{Search: "mo"})
	require.NoError(t, err)
	require.Len(t, page.Customers, 2)
	assert.Equal(t, "Bob", page.Customers[0].FirstName)
	assert.Equal(t, "Mona", page.Customers[1].FirstName)

	up, err := f.customers.UpdateMembership(ctx, c.ID, "g")
	require.NoError(t, err)
	assert.Equal(t, types.MembershipGold, up.Membership)
	_, err = f.customers.UpdateMembership(ctx, c.ID+100, "G")
	requireCode(t, err, domainagg.CodeNotFound)
}

func TestOrderServiceCreateAndList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := testutil.SeedCollection(t, ctx, f.db, "Garden")
	p := testutil.SeedProduct(t, ctx, f.db, c.ID, "Rake", "11.00", 9)
	cust := testutil.SeedCustomer(t, ctx, f.db, "Ann", "Bee", "ann@example.com")

	for i := 0; i < 3; i++ {
		_, err := f.orders.Create(ctx, domainagg.CreateOrderInput{
			CustomerID: cust.ID,
			Items:      []domainagg.OrderLineInput{{ProductID: p.ID, Quantity: i + 1}},
		})
		require.NoError(t, err)
	}

	rows, total, err := f.orders.ListRecent(ctx, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 2)
	assert.Greater(t, rows[0].ID, rows[1].ID)
	require.NotNil(t, rows[0].Customer)
	assert.Equal(t, "Ann", rows[0].Customer.FirstName)
	require.Len(t, rows[0].Items, 1)
	require.NotNil(t, rows[0].Items[0].Product)
	assert.Equal(t, "33.00", rows[0].Total().StringFixed(2))

	_, err = f.orders.Get(ctx, 999)
	requireCode(t, err, domainagg.CodeNotFound)
}

func TestTagService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := testutil.SeedCollection(t, ctx, f.db, "Music")
	p := testutil.SeedProduct(t, ctx, f.db, c.ID, "Guitar", "300.00", 1)

	first, err := f.tags.TagProduct(ctx, p.ID, "strings")
	require.NoError(t, err)
	again, err := f.tags.TagProduct(ctx, p.ID, "strings")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	_, err = f.tags.TagProduct(ctx, p.ID, "acoustic")
	require.NoError(t, err)

	tags, err := f.tags.ListForProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "acoustic", tags[0].Label)

	_, err = f.tags.TagProduct(ctx, 999, "x")
	requireCode(t, err, domainagg.CodeNotFound)
}

func TestAdminServiceProductsAndClearInventory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := testutil.SeedCollection(t, ctx, f.db, "Office")
	low := testutil.SeedProduct(t, ctx, f.db, c.ID, "Stapler", "8.00", 3)
	ok := testutil.SeedProduct(t, ctx, f.db, c.ID, "Paper", "5.00", 50)

	list, err := f.admin.Products(ctx, AdminProductQuery{})
	require.NoError(t, err)
	require.Len(t, list.Rows, 2)
	assert.Equal(t, 10, list.Page.Size)
	byID := map[uint]AdminProductRow{}
	for _, r := range list.Rows {
		byID[r.ID] = r
	}
	assert.Equal(t, admin.InventoryLow, byID[low.ID].InventoryStatus)
	assert.Equal(t, admin.InventoryOK, byID[ok.ID].InventoryStatus)
	assert.Equal(t, "Office", byID[ok.ID].CollectionTitle)

	list, err = f.admin.Products(ctx, AdminProductQuery{LowInventory: true})
	require.NoError(t, err)
	require.Len(t, list.Rows, 1)
	assert.Equal(t, low.ID, list.Rows[0].ID)

	res, err := f.admin.ClearInventory(ctx, []uint{low.ID, ok.ID}, "staff@example.com")
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Updated)
	assert.Equal(t, "2 products were successfully updated.", res.Message)

	list, err = f.admin.Products(ctx, AdminProductQuery{LowInventory: true})
	require.NoError(t, err)
	assert.Len(t, list.Rows, 2)

	entries, err := f.admin.Log(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, types.AdminActionClearInventory, entries[0].Action)
}

func TestAdminServiceEditableFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := testutil.SeedCollection(t, ctx, f.db, "Office")
	p := testutil.SeedProduct(t, ctx, f.db, c.ID, "Stapler", "8.00", 3)
	cust := testutil.SeedCustomer(t, ctx, f.db, "Ida", "Wells", "ida@example.com")

	_, err := f.admin.UpdateProduct(ctx, p.ID, map[string]any{"inventory": 4}, "staff")
	requireCode(t, err, domainagg.CodeValidation)

	out, err := f.admin.UpdateProduct(ctx, p.ID, map[string]any{"unit_price": "12.50"}, "staff")
	require.NoError(t, err)
	assert.True(t, out.UnitPrice.Equal(testutil.Money(t, "12.50")))
	assert.Equal(t, 3, out.Inventory)

	_, err = f.admin.UpdateProduct(ctx, p.ID, map[string]any{"unit_price": 0.5}, "staff")
	requireCode(t, err, domainagg.CodeValidation)

	cu, err := f.admin.UpdateCustomer(ctx, cust.ID, map[string]any{"membership": "S"}, "staff")
	require.NoError(t, err)
	assert.Equal(t, types.MembershipSilver, cu.Membership)
	_, err = f.admin.UpdateCustomer(ctx, cust.ID, map[string]any{"email": "x@y.z"}, "staff")
	requireCode(t, err, domainagg.CodeValidation)

	entries, err := f.admin.Log(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

// clearsBeforePriceWrite commits a clear-inventory for the product right
// before the price change reaches the database.
type clearsBeforePriceWrite struct {
	domainagg.CatalogAggregate
}

func (c clearsBeforePriceWrite) SetProductPrice(ctx context.Context, in domainagg.SetProductPriceInput) (types.Product, error) {
	if _, err := c.ClearInventory(ctx, domainagg.ClearInventoryInput{ProductIDs: []uint{in.ProductID}, Actor: "other"}); err != nil {
		return types.Product{}, err
	}
	return c.CatalogAggregate.SetProductPrice(ctx, in)
}

func TestAdminServicePriceEditKeepsConcurrentClear(t *testing.T) {
	ctx := context.Background()
	f := newFixtureWithCatalog(t, func(inner domainagg.CatalogAggregate) domainagg.CatalogAggregate {
		return clearsBeforePriceWrite{CatalogAggregate: inner}
	})
	c := testutil.SeedCollection(t, ctx, f.db, "Office")
	p := testutil.SeedProduct(t, ctx, f.db, c.ID, "Paper", "5.00", 50)

	out, err := f.admin.UpdateProduct(ctx, p.ID, map[string]any{"unit_price": "6.00"}, "staff")
	require.NoError(t, err)
	assert.Equal(t, 0, out.Inventory)
	assert.True(t, out.UnitPrice.Equal(testutil.Money(t, "6.00")))

	var stored types.Product
	require.NoError(t, f.db.First(&stored, p.ID).Error)
	assert.Equal(t, 0, stored.Inventory)
}

func TestAdminServiceListings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := testutil.SeedCollection(t, ctx, f.db, "Pets")
	testutil.SeedCollection(t, ctx, f.db, "Empty")
	p := testutil.SeedProduct(t, ctx, f.db, c.ID, "Leash", "10.00", 20)
	cust := testutil.SeedCustomer(t, ctx, f.db, "Tom", "Cat", "tom@example.com")
	testutil.SeedOrder(t, ctx, f.db, cust.ID, p)

	cols, err := f.admin.Collections(ctx, "pet")
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.EqualValues(t, 1, cols[0].ProductsCount)
	assert.Equal(t, admin.ProductsURL(c.ID), cols[0].ProductsURL)

	orders, err := f.admin.Orders(ctx, 1)
	require.NoError(t, err)
	require.Len(t, orders.Rows, 1)
	assert.Equal(t, "Tom Cat", orders.Rows[0].CustomerName)

	customers, err := f.admin.Customers(ctx, "to", 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, customers.Count)
	assert.Equal(t, 10, customers.Page.Size)
}

func TestPage(t *testing.T) {
	p := NewPage(0, 0, 0)
	assert.Equal(t, Page{Number: 1, Size: DefaultPageSize}, p)
	assert.Equal(t, MaxPageSize, NewPage(1, 1000, 10).Size)
	p = NewPage(3, 10, 10)
	assert.Equal(t, 20, p.Offset())
	assert.True(t, p.HasNext(31))
	assert.False(t, p.HasNext(30))
}

func TestPageNumberIsCapped(t *testing.T) {
	p := NewPage(math.MaxInt, MaxPageSize, 10)
	assert.Equal(t, MaxPageNumber, p.Number)
	assert.Positive(t, p.Offset())
	assert.False(t, p.HasNext(1000))
	assert.True(t, p.HasPrevious())
}

func TestDecimalFromAny(t *testing.T) {
	for _, v := range []any{"12.50", 12.5, 12.50} {
		d, err := decimalFromAny(v)
		require.NoError(t, err)
		assert.Equal(t, "12.50", d.StringFixed(2))
	}
	_, err := decimalFromAny(true)
	assert.Error(t, err)
}
