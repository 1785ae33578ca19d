package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/data/repos/testutil"
	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/observability"
)

const testAdminSecret = "test-admin-secret"

type apiFixture struct {
	app *App
	db  *gorm.DB
}

func newAPIFixture(t *testing.T, metrics *observability.Metrics) apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb := testutil.DB(t)
	cfg := Config{
		HTTPAddr:        "127.0.0.1:0",
		ShutdownTimeout: time.Second,
		AdminJWTSecret:  testAdminSecret,
		AdminTokenTTL:   time.Hour,
	}
	a, err := Assemble(testutil.Logger(t), cfg, gdb, metrics)
	require.NoError(t, err)
	return apiFixture{app: a, db: gdb}
}

func (f apiFixture) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.app.Server.Engine.ServeHTTP(rec, req)
	return rec
}

func (f apiFixture) staffToken(t *testing.T) string {
	t.Helper()
	require.NotNil(t, f.app.Services.StaffTokens)
	token, _, err := f.app.Services.StaffTokens.Sign("alice")
	require.NoError(t, err)
	return token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func TestCollectionDeletionOverHTTP(t *testing.T) {
	ctx := context.Background()
	f := newAPIFixture(t, nil)

	full := testutil.SeedCollection(t, ctx, f.db, "Beauty")
	empty := testutil.SeedCollection(t, ctx, f.db, "Empty")
	for i := 0; i < 3; i++ {
		testutil.SeedProduct(t, ctx, f.db, full.ID, fmt.Sprintf("Soap %d", i), "4.00", 5)
	}

	rec := f.do(t, http.MethodDelete, fmt.Sprintf("/store/collections/%d", empty.ID), nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = f.do(t, http.MethodGet, fmt.Sprintf("/store/collections/%d", empty.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodDelete, fmt.Sprintf("/store/collections/%d", full.ID), nil, "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	body := decode(t, rec)
	assert.NotEmpty(t, body["error"])
	assert.Equal(t, "referential_conflict", body["code"])
	assert.EqualValues(t, 3, body["dependents"])

	rec = f.do(t, http.MethodGet, fmt.Sprintf("/store/collections/%d", full.ID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3, decode(t, rec)["products_count"])

	rec = f.do(t, http.MethodDelete, "/store/collections/999", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = f.do(t, http.MethodDelete, "/store/collections/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductDeletionOverHTTP(t *testing.T) {
	ctx := context.Background()
	f := newAPIFixture(t, nil)

	col := testutil.SeedCollection(t, ctx, f.db, "Grocery")
	ordered := testutil.SeedProduct(t, ctx, f.db, col.ID, "Tea", "3.00", 10)
	free := testutil.SeedProduct(t, ctx, f.db, col.ID, "Coffee", "5.00", 10)
	cust := testutil.SeedCustomer(t, ctx, f.db, "Ada", "Lovelace", "ada@example.com")
	testutil.SeedOrder(t, ctx, f.db, cust.ID, ordered)

	rec := f.do(t, http.MethodDelete, fmt.Sprintf("/store/products/%d", ordered.ID), nil, "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Product cannot be deleted because it is referenced by 1 order item", decode(t, rec)["error"])

	rec = f.do(t, http.MethodDelete, fmt.Sprintf("/store/products/%d", free.ID), nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = f.do(t, http.MethodGet, fmt.Sprintf("/store/products/%d", ordered.ID), nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductReadAndWriteOverHTTP(t *testing.T) {
	ctx := context.Background()
	f := newAPIFixture(t, nil)
	col := testutil.SeedCollection(t, ctx, f.db, "Grocery")

	rec := f.do(t, http.MethodPost, "/store/products", map[string]any{
		"title":          "Olive Oil",
		"slug":           "olive-oil",
		"inventory":      12,
		"unit_price":     "20.00",
		"collection":     col.ID,
		"price_with_tax": "1.00",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	assert.Equal(t, "20.00", created["unit_price"])
	assert.Equal(t, "22.00", created["price_with_tax"])

	rec = f.do(t, http.MethodPost, "/store/products", map[string]any{"slug": "x", "inventory": 1, "unit_price": 5, "collection": col.ID}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", decode(t, rec)["error"])

	rec = f.do(t, http.MethodPost, "/store/products", map[string]any{"title": "Cheap", "slug": "cheap", "inventory": 1, "unit_price": 0.5, "collection": col.ID}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", decode(t, rec)["code"])

	rec = f.do(t, http.MethodPost, "/store/products", map[string]any{"title": "Orphan", "slug": "orphan", "inventory": 1, "unit_price": 5, "collection": 999}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductListOverHTTP(t *testing.T) {
	ctx := context.Background()
	f := newAPIFixture(t, nil)
	a := testutil.SeedCollection(t, ctx, f.db, "A")
	b := testutil.SeedCollection(t, ctx, f.db, "B")
	for i := 0; i < 12; i++ {
		testutil.SeedProduct(t, ctx, f.db, a.ID, fmt.Sprintf("Item %02d", i), fmt.Sprintf("%d.00", i+1), 5)
	}
	testutil.SeedProduct(t, ctx, f.db, b.ID, "Other", "50.00", 5)

	rec := f.do(t, http.MethodGet, fmt.Sprintf("/store/products?collection_id=%d&ordering=-unit_price", a.ID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode(t, rec)
	assert.EqualValues(t, 12, page["count"])
	assert.Len(t, page["results"], 10)
	assert.NotNil(t, page["next"])
	assert.Nil(t, page["previous"])
	first := page["results"].([]any)[0].(map[string]any)
	assert.Equal(t, "12.00", first["unit_price"])

	rec = f.do(t, http.MethodGet, "/store/products?unit_price__gt=10&unit_price__lt=40", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decode(t, rec)["count"])

	rec = f.do(t, http.MethodGet, "/store/products?ordering=inventory", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = f.do(t, http.MethodGet, "/store/products?unit_price__gt=cheap", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewsAreScopedByProduct(t *testing.T) {
	ctx := context.Background()
	f := newAPIFixture(t, nil)
	col := testutil.SeedCollection(t, ctx, f.db, "C")
	p1 := testutil.SeedProduct(t, ctx, f.db, col.ID, "One", "2.00", 1)
	p2 := testutil.SeedProduct(t, ctx, f.db, col.ID, "Two", "2.00", 1)

	rec := f.do(t, http.MethodPost, fmt.Sprintf("/store/products/%d/reviews", p1.ID), map[string]any{"name": "Bo", "description": "Great"}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	reviewID := uint(decode(t, rec)["id"].(float64))

	rec = f.do(t, http.MethodGet, fmt.Sprintf("/store/products/%d/reviews/%d", p1.ID, reviewID), nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodGet, fmt.Sprintf("/store/products/%d/reviews/%d", p2.ID, reviewID), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPost, fmt.Sprintf("/store/products/%d/tags", p1.ID), map[string]any{"label": "organic"}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = f.do(t, http.MethodGet, fmt.Sprintf("/store/products/%d/tags", p1.ID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"organic"`)
}

func TestOrdersOverHTTP(t *testing.T) {
	ctx := context.Background()
	f := newAPIFixture(t, nil)
	col := testutil.SeedCollection(t, ctx, f.db, "C")
	p := testutil.SeedProduct(t, ctx, f.db, col.ID, "Tea", "2.50", 10)

	rec := f.do(t, http.MethodPost, "/store/customers", map[string]any{
		"first_name": "Grace",
		"last_name":  "Hopper",
		"email":      "Grace@Example.com",
		"phone":      "555-0101",
		"birth_date": "1906-12-09",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cust := decode(t, rec)
	assert.Equal(t, "grace@example.com", cust["email"])
	assert.Equal(t, types.MembershipBronze, cust["membership"])
	custID := cust["id"]

	rec = f.do(t, http.MethodPost, "/store/orders", map[string]any{
		"customer": custID,
		"items":    []map[string]any{{"product": p.ID, "quantity": 2}},
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode(t, rec)
	assert.Equal(t, "5.00", order["total_price"])

	rec = f.do(t, http.MethodPost, "/store/orders", map[string]any{"customer": custID, "items": []map[string]any{}}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/store/orders?limit=5", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Total-Count"))

	rec = f.do(t, http.MethodDelete, fmt.Sprintf("/store/products/%d", p.ID), nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAdminAPIRequiresStaff(t *testing.T) {
	f := newAPIFixture(t, nil)
	rec := f.do(t, http.MethodGet, "/admin/api/registry", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = f.do(t, http.MethodGet, "/admin/api/registry", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodGet, "/admin/api/registry", nil, f.staffToken(t))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "storefront", decode(t, rec)["site"])
}

func TestAdminClearInventoryOverHTTP(t *testing.T) {
	ctx := context.Background()
	f := newAPIFixture(t, nil)
	token := f.staffToken(t)
	col := testutil.SeedCollection(t, ctx, f.db, "Beauty")
	low := testutil.SeedProduct(t, ctx, f.db, col.ID, "Low", "3.00", 4)
	high := testutil.SeedProduct(t, ctx, f.db, col.ID, "High", "3.00", 40)

	rec := f.do(t, http.MethodGet, "/admin/api/products?inventory=low", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode(t, rec)
	require.EqualValues(t, 1, page["count"])
	row := page["results"].([]any)[0].(map[string]any)
	assert.Equal(t, "Low", row["inventory_status"])
	assert.Equal(t, "Beauty", row["collection_title"])

	rec = f.do(t, http.MethodPost, "/admin/api/products/actions/clear_inventory", map[string]any{"ids": []uint{low.ID, high.ID}}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.EqualValues(t, 2, body["updated"])
	assert.Equal(t, "2 products were successfully updated.", body["message"])

	var got types.Product
	require.NoError(t, f.db.First(&got, high.ID).Error)
	assert.Equal(t, 0, got.Inventory)

	rec = f.do(t, http.MethodGet, "/admin/api/log", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"actor":"alice"`)

	rec = f.do(t, http.MethodPost, "/admin/api/products/actions/clear_inventory", map[string]any{"ids": []uint{}}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminEditableFieldsOverHTTP(t *testing.T) {
	ctx := context.Background()
	f := newAPIFixture(t, nil)
	token := f.staffToken(t)
	col := testutil.SeedCollection(t, ctx, f.db, "Beauty")
	p := testutil.SeedProduct(t, ctx, f.db, col.ID, "Soap", "3.00", 4)
	cust := testutil.SeedCustomer(t, ctx, f.db, "Ada", "Lovelace", "ada@example.com")

	rec := f.do(t, http.MethodPatch, fmt.Sprintf("/admin/api/products/%d", p.ID), map[string]any{"unit_price": "4.50"}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "4.50", decode(t, rec)["unit_price"])

	rec = f.do(t, http.MethodPatch, fmt.Sprintf("/admin/api/products/%d", p.ID), map[string]any{"title": "Renamed"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPatch, fmt.Sprintf("/admin/api/customers/%d", cust.ID), map[string]any{"membership": "G"}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "G", decode(t, rec)["membership"])

	rec = f.do(t, http.MethodGet, "/admin/api/collections", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), fmt.Sprintf(`"products_url":"/admin/api/products?collection_id=%d"`, col.ID))

	rec = f.do(t, http.MethodGet, "/admin/api/customers?q=ad", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["count"])
}

func TestHealthAndMetrics(t *testing.T) {
	metrics := observability.Init(observability.Config{Enabled: true}, nil)
	f := newAPIFixture(t, metrics)

	rec := f.do(t, http.MethodGet, "/healthcheck", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = f.do(t, http.MethodGet, "/store/collections", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `sf_api_requests_total{method="GET",route="/store/collections",status="200"}`)
	assert.NotContains(t, body, `route="/healthcheck"`)
}

func TestAdminAPIDisabledWithoutSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a, err := Assemble(testutil.Logger(t), Config{}, testutil.DB(t), nil)
	require.NoError(t, err)
	assert.Nil(t, a.Services.StaffTokens)

	req := httptest.NewRequest(http.MethodGet, "/admin/api/registry", nil)
	rec := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, splitList(" https://a.example, ,https://b.example "))
	assert.Nil(t, splitList(""))
}
