package routes_test

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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/repositories/repotest"
	"github.com/DivyaPradhan23/grocery-backend/routes"
	"github.com/DivyaPradhan23/grocery-backend/services"
	"github.com/DivyaPradhan23/grocery-backend/utils"
)

type testServer struct {
	t        *testing.T
	router   *gin.Engine
	db       *repotest.DB
	svc      routes.Services
	customer string
	manager  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := repotest.NewDB()
	tokens := utils.NewTokenIssuer("test-secret", time.Hour, 24*time.Hour)
	svc := routes.Services{
		Auth:     services.NewAuthService(db.Users(), tokens),
		Products: services.NewProductService(db.Products(), nil, nil, 1<<20),
		Cart:     services.NewCartService(db.Cart(), db.Products()),
		Checkout: services.NewCheckoutService(db.Orders(), db.Promos(), db.Users(), nil),
		Wishlist: services.NewWishlistService(db.Wishlist(), db.Products()),
		Reports:  services.NewReportService(db.Reports()),
		Promos:   services.NewPromoService(db.Promos()),
	}

	router := gin.New()
	routes.SetupRoutes(router, svc, "")

	s := &testServer{t: t, router: router, db: db, svc: svc}
	s.customer = s.login("carla", false)
	s.manager = s.login("manny", true)
	return s
}

func (s *testServer) login(username string, manager bool) string {
	ctx := context.Background()
	_, err := s.svc.Auth.Register(ctx, models.RegisterRequest{Username: username, Password: "fresh-basil-42"})
	require.NoError(s.t, err)
	if manager {
		require.NoError(s.t, s.svc.Auth.SetRole(ctx, username, models.RoleManager))
	}

	rec := s.do(http.MethodPost, "/api/token", "", gin.H{"username": username, "password": "fresh-basil-42"})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	var pair models.TokenPair
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &pair))
	return pair.Access
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func (s *testServer) createProduct(name, category, price string, stock int) models.Product {
	rec := s.do(http.MethodPost, "/api/products/create", s.manager, gin.H{
		"name":     name,
		"category": category,
		"price":    price,
		"stock":    stock,
		"image":    "https://img.example.com/" + name + ".png",
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	var product models.Product
	require.NoError(s.t, json.Unmarshal(decode(s.t, rec).Data, &product))
	return product
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/cart", "/api/orders", "/api/wishlist", "/api/report/sales"} {
		rec := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := s.do(http.MethodGet, "/api/cart", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCustomerCannotUseManagerRoutes(t *testing.T) {
	s := newTestServer(t)
	product := s.createProduct("Apple", "Fruit", "1.00", 10)
	id := product.ID

	requests := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodPost, "/api/products/create", gin.H{"name": "X"}},
		{http.MethodPut, fmt.Sprintf("/api/products/%d/update", id), gin.H{"name": "X"}},
		{http.MethodDelete, fmt.Sprintf("/api/products/%d/delete", id), nil},
		{http.MethodPost, fmt.Sprintf("/api/products/%d/image", id), nil},
		{http.MethodGet, "/api/report/sales", nil},
		{http.MethodGet, "/api/promos/low-stock", nil},
		{http.MethodGet, "/api/promos", nil},
		{http.MethodPost, "/api/promos", gin.H{"code": "X"}},
	}

	for _, r := range requests {
		rec := s.do(r.method, r.path, s.customer, r.body)
		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", r.method, r.path)
	}

	got, err := s.db.Products().FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Apple", got.Name)
}

func TestRegisterAndRefresh(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/register", "", gin.H{"username": "dana", "password": "fresh-basil-42", "email": "dana@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "fresh-basil-42")

	rec = s.do(http.MethodPost, "/api/register", "", gin.H{"username": "dana", "password": "short"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Contains(t, env.Errors, "username")
	assert.Contains(t, env.Errors, "password")

	rec = s.do(http.MethodPost, "/api/token", "", gin.H{"username": "dana", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/token", "", gin.H{"username": "dana", "password": "fresh-basil-42"})
	require.Equal(t, http.StatusOK, rec.Code)
	var pair models.TokenPair
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pair))

	rec = s.do(http.MethodPost, "/api/token/refresh", "", gin.H{"refresh": pair.Refresh})
	require.Equal(t, http.StatusOK, rec.Code)
	var refreshed models.TokenPair
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &refreshed))
	assert.NotEmpty(t, refreshed.Access)

	rec = s.do(http.MethodGet, "/api/cart", refreshed.Access, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/cart", pair.Refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestShoppingFlow(t *testing.T) {
	s := newTestServer(t)
	cheese := s.createProduct("Cheese", "Dairy", "10.00", 20)
	yogurt := s.createProduct("Yogurt", "Dairy", "5.00", 20)

	rec := s.do(http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/products/filter?category=dairy", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var filtered []models.Product
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &filtered))
	assert.Len(t, filtered, 2)

	rec = s.do(http.MethodPost, "/api/cart/add", s.customer, gin.H{"product_id": cheese.ID, "quantity": 2})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = s.do(http.MethodPost, "/api/cart/add", s.customer, gin.H{"product_id": yogurt.ID, "quantity": 3})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(http.MethodPost, "/api/cart/add", s.customer, gin.H{"quantity": 3})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec).Errors, "product_id")

	rec = s.do(http.MethodGet, "/api/cart", s.customer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cart []models.CartItem
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &cart))
	require.Len(t, cart, 2)

	rec = s.do(http.MethodPost, "/api/promos", s.manager, gin.H{
		"code":                "SAVE10",
		"discount_percentage": 10,
		"expiry_date":         time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/checkout", s.customer, gin.H{"promo_code": "SAVE10"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order models.Order
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &order))
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("31.50")), order.TotalAmount.String())

	rec = s.do(http.MethodPost, "/api/checkout", s.customer, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cart is empty", decode(t, rec).Message)

	rec = s.do(http.MethodGet, "/api/orders", s.customer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &orders))
	require.Len(t, orders, 1)
	assert.Len(t, orders[0].Items, 2)

	rec = s.do(http.MethodGet, "/api/report/sales?sort=most", s.manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var report []models.SalesReportRow
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &report))
	require.Len(t, report, 2)
	assert.Equal(t, "Yogurt", report[0].Product)
	assert.Equal(t, 3, report[0].TotalSold)
}

func TestCartAndWishlistRemoval(t *testing.T) {
	s := newTestServer(t)
	bread := s.createProduct("Bread", "Bakery", "2.25", 3)

	rec := s.do(http.MethodPost, "/api/cart/add", s.customer, gin.H{"product_id": bread.ID})
	require.Equal(t, http.StatusCreated, rec.Code)
	var item models.CartItem
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &item))
	assert.Equal(t, 1, item.Quantity)

	rec = s.do(http.MethodDelete, fmt.Sprintf("/api/cart/%d/remove", item.ID), s.manager, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, fmt.Sprintf("/api/cart/%d/remove", item.ID), s.customer, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/wishlist", s.customer, gin.H{"product_id": bread.ID})
	require.Equal(t, http.StatusCreated, rec.Code)
	var wish models.WishlistItem
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &wish))

	rec = s.do(http.MethodPost, "/api/wishlist", s.customer, gin.H{"product_id": bread.ID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodDelete, fmt.Sprintf("/api/wishlist/%d/remove", wish.ID), s.customer, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/api/promos/low-stock", s.manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var low []models.Product
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &low))
	require.Len(t, low, 1)
	assert.Equal(t, bread.ID, low[0].ID)
}

func TestProductNotFoundAndDelete(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/products/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	product := s.createProduct("Salt", "Pantry", "0.80", 40)
	rec = s.do(http.MethodDelete, fmt.Sprintf("/api/products/%d/delete", product.ID), s.manager, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/products/%d", product.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
