package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/repositories/repotest"
	"github.com/DivyaPradhan23/grocery-backend/services"
	"github.com/DivyaPradhan23/grocery-backend/utils"
)

func newIssuer() *utils.TokenIssuer {
	return utils.NewTokenIssuer("test-secret", time.Hour, 24*time.Hour)
}

func seedUser(t *testing.T, db *repotest.DB, username, role string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "x", Role: role}
	require.NoError(t, db.Users().Create(context.Background(), user))
	return user
}

func seedProduct(t *testing.T, db *repotest.DB, name, category, price string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Category: category,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		Image:    "https://img.example.com/" + name + ".png",
	}
	require.NoError(t, db.Products().Create(context.Background(), product))
	return product
}

func seedPromo(t *testing.T, db *repotest.DB, code string, pct int, active bool, expiry time.Time) {
	t.Helper()
	promo := &models.PromoCode{Code: code, DiscountPercentage: pct, Active: active, ExpiryDate: expiry}
	require.NoError(t, db.Promos().Create(context.Background(), promo))
}

func qty(n int) *int { return &n }

func requireKind(t *testing.T, err error, kind services.ErrorKind) *services.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := services.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	require.Equal(t, kind, appErr.Kind, appErr.Message)
	return appErr
}

type recordingNotifier struct {
	mu     sync.Mutex
	orders []int
}

func (n *recordingNotifier) OrderConfirmed(_ context.Context, _ *models.User, order *models.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, order.ID)
	return nil
}

type memoryCache struct {
	products    []models.Product
	hits        int
	invalidated int
}

func (c *memoryCache) GetProducts(context.Context) ([]models.Product, bool) {
	if c.products == nil {
		return nil, false
	}
	c.hits++
	return c.products, true
}

func (c *memoryCache) SetProducts(_ context.Context, products []models.Product) {
	c.products = products
}

func (c *memoryCache) Invalidate(context.Context) {
	c.products = nil
	c.invalidated++
}
