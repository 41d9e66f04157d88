package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/repositories/repotest"
	"github.com/DivyaPradhan23/grocery-backend/services"
)

func TestLowStockThresholdIsExclusive(t *testing.T) {
	db := repotest.NewDB()
	seedProduct(t, db, "Eggs", "Dairy", "3.00", 0)
	seedProduct(t, db, "Flour", "Pantry", "2.00", 4)
	seedProduct(t, db, "Sugar", "Pantry", "1.80", 5)
	seedProduct(t, db, "Rice", "Pantry", "4.10", 50)
	svc := services.NewReportService(db.Reports())

	products, err := svc.LowStock(context.Background())
	require.NoError(t, err)

	names := []string{}
	for _, p := range products {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Eggs", "Flour"}, names)
}

func TestSalesReport(t *testing.T) {
	db := repotest.NewDB()
	user := seedUser(t, db, "alice", models.RoleCustomer)
	tea := seedProduct(t, db, "Tea", "Drinks", "3.00", 30)
	juice := seedProduct(t, db, "Juice", "Drinks", "2.50", 30)
	seedProduct(t, db, "Soda", "Drinks", "1.20", 30)
	oats := seedProduct(t, db, "Oats", "Pantry", "2.70", 30)

	cart := services.NewCartService(db.Cart(), db.Products())
	checkout := services.NewCheckoutService(db.Orders(), db.Promos(), db.Users(), nil)
	ctx := context.Background()

	buy := func(productID, n int) {
		_, err := cart.AddToCart(ctx, user.ID, models.AddToCartRequest{ProductID: productID, Quantity: qty(n)})
		require.NoError(t, err)
	}
	buy(tea.ID, 2)
	buy(juice.ID, 5)
	buy(oats.ID, 1)
	_, err := checkout.Checkout(ctx, user.ID, models.CheckoutRequest{})
	require.NoError(t, err)
	buy(tea.ID, 1)
	_, err = checkout.Checkout(ctx, user.ID, models.CheckoutRequest{})
	require.NoError(t, err)

	svc := services.NewReportService(db.Reports())

	rows, err := svc.SalesReport(ctx, models.SalesReportFilter{Category: " drinks ", Sort: models.SortMostSold})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Juice", rows[0].Product)
	assert.Equal(t, 5, rows[0].TotalSold)
	assert.Equal(t, "Tea", rows[1].Product)
	assert.Equal(t, 3, rows[1].TotalSold)
	assert.Equal(t, "Soda", rows[2].Product)
	assert.Zero(t, rows[2].TotalSold)

	rows, err = svc.SalesReport(ctx, models.SalesReportFilter{Sort: models.SortLeastSold})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Soda", rows[0].Product)
	assert.Equal(t, "Oats", rows[1].Product)

	rows, err = svc.SalesReport(ctx, models.SalesReportFilter{Sort: "sideways"})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, tea.ID, rows[0].ProductID)
}
