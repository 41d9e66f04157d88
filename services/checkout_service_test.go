package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/repositories/repotest"
	"github.com/DivyaPradhan23/grocery-backend/services"
)

var checkoutDay = time.Date(2024, time.March, 10, 15, 30, 0, 0, time.Local)

type checkoutFixture struct {
	db       *repotest.DB
	user     *models.User
	cart     *services.CartService
	checkout *services.CheckoutService
	notifier *recordingNotifier
}

// newCheckoutFixture puts 2 x 10.00 and 3 x 5.00 into the user's cart.
func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	db := repotest.NewDB()
	user := seedUser(t, db, "alice", models.RoleCustomer)
	cheese := seedProduct(t, db, "Cheese", "Dairy", "10.00", 20)
	yogurt := seedProduct(t, db, "Yogurt", "Dairy", "5.00", 20)

	cart := services.NewCartService(db.Cart(), db.Products())
	_, err := cart.AddToCart(context.Background(), user.ID, models.AddToCartRequest{ProductID: cheese.ID, Quantity: qty(2)})
	require.NoError(t, err)
	_, err = cart.AddToCart(context.Background(), user.ID, models.AddToCartRequest{ProductID: yogurt.ID, Quantity: qty(3)})
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	checkout := services.NewCheckoutService(db.Orders(), db.Promos(), db.Users(), notifier).
		WithClock(func() time.Time { return checkoutDay })

	return &checkoutFixture{db: db, user: user, cart: cart, checkout: checkout, notifier: notifier}
}

func TestCheckoutWithoutPromo(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	order, err := f.checkout.Checkout(ctx, f.user.ID, models.CheckoutRequest{})
	require.NoError(t, err)
	assert.Equal(t, "35.00", order.TotalAmount.StringFixed(2))
	assert.Len(t, order.Items, 2)
	assert.Equal(t, "Cheese", order.Items[0].ProductName)
	assert.Equal(t, 2, order.Items[0].Quantity)

	assert.Zero(t, f.db.CartCount(f.user.ID))
	orders, err := f.checkout.ListOrders(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
	assert.Equal(t, []int{order.ID}, f.notifier.orders)
}

func TestCheckoutAppliesPromo(t *testing.T) {
	f := newCheckoutFixture(t)
	seedPromo(t, f.db, "SAVE10", 10, true, checkoutDay.AddDate(0, 0, 5))

	order, err := f.checkout.Checkout(context.Background(), f.user.ID, models.CheckoutRequest{PromoCode: "SAVE10"})
	require.NoError(t, err)
	assert.Equal(t, "31.50", order.TotalAmount.StringFixed(2))
}

func TestCheckoutPromoValidOnExpiryDay(t *testing.T) {
	f := newCheckoutFixture(t)
	expiry := time.Date(checkoutDay.Year(), checkoutDay.Month(), checkoutDay.Day(), 0, 0, 0, 0, time.UTC)
	seedPromo(t, f.db, "LASTDAY", 20, true, expiry)

	order, err := f.checkout.Checkout(context.Background(), f.user.ID, models.CheckoutRequest{PromoCode: "LASTDAY"})
	require.NoError(t, err)
	assert.Equal(t, "28.00", order.TotalAmount.StringFixed(2))
}

func TestCheckoutRejectsUnusablePromo(t *testing.T) {
	tests := []struct {
		name    string
		seed    func(t *testing.T, db *repotest.DB)
		code    string
		message string
	}{
		{
			name:    "unknown",
			seed:    func(*testing.T, *repotest.DB) {},
			code:    "NOPE",
			message: "Invalid promo code.",
		},
		{
			name: "inactive",
			seed: func(t *testing.T, db *repotest.DB) {
				seedPromo(t, db, "OFF", 10, false, checkoutDay.AddDate(0, 1, 0))
			},
			code:    "OFF",
			message: "Invalid promo code.",
		},
		{
			name: "expired",
			seed: func(t *testing.T, db *repotest.DB) {
				seedPromo(t, db, "OLD", 10, true, checkoutDay.AddDate(0, 0, -1))
			},
			code:    "OLD",
			message: "Promo code expired.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCheckoutFixture(t)
			tt.seed(t, f.db)

			_, err := f.checkout.Checkout(context.Background(), f.user.ID, models.CheckoutRequest{PromoCode: tt.code})
			appErr := requireKind(t, err, services.KindBadRequest)
			assert.Equal(t, tt.message, appErr.Message)

			assert.Equal(t, 2, f.db.CartCount(f.user.ID))
			orders, err := f.checkout.ListOrders(context.Background(), f.user.ID)
			require.NoError(t, err)
			assert.Empty(t, orders)
			assert.Empty(t, f.notifier.orders)
		})
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.checkout.Checkout(ctx, f.user.ID, models.CheckoutRequest{})
	require.NoError(t, err)

	_, err = f.checkout.Checkout(ctx, f.user.ID, models.CheckoutRequest{})
	appErr := requireKind(t, err, services.KindBadRequest)
	assert.Equal(t, "Cart is empty", appErr.Message)

	orders, err := f.checkout.ListOrders(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestCheckoutEmptyCartWinsOverBadPromo(t *testing.T) {
	db := repotest.NewDB()
	user := seedUser(t, db, "dave", models.RoleCustomer)
	svc := services.NewCheckoutService(db.Orders(), db.Promos(), db.Users(), nil)

	_, err := svc.Checkout(context.Background(), user.ID, models.CheckoutRequest{PromoCode: "NOPE"})
	appErr := requireKind(t, err, services.KindBadRequest)
	assert.Equal(t, "Cart is empty", appErr.Message)
}

func TestDiscount(t *testing.T) {
	tests := []struct {
		total string
		pct   int
		want  string
	}{
		{"35.00", 10, "3.50"},
		{"35.00", 0, "0.00"},
		{"35.00", 100, "35.00"},
		{"0.25", 10, "0.02"},
		{"0.35", 10, "0.04"},
		{"19.99", 15, "3.00"},
	}

	for _, tt := range tests {
		got := services.Discount(decimal.RequireFromString(tt.total), tt.pct)
		assert.Equal(t, tt.want, got.StringFixed(2), "%s at %d%%", tt.total, tt.pct)
	}
}
