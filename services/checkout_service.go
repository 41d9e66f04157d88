package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/repositories"
)

var hundred = decimal.NewFromInt(100)

type CheckoutService struct {
	orders   OrderStore
	promos   PromoStore
	users    UserStore
	notifier OrderNotifier
	now      func() time.Time
}

func NewCheckoutService(orders OrderStore, promos PromoStore, users UserStore, notifier OrderNotifier) *CheckoutService {
	return &CheckoutService{
		orders:   orders,
		promos:   promos,
		users:    users,
		notifier: notifier,
		now:      time.Now,
	}
}

// WithClock replaces the clock used for promo expiry checks.
func (s *CheckoutService) WithClock(now func() time.Time) *CheckoutService {
	s.now = now
	return s
}

// CartTotal sums price times quantity over the cart.
func CartTotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Discount is percentage of total, rounded half-even to cents.
func Discount(total decimal.Decimal, percentage int) decimal.Decimal {
	return total.Mul(decimal.NewFromInt(int64(percentage))).Div(hundred).RoundBank(2)
}

// Checkout converts the user's cart into an order. The cart is read, the
// order written and the cart cleared in one transaction; any failure leaves
// the cart as it was.
func (s *CheckoutService) Checkout(ctx context.Context, userID int, req models.CheckoutRequest) (*models.Order, error) {
	promo, promoErr := s.resolvePromo(ctx, req.PromoCode)
	if promoErr != nil && !isClientError(promoErr) {
		return nil, promoErr
	}

	order, err := s.orders.Checkout(ctx, userID, func(items []models.CartItem) (*models.Order, error) {
		if len(items) == 0 {
			return nil, BadRequest("Cart is empty")
		}
		if promoErr != nil {
			return nil, promoErr
		}

		total := CartTotal(items)
		discount := decimal.Zero
		if promo != nil {
			discount = Discount(total, promo.DiscountPercentage)
		}

		order := &models.Order{
			UserID:      userID,
			TotalAmount: total.Sub(discount),
			Items:       make([]models.OrderItem, 0, len(items)),
		}
		for _, item := range items {
			orderItem := models.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity}
			if item.Product != nil {
				orderItem.ProductName = item.Product.Name
			}
			order.Items = append(order.Items, orderItem)
		}
		return order, nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, Unauthorized("User not found")
		}
		return nil, err
	}

	entry := log.WithFields(log.Fields{
		"order_id": order.ID,
		"user_id":  userID,
		"total":    order.TotalAmount.StringFixed(2),
		"items":    len(order.Items),
	})
	if promo != nil {
		entry = entry.WithField("promo_code", promo.Code)
	}
	entry.Info("order placed")

	s.notify(ctx, userID, order)
	return order, nil
}

func (s *CheckoutService) ListOrders(ctx context.Context, userID int) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *CheckoutService) resolvePromo(ctx context.Context, code string) (*models.PromoCode, error) {
	if code == "" {
		return nil, nil
	}

	promo, err := s.promos.FindActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, BadRequest("Invalid promo code.")
		}
		return nil, err
	}
	if promo.ExpiredOn(s.now()) {
		return nil, BadRequest("Promo code expired.")
	}
	return promo, nil
}

func (s *CheckoutService) notify(ctx context.Context, userID int, order *models.Order) {
	if s.notifier == nil {
		return
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("order_id", order.ID).Warn("could not load buyer for confirmation mail")
		return
	}
	if err := s.notifier.OrderConfirmed(ctx, user, order); err != nil {
		log.WithError(err).WithField("order_id", order.ID).Warn("order confirmation mail failed")
	}
}

func isClientError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}
