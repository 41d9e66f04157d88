package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/repositories"
)

type CartService struct {
	carts    CartStore
	products ProductStore
}

func NewCartService(carts CartStore, products ProductStore) *CartService {
	return &CartService{carts: carts, products: products}
}

// AddToCart puts quantity units of the product into the user's cart,
// incrementing the existing line when there is one. A missing quantity
// means one unit.
func (s *CartService) AddToCart(ctx context.Context, userID int, req models.AddToCartRequest) (*models.CartItem, error) {
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity <= 0 {
		return nil, FieldErrors{"quantity": {"Ensure this value is greater than or equal to 1."}}.Err()
	}

	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound(msgProductNotFound)
		}
		return nil, err
	}

	item, err := s.carts.AddOrIncrement(ctx, userID, product.ID, quantity)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound(msgProductNotFound)
		}
		return nil, err
	}
	item.Product = product
	return item, nil
}

func (s *CartService) ViewCart(ctx context.Context, userID int) ([]models.CartItem, error) {
	return s.carts.ListByUser(ctx, userID)
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, itemID int) error {
	if err := s.carts.DeleteOwned(ctx, userID, itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NotFound("Item not found in your cart.")
		}
		return err
	}
	return nil
}
