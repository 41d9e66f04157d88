package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/repositories"
)

type WishlistService struct {
	wishlist WishlistStore
	products ProductStore
}

func NewWishlistService(wishlist WishlistStore, products ProductStore) *WishlistService {
	return &WishlistService{wishlist: wishlist, products: products}
}

func (s *WishlistService) Add(ctx context.Context, userID, productID int) (*models.WishlistItem, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound(msgProductNotFound)
		}
		return nil, err
	}

	item := &models.WishlistItem{UserID: userID, ProductID: product.ID}
	if err := s.wishlist.Create(ctx, item); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, Conflict("Product already in wishlist")
		case errors.Is(err, repositories.ErrNotFound):
			return nil, NotFound(msgProductNotFound)
		}
		return nil, err
	}
	item.Product = product
	return item, nil
}

func (s *WishlistService) View(ctx context.Context, userID int) ([]models.WishlistItem, error) {
	return s.wishlist.ListByUser(ctx, userID)
}

func (s *WishlistService) Remove(ctx context.Context, userID, itemID int) error {
	if err := s.wishlist.DeleteOwned(ctx, userID, itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NotFound("Item not found in wishlist")
		}
		return err
	}
	return nil
}
