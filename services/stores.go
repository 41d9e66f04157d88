package services

import (
	"context"
	"mime/multipart"

	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/repositories"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id int) (*models.User, error)
	UpdateRole(ctx context.Context, username, role string) error
}

type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	Filter(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	FindByID(ctx context.Context, id int) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	UpdateImage(ctx context.Context, id int, image string) error
	Delete(ctx context.Context, id int) error
}

type CartStore interface {
	AddOrIncrement(ctx context.Context, userID, productID, quantity int) (*models.CartItem, error)
	ListByUser(ctx context.Context, userID int) ([]models.CartItem, error)
	DeleteOwned(ctx context.Context, userID, itemID int) error
}

type OrderStore interface {
	Checkout(ctx context.Context, userID int, build repositories.BuildOrderFunc) (*models.Order, error)
	ListByUser(ctx context.Context, userID int) ([]models.Order, error)
}

type WishlistStore interface {
	Create(ctx context.Context, item *models.WishlistItem) error
	ListByUser(ctx context.Context, userID int) ([]models.WishlistItem, error)
	DeleteOwned(ctx context.Context, userID, itemID int) error
}

type PromoStore interface {
	FindActiveByCode(ctx context.Context, code string) (*models.PromoCode, error)
	List(ctx context.Context) ([]models.PromoCode, error)
	Create(ctx context.Context, promo *models.PromoCode) error
}

type ReportStore interface {
	SalesReport(ctx context.Context, filter models.SalesReportFilter) ([]models.SalesReportRow, error)
	LowStock(ctx context.Context, threshold int) ([]models.Product, error)
}

type ProductCache interface {
	GetProducts(ctx context.Context) ([]models.Product, bool)
	SetProducts(ctx context.Context, products []models.Product)
	Invalidate(ctx context.Context)
}

type ImageUploader interface {
	Upload(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (string, error)
}

type OrderNotifier interface {
	OrderConfirmed(ctx context.Context, user *models.User, order *models.Order) error
}
