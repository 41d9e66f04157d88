package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/DivyaPradhan23/grocery-backend/models"
)

type WishlistRepository struct {
	db *pgxpool.Pool
}

func NewWishlistRepository(db *pgxpool.Pool) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// Create relies on the (user_id, product_id) unique constraint; a duplicate
// yields ErrDuplicate and leaves the existing row alone.
func (r *WishlistRepository) Create(ctx context.Context, item *models.WishlistItem) error {
	query := `
		INSERT INTO wishlist_items (user_id, product_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, item.UserID, item.ProductID).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return translate(err)
	}
	return nil
}

func (r *WishlistRepository) ListByUser(ctx context.Context, userID int) ([]models.WishlistItem, error) {
	query := `
		SELECT w.id, w.user_id, w.product_id, w.created_at, ` + productColumns + `
		FROM wishlist_items w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "query wishlist")
	}
	defer rows.Close()

	items := []models.WishlistItem{}
	for rows.Next() {
		var item models.WishlistItem
		var p models.Product
		err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.CreatedAt,
			&p.ID, &p.Name, &p.Category, &p.Price, &p.Stock, &p.Image, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, errors.Wrap(err, "scan wishlist item")
		}
		item.Product = &p
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *WishlistRepository) DeleteOwned(ctx context.Context, userID, itemID int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM wishlist_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return errors.Wrap(err, "delete wishlist item")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
