package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/DivyaPradhan23/grocery-backend/models"
)

type CartRepository struct {
	db *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{db: db}
}

// AddOrIncrement inserts a cart row or, when the user already holds the
// product, adds quantity to the existing row in the same statement.
func (r *CartRepository) AddOrIncrement(ctx context.Context, userID, productID, quantity int) (*models.CartItem, error) {
	query := `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, user_id, product_id, quantity, created_at
	`
	item := &models.CartItem{}
	err := r.db.QueryRow(ctx, query, userID, productID, quantity).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return item, nil
}

func (r *CartRepository) ListByUser(ctx context.Context, userID int) ([]models.CartItem, error) {
	query := `
		SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.created_at, ` + productColumns + `
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "query cart items")
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan cart item")
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *CartRepository) DeleteOwned(ctx context.Context, userID, itemID int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return errors.Wrap(err, "delete cart item")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCartItem(row scanner) (*models.CartItem, error) {
	var item models.CartItem
	var p models.Product
	err := row.Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt,
		&p.ID, &p.Name, &p.Category, &p.Price, &p.Stock, &p.Image, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Product = &p
	return &item, nil
}
