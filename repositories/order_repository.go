package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/DivyaPradhan23/grocery-backend/models"
)

// BuildOrderFunc turns the locked cart of a user into the order to persist.
// Returning an error aborts the checkout and leaves the cart untouched.
type BuildOrderFunc func(items []models.CartItem) (*models.Order, error)

type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

// Checkout runs the whole cart-to-order conversion in one transaction. The
// user row is locked first so two checkouts of the same user never consume
// the same cart.
func (r *OrderRepository) Checkout(ctx context.Context, userID int, build BuildOrderFunc) (*models.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	var lockedID int
	if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&lockedID); err != nil {
		return nil, translate(err)
	}

	rows, err := tx.Query(ctx, `
		SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.created_at, `+productColumns+`
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.id
		FOR UPDATE OF ci`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "query cart items")
	}

	items := []models.CartItem{}
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			rows.Close()
			return nil, errors.Wrap(err, "scan cart item")
		}
		items = append(items, *item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "read cart items")
	}

	order, err := build(items)
	if err != nil {
		return nil, err
	}
	order.UserID = userID

	err = tx.QueryRow(ctx,
		`INSERT INTO orders (user_id, total_amount) VALUES ($1, $2) RETURNING id, created_at`,
		order.UserID, order.TotalAmount,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(translate(err), "failed to create order")
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity) VALUES ($1, $2, $3) RETURNING id`,
			item.OrderID, item.ProductID, item.Quantity,
		).Scan(&item.ID)
		if err != nil {
			return nil, errors.Wrap(translate(err), "failed to create order items")
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return nil, errors.Wrap(err, "failed to clear cart")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to commit")
	}
	return order, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int) ([]models.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, total_amount, created_at FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, errors.Wrap(err, "query orders")
	}

	orders := []models.Order{}
	index := map[int]int{}
	ids := []int{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.CreatedAt); err != nil {
			rows.Close()
			return nil, errors.Wrap(err, "scan order")
		}
		o.Items = []models.OrderItem{}
		index[o.ID] = len(orders)
		ids = append(ids, o.ID)
		orders = append(orders, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "read orders")
	}
	if len(ids) == 0 {
		return orders, nil
	}

	itemRows, err := r.db.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.quantity
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "query order items")
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.OrderItem
		if err := itemRows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity); err != nil {
			return nil, errors.Wrap(err, "scan order item")
		}
		pos := index[item.OrderID]
		orders[pos].Items = append(orders[pos].Items, item)
	}
	return orders, itemRows.Err()
}
