package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/DivyaPradhan23/grocery-backend/models"
)

const productColumns = `p.id, p.name, p.category, p.price, p.stock, p.image, p.created_at, p.updated_at`

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p ORDER BY p.id`
	return r.query(ctx, query)
}

func (r *ProductRepository) Filter(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p`
	args := []any{}

	if filter.Popular {
		query += ` LEFT JOIN cart_items ci ON ci.product_id = p.id`
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(` WHERE LOWER(p.category) = LOWER($%d)`, len(args))
	}
	if filter.Popular {
		query += ` GROUP BY p.id ORDER BY COUNT(ci.id) DESC, p.id`
	} else {
		query += ` ORDER BY p.id`
	}

	return r.query(ctx, query, args...)
}

func (r *ProductRepository) FindByID(ctx context.Context, id int) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`

	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, category, price, stock, image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		product.Name, product.Category, product.Price, product.Stock, product.Image,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return errors.Wrap(translate(err), "create product")
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, category = $2, price = $3, stock = $4, image = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		product.Name, product.Category, product.Price, product.Stock, product.Image, product.ID,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	return nil
}

func (r *ProductRepository) UpdateImage(ctx context.Context, id int, image string) error {
	tag, err := r.db.Exec(ctx, `UPDATE products SET image = $1, updated_at = NOW() WHERE id = $2`, image, id)
	if err != nil {
		return errors.Wrap(translate(err), "update product image")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the product; cart, order and wishlist rows referencing it
// go with it through ON DELETE CASCADE.
func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(translate(err), "delete product")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) query(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query products")
	}
	defer rows.Close()

	return collectProducts(rows)
}

func collectProducts(rows pgx.Rows) ([]models.Product, error) {
	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan product")
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func scanProduct(row scanner) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Stock, &p.Image, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
