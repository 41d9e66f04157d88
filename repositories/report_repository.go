package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/DivyaPradhan23/grocery-backend/models"
)

type ReportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) SalesReport(ctx context.Context, filter models.SalesReportFilter) ([]models.SalesReportRow, error) {
	query := `
		SELECT p.id, p.name, p.category, COALESCE(SUM(oi.quantity), 0)::int AS total_sold
		FROM products p
		LEFT JOIN order_items oi ON oi.product_id = p.id`
	args := []any{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(` WHERE LOWER(p.category) = LOWER($%d)`, len(args))
	}
	query += ` GROUP BY p.id`

	switch filter.Sort {
	case models.SortMostSold:
		query += ` ORDER BY total_sold DESC, p.id`
	case models.SortLeastSold:
		query += ` ORDER BY total_sold ASC, p.id`
	default:
		query += ` ORDER BY p.id`
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query sales report")
	}
	defer rows.Close()

	report := []models.SalesReportRow{}
	for rows.Next() {
		var row models.SalesReportRow
		if err := rows.Scan(&row.ProductID, &row.Product, &row.Category, &row.TotalSold); err != nil {
			return nil, errors.Wrap(err, "scan sales report row")
		}
		report = append(report, row)
	}
	return report, rows.Err()
}

func (r *ReportRepository) LowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.stock < $1 ORDER BY p.stock, p.id`

	rows, err := r.db.Query(ctx, query, threshold)
	if err != nil {
		return nil, errors.Wrap(err, "query low stock products")
	}
	defer rows.Close()

	return collectProducts(rows)
}
