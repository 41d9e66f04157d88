package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/DivyaPradhan23/grocery-backend/models"
)

type PromoRepository struct {
	db *pgxpool.Pool
}

func NewPromoRepository(db *pgxpool.Pool) *PromoRepository {
	return &PromoRepository{db: db}
}

func (r *PromoRepository) FindActiveByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	query := `
		SELECT id, code, discount_percentage, active, expiry_date
		FROM promo_codes
		WHERE code = $1 AND active = TRUE
	`
	var p models.PromoCode
	err := r.db.QueryRow(ctx, query, code).Scan(&p.ID, &p.Code, &p.DiscountPercentage, &p.Active, &p.ExpiryDate)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PromoRepository) List(ctx context.Context) ([]models.PromoCode, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, code, discount_percentage, active, expiry_date FROM promo_codes ORDER BY expiry_date DESC, id`)
	if err != nil {
		return nil, errors.Wrap(err, "query promo codes")
	}
	defer rows.Close()

	promos := []models.PromoCode{}
	for rows.Next() {
		var p models.PromoCode
		if err := rows.Scan(&p.ID, &p.Code, &p.DiscountPercentage, &p.Active, &p.ExpiryDate); err != nil {
			return nil, errors.Wrap(err, "scan promo code")
		}
		promos = append(promos, p)
	}
	return promos, rows.Err()
}

func (r *PromoRepository) Create(ctx context.Context, promo *models.PromoCode) error {
	query := `
		INSERT INTO promo_codes (code, discount_percentage, active, expiry_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, promo.Code, promo.DiscountPercentage, promo.Active, promo.ExpiryDate).
		Scan(&promo.ID)
	if err != nil {
		return translate(err)
	}
	return nil
}
