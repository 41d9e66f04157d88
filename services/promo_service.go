package services

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/repositories"
)

const (
	maxPromoCodeLength = 20
	dateLayout         = "2006-01-02"
)

type PromoService struct {
	promos PromoStore
}

func NewPromoService(promos PromoStore) *PromoService {
	return &PromoService{promos: promos}
}

func (s *PromoService) List(ctx context.Context) ([]models.PromoCode, error) {
	return s.promos.List(ctx)
}

func (s *PromoService) Create(ctx context.Context, req models.PromoRequest) (*models.PromoCode, error) {
	fields := FieldErrors{}

	code := strings.TrimSpace(req.Code)
	switch {
	case code == "":
		fields.Add("code", msgRequired)
	case len([]rune(code)) > maxPromoCodeLength:
		fields.Add("code", "Ensure this field has no more than 20 characters.")
	}

	switch {
	case req.DiscountPercentage == nil:
		fields.Add("discount_percentage", msgRequired)
	case *req.DiscountPercentage < 0 || *req.DiscountPercentage > 100:
		fields.Add("discount_percentage", "Ensure this value is between 0 and 100.")
	}

	var expiry time.Time
	if req.ExpiryDate == "" {
		fields.Add("expiry_date", msgRequired)
	} else {
		parsed, err := time.Parse(dateLayout, req.ExpiryDate)
		if err != nil {
			fields.Add("expiry_date", "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
		}
		expiry = parsed
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	promo := &models.PromoCode{
		Code:               code,
		DiscountPercentage: *req.DiscountPercentage,
		Active:             req.Active == nil || *req.Active,
		ExpiryDate:         expiry,
	}
	if err := s.promos.Create(ctx, promo); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, Conflict("promo code with this code already exists.")
		}
		return nil, err
	}
	return promo, nil
}
