package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/repositories"
	"github.com/DivyaPradhan23/grocery-backend/utils"
)

const (
	maxProductNameLength = 100
	maxCategoryLength    = 100
	maxImageURLLength    = 200
	msgProductNotFound   = "Product not found."
)

// Prices are NUMERIC(10,2): at most eight digits before the point.
var maxPrice = decimal.New(1, 8)

type ProductService struct {
	products      ProductStore
	cache         ProductCache
	images        ImageUploader
	maxUploadSize int64
	validate      *validator.Validate
}

func NewProductService(products ProductStore, cache ProductCache, images ImageUploader, maxUploadSize int64) *ProductService {
	return &ProductService{
		products:      products,
		cache:         cache,
		images:        images,
		maxUploadSize: maxUploadSize,
		validate:      validator.New(),
	}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	if s.cache != nil {
		if products, ok := s.cache.GetProducts(ctx); ok {
			return products, nil
		}
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetProducts(ctx, products)
	}
	return products, nil
}

func (s *ProductService) Filter(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	return s.products.Filter(ctx, filter)
}

func (s *ProductService) Get(ctx context.Context, id int) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound(msgProductNotFound)
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Create(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	product, err := s.buildProduct(req)
	if err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	log.WithFields(log.Fields{"product_id": product.ID, "name": product.Name}).Info("product created")
	return product, nil
}

// Update replaces every field of the product; a partial payload fails
// validation exactly as it would on create.
func (s *ProductService) Update(ctx context.Context, id int, req models.ProductRequest) (*models.Product, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	product, err := s.buildProduct(req)
	if err != nil {
		return nil, err
	}
	product.ID = id

	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound(msgProductNotFound)
		}
		return nil, err
	}
	s.invalidate(ctx)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id int) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NotFound(msgProductNotFound)
		}
		return err
	}
	s.invalidate(ctx)

	log.WithField("product_id", id).Info("product deleted")
	return nil
}

func (s *ProductService) UploadImage(ctx context.Context, id int, fileHeader *multipart.FileHeader) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.images == nil {
		return nil, BadRequest("Image uploads are not configured")
	}
	if err := utils.ValidateImage(fileHeader, s.maxUploadSize); err != nil {
		return nil, FieldErrors{"image": {err.Error()}}.Err()
	}

	url, err := s.images.Upload(ctx, fileHeader, "products")
	if err != nil {
		return nil, err
	}

	if err := s.products.UpdateImage(ctx, id, url); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound(msgProductNotFound)
		}
		return nil, err
	}
	s.invalidate(ctx)

	product.Image = url
	return product, nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func (s *ProductService) buildProduct(req models.ProductRequest) (*models.Product, error) {
	fields := FieldErrors{}

	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		fields.Add("name", msgRequired)
	case len([]rune(name)) > maxProductNameLength:
		fields.Add("name", "Ensure this field has no more than 100 characters.")
	}

	category := strings.TrimSpace(req.Category)
	switch {
	case category == "":
		fields.Add("category", msgRequired)
	case len([]rune(category)) > maxCategoryLength:
		fields.Add("category", "Ensure this field has no more than 100 characters.")
	}

	switch {
	case req.Price == nil:
		fields.Add("price", msgRequired)
	case req.Price.IsNegative():
		fields.Add("price", "Ensure this value is greater than or equal to 0.")
	case !req.Price.Equal(req.Price.Round(2)):
		fields.Add("price", "Ensure that there are no more than 2 decimal places.")
	case req.Price.GreaterThanOrEqual(maxPrice):
		fields.Add("price", "Ensure that there are no more than 10 digits in total.")
	}

	switch {
	case req.Stock == nil:
		fields.Add("stock", msgRequired)
	case *req.Stock < 0:
		fields.Add("stock", "Ensure this value is greater than or equal to 0.")
	}

	image := strings.TrimSpace(req.Image)
	switch {
	case image == "":
		fields.Add("image", msgRequired)
	case len(image) > maxImageURLLength:
		fields.Add("image", "Ensure this field has no more than 200 characters.")
	case s.validate.Var(image, "http_url") != nil:
		fields.Add("image", "Enter a valid URL.")
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	return &models.Product{
		Name:     name,
		Category: category,
		Price:    req.Price.Round(2),
		Stock:    *req.Stock,
		Image:    image,
	}, nil
}
