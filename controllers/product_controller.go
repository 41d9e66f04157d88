package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/services"
)

type ProductController struct {
	productService *services.ProductService
}

func NewProductController(productService *services.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// @Summary Get all products
// @Description List every product in the catalog
// @Tags Products
// @Produce json
// @Success 200 {object} models.Response
// @Router /products [get]
func (ctrl *ProductController) List(c *gin.Context) {
	products, err := ctrl.productService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Products retrieved", products)
}

// @Summary Filter products
// @Description Filter by category (case-insensitive) and optionally order by popularity
// @Tags Products
// @Produce json
// @Param category query string false "Category"
// @Param popular query string false "true to order by cart count"
// @Success 200 {object} models.Response
// @Router /products/filter [get]
func (ctrl *ProductController) Filter(c *gin.Context) {
	filter := models.ProductFilter{
		Category: c.Query("category"),
		Popular:  strings.EqualFold(c.Query("popular"), "true"),
	}

	products, err := ctrl.productService.Filter(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Products retrieved", products)
}

// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Product retrieved", product)
}

// @Summary Create product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ProductRequest true "Product"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /products/create [post]
func (ctrl *ProductController) Create(c *gin.Context) {
	var req models.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := ctrl.productService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Product created successfully", product)
}

// @Summary Update product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body models.ProductRequest true "Product"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/update [put]
func (ctrl *ProductController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := ctrl.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Product updated successfully", product)
}

// @Summary Delete product
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/delete [delete]
func (ctrl *ProductController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Product deleted successfully", nil)
}

// @Summary Upload product image
// @Tags Products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param image formData file true "Image (jpg, jpeg, png)"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /products/{id}/image [post]
func (ctrl *ProductController) UploadImage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Image file is required",
		})
		return
	}

	product, err := ctrl.productService.UploadImage(c.Request.Context(), id, fileHeader)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Image uploaded successfully", product)
}
