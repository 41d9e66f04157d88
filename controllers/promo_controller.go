package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/services"
)

type PromoController struct {
	promoService *services.PromoService
}

func NewPromoController(promoService *services.PromoService) *PromoController {
	return &PromoController{promoService: promoService}
}

// @Summary List promo codes
// @Tags Promos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Router /promos [get]
func (ctrl *PromoController) List(c *gin.Context) {
	promos, err := ctrl.promoService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Promo codes retrieved", promos)
}

// @Summary Create promo code
// @Tags Promos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.PromoRequest true "Promo code"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /promos [post]
func (ctrl *PromoController) Create(c *gin.Context) {
	var req models.PromoRequest
	if !bindJSON(c, &req) {
		return
	}

	promo, err := ctrl.promoService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Promo code created", promo)
}
