package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/services"
)

type OrderController struct {
	checkoutService *services.CheckoutService
}

func NewOrderController(checkoutService *services.CheckoutService) *OrderController {
	return &OrderController{checkoutService: checkoutService}
}

// @Summary Checkout
// @Description Turn the cart into an order, optionally applying a promo code
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CheckoutRequest false "Promo code"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /checkout [post]
func (ctrl *OrderController) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	order, err := ctrl.checkoutService.Checkout(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Order placed successfully", order)
}

// @Summary Order history
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Router /orders [get]
func (ctrl *OrderController) List(c *gin.Context) {
	orders, err := ctrl.checkoutService.ListOrders(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Orders retrieved", orders)
}
