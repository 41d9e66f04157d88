package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/services"
)

type CartController struct {
	cartService *services.CartService
}

func NewCartController(cartService *services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// @Summary Add to cart
// @Description Add a product to the cart; an existing line has its quantity increased
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.AddToCartRequest true "Cart item"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/add [post]
func (ctrl *CartController) Add(c *gin.Context) {
	var req models.AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := ctrl.cartService.AddToCart(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Item added to cart", item)
}

// @Summary View cart
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) View(c *gin.Context) {
	items, err := ctrl.cartService.ViewCart(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Cart retrieved", items)
}

// @Summary Remove cart item
// @Tags Cart
// @Security BearerAuth
// @Param id path int true "Cart item ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/{id}/remove [delete]
func (ctrl *CartController) Remove(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.cartService.RemoveFromCart(c.Request.Context(), currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
