package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/services"
)

type WishlistController struct {
	wishlistService *services.WishlistService
}

func NewWishlistController(wishlistService *services.WishlistService) *WishlistController {
	return &WishlistController{wishlistService: wishlistService}
}

// @Summary View wishlist
// @Tags Wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Router /wishlist [get]
func (ctrl *WishlistController) View(c *gin.Context) {
	items, err := ctrl.wishlistService.View(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Wishlist retrieved", items)
}

// @Summary Add to wishlist
// @Tags Wishlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.WishlistRequest true "Product"
// @Success 201 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /wishlist [post]
func (ctrl *WishlistController) Add(c *gin.Context) {
	var req models.WishlistRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := ctrl.wishlistService.Add(c.Request.Context(), currentUserID(c), req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Product added to wishlist", item)
}

// @Summary Remove wishlist item
// @Tags Wishlist
// @Security BearerAuth
// @Param id path int true "Wishlist item ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /wishlist/{id}/remove [delete]
func (ctrl *WishlistController) Remove(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.wishlistService.Remove(c.Request.Context(), currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
