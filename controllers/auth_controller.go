package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/services"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register godoc
// @Summary Register new user
// @Description Register a new customer account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := ctrl.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Registration successful", user)
}

// ObtainToken godoc
// @Summary Obtain token pair
// @Description Exchange username and password for access and refresh tokens
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.TokenRequest true "Credentials"
// @Success 200 {object} models.TokenPair
// @Failure 401 {object} models.ErrorResponse
// @Router /token [post]
func (ctrl *AuthController) ObtainToken(c *gin.Context) {
	var req models.TokenRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := ctrl.authService.ObtainToken(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// RefreshToken godoc
// @Summary Refresh access token
// @Description Exchange a refresh token for a new access token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RefreshRequest true "Refresh token"
// @Success 200 {object} models.TokenPair
// @Failure 401 {object} models.ErrorResponse
// @Router /token/refresh [post]
func (ctrl *AuthController) RefreshToken(c *gin.Context) {
	var req models.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := ctrl.authService.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}
