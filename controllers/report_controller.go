package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/services"
)

type ReportController struct {
	reportService *services.ReportService
}

func NewReportController(reportService *services.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// @Summary Sales report
// @Description Units sold per product, optionally by category and sorted
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param category query string false "Category"
// @Param sort query string false "most or least"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.ErrorResponse
// @Router /report/sales [get]
func (ctrl *ReportController) Sales(c *gin.Context) {
	filter := models.SalesReportFilter{
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	}

	rows, err := ctrl.reportService.SalesReport(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Sales report retrieved", rows)
}

// @Summary Low stock products
// @Description Products with fewer than five units in stock
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Failure 403 {object} models.ErrorResponse
// @Router /promos/low-stock [get]
func (ctrl *ReportController) LowStock(c *gin.Context) {
	products, err := ctrl.reportService.LowStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Low stock products retrieved", products)
}
