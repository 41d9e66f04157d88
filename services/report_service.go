package services

import (
	"context"
	"strings"

	"github.com/DivyaPradhan23/grocery-backend/models"
)

// LowStockThreshold is exclusive: a product with exactly this many units is
// not low on stock.
const LowStockThreshold = 5

type ReportService struct {
	reports ReportStore
}

func NewReportService(reports ReportStore) *ReportService {
	return &ReportService{reports: reports}
}

func (s *ReportService) SalesReport(ctx context.Context, filter models.SalesReportFilter) ([]models.SalesReportRow, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	return s.reports.SalesReport(ctx, filter)
}

func (s *ReportService) LowStock(ctx context.Context) ([]models.Product, error) {
	return s.reports.LowStock(ctx, LowStockThreshold)
}
