package models

const (
	SortMostSold  = "most"
	SortLeastSold = "least"
)

type SalesReportFilter struct {
	Category string
	Sort     string
}

type SalesReportRow struct {
	ProductID int    `json:"product_id"`
	Product   string `json:"product"`
	Category  string `json:"category"`
	TotalSold int    `json:"total_sold"`
}
