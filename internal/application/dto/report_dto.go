package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO resumen del dashboard: estado del catálogo más ventas de
// hoy y del mes en curso. Todos los campos llegan en cero cuando no hay datos.
type DashboardStatsDTO struct {
	TotalProducts       int64           `json:"total_products"`
	LowStockCount       int64           `json:"low_stock_count"`
	OutOfStockCount     int64           `json:"out_of_stock_count"`
	TodaySales          decimal.Decimal `json:"todays_sales"`
	TodayTransactions   int64           `json:"todays_transactions"`
	MonthlySales        decimal.Decimal `json:"monthly_sales"`
	MonthlyTransactions int64           `json:"monthly_transactions"`
}

// SalesReportDTO agregados de ventas de un período. Un período sin facturas
// produce ceros, nunca error ni campos ausentes.
type SalesReportDTO struct {
	StartDate               string          `json:"start_date"`
	EndDate                 string          `json:"end_date"`
	TotalRevenue            decimal.Decimal `json:"total_revenue"`
	TransactionCount        int64           `json:"transaction_count"`
	AverageTransactionValue decimal.Decimal `json:"average_transaction_value"`
	TotalTax                decimal.Decimal `json:"total_tax"`
	TotalDiscount           decimal.Decimal `json:"total_discount"`
}
