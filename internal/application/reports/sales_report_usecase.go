package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/supermarket-pos/internal/application/dto"
	"github.com/jhoicas/supermarket-pos/internal/domain"
	"github.com/jhoicas/supermarket-pos/internal/domain/repository"
)

// SalesReportUseCase agrega ventas por período arbitrario, día o mes.
type SalesReportUseCase struct {
	reportRepo repository.ReportRepository
}

// NewSalesReportUseCase construye el caso de uso.
func NewSalesReportUseCase(reportRepo repository.ReportRepository) *SalesReportUseCase {
	return &SalesReportUseCase{reportRepo: reportRepo}
}

// GetSalesReport agrega las ventas del intervalo semiabierto [start, end).
// Un período sin facturas produce un reporte en ceros, nunca error.
func (uc *SalesReportUseCase) GetSalesReport(ctx context.Context, start, end time.Time) (*dto.SalesReportDTO, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end_date debe ser posterior a start_date", domain.ErrValidation)
	}

	totals, err := uc.reportRepo.GetSalesTotalsBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: %w", err)
	}

	average := decimal.Zero
	if totals.Transactions > 0 {
		average = totals.Revenue.Div(decimal.NewFromInt(totals.Transactions)).Round(2)
	}

	return &dto.SalesReportDTO{
		StartDate:               start.Format("2006-01-02"),
		EndDate:                 end.Format("2006-01-02"),
		TotalRevenue:            totals.Revenue.Round(2),
		TransactionCount:        totals.Transactions,
		AverageTransactionValue: average,
		TotalTax:                totals.Tax.Round(2),
		TotalDiscount:           totals.Discount.Round(2),
	}, nil
}

// DailyReport ventas del día indicado (medianoche a medianoche, hora local).
func (uc *SalesReportUseCase) DailyReport(ctx context.Context, date time.Time) (*dto.SalesReportDTO, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return uc.GetSalesReport(ctx, start, start.Add(24*time.Hour))
}

// MonthlyReport ventas del mes indicado completo.
func (uc *SalesReportUseCase) MonthlyReport(ctx context.Context, year int, month time.Month) (*dto.SalesReportDTO, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return uc.GetSalesReport(ctx, start, start.AddDate(0, 1, 0))
}
