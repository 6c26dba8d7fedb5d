package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supermarket-pos/internal/application/reports"
	"github.com/jhoicas/supermarket-pos/internal/domain"
	"github.com/jhoicas/supermarket-pos/internal/domain/repository"
)

// fakeReportRepo devuelve agregados fijos y registra los rangos consultados.
type fakeReportRepo struct {
	totals       repository.SalesTotals
	products     int64
	lowStock     int64
	outOfStock   int64
	queriedRange [][2]time.Time
}

func (r *fakeReportRepo) CountProducts(ctx context.Context) (int64, error) { return r.products, nil }
func (r *fakeReportRepo) CountLowStock(ctx context.Context) (int64, error) { return r.lowStock, nil }

func (r *fakeReportRepo) CountOutOfStock(ctx context.Context) (int64, error) {
	return r.outOfStock, nil
}

func (r *fakeReportRepo) GetSalesTotalsBetween(ctx context.Context, start, end time.Time) (repository.SalesTotals, error) {
	r.queriedRange = append(r.queriedRange, [2]time.Time{start, end})
	return r.totals, nil
}

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

// Período sin facturas: el reporte llega en ceros, nunca error.
func TestGetSalesReport_PeriodoVacio(t *testing.T) {
	repo := &fakeReportRepo{} // SalesTotals cero-valuado
	uc := reports.NewSalesReportUseCase(repo)

	out, err := uc.GetSalesReport(context.Background(), day("2026-08-01"), day("2026-08-08"))
	require.NoError(t, err, "un período vacío no es un error")

	assert.True(t, out.TotalRevenue.IsZero(), "revenue en cero")
	assert.True(t, out.TotalTax.IsZero(), "impuesto en cero")
	assert.True(t, out.TotalDiscount.IsZero(), "descuento en cero")
	assert.True(t, out.AverageTransactionValue.IsZero(), "promedio en cero, sin división por cero")
	assert.EqualValues(t, 0, out.TransactionCount)
	assert.Equal(t, "2026-08-01", out.StartDate)
	assert.Equal(t, "2026-08-08", out.EndDate)
}

// Promedio por transacción: revenue / transacciones, redondeado a 2.
func TestGetSalesReport_Promedio(t *testing.T) {
	repo := &fakeReportRepo{totals: repository.SalesTotals{
		Revenue:      decimal.RequireFromString("100.00"),
		Tax:          decimal.RequireFromString("15.97"),
		Discount:     decimal.RequireFromString("4.03"),
		Transactions: 3,
	}}
	uc := reports.NewSalesReportUseCase(repo)

	out, err := uc.GetSalesReport(context.Background(), day("2026-08-01"), day("2026-09-01"))
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("33.33").Equal(out.AverageTransactionValue),
		"promedio: %s", out.AverageTransactionValue)
	assert.EqualValues(t, 3, out.TransactionCount)
}

// Rango inválido: end debe ser posterior a start.
func TestGetSalesReport_RangoInvalido(t *testing.T) {
	uc := reports.NewSalesReportUseCase(&fakeReportRepo{})

	_, err := uc.GetSalesReport(context.Background(), day("2026-08-08"), day("2026-08-01"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.GetSalesReport(context.Background(), day("2026-08-08"), day("2026-08-08"))
	assert.ErrorIs(t, err, domain.ErrValidation, "rango vacío también es inválido")
}

// DailyReport consulta el intervalo [medianoche, medianoche+24h).
func TestDailyReport_Rango(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := reports.NewSalesReportUseCase(repo)

	_, err := uc.DailyReport(context.Background(), day("2026-08-15").Add(14*time.Hour))
	require.NoError(t, err)

	require.Len(t, repo.queriedRange, 1)
	assert.Equal(t, day("2026-08-15"), repo.queriedRange[0][0])
	assert.Equal(t, day("2026-08-16"), repo.queriedRange[0][1])
}

// MonthlyReport consulta el mes calendario completo.
func TestMonthlyReport_Rango(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := reports.NewSalesReportUseCase(repo)

	_, err := uc.MonthlyReport(context.Background(), 2026, time.February)
	require.NoError(t, err)

	require.Len(t, repo.queriedRange, 1)
	assert.Equal(t, day("2026-02-01"), repo.queriedRange[0][0])
	assert.Equal(t, day("2026-03-01"), repo.queriedRange[0][1])
}
