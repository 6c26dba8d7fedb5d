package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/supermarket-pos/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de agregación para dashboard y reportes (solo lectura).
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// CountProducts total de productos en catálogo.
func (r *ReportRepo) CountProducts(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products`)
}

// CountLowStock productos en o bajo su umbral de reposición.
func (r *ReportRepo) CountLowStock(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products WHERE quantity <= low_stock_threshold`)
}

// CountOutOfStock productos con existencia en cero.
func (r *ReportRepo) CountOutOfStock(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products WHERE quantity = 0`)
}

// GetSalesTotalsBetween agrega facturas del intervalo semiabierto [start, end).
// COALESCE garantiza ceros cuando el período no tiene facturas.
func (r *ReportRepo) GetSalesTotalsBetween(ctx context.Context, start, end time.Time) (repository.SalesTotals, error) {
	var totals repository.SalesTotals
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0), COALESCE(SUM(tax), 0), COALESCE(SUM(discount), 0), COUNT(*)
		FROM bills WHERE created_at >= $1 AND created_at < $2`,
		start, end,
	).Scan(&totals.Revenue, &totals.Tax, &totals.Discount, &totals.Transactions)
	if err != nil {
		return repository.SalesTotals{}, fmt.Errorf("sales totals: %w", err)
	}
	return totals, nil
}

func (r *ReportRepo) count(ctx context.Context, query string) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
