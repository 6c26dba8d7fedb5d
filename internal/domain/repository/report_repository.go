package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesTotals agregados de ventas de un período. Cero-valuado cuando el
// período no tiene facturas (COALESCE en la consulta, nunca error).
type SalesTotals struct {
	Revenue      decimal.Decimal
	Tax          decimal.Decimal
	Discount     decimal.Decimal
	Transactions int64
}

// ReportRepository consultas de solo lectura para dashboard y reportes.
// Las implementaciones no modifican datos ni toman locks de escritura.
type ReportRepository interface {
	CountProducts(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context) (int64, error)
	CountOutOfStock(ctx context.Context) (int64, error)
	// GetSalesTotalsBetween agrega sobre [start, end).
	GetSalesTotalsBetween(ctx context.Context, start, end time.Time) (SalesTotals, error)
}
