package repository

import "github.com/jhoicas/supermarket-pos/internal/domain/entity"

// StockMovementRepository define el puerto del ledger de movimientos.
// Append-only: el motor de facturación solo escribe; la consulta es para el
// historial del catálogo. No hay update ni delete.
type StockMovementRepository interface {
	Append(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListRecent(limit int) ([]*entity.StockMovement, error)
}
