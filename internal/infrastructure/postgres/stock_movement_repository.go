package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/supermarket-pos/internal/domain/entity"
	"github.com/jhoicas/supermarket-pos/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, product_name, barcode, kind, quantity, previous_stock, new_stock, bill_number, note, created_at`

// StockMovementRepo implementación del ledger de movimientos sobre PostgreSQL.
// Append-only: no hay UPDATE ni DELETE sobre esta tabla.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Append agrega un movimiento al ledger.
func (r *StockMovementRepo) Append(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.ProductName, movement.Barcode,
		movement.Kind, movement.Quantity, movement.PreviousStock, movement.NewStock,
		movement.BillNumber, movement.Note, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct historial de un producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	return r.getMany(
		`SELECT `+movementColumns+` FROM stock_movements
		 WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		productID, limit, offset,
	)
}

// ListRecent últimos movimientos del ledger completo.
func (r *StockMovementRepo) ListRecent(limit int) ([]*entity.StockMovement, error) {
	return r.getMany(
		`SELECT `+movementColumns+` FROM stock_movements ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
}

func (r *StockMovementRepo) getMany(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.ProductName, &m.Barcode, &m.Kind, &m.Quantity,
			&m.PreviousStock, &m.NewStock, &m.BillNumber, &m.Note, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}
