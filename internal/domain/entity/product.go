package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados derivados del producto. Nunca se aceptan como entrada: son función
// pura de Quantity y se recalculan con RecomputeStatus antes de cada save.
const (
	StatusInStock    = "In Stock"
	StatusOutOfStock = "Out of Stock"
)

// DefaultLowStockThreshold umbral de reposición cuando el alta no lo especifica.
const DefaultLowStockThreshold = 10

// Product representa un producto del catálogo con su stock en tienda.
// Barcode es la llave natural usada en caja; inmutable para un producto dado
// salvo renombre explícito (que valida unicidad).
type Product struct {
	ID                string
	Barcode           string
	Name              string
	Category          string
	Price             decimal.Decimal // precio unitario de venta, > 0
	Quantity          int64           // existencia actual, >= 0
	LowStockThreshold int64           // >= 1
	Status            string          // derivado: StatusInStock | StatusOutOfStock
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RecomputeStatus recalcula Status a partir de Quantity.
// Se invoca explícitamente antes de persistir; no hay hooks de persistencia.
func (p *Product) RecomputeStatus() {
	if p.Quantity > 0 {
		p.Status = StatusInStock
	} else {
		p.Status = StatusOutOfStock
	}
}

// IsLowStock indica si el producto está en o bajo su umbral de reposición.
// Distinto de Out of Stock, que solo aplica en cero.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.LowStockThreshold
}
