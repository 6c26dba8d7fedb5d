package entity

import "time"

// Tipos de movimiento de stock. La dirección va codificada en el tipo, no en
// el signo: Quantity siempre guarda la magnitud (abs) del cambio. RESTOCK se
// infiere de un delta positivo y ADJUSTMENT de uno negativo.
const (
	MovementKindSale       = "SALE"
	MovementKindRestock    = "RESTOCK"
	MovementKindAdjustment = "ADJUSTMENT"
	MovementKindInitial    = "INITIAL"
)

// StockMovement es un registro de auditoría de un cambio de existencias.
// Solo se agrega y se consulta: nunca se actualiza ni se borra. BillNumber es
// una referencia blanda (sin FK): el ledger sobrevive a la factura.
type StockMovement struct {
	ID            string
	ProductID     string
	ProductName   string
	Barcode       string
	Kind          string // SALE | RESTOCK | ADJUSTMENT | INITIAL
	Quantity      int64  // magnitud del cambio, > 0
	PreviousStock int64
	NewStock      int64
	BillNumber    string // vacío si el movimiento no proviene de una venta
	Note          string
	CreatedAt     time.Time
}
