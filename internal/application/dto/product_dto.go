package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// Price debe ser > 0 (se valida en el caso de uso).
type CreateProductRequest struct {
	Name              string          `json:"name" validate:"required"`
	Category          string          `json:"category" validate:"required"`
	Barcode           string          `json:"barcode" validate:"required"`
	Price             decimal.Decimal `json:"price"`
	Quantity          int64           `json:"quantity" validate:"gte=0"`
	LowStockThreshold int64           `json:"low_stock_threshold" validate:"omitempty,gte=1"`
}

// UpdateProductRequest body para PUT /api/products/:id.
// Quantity sigue presente por compatibilidad con la edición de catálogo:
// un cambio de cantidad por esta vía genera movimiento RESTOCK/ADJUSTMENT.
type UpdateProductRequest struct {
	Name              string          `json:"name" validate:"required"`
	Category          string          `json:"category" validate:"required"`
	Barcode           string          `json:"barcode" validate:"required"`
	Price             decimal.Decimal `json:"price"`
	Quantity          int64           `json:"quantity" validate:"gte=0"`
	LowStockThreshold int64           `json:"low_stock_threshold" validate:"omitempty,gte=1"`
}

// AdjustStockRequest body para POST /api/products/:id/adjust-stock.
// Adjustment es el delta con signo; el tipo de movimiento se infiere del signo.
type AdjustStockRequest struct {
	Adjustment int64  `json:"adjustment" validate:"required"`
	Note       string `json:"note"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID                string          `json:"id"`
	Barcode           string          `json:"barcode"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Price             decimal.Decimal `json:"price"`
	Quantity          int64           `json:"quantity"`
	LowStockThreshold int64           `json:"low_stock_threshold"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Count    int               `json:"count"`
}

// StockMovementResponse movimiento del ledger en respuestas.
type StockMovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Barcode       string    `json:"barcode"`
	Kind          string    `json:"movement_type"`
	Quantity      int64     `json:"quantity"`
	PreviousStock int64     `json:"previous_stock"`
	NewStock      int64     `json:"new_stock"`
	BillNumber    string    `json:"bill_number,omitempty"`
	Note          string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
