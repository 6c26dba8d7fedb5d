package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillItemRequest línea del carrito: código de barras y cantidad.
type BillItemRequest struct {
	Barcode  string `json:"barcode" validate:"required"`
	Quantity int64  `json:"quantity" validate:"required,gte=1"`
}

// CreateBillRequest body para POST /api/bills.
// TaxRate es porcentaje en [0,100]; Discount es monto >= 0 (ambos se validan
// en el caso de uso por ser decimales).
type CreateBillRequest struct {
	Items    []BillItemRequest `json:"items" validate:"required,min=1,dive"`
	TaxRate  decimal.Decimal   `json:"tax_rate"`
	Discount decimal.Decimal   `json:"discount"`
}

// BillLineResponse línea de la factura en la respuesta.
type BillLineResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Barcode     string          `json:"barcode"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// BillResponse factura confirmada con todos los campos calculados.
type BillResponse struct {
	ID        string             `json:"id"`
	Number    string             `json:"bill_number"`
	Lines     []BillLineResponse `json:"items"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	Tax       decimal.Decimal    `json:"tax"`
	Discount  decimal.Decimal    `json:"discount"`
	Total     decimal.Decimal    `json:"total"`
	CreatedAt time.Time          `json:"created_at"`
}

// BillListResponse lista de facturas.
type BillListResponse struct {
	Bills []BillResponse `json:"bills"`
	Count int            `json:"count"`
}
