package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill es una venta confirmada: cabecera con totales y líneas en orden de
// captura. El agregado se construye completo en memoria y se persiste en una
// sola escritura atómica; después del commit es inmutable (no existe update
// ni delete de facturas en el core).
type Bill struct {
	ID        string
	Number    string // único, derivado de tiempo: BILL-<nanos>
	Lines     []*BillLine
	Subtotal  decimal.Decimal // suma de subtotales de línea
	Discount  decimal.Decimal // >= 0, suministrado por el cajero
	Tax       decimal.Decimal // (Subtotal - Discount) * taxRate/100, redondeado a 2
	Total     decimal.Decimal // Subtotal - Discount + Tax
	CreatedAt time.Time
}

// BillLine es la foto del producto al momento de la venta: nombre, código de
// barras y precio denormalizados, independientes de ediciones posteriores del
// catálogo. Pertenece en exclusiva a su Bill.
type BillLine struct {
	ID          string
	BillID      string
	ProductID   string
	ProductName string
	Barcode     string
	Price       decimal.Decimal
	Quantity    int64           // >= 1
	Subtotal    decimal.Decimal // Price * Quantity, redondeado a 2
}

// AddLine agrega una línea al final preservando el orden de captura.
func (b *Bill) AddLine(line *BillLine) {
	line.BillID = b.ID
	b.Lines = append(b.Lines, line)
}

// CalculateTotals calcula Subtotal, Discount, Tax y Total a partir de las
// líneas ya agregadas. taxRate es porcentaje (19 = 19%). Los montos se
// redondean a 2 decimales al calcularse, de modo que
// Total == Subtotal - Discount + Tax se cumple exacto a esa precisión.
func (b *Bill) CalculateTotals(taxRate, discount decimal.Decimal) {
	subtotal := decimal.Zero
	for _, line := range b.Lines {
		subtotal = subtotal.Add(line.Subtotal)
	}
	b.Subtotal = subtotal
	b.Discount = discount
	base := subtotal.Sub(discount)
	b.Tax = base.Mul(taxRate).Div(decimal.NewFromInt(100)).Round(2)
	b.Total = base.Add(b.Tax)
}

// LineSubtotal subtotal de una línea: precio por cantidad, a 2 decimales.
func LineSubtotal(price decimal.Decimal, quantity int64) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(quantity)).Round(2)
}
