package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/supermarket-pos/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// CalculateTotals: caso base sin descuento.
func TestCalculateTotals_SinDescuento(t *testing.T) {
	bill := &entity.Bill{ID: "b1"}
	bill.AddLine(&entity.BillLine{Subtotal: dec("50.00")})
	bill.CalculateTotals(dec("10"), decimal.Zero)

	assert.True(t, dec("50.00").Equal(bill.Subtotal), "subtotal: %s", bill.Subtotal)
	assert.True(t, dec("5.00").Equal(bill.Tax), "impuesto: %s", bill.Tax)
	assert.True(t, dec("55.00").Equal(bill.Total), "total: %s", bill.Total)
}

// CalculateTotals: el impuesto se aplica sobre la base ya descontada y el
// invariante Total == Subtotal - Discount + Tax se cumple exacto.
func TestCalculateTotals_ConDescuento(t *testing.T) {
	bill := &entity.Bill{ID: "b1"}
	bill.AddLine(&entity.BillLine{Subtotal: dec("9.99")})
	bill.AddLine(&entity.BillLine{Subtotal: dec("15.54")})
	bill.CalculateTotals(dec("19"), dec("5.53"))

	assert.True(t, dec("25.53").Equal(bill.Subtotal), "subtotal: %s", bill.Subtotal)
	// base = 20.00; 19% = 3.80
	assert.True(t, dec("3.80").Equal(bill.Tax), "impuesto: %s", bill.Tax)
	assert.True(t, dec("23.80").Equal(bill.Total), "total: %s", bill.Total)

	recomputed := bill.Subtotal.Sub(bill.Discount).Add(bill.Tax)
	assert.True(t, recomputed.Equal(bill.Total), "invariante de totales")
}

// CalculateTotals: redondeo del impuesto a 2 decimales (caso con tercio).
func TestCalculateTotals_RedondeoImpuesto(t *testing.T) {
	bill := &entity.Bill{ID: "b1"}
	bill.AddLine(&entity.BillLine{Subtotal: dec("10.01")})
	bill.CalculateTotals(dec("19"), decimal.Zero)

	// 10.01 * 0.19 = 1.9019 -> 1.90
	assert.True(t, dec("1.90").Equal(bill.Tax), "impuesto redondeado: %s", bill.Tax)
	assert.True(t, dec("11.91").Equal(bill.Total), "total: %s", bill.Total)
}

// AddLine preserva el orden de captura y ata la línea a la factura.
func TestAddLine_OrdenYPertenencia(t *testing.T) {
	bill := &entity.Bill{ID: "b1"}
	bill.AddLine(&entity.BillLine{ID: "l1"})
	bill.AddLine(&entity.BillLine{ID: "l2"})

	assert.Equal(t, "l1", bill.Lines[0].ID)
	assert.Equal(t, "l2", bill.Lines[1].ID)
	assert.Equal(t, "b1", bill.Lines[0].BillID)
	assert.Equal(t, "b1", bill.Lines[1].BillID)
}

// LineSubtotal: precio por cantidad a 2 decimales.
func TestLineSubtotal(t *testing.T) {
	assert.True(t, dec("9.99").Equal(entity.LineSubtotal(dec("3.33"), 3)))
	assert.True(t, dec("0.10").Equal(entity.LineSubtotal(dec("0.0333"), 3)), "redondeo a 2 decimales")
}
