package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/supermarket-pos/internal/domain/entity"
)

// RecomputeStatus es función pura de Quantity: cualquier cantidad positiva es
// In Stock, cero es Out of Stock.
func TestRecomputeStatus(t *testing.T) {
	p := &entity.Product{Quantity: 5}
	p.RecomputeStatus()
	assert.Equal(t, entity.StatusInStock, p.Status)

	p.Quantity = 1
	p.RecomputeStatus()
	assert.Equal(t, entity.StatusInStock, p.Status, "una unidad sigue siendo In Stock")

	p.Quantity = 0
	p.RecomputeStatus()
	assert.Equal(t, entity.StatusOutOfStock, p.Status)
}

// IsLowStock es independiente de Out of Stock: se activa en el umbral.
func TestIsLowStock(t *testing.T) {
	p := &entity.Product{Quantity: 11, LowStockThreshold: 10}
	assert.False(t, p.IsLowStock(), "sobre el umbral no es low stock")

	p.Quantity = 10
	assert.True(t, p.IsLowStock(), "en el umbral exacto es low stock")

	p.Quantity = 0
	assert.True(t, p.IsLowStock(), "agotado también es low stock")
}
