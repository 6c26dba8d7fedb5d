package catalog

import (
	"context"

	"github.com/jhoicas/supermarket-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Mismo contrato que billing.TxRunner; el
// adaptador postgres.TxRunner satisface ambos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
		bills repository.BillRepository,
	) error) error
}
