package billing

import (
	"context"

	"github.com/jhoicas/supermarket-pos/internal/domain/entity"
	"github.com/jhoicas/supermarket-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Si fn retorna error se hace rollback completo:
// ni stock, ni movimientos, ni factura quedan a medias.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
		bills repository.BillRepository,
	) error) error
}

// BillPDFGenerator genera la representación gráfica (recibo PDF) de una
// factura confirmada.
type BillPDFGenerator interface {
	GenerateBillPDF(ctx context.Context, bill *entity.Bill, storeName string) ([]byte, error)
}
