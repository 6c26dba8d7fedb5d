package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/supermarket-pos/internal/domain"
	"github.com/jhoicas/supermarket-pos/internal/domain/repository"
)

// PDFUseCase genera el recibo PDF de una factura confirmada.
type PDFUseCase struct {
	billRepo  repository.BillRepository
	generator BillPDFGenerator
	storeName string
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(billRepo repository.BillRepository, generator BillPDFGenerator, storeName string) *PDFUseCase {
	return &PDFUseCase{billRepo: billRepo, generator: generator, storeName: storeName}
}

// DownloadBillPDF recupera la factura y genera el recibo.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrBillNotFound     si la factura no existe.
func (uc *PDFUseCase) DownloadBillPDF(ctx context.Context, billID string) (pdfBytes []byte, filename string, err error) {
	bill, err := uc.billRepo.GetByID(billID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if bill == nil {
		return nil, "", domain.ErrBillNotFound
	}

	pdfBytes, err = uc.generator.GenerateBillPDF(ctx, bill, uc.storeName)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return pdfBytes, bill.Number + ".pdf", nil
}
