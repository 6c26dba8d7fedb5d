package billing

import (
	"context"
	"time"

	"github.com/jhoicas/supermarket-pos/internal/application/dto"
	"github.com/jhoicas/supermarket-pos/internal/domain"
	"github.com/jhoicas/supermarket-pos/internal/domain/entity"
)

// Consultas de lectura sobre facturas confirmadas. Sin efectos secundarios:
// releer una factura devuelve siempre los mismos valores.

// GetBillByID obtiene una factura por ID con sus líneas.
func (uc *CreateBillUseCase) GetBillByID(ctx context.Context, id string) (*dto.BillResponse, error) {
	bill, err := uc.billRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrBillNotFound
	}
	return toBillResponse(bill), nil
}

// GetBillByNumber obtiene una factura por su número legible.
func (uc *CreateBillUseCase) GetBillByNumber(ctx context.Context, number string) (*dto.BillResponse, error) {
	bill, err := uc.billRepo.GetByNumber(number)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrBillNotFound
	}
	return toBillResponse(bill), nil
}

// ListBillsByDateRange lista facturas del intervalo semiabierto [start, end),
// más recientes primero.
func (uc *CreateBillUseCase) ListBillsByDateRange(ctx context.Context, start, end time.Time, limit, offset int) (*dto.BillListResponse, error) {
	bills, err := uc.billRepo.ListByCreatedBetween(start, end, limit, offset)
	if err != nil {
		return nil, err
	}
	return toBillListResponse(bills), nil
}

// ListRecentBills lista las últimas facturas confirmadas.
func (uc *CreateBillUseCase) ListRecentBills(ctx context.Context, limit int) (*dto.BillListResponse, error) {
	bills, err := uc.billRepo.ListRecent(limit)
	if err != nil {
		return nil, err
	}
	return toBillListResponse(bills), nil
}

func toBillListResponse(bills []*entity.Bill) *dto.BillListResponse {
	out := &dto.BillListResponse{Bills: make([]dto.BillResponse, 0, len(bills))}
	for _, b := range bills {
		out.Bills = append(out.Bills, *toBillResponse(b))
	}
	out.Count = len(out.Bills)
	return out
}
