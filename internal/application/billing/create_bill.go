package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supermarket-pos/internal/application/dto"
	"github.com/jhoicas/supermarket-pos/internal/domain"
	"github.com/jhoicas/supermarket-pos/internal/domain/entity"
	"github.com/jhoicas/supermarket-pos/internal/domain/repository"
)

// saleMovementNote nota fija del movimiento SALE generado por facturación.
const saleMovementNote = "Salida de stock por venta"

// CreateBillUseCase es el motor de facturación: toma un carrito de
// (barcode, cantidad), valida disponibilidad, calcula totales con aritmética
// decimal, descuenta stock y registra el movimiento de auditoría de cada
// línea — todo dentro de una sola transacción. Cualquier fallo en cualquier
// línea aborta la transacción completa: el catálogo y el ledger quedan
// exactamente como estaban.
type CreateBillUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository // lecturas fuera de la tx (dry-run)
	billRepo    repository.BillRepository    // lecturas (consultas de factura)
}

// NewCreateBillUseCase construye el caso de uso.
func NewCreateBillUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	billRepo repository.BillRepository,
) *CreateBillUseCase {
	return &CreateBillUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		billRepo:    billRepo,
	}
}

// CreateBill confirma una venta:
//
//  1. Valida la estructura del request (carrito no vacío, cantidades >= 1,
//     tasa de IVA en [0,100], descuento >= 0).
//  2. Dry-run de lectura sobre todo el carrito: cada código de barras debe
//     existir y tener stock suficiente. Falla aquí = cero escrituras.
//  3. En una transacción, por cada línea en orden de captura: bloquea la fila
//     del producto (SELECT FOR UPDATE), revalida el stock bajo lock, congela
//     nombre/código/precio en la línea, descuenta la cantidad y agrega el
//     movimiento SALE con stock previo y nuevo.
//  4. Calcula subtotal, impuesto y total, y persiste cabecera y líneas.
//
// Si el número de factura colisiona (violación de unicidad) se regenera y se
// reintenta la transacción completa una vez.
func (uc *CreateBillUseCase) CreateBill(ctx context.Context, in dto.CreateBillRequest) (*dto.BillResponse, error) {
	if err := uc.validateRequest(in); err != nil {
		return nil, err
	}

	// Dry-run: valida todo el carrito antes de tocar nada. Es solo lectura;
	// la validación definitiva se repite bajo lock dentro de la transacción.
	if err := uc.dryRun(in.Items); err != nil {
		return nil, err
	}

	var bill *entity.Bill
	for attempt := 0; ; attempt++ {
		bill = nil
		err := uc.txRunner.Run(ctx, func(
			products repository.ProductRepository,
			movements repository.StockMovementRepository,
			bills repository.BillRepository,
		) error {
			committed, err := uc.commitCart(products, movements, bills, in)
			if err != nil {
				return err
			}
			bill = committed
			return nil
		})
		if err == nil {
			break
		}
		// Colisión de número: regenerar y reintentar la tx completa una vez.
		if errors.Is(err, domain.ErrDuplicateBillNumber) && attempt == 0 {
			continue
		}
		return nil, err
	}

	return toBillResponse(bill), nil
}

// validateRequest valida estructura y rangos decimales del request.
func (uc *CreateBillUseCase) validateRequest(in dto.CreateBillRequest) error {
	if err := dto.Validate(in); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if in.TaxRate.LessThan(decimal.Zero) || in.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: tax_rate debe estar entre 0 y 100", domain.ErrValidation)
	}
	if in.Discount.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: discount no puede ser negativo", domain.ErrValidation)
	}
	return nil
}

// dryRun recorre el carrito completo verificando existencia y disponibilidad.
func (uc *CreateBillUseCase) dryRun(items []dto.BillItemRequest) error {
	for _, item := range items {
		product, err := uc.productRepo.GetByBarcode(item.Barcode)
		if err != nil {
			return err
		}
		if product == nil {
			return &domain.ProductNotFoundError{Barcode: item.Barcode}
		}
		if product.Quantity < item.Quantity {
			return &domain.InsufficientStockError{
				ProductName: product.Name,
				Barcode:     product.Barcode,
				Available:   product.Quantity,
				Requested:   item.Quantity,
			}
		}
	}
	return nil
}

// commitCart ejecuta los pasos 3 y 4 dentro de la transacción del caller.
// El agregado Bill se arma completo en memoria y se escribe una sola vez.
func (uc *CreateBillUseCase) commitCart(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	bills repository.BillRepository,
	in dto.CreateBillRequest,
) (*entity.Bill, error) {
	now := time.Now()
	bill := &entity.Bill{
		ID:        uuid.New().String(),
		Number:    newBillNumber(now),
		CreatedAt: now,
	}

	for _, item := range in.Items {
		// Bloquea la fila del producto; espera acotada por lock_timeout.
		product, err := products.GetByBarcodeForUpdate(item.Barcode)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, &domain.ProductNotFoundError{Barcode: item.Barcode}
		}
		// Revalidación bajo lock: otra caja pudo vender entre el dry-run y aquí.
		if product.Quantity < item.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductName: product.Name,
				Barcode:     product.Barcode,
				Available:   product.Quantity,
				Requested:   item.Quantity,
			}
		}

		bill.AddLine(&entity.BillLine{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Barcode:     product.Barcode,
			Price:       product.Price,
			Quantity:    item.Quantity,
			Subtotal:    entity.LineSubtotal(product.Price, item.Quantity),
		})

		previous := product.Quantity
		product.Quantity = previous - item.Quantity
		product.RecomputeStatus()
		product.UpdatedAt = now
		if err := products.Update(product); err != nil {
			return nil, err
		}

		if err := movements.Append(&entity.StockMovement{
			ID:            uuid.New().String(),
			ProductID:     product.ID,
			ProductName:   product.Name,
			Barcode:       product.Barcode,
			Kind:          entity.MovementKindSale,
			Quantity:      item.Quantity,
			PreviousStock: previous,
			NewStock:      product.Quantity,
			BillNumber:    bill.Number,
			Note:          saleMovementNote,
			CreatedAt:     now,
		}); err != nil {
			return nil, err
		}
	}

	bill.CalculateTotals(in.TaxRate, in.Discount)
	if err := bills.Create(bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// newBillNumber genera el número legible de la factura. El componente de alta
// resolución (nanosegundos) distingue facturas consecutivas; la unicidad la
// garantiza el constraint del store y el reintento del caller.
func newBillNumber(t time.Time) string {
	return fmt.Sprintf("BILL-%d", t.UnixNano())
}

func toBillResponse(bill *entity.Bill) *dto.BillResponse {
	resp := &dto.BillResponse{
		ID:        bill.ID,
		Number:    bill.Number,
		Subtotal:  bill.Subtotal,
		Tax:       bill.Tax,
		Discount:  bill.Discount,
		Total:     bill.Total,
		CreatedAt: bill.CreatedAt,
		Lines:     make([]dto.BillLineResponse, 0, len(bill.Lines)),
	}
	for _, line := range bill.Lines {
		resp.Lines = append(resp.Lines, dto.BillLineResponse{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Barcode:     line.Barcode,
			Price:       line.Price,
			Quantity:    line.Quantity,
			Subtotal:    line.Subtotal,
		})
	}
	return resp
}
