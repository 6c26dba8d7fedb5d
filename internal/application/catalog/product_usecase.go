package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supermarket-pos/internal/application/dto"
	"github.com/jhoicas/supermarket-pos/internal/domain"
	"github.com/jhoicas/supermarket-pos/internal/domain/entity"
	"github.com/jhoicas/supermarket-pos/internal/domain/repository"
)

// Notas fijas de los movimientos generados por el catálogo.
const (
	initialMovementNote = "Stock inicial al crear el producto"
	editMovementNote    = "Stock actualizado por edición de producto"
)

// ProductUseCase operaciones de catálogo. Toda mutación de cantidad pasa por
// una transacción y deja su movimiento en el ledger; el status derivado se
// recalcula siempre, nunca se acepta como entrada.
type ProductUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// Create da de alta un producto. Rechaza códigos de barras duplicados y
// registra un movimiento INITIAL con la existencia de partida.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !in.Price.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: price debe ser mayor que 0", domain.ErrValidation)
	}
	threshold := in.LowStockThreshold
	if threshold == 0 {
		threshold = entity.DefaultLowStockThreshold
	}

	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Barcode:           in.Barcode,
		Name:              in.Name,
		Category:          in.Category,
		Price:             in.Price,
		Quantity:          in.Quantity,
		LowStockThreshold: threshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	product.RecomputeStatus()

	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
		_ repository.BillRepository,
	) error {
		exists, err := products.ExistsByBarcode(in.Barcode)
		if err != nil {
			return err
		}
		if exists {
			return &domain.DuplicateBarcodeError{Barcode: in.Barcode}
		}
		if err := products.Create(product); err != nil {
			return err
		}
		return movements.Append(&entity.StockMovement{
			ID:            uuid.New().String(),
			ProductID:     product.ID,
			ProductName:   product.Name,
			Barcode:       product.Barcode,
			Kind:          entity.MovementKindInitial,
			Quantity:      product.Quantity,
			PreviousStock: 0,
			NewStock:      product.Quantity,
			Note:          initialMovementNote,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update edita un producto. Un renombre de código de barras hacia uno ya usado
// por otro producto se rechaza; un cambio de cantidad por esta vía genera un
// movimiento RESTOCK o ADJUSTMENT según el signo del delta, guardando la
// magnitud (abs) como cantidad del movimiento.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !in.Price.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: price debe ser mayor que 0", domain.ErrValidation)
	}

	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
		_ repository.BillRepository,
	) error {
		product, err := products.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if product.Barcode != in.Barcode {
			exists, err := products.ExistsByBarcode(in.Barcode)
			if err != nil {
				return err
			}
			if exists {
				return &domain.DuplicateBarcodeError{Barcode: in.Barcode}
			}
		}

		now := time.Now()
		previous := product.Quantity

		product.Name = in.Name
		product.Category = in.Category
		product.Barcode = in.Barcode
		product.Price = in.Price
		product.Quantity = in.Quantity
		if in.LowStockThreshold > 0 {
			product.LowStockThreshold = in.LowStockThreshold
		}
		product.RecomputeStatus()
		product.UpdatedAt = now
		if err := products.Update(product); err != nil {
			return err
		}

		if previous != product.Quantity {
			if err := movements.Append(stockChangeMovement(product, product.Quantity-previous, previous, editMovementNote, now)); err != nil {
				return err
			}
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// AdjustStock aplica un delta directo (reposición o corrección). Rechaza
// ajustes que dejarían la existencia en negativo.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, id string, in dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var adjusted *entity.Product
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
		_ repository.BillRepository,
	) error {
		product, err := products.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		previous := product.Quantity
		newQuantity := previous + in.Adjustment
		if newQuantity < 0 {
			return domain.ErrInvalidAdjustment
		}

		now := time.Now()
		product.Quantity = newQuantity
		product.RecomputeStatus()
		product.UpdatedAt = now
		if err := products.Update(product); err != nil {
			return err
		}
		if err := movements.Append(stockChangeMovement(product, in.Adjustment, previous, in.Note, now)); err != nil {
			return err
		}
		adjusted = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(adjusted), nil
}

// Delete elimina el producto del catálogo. Las facturas y movimientos
// históricos conservan su foto denormalizada y no se tocan.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	return uc.productRepo.Delete(id)
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// GetByBarcode obtiene un producto por su código de barras (consulta de caja).
func (uc *ProductUseCase) GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.ProductNotFoundError{Barcode: barcode}
	}
	return toProductResponse(product), nil
}

// List lista el catálogo con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	products, err := uc.productRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toProductListResponse(products), nil
}

// Search busca productos por nombre (case-insensitive).
func (uc *ProductUseCase) Search(ctx context.Context, keyword string, limit int) (*dto.ProductListResponse, error) {
	products, err := uc.productRepo.SearchByName(keyword, limit)
	if err != nil {
		return nil, err
	}
	return toProductListResponse(products), nil
}

// ListByCategory lista los productos de una categoría.
func (uc *ProductUseCase) ListByCategory(ctx context.Context, category string) (*dto.ProductListResponse, error) {
	products, err := uc.productRepo.ListByCategory(category)
	if err != nil {
		return nil, err
	}
	return toProductListResponse(products), nil
}

// ListCategories lista las categorías distintas del catálogo.
func (uc *ProductUseCase) ListCategories(ctx context.Context) ([]string, error) {
	return uc.productRepo.ListCategories()
}

// ListLowStock productos en o bajo su umbral de reposición.
func (uc *ProductUseCase) ListLowStock(ctx context.Context) (*dto.ProductListResponse, error) {
	products, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	return toProductListResponse(products), nil
}

// ListOutOfStock productos con existencia en cero.
func (uc *ProductUseCase) ListOutOfStock(ctx context.Context) (*dto.ProductListResponse, error) {
	products, err := uc.productRepo.ListOutOfStock()
	if err != nil {
		return nil, err
	}
	return toProductListResponse(products), nil
}

// MovementHistory historial de movimientos de un producto, más recientes primero.
func (uc *ProductUseCase) MovementHistory(ctx context.Context, productID string, limit, offset int) ([]dto.StockMovementResponse, error) {
	movements, err := uc.movementRepo.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(movements), nil
}

// RecentMovements últimos movimientos del ledger completo.
func (uc *ProductUseCase) RecentMovements(ctx context.Context, limit int) ([]dto.StockMovementResponse, error) {
	movements, err := uc.movementRepo.ListRecent(limit)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(movements), nil
}

// stockChangeMovement arma el movimiento de un delta directo de stock.
// La dirección va en el tipo (RESTOCK si delta > 0, ADJUSTMENT si < 0) y
// Quantity guarda la magnitud, igual que el resto del ledger.
func stockChangeMovement(product *entity.Product, delta, previous int64, note string, now time.Time) *entity.StockMovement {
	kind := entity.MovementKindRestock
	magnitude := delta
	if delta < 0 {
		kind = entity.MovementKindAdjustment
		magnitude = -delta
	}
	return &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		ProductName:   product.Name,
		Barcode:       product.Barcode,
		Kind:          kind,
		Quantity:      magnitude,
		PreviousStock: previous,
		NewStock:      product.Quantity,
		Note:          note,
		CreatedAt:     now,
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                p.ID,
		Barcode:           p.Barcode,
		Name:              p.Name,
		Category:          p.Category,
		Price:             p.Price,
		Quantity:          p.Quantity,
		LowStockThreshold: p.LowStockThreshold,
		Status:            p.Status,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func toProductListResponse(products []*entity.Product) *dto.ProductListResponse {
	out := &dto.ProductListResponse{Products: make([]dto.ProductResponse, 0, len(products))}
	for _, p := range products {
		out.Products = append(out.Products, *toProductResponse(p))
	}
	out.Count = len(out.Products)
	return out
}

func toMovementResponses(movements []*entity.StockMovement) []dto.StockMovementResponse {
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.StockMovementResponse{
			ID:            m.ID,
			ProductID:     m.ProductID,
			ProductName:   m.ProductName,
			Barcode:       m.Barcode,
			Kind:          m.Kind,
			Quantity:      m.Quantity,
			PreviousStock: m.PreviousStock,
			NewStock:      m.NewStock,
			BillNumber:    m.BillNumber,
			Note:          m.Note,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out
}
