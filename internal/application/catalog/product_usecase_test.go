package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supermarket-pos/internal/application/catalog"
	"github.com/jhoicas/supermarket-pos/internal/application/dto"
	"github.com/jhoicas/supermarket-pos/internal/domain"
	"github.com/jhoicas/supermarket-pos/internal/domain/entity"
	"github.com/jhoicas/supermarket-pos/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (mismo patrón que los tests de facturación: snapshot antes
// del callback transaccional, restore si falla)
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	products  map[string]*entity.Product // key: ID
	movements []*entity.StockMovement
}

func newFakeStore(products ...*entity.Product) *fakeStore {
	s := &fakeStore{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

func (s *fakeStore) snapshot() *fakeStore {
	cp := &fakeStore{
		products:  make(map[string]*entity.Product, len(s.products)),
		movements: append([]*entity.StockMovement(nil), s.movements...),
	}
	for k, p := range s.products {
		c := *p
		cp.products[k] = &c
	}
	return cp
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.products = snap.products
	s.movements = snap.movements
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByBarcodeForUpdate(barcode string) (*entity.Product, error) {
	return r.GetByBarcode(barcode)
}

func (r *fakeProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) ExistsByBarcode(barcode string) (bool, error) {
	p, _ := r.GetByBarcode(barcode)
	return p != nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) SearchByName(keyword string, limit int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) ListByCategory(category string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.Category == category {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListCategories() ([]string, error) { return nil, nil }

func (r *fakeProductRepo) ListLowStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.IsLowStock() {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListOutOfStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.Quantity == 0 {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeMovementRepo struct{ s *fakeStore }

func (r *fakeMovementRepo) Append(m *entity.StockMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListRecent(limit int) ([]*entity.StockMovement, error) {
	return r.s.movements, nil
}

type fakeTxRunner struct{ s *fakeStore }

func (tr *fakeTxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	bills repository.BillRepository,
) error) error {
	snap := tr.s.snapshot()
	if err := fn(&fakeProductRepo{tr.s}, &fakeMovementRepo{tr.s}, nil); err != nil {
		tr.s.restore(snap)
		return err
	}
	return nil
}

func newUseCase(s *fakeStore) *catalog.ProductUseCase {
	return catalog.NewProductUseCase(&fakeTxRunner{s}, &fakeProductRepo{s}, &fakeMovementRepo{s})
}

func existingProduct(id, barcode, name string, qty int64) *entity.Product {
	p := &entity.Product{
		ID:                id,
		Barcode:           barcode,
		Name:              name,
		Category:          "Abarrotes",
		Price:             decimal.RequireFromString("4.50"),
		Quantity:          qty,
		LowStockThreshold: entity.DefaultLowStockThreshold,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	p.RecomputeStatus()
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Alta de producto: registra movimiento INITIAL con la existencia de partida
// y deriva el status.
func TestCreate_ConStockInicial(t *testing.T) {
	store := newFakeStore()
	uc := newUseCase(store)

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:     "Café Molido 250g",
		Category: "Abarrotes",
		Barcode:  "7709876543210",
		Price:    decimal.RequireFromString("12.90"),
		Quantity: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInStock, out.Status)
	assert.EqualValues(t, entity.DefaultLowStockThreshold, out.LowStockThreshold,
		"sin umbral explícito aplica el default")

	require.Len(t, store.movements, 1)
	m := store.movements[0]
	assert.Equal(t, entity.MovementKindInitial, m.Kind)
	assert.EqualValues(t, 40, m.Quantity)
	assert.EqualValues(t, 0, m.PreviousStock)
	assert.EqualValues(t, 40, m.NewStock)
}

// Alta con cantidad cero: status Out of Stock desde el inicio.
func TestCreate_SinStock(t *testing.T) {
	uc := newUseCase(newFakeStore())

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:     "Aceite 1L",
		Category: "Abarrotes",
		Barcode:  "123",
		Price:    decimal.RequireFromString("8.00"),
		Quantity: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusOutOfStock, out.Status)
}

// Código de barras duplicado: el alta falla y no queda producto ni movimiento.
func TestCreate_BarcodeDuplicado(t *testing.T) {
	store := newFakeStore(existingProduct("p1", "111", "Pan", 10))
	uc := newUseCase(store)

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:     "Otro Pan",
		Category: "Panadería",
		Barcode:  "111",
		Price:    decimal.RequireFromString("3.00"),
		Quantity: 5,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateBarcode)

	assert.Len(t, store.products, 1, "no debe crearse el duplicado")
	assert.Empty(t, store.movements)
}

// Precio inválido: cero o negativo se rechaza como validación.
func TestCreate_PrecioInvalido(t *testing.T) {
	uc := newUseCase(newFakeStore())

	for _, price := range []string{"0", "-1.50"} {
		_, err := uc.Create(context.Background(), dto.CreateProductRequest{
			Name:     "X",
			Category: "Y",
			Barcode:  "z-" + price,
			Price:    decimal.RequireFromString(price),
		})
		require.Error(t, err, "precio %s debe rechazarse", price)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

// Ajuste positivo: movimiento RESTOCK con la magnitud del delta.
func TestAdjustStock_Reposicion(t *testing.T) {
	store := newFakeStore(existingProduct("p1", "111", "Pan", 10))
	uc := newUseCase(store)

	out, err := uc.AdjustStock(context.Background(), "p1", dto.AdjustStockRequest{
		Adjustment: 15,
		Note:       "Llegada de proveedor",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 25, out.Quantity)

	require.Len(t, store.movements, 1)
	m := store.movements[0]
	assert.Equal(t, entity.MovementKindRestock, m.Kind)
	assert.EqualValues(t, 15, m.Quantity, "la cantidad del movimiento es la magnitud")
	assert.EqualValues(t, 10, m.PreviousStock)
	assert.EqualValues(t, 25, m.NewStock)
	assert.Equal(t, "Llegada de proveedor", m.Note)
}

// Ajuste negativo: movimiento ADJUSTMENT con magnitud absoluta, nunca negativa.
func TestAdjustStock_Correccion(t *testing.T) {
	store := newFakeStore(existingProduct("p1", "111", "Pan", 10))
	uc := newUseCase(store)

	out, err := uc.AdjustStock(context.Background(), "p1", dto.AdjustStockRequest{
		Adjustment: -4,
		Note:       "Merma por vencimiento",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 6, out.Quantity)

	require.Len(t, store.movements, 1)
	m := store.movements[0]
	assert.Equal(t, entity.MovementKindAdjustment, m.Kind)
	assert.EqualValues(t, 4, m.Quantity)
}

// Ajuste que dejaría negativo: falla sin tocar nada.
func TestAdjustStock_NoPermiteNegativo(t *testing.T) {
	store := newFakeStore(existingProduct("p1", "111", "Pan", 3))
	uc := newUseCase(store)

	_, err := uc.AdjustStock(context.Background(), "p1", dto.AdjustStockRequest{Adjustment: -4})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidAdjustment)

	assert.EqualValues(t, 3, store.products["p1"].Quantity, "el stock no debe cambiar")
	assert.Empty(t, store.movements)
}

// Ajuste a exactamente cero: permitido, y el status pasa a Out of Stock.
func TestAdjustStock_HastaCero(t *testing.T) {
	store := newFakeStore(existingProduct("p1", "111", "Pan", 3))
	uc := newUseCase(store)

	out, err := uc.AdjustStock(context.Background(), "p1", dto.AdjustStockRequest{Adjustment: -3})
	require.NoError(t, err)
	assert.EqualValues(t, 0, out.Quantity)
	assert.Equal(t, entity.StatusOutOfStock, out.Status)
}

// Edición con cambio de cantidad: el delta genera movimiento clasificado por signo.
func TestUpdate_CambioDeCantidadGeneraMovimiento(t *testing.T) {
	store := newFakeStore(existingProduct("p1", "111", "Pan", 10))
	uc := newUseCase(store)

	out, err := uc.Update(context.Background(), "p1", dto.UpdateProductRequest{
		Name:     "Pan Integral",
		Category: "Panadería",
		Barcode:  "111",
		Price:    decimal.RequireFromString("3.20"),
		Quantity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "Pan Integral", out.Name)
	assert.EqualValues(t, 4, out.Quantity)

	require.Len(t, store.movements, 1)
	m := store.movements[0]
	assert.Equal(t, entity.MovementKindAdjustment, m.Kind, "delta negativo clasifica como ADJUSTMENT")
	assert.EqualValues(t, 6, m.Quantity)
	assert.EqualValues(t, 10, m.PreviousStock)
	assert.EqualValues(t, 4, m.NewStock)
}

// Edición sin cambio de cantidad: no genera movimiento.
func TestUpdate_SinCambioDeCantidad(t *testing.T) {
	store := newFakeStore(existingProduct("p1", "111", "Pan", 10))
	uc := newUseCase(store)

	_, err := uc.Update(context.Background(), "p1", dto.UpdateProductRequest{
		Name:     "Pan",
		Category: "Panadería",
		Barcode:  "111",
		Price:    decimal.RequireFromString("5.00"),
		Quantity: 10,
	})
	require.NoError(t, err)
	assert.Empty(t, store.movements, "cambiar solo precio/categoría no mueve stock")
}

// Renombre de barcode hacia uno ocupado por otro producto: conflicto.
func TestUpdate_RenombreBarcodeOcupado(t *testing.T) {
	store := newFakeStore(
		existingProduct("p1", "111", "Pan", 10),
		existingProduct("p2", "222", "Arroz", 5),
	)
	uc := newUseCase(store)

	_, err := uc.Update(context.Background(), "p1", dto.UpdateProductRequest{
		Name:     "Pan",
		Category: "Panadería",
		Barcode:  "222",
		Price:    decimal.RequireFromString("3.00"),
		Quantity: 10,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateBarcode)
	assert.Equal(t, "111", store.products["p1"].Barcode, "el barcode original se conserva")
}

// Eliminar: producto inexistente falla con not-found; existente desaparece
// del catálogo pero el ledger conserva su historial.
func TestDelete(t *testing.T) {
	store := newFakeStore(existingProduct("p1", "111", "Pan", 10))
	uc := newUseCase(store)

	_, err := uc.AdjustStock(context.Background(), "p1", dto.AdjustStockRequest{Adjustment: 5})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), "p1"))
	assert.Empty(t, store.products)
	assert.Len(t, store.movements, 1, "el ledger sobrevive al producto")

	err = uc.Delete(context.Background(), "p1")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// Consulta de caja por código de barras inexistente.
func TestGetByBarcode_NoExiste(t *testing.T) {
	uc := newUseCase(newFakeStore())

	_, err := uc.GetByBarcode(context.Background(), "999")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	var notFound *domain.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "999", notFound.Barcode)
}
