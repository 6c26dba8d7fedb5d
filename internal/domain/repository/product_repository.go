package repository

import "github.com/jhoicas/supermarket-pos/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get* retornan (nil, nil) cuando no hay fila.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	// GetByBarcodeForUpdate obtiene el producto bloqueando su fila
	// (SELECT FOR UPDATE). Solo tiene sentido dentro de una transacción.
	GetByBarcodeForUpdate(barcode string) (*entity.Product, error)
	GetByIDForUpdate(id string) (*entity.Product, error)
	ExistsByBarcode(barcode string) (bool, error)
	Update(product *entity.Product) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Product, error)
	SearchByName(keyword string, limit int) ([]*entity.Product, error)
	ListByCategory(category string) ([]*entity.Product, error)
	ListCategories() ([]string, error)
	// ListLowStock: quantity <= low_stock_threshold.
	ListLowStock() ([]*entity.Product, error)
	// ListOutOfStock: quantity = 0.
	ListOutOfStock() ([]*entity.Product, error)
}
