package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/supermarket-pos/internal/domain"
	"github.com/jhoicas/supermarket-pos/internal/domain/entity"
	"github.com/jhoicas/supermarket-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, barcode, name, category, price, quantity, low_stock_threshold, status, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Barcode, product.Name, product.Category, product.Price,
		product.Quantity, product.LowStockThreshold, product.Status,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateBarcodeError{Barcode: product.Barcode}
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByBarcode obtiene un producto por código de barras.
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE barcode = $1`, barcode)
}

// GetByBarcodeForUpdate obtiene el producto bloqueando su fila (FOR UPDATE).
// Solo dentro de una transacción; la espera queda acotada por lock_timeout.
func (r *ProductRepo) GetByBarcodeForUpdate(barcode string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE barcode = $1 FOR UPDATE`, barcode)
}

// GetByIDForUpdate obtiene el producto por ID bloqueando su fila (FOR UPDATE).
func (r *ProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

// ExistsByBarcode indica si ya hay un producto con ese código de barras.
func (r *ProductRepo) ExistsByBarcode(barcode string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM products WHERE barcode = $1)`, barcode,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists product: %w", err)
	}
	return exists, nil
}

// Update actualiza el producto completo, incluido el status derivado.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET barcode = $2, name = $3, category = $4, price = $5, quantity = $6,
		    low_stock_threshold = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Barcode, product.Name, product.Category, product.Price,
		product.Quantity, product.LowStockThreshold, product.Status, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateBarcodeError{Barcode: product.Barcode}
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina el producto. Facturas y movimientos conservan su foto denormalizada.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// List lista productos con paginación, más recientes primero.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return r.getMany(
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
}

// SearchByName busca por nombre, case-insensitive.
func (r *ProductRepo) SearchByName(keyword string, limit int) ([]*entity.Product, error) {
	return r.getMany(
		`SELECT `+productColumns+` FROM products WHERE name ILIKE '%' || $1 || '%' ORDER BY name LIMIT $2`,
		keyword, limit,
	)
}

// ListByCategory lista los productos de una categoría.
func (r *ProductRepo) ListByCategory(category string) ([]*entity.Product, error) {
	return r.getMany(
		`SELECT `+productColumns+` FROM products WHERE category = $1 ORDER BY name`,
		category,
	)
}

// ListCategories lista las categorías distintas en orden alfabético.
func (r *ProductRepo) ListCategories() ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListLowStock productos en o bajo su umbral de reposición.
func (r *ProductRepo) ListLowStock() ([]*entity.Product, error) {
	return r.getMany(
		`SELECT ` + productColumns + ` FROM products WHERE quantity <= low_stock_threshold ORDER BY quantity ASC`,
	)
}

// ListOutOfStock productos con existencia en cero.
func (r *ProductRepo) ListOutOfStock() ([]*entity.Product, error) {
	return r.getMany(
		`SELECT ` + productColumns + ` FROM products WHERE quantity = 0 ORDER BY name`,
	)
}

func (r *ProductRepo) getOne(query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.Barcode, &p.Name, &p.Category, &p.Price,
		&p.Quantity, &p.LowStockThreshold, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) getMany(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Barcode, &p.Name, &p.Category, &p.Price,
			&p.Quantity, &p.LowStockThreshold, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}
