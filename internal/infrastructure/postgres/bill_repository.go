package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/supermarket-pos/internal/domain"
	"github.com/jhoicas/supermarket-pos/internal/domain/entity"
	"github.com/jhoicas/supermarket-pos/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

const billColumns = `id, number, subtotal, discount, tax, total, created_at`

// BillRepo implementación del puerto BillRepository sobre PostgreSQL.
// Create escribe cabecera y líneas; la atomicidad la da la tx del caller.
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador de persistencia para facturas. Pasar pool o tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

// Create persiste la factura con sus líneas. Una violación de unicidad sobre
// el número se traduce a domain.ErrDuplicateBillNumber para que el caller
// regenere y reintente.
func (r *BillRepo) Create(bill *entity.Bill) error {
	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		bill.ID, bill.Number, bill.Subtotal, bill.Discount, bill.Tax, bill.Total, bill.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateBillNumber
		}
		return fmt.Errorf("insert bill: %w", err)
	}

	lineQuery := `
		INSERT INTO bill_lines (id, bill_id, product_id, product_name, barcode, price, quantity, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, line := range bill.Lines {
		if _, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, bill.ID, line.ProductID, line.ProductName, line.Barcode,
			line.Price, line.Quantity, line.Subtotal,
		); err != nil {
			return fmt.Errorf("insert bill line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una factura por ID con sus líneas.
func (r *BillRepo) GetByID(id string) (*entity.Bill, error) {
	return r.getOne(`SELECT `+billColumns+` FROM bills WHERE id = $1`, id)
}

// GetByNumber obtiene una factura por su número legible.
func (r *BillRepo) GetByNumber(number string) (*entity.Bill, error) {
	return r.getOne(`SELECT `+billColumns+` FROM bills WHERE number = $1`, number)
}

// ListByCreatedBetween lista facturas del intervalo semiabierto [start, end),
// más recientes primero.
func (r *BillRepo) ListByCreatedBetween(start, end time.Time, limit, offset int) ([]*entity.Bill, error) {
	return r.getMany(
		`SELECT `+billColumns+` FROM bills
		 WHERE created_at >= $1 AND created_at < $2
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		start, end, limit, offset,
	)
}

// ListRecent lista las últimas facturas confirmadas.
func (r *BillRepo) ListRecent(limit int) ([]*entity.Bill, error) {
	return r.getMany(
		`SELECT `+billColumns+` FROM bills ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
}

func (r *BillRepo) getOne(query string, args ...any) (*entity.Bill, error) {
	var b entity.Bill
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&b.ID, &b.Number, &b.Subtotal, &b.Discount, &b.Tax, &b.Total, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	if err := r.loadLines(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BillRepo) getMany(query string, args ...any) ([]*entity.Bill, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var bills []*entity.Bill
	for rows.Next() {
		var b entity.Bill
		if err := rows.Scan(
			&b.ID, &b.Number, &b.Subtotal, &b.Discount, &b.Tax, &b.Total, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		bills = append(bills, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, b := range bills {
		if err := r.loadLines(b); err != nil {
			return nil, err
		}
	}
	return bills, nil
}

func (r *BillRepo) loadLines(bill *entity.Bill) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, bill_id, product_id, product_name, barcode, price, quantity, subtotal
		 FROM bill_lines WHERE bill_id = $1 ORDER BY id`,
		bill.ID,
	)
	if err != nil {
		return fmt.Errorf("list bill lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line entity.BillLine
		if err := rows.Scan(
			&line.ID, &line.BillID, &line.ProductID, &line.ProductName,
			&line.Barcode, &line.Price, &line.Quantity, &line.Subtotal,
		); err != nil {
			return fmt.Errorf("scan bill line: %w", err)
		}
		bill.Lines = append(bill.Lines, &line)
	}
	return rows.Err()
}
