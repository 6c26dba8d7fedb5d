package repository

import (
	"time"

	"github.com/jhoicas/supermarket-pos/internal/domain/entity"
)

// BillRepository define el puerto de persistencia para Bill y sus líneas.
// Create persiste cabecera y líneas juntas; no existe Update ni Delete:
// una factura confirmada es inmutable.
type BillRepository interface {
	// Create retorna domain.ErrDuplicateBillNumber si el número ya existe
	// (el caller regenera y reintenta).
	Create(bill *entity.Bill) error
	GetByID(id string) (*entity.Bill, error)
	GetByNumber(number string) (*entity.Bill, error)
	// ListByCreatedBetween: intervalo semiabierto [start, end), más recientes primero.
	ListByCreatedBetween(start, end time.Time, limit, offset int) ([]*entity.Bill, error)
	ListRecent(limit int) ([]*entity.Bill, error)
}
