package repository

import (
	"time"

	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
)

// NotaCreditoRepository persistencia de notas de crédito (devoluciones).
type NotaCreditoRepository interface {
	Create(nc *entity.NotaCredito) error
	GetByID(id string) (*entity.NotaCredito, error)
	// ListByVenta devuelve todas las notas de crédito de una venta (incluye anuladas).
	ListByVenta(ventaID string) ([]*entity.NotaCredito, error)
	Update(nc *entity.NotaCredito) error
	ListByPeriodo(desde, hasta time.Time) ([]*entity.NotaCredito, error)
}
