package repository

import (
	"time"

	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
)

// VentaRepository persistencia de comprobantes de venta.
// Create guarda cabecera y detalles; GetByID carga el comprobante completo.
// Update cubre cambios de liquidación (estado, saldo) y de acuse SUNAT;
// los totales y la numeración no cambian después de emitido.
type VentaRepository interface {
	Create(v *entity.Venta) error
	GetByID(id string) (*entity.Venta, error)
	Update(v *entity.Venta) error
	ListByPeriodo(desde, hasta time.Time) ([]*entity.Venta, error)
}
