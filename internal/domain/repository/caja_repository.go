package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
)

// SesionCajaRepository sesiones (turnos) de caja.
type SesionCajaRepository interface {
	GetAbiertaByUsuario(usuarioID string) (*entity.SesionCaja, error)
	Create(s *entity.SesionCaja) error
	Update(s *entity.SesionCaja) error
}

// MovimientoCajaRepository movimientos de caja (append-only).
type MovimientoCajaRepository interface {
	Create(m *entity.MovimientoCaja) error
	ListBySesion(sesionID string) ([]*entity.MovimientoCaja, error)
	// SumBySesionYTipo suma los montos de una sesión por tipo (INGRESO o EGRESO).
	SumBySesionYTipo(sesionID, tipo string) (decimal.Decimal, error)
	ListDesde(desde time.Time) ([]*entity.MovimientoCaja, error)
	SumPorTipoEntre(desde, hasta time.Time, tipo string) (decimal.Decimal, error)
}
