package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/internal/domain/repository"
)

var _ repository.SesionCajaRepository = (*SesionCajaRepo)(nil)
var _ repository.MovimientoCajaRepository = (*MovimientoCajaRepo)(nil)

// SesionCajaRepo implementación de SesionCajaRepository sobre PostgreSQL.
type SesionCajaRepo struct {
	q Querier
}

// NewSesionCajaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSesionCajaRepository(q Querier) *SesionCajaRepo {
	return &SesionCajaRepo{q: q}
}

// GetAbiertaByUsuario devuelve la sesión ABIERTA del usuario, o nil.
func (r *SesionCajaRepo) GetAbiertaByUsuario(usuarioID string) (*entity.SesionCaja, error) {
	query := `
		SELECT id, usuario_id, monto_inicial, monto_final_calculado, monto_final_real, diferencia, estado, fecha_inicio, fecha_fin
		FROM sesiones_caja WHERE usuario_id = $1 AND estado = $2`
	var s entity.SesionCaja
	err := r.q.QueryRow(context.Background(), query, usuarioID, entity.SesionAbierta).Scan(
		&s.ID, &s.UsuarioID, &s.MontoInicial, &s.MontoFinalCalculado, &s.MontoFinalReal,
		&s.Diferencia, &s.Estado, &s.FechaInicio, &s.FechaFin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sesion caja: %w", err)
	}
	return &s, nil
}

// Create persiste una sesión nueva.
func (r *SesionCajaRepo) Create(s *entity.SesionCaja) error {
	query := `
		INSERT INTO sesiones_caja (id, usuario_id, monto_inicial, monto_final_calculado, monto_final_real, diferencia, estado, fecha_inicio, fecha_fin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.UsuarioID, s.MontoInicial, s.MontoFinalCalculado, s.MontoFinalReal,
		s.Diferencia, s.Estado, s.FechaInicio, s.FechaFin,
	)
	if err != nil {
		return fmt.Errorf("insert sesion caja: %w", err)
	}
	return nil
}

// Update actualiza la sesión (cierre).
func (r *SesionCajaRepo) Update(s *entity.SesionCaja) error {
	query := `
		UPDATE sesiones_caja
		SET monto_final_calculado = $2, monto_final_real = $3, diferencia = $4, estado = $5, fecha_fin = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.MontoFinalCalculado, s.MontoFinalReal, s.Diferencia, s.Estado, s.FechaFin,
	)
	if err != nil {
		return fmt.Errorf("update sesion caja: %w", err)
	}
	return nil
}

// MovimientoCajaRepo implementación de MovimientoCajaRepository sobre PostgreSQL.
// Solo INSERT y SELECT: el libro de caja no se edita.
type MovimientoCajaRepo struct {
	q Querier
}

// NewMovimientoCajaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoCajaRepository(q Querier) *MovimientoCajaRepo {
	return &MovimientoCajaRepo{q: q}
}

const movimientoColumns = `id, sesion_id, tipo, concepto, monto, referencia_id, usuario_id, fecha`

// Create inserta un movimiento.
func (r *MovimientoCajaRepo) Create(m *entity.MovimientoCaja) error {
	query := `
		INSERT INTO movimientos_caja (` + movimientoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, nullIfEmpty(m.SesionID), m.Tipo, m.Concepto, m.Monto,
		nullIfEmpty(m.ReferenciaID), m.UsuarioID, m.Fecha,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento caja: %w", err)
	}
	return nil
}

// ListBySesion lista los movimientos de una sesión en orden cronológico.
func (r *MovimientoCajaRepo) ListBySesion(sesionID string) ([]*entity.MovimientoCaja, error) {
	query := `SELECT ` + movimientoColumns + ` FROM movimientos_caja WHERE sesion_id = $1 ORDER BY fecha`
	return r.list(query, sesionID)
}

// ListDesde lista movimientos con fecha >= desde.
func (r *MovimientoCajaRepo) ListDesde(desde time.Time) ([]*entity.MovimientoCaja, error) {
	query := `SELECT ` + movimientoColumns + ` FROM movimientos_caja WHERE fecha >= $1 ORDER BY fecha`
	return r.list(query, desde)
}

// SumBySesionYTipo suma los montos de una sesión por tipo.
func (r *MovimientoCajaRepo) SumBySesionYTipo(sesionID, tipo string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(monto), 0) FROM movimientos_caja WHERE sesion_id = $1 AND tipo = $2`,
		sesionID, tipo,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum movimientos caja: %w", err)
	}
	return sum, nil
}

// SumPorTipoEntre suma los montos por tipo en [desde, hasta), sin importar la sesión.
func (r *MovimientoCajaRepo) SumPorTipoEntre(desde, hasta time.Time, tipo string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(monto), 0) FROM movimientos_caja WHERE fecha >= $1 AND fecha < $2 AND tipo = $3`,
		desde, hasta, tipo,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum movimientos caja: %w", err)
	}
	return sum, nil
}

func (r *MovimientoCajaRepo) list(query string, args ...any) ([]*entity.MovimientoCaja, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos caja: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovimientoCaja
	for rows.Next() {
		var m entity.MovimientoCaja
		var sesionID, referenciaID *string
		if err := rows.Scan(&m.ID, &sesionID, &m.Tipo, &m.Concepto, &m.Monto,
			&referenciaID, &m.UsuarioID, &m.Fecha); err != nil {
			return nil, fmt.Errorf("scan movimiento caja: %w", err)
		}
		m.SesionID = deref(sesionID)
		m.ReferenciaID = deref(referenciaID)
		list = append(list, &m)
	}
	return list, rows.Err()
}
