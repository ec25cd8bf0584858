package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/internal/domain/repository"
)

var _ repository.AmortizacionRepository = (*AmortizacionRepo)(nil)

// AmortizacionRepo implementación de AmortizacionRepository sobre PostgreSQL.
type AmortizacionRepo struct {
	q Querier
}

// NewAmortizacionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAmortizacionRepository(q Querier) *AmortizacionRepo {
	return &AmortizacionRepo{q: q}
}

// Create inserta una amortización.
func (r *AmortizacionRepo) Create(a *entity.Amortizacion) error {
	query := `
		INSERT INTO amortizaciones (id, venta_id, monto, metodo_pago, observacion, usuario_id, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.VentaID, a.Monto, a.MetodoPago, nullIfEmpty(a.Observacion), a.UsuarioID, a.Fecha,
	)
	if err != nil {
		return fmt.Errorf("insert amortizacion: %w", err)
	}
	return nil
}

// ListByVenta lista las amortizaciones de una venta en orden cronológico.
func (r *AmortizacionRepo) ListByVenta(ventaID string) ([]*entity.Amortizacion, error) {
	query := `
		SELECT id, venta_id, monto, metodo_pago, observacion, usuario_id, fecha
		FROM amortizaciones WHERE venta_id = $1 ORDER BY fecha`
	rows, err := r.q.Query(context.Background(), query, ventaID)
	if err != nil {
		return nil, fmt.Errorf("list amortizaciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Amortizacion
	for rows.Next() {
		var a entity.Amortizacion
		var observacion *string
		if err := rows.Scan(&a.ID, &a.VentaID, &a.Monto, &a.MetodoPago, &observacion, &a.UsuarioID, &a.Fecha); err != nil {
			return nil, fmt.Errorf("scan amortizacion: %w", err)
		}
		a.Observacion = deref(observacion)
		list = append(list, &a)
	}
	return list, rows.Err()
}
