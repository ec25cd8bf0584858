package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/internal/domain/repository"
)

var _ repository.CorrelativoRepository = (*CorrelativoRepo)(nil)

// CorrelativoRepo implementación de CorrelativoRepository sobre PostgreSQL.
type CorrelativoRepo struct {
	q Querier
}

// NewCorrelativoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCorrelativoRepository(q Querier) *CorrelativoRepo {
	return &CorrelativoRepo{q: q}
}

// NextNumber incrementa y devuelve el siguiente número de la serie en una sola
// sentencia: el upsert toma el row lock del contador, así dos transacciones
// concurrentes sobre la misma serie se serializan y nunca reciben el mismo
// número. Llamado dentro de la tx de emisión, un Rollback devuelve el número
// (no quedan huecos por ventas fallidas).
func (r *CorrelativoRepo) NextNumber(codigo, serie string) (int, error) {
	var numero int
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO correlativos (codigo, serie, ultimo_numero)
		VALUES ($1, $2, 1)
		ON CONFLICT (codigo, serie)
		DO UPDATE SET ultimo_numero = correlativos.ultimo_numero + 1
		RETURNING ultimo_numero`,
		codigo, serie,
	).Scan(&numero)
	if err != nil {
		return 0, fmt.Errorf("next number %s-%s: %w", codigo, serie, err)
	}
	return numero, nil
}

// Get obtiene el contador de una serie.
func (r *CorrelativoRepo) Get(codigo, serie string) (*entity.Correlativo, error) {
	var c entity.Correlativo
	err := r.q.QueryRow(context.Background(),
		`SELECT codigo, serie, ultimo_numero FROM correlativos WHERE codigo = $1 AND serie = $2`,
		codigo, serie,
	).Scan(&c.Codigo, &c.Serie, &c.UltimoNumero)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get correlativo: %w", err)
	}
	return &c, nil
}

// SetUltimoNumero fija el contador (sincronización con el PSE).
func (r *CorrelativoRepo) SetUltimoNumero(codigo, serie string, ultimo int) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO correlativos (codigo, serie, ultimo_numero)
		VALUES ($1, $2, $3)
		ON CONFLICT (codigo, serie)
		DO UPDATE SET ultimo_numero = EXCLUDED.ultimo_numero`,
		codigo, serie, ultimo,
	)
	if err != nil {
		return fmt.Errorf("set ultimo numero: %w", err)
	}
	return nil
}
