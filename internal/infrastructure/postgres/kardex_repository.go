package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/internal/domain/repository"
)

var _ repository.KardexRepository = (*KardexRepo)(nil)

// KardexRepo implementación de KardexRepository sobre PostgreSQL.
// Solo INSERT y SELECT: el kardex no se edita ni se borra.
type KardexRepo struct {
	q Querier
}

// NewKardexRepository construye el adaptador. Pasar pool o tx (Querier).
func NewKardexRepository(q Querier) *KardexRepo {
	return &KardexRepo{q: q}
}

// Create inserta una entrada de kardex.
func (r *KardexRepo) Create(k *entity.Kardex) error {
	query := `
		INSERT INTO kardex (id, producto_id, tipo, motivo, cantidad, stock_anterior, stock_actual, usuario_id, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		k.ID, k.ProductoID, k.Tipo, k.Motivo, k.Cantidad,
		k.StockAnterior, k.StockActual, k.UsuarioID, k.Fecha,
	)
	if err != nil {
		return fmt.Errorf("insert kardex: %w", err)
	}
	return nil
}

// ListByProducto lista el kardex de un producto, del más reciente al más antiguo.
func (r *KardexRepo) ListByProducto(productoID string, limit, offset int) ([]*entity.Kardex, error) {
	query := `
		SELECT id, producto_id, tipo, motivo, cantidad, stock_anterior, stock_actual, usuario_id, fecha
		FROM kardex WHERE producto_id = $1 ORDER BY fecha DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productoID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list kardex: %w", err)
	}
	defer rows.Close()
	var list []*entity.Kardex
	for rows.Next() {
		var k entity.Kardex
		if err := rows.Scan(&k.ID, &k.ProductoID, &k.Tipo, &k.Motivo, &k.Cantidad,
			&k.StockAnterior, &k.StockActual, &k.UsuarioID, &k.Fecha); err != nil {
			return nil, fmt.Errorf("scan kardex: %w", err)
		}
		list = append(list, &k)
	}
	return list, rows.Err()
}
