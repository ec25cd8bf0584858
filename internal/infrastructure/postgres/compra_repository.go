package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/internal/domain/repository"
)

var _ repository.CompraRepository = (*CompraRepo)(nil)

// CompraRepo implementación de CompraRepository sobre PostgreSQL.
type CompraRepo struct {
	q Querier
}

// NewCompraRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompraRepository(q Querier) *CompraRepo {
	return &CompraRepo{q: q}
}

const compraColumns = `id, proveedor_nombre, numero_comprobante, total, estado, usuario_id, fecha, fecha_creacion`

// Create persiste cabecera y detalles de la compra.
func (r *CompraRepo) Create(c *entity.Compra) error {
	query := `
		INSERT INTO compras (` + compraColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.ProveedorNombre, nullIfEmpty(c.NumeroComprobante), c.Total, c.Estado,
		c.UsuarioID, c.Fecha, c.FechaCreacion,
	)
	if err != nil {
		return fmt.Errorf("insert compra: %w", err)
	}
	for _, det := range c.Detalles {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO compra_detalles (id, compra_id, producto_id, cantidad, costo_unitario)
			VALUES ($1, $2, $3, $4, $5)`,
			det.ID, det.CompraID, det.ProductoID, det.Cantidad, det.CostoUnitario,
		)
		if err != nil {
			return fmt.Errorf("insert compra detalle: %w", err)
		}
	}
	return nil
}

// GetByID carga la compra completa.
func (r *CompraRepo) GetByID(id string) (*entity.Compra, error) {
	query := `SELECT ` + compraColumns + ` FROM compras WHERE id = $1`
	c, err := r.scanCompra(r.q.QueryRow(context.Background(), query, id))
	if err != nil || c == nil {
		return c, err
	}
	if err := r.loadDetalles(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update actualiza el estado de la compra.
func (r *CompraRepo) Update(c *entity.Compra) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE compras SET estado = $2 WHERE id = $1`,
		c.ID, c.Estado,
	)
	if err != nil {
		return fmt.Errorf("update compra: %w", err)
	}
	return nil
}

// List lista compras paginadas, de la más reciente a la más antigua.
func (r *CompraRepo) List(limit, offset int) ([]*entity.Compra, error) {
	query := `SELECT ` + compraColumns + ` FROM compras ORDER BY fecha DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list compras: %w", err)
	}
	defer rows.Close()
	var list []*entity.Compra
	for rows.Next() {
		c, err := r.scanCompra(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, c := range list {
		if err := r.loadDetalles(c); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *CompraRepo) scanCompra(row pgx.Row) (*entity.Compra, error) {
	var c entity.Compra
	var numero *string
	err := row.Scan(&c.ID, &c.ProveedorNombre, &numero, &c.Total, &c.Estado,
		&c.UsuarioID, &c.Fecha, &c.FechaCreacion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan compra: %w", err)
	}
	c.NumeroComprobante = deref(numero)
	return &c, nil
}

func (r *CompraRepo) loadDetalles(c *entity.Compra) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, compra_id, producto_id, cantidad, costo_unitario
		FROM compra_detalles WHERE compra_id = $1 ORDER BY id`, c.ID)
	if err != nil {
		return fmt.Errorf("list compra detalles: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var det entity.DetalleCompra
		if err := rows.Scan(&det.ID, &det.CompraID, &det.ProductoID, &det.Cantidad, &det.CostoUnitario); err != nil {
			return fmt.Errorf("scan compra detalle: %w", err)
		}
		c.Detalles = append(c.Detalles, &det)
	}
	return rows.Err()
}
