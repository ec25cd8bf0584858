package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/libreria-pos/internal/domain"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/internal/domain/repository"
)

var _ repository.NotaCreditoRepository = (*NotaCreditoRepo)(nil)

// NotaCreditoRepo implementación de NotaCreditoRepository sobre PostgreSQL.
type NotaCreditoRepo struct {
	q Querier
}

// NewNotaCreditoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotaCreditoRepository(q Querier) *NotaCreditoRepo {
	return &NotaCreditoRepo{q: q}
}

const notaCreditoColumns = `
	id, venta_original_id, serie, numero, fecha_emision,
	motivo_devolucion, observaciones, metodo_reembolso, total_devuelto, estado,
	sunat_estado, sunat_hash, sunat_xml_url, sunat_cdr_url, sunat_pdf_url, sunat_fecha_envio, sunat_mensaje_error,
	usuario_id, fecha_creacion`

// Create persiste cabecera y detalles de la nota de crédito.
func (r *NotaCreditoRepo) Create(nc *entity.NotaCredito) error {
	query := `
		INSERT INTO notas_credito (` + notaCreditoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		nc.ID, nc.VentaOriginalID, nc.Serie, nc.Numero, nc.FechaEmision,
		nc.MotivoDevolucion, nullIfEmpty(nc.Observaciones), nullIfEmpty(nc.MetodoReembolso), nc.TotalDevuelto, nc.Estado,
		nc.Sunat.Estado, nullIfEmpty(nc.Sunat.Hash), nullIfEmpty(nc.Sunat.XMLURL), nullIfEmpty(nc.Sunat.CdrURL), nullIfEmpty(nc.Sunat.PdfURL), nc.Sunat.FechaEnvio, nullIfEmpty(nc.Sunat.MensajeError),
		nc.UsuarioID, nc.FechaCreacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert nota credito: %w", err)
	}

	for _, det := range nc.Detalles {
		query := `
			INSERT INTO nota_credito_detalles (id, nota_credito_id, producto_id, descripcion, cantidad, precio_unitario, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		_, err := r.q.Exec(context.Background(), query,
			det.ID, det.NotaCreditoID, det.ProductoID, det.Descripcion,
			det.Cantidad, det.PrecioUnitario, det.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert nota credito detalle: %w", err)
		}
	}
	return nil
}

// GetByID carga la nota de crédito completa.
func (r *NotaCreditoRepo) GetByID(id string) (*entity.NotaCredito, error) {
	query := `SELECT ` + notaCreditoColumns + ` FROM notas_credito WHERE id = $1`
	nc, err := r.scanNota(r.q.QueryRow(context.Background(), query, id))
	if err != nil || nc == nil {
		return nc, err
	}
	if err := r.loadDetalles(nc); err != nil {
		return nil, err
	}
	return nc, nil
}

// Update actualiza estado y acuse SUNAT.
func (r *NotaCreditoRepo) Update(nc *entity.NotaCredito) error {
	query := `
		UPDATE notas_credito
		SET estado = $2,
		    sunat_estado = $3, sunat_hash = $4, sunat_xml_url = $5, sunat_cdr_url = $6,
		    sunat_pdf_url = $7, sunat_fecha_envio = $8, sunat_mensaje_error = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		nc.ID, nc.Estado,
		nc.Sunat.Estado, nullIfEmpty(nc.Sunat.Hash), nullIfEmpty(nc.Sunat.XMLURL), nullIfEmpty(nc.Sunat.CdrURL),
		nullIfEmpty(nc.Sunat.PdfURL), nc.Sunat.FechaEnvio, nullIfEmpty(nc.Sunat.MensajeError),
	)
	if err != nil {
		return fmt.Errorf("update nota credito: %w", err)
	}
	return nil
}

// ListByVenta lista todas las notas de crédito de una venta (incluye anuladas), con detalles.
func (r *NotaCreditoRepo) ListByVenta(ventaID string) ([]*entity.NotaCredito, error) {
	query := `SELECT ` + notaCreditoColumns + ` FROM notas_credito
		WHERE venta_original_id = $1 ORDER BY fecha_emision`
	return r.list(query, ventaID)
}

// ListByPeriodo lista notas de crédito emitidas en [desde, hasta), con detalles.
func (r *NotaCreditoRepo) ListByPeriodo(desde, hasta time.Time) ([]*entity.NotaCredito, error) {
	query := `SELECT ` + notaCreditoColumns + ` FROM notas_credito
		WHERE fecha_emision >= $1 AND fecha_emision < $2 ORDER BY fecha_emision`
	return r.list(query, desde, hasta)
}

func (r *NotaCreditoRepo) list(query string, args ...any) ([]*entity.NotaCredito, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notas credito: %w", err)
	}
	defer rows.Close()

	var list []*entity.NotaCredito
	for rows.Next() {
		nc, err := r.scanNota(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, nc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, nc := range list {
		if err := r.loadDetalles(nc); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *NotaCreditoRepo) scanNota(row pgx.Row) (*entity.NotaCredito, error) {
	var nc entity.NotaCredito
	var observaciones, metodo, hash, xmlURL, cdrURL, pdfURL, mensajeError *string
	err := row.Scan(
		&nc.ID, &nc.VentaOriginalID, &nc.Serie, &nc.Numero, &nc.FechaEmision,
		&nc.MotivoDevolucion, &observaciones, &metodo, &nc.TotalDevuelto, &nc.Estado,
		&nc.Sunat.Estado, &hash, &xmlURL, &cdrURL, &pdfURL, &nc.Sunat.FechaEnvio, &mensajeError,
		&nc.UsuarioID, &nc.FechaCreacion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan nota credito: %w", err)
	}
	nc.Observaciones = deref(observaciones)
	nc.MetodoReembolso = deref(metodo)
	nc.Sunat.Hash = deref(hash)
	nc.Sunat.XMLURL = deref(xmlURL)
	nc.Sunat.CdrURL = deref(cdrURL)
	nc.Sunat.PdfURL = deref(pdfURL)
	nc.Sunat.MensajeError = deref(mensajeError)
	return &nc, nil
}

func (r *NotaCreditoRepo) loadDetalles(nc *entity.NotaCredito) error {
	query := `
		SELECT id, nota_credito_id, producto_id, descripcion, cantidad, precio_unitario, subtotal
		FROM nota_credito_detalles WHERE nota_credito_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, nc.ID)
	if err != nil {
		return fmt.Errorf("list nota credito detalles: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var det entity.DetalleNotaCredito
		if err := rows.Scan(&det.ID, &det.NotaCreditoID, &det.ProductoID, &det.Descripcion,
			&det.Cantidad, &det.PrecioUnitario, &det.Subtotal); err != nil {
			return fmt.Errorf("scan nota credito detalle: %w", err)
		}
		nc.Detalles = append(nc.Detalles, &det)
	}
	return rows.Err()
}
