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

var _ repository.VentaRepository = (*VentaRepo)(nil)

// VentaRepo implementación de VentaRepository sobre PostgreSQL (usable con pool o tx).
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

const ventaColumns = `
	id, tipo_comprobante, serie, numero, fecha_emision, fecha_vencimiento,
	moneda, tipo_operacion, forma_pago, metodo_pago,
	cliente_id, cliente_tipo_documento, cliente_numero_documento, cliente_denominacion, cliente_direccion,
	total_gravada, total_igv, total, monto_pagado, saldo_pendiente, estado,
	sunat_estado, sunat_hash, sunat_xml_url, sunat_cdr_url, sunat_pdf_url, sunat_fecha_envio, sunat_mensaje_error,
	usuario_id, fecha_creacion`

// Create persiste cabecera y detalles del comprobante.
// El par (tipo_comprobante, serie, numero) tiene constraint único: si la
// numeración chocara, el insert falla y la tx de emisión hace Rollback.
func (r *VentaRepo) Create(v *entity.Venta) error {
	query := `
		INSERT INTO ventas (` + ventaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21,
		        $22, $23, $24, $25, $26, $27, $28,
		        $29, $30)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.TipoComprobante, v.Serie, v.Numero, v.FechaEmision, v.FechaVencimiento,
		v.Moneda, v.TipoOperacion, v.FormaPago, nullIfEmpty(v.MetodoPago),
		v.ClienteID, v.ClienteTipoDocumento, v.ClienteNumeroDocumento, v.ClienteDenominacion, nullIfEmpty(v.ClienteDireccion),
		v.TotalGravada, v.TotalIGV, v.Total, v.MontoPagado, v.SaldoPendiente, v.Estado,
		v.Sunat.Estado, nullIfEmpty(v.Sunat.Hash), nullIfEmpty(v.Sunat.XMLURL), nullIfEmpty(v.Sunat.CdrURL), nullIfEmpty(v.Sunat.PdfURL), v.Sunat.FechaEnvio, nullIfEmpty(v.Sunat.MensajeError),
		v.UsuarioID, v.FechaCreacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert venta: %w", err)
	}

	for _, det := range v.Items {
		if err := r.createDetalle(det); err != nil {
			return err
		}
	}
	return nil
}

func (r *VentaRepo) createDetalle(det *entity.DetalleVenta) error {
	query := `
		INSERT INTO venta_detalles (id, venta_id, producto_id, descripcion, unidad_medida,
			cantidad, precio_unitario, valor_unitario, subtotal, porcentaje_igv, codigo_afectacion_igv)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		det.ID, det.VentaID, det.ProductoID, det.Descripcion, det.UnidadMedida,
		det.Cantidad, det.PrecioUnitario, det.ValorUnitario, det.Subtotal,
		det.PorcentajeIGV, det.CodigoTipoAfectacionIGV,
	)
	if err != nil {
		return fmt.Errorf("insert venta detalle: %w", err)
	}
	return nil
}

// GetByID carga el comprobante completo (cabecera + detalles).
func (r *VentaRepo) GetByID(id string) (*entity.Venta, error) {
	query := `SELECT ` + ventaColumns + ` FROM ventas WHERE id = $1`
	v, err := r.scanVenta(r.q.QueryRow(context.Background(), query, id))
	if err != nil || v == nil {
		return v, err
	}
	if err := r.loadDetalles(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Update actualiza liquidación, estado y acuse SUNAT. Totales, numeración y
// detalles no cambian después de emitido.
func (r *VentaRepo) Update(v *entity.Venta) error {
	query := `
		UPDATE ventas
		SET monto_pagado = $2, saldo_pendiente = $3, estado = $4,
		    sunat_estado = $5, sunat_hash = $6, sunat_xml_url = $7, sunat_cdr_url = $8,
		    sunat_pdf_url = $9, sunat_fecha_envio = $10, sunat_mensaje_error = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.MontoPagado, v.SaldoPendiente, v.Estado,
		v.Sunat.Estado, nullIfEmpty(v.Sunat.Hash), nullIfEmpty(v.Sunat.XMLURL), nullIfEmpty(v.Sunat.CdrURL),
		nullIfEmpty(v.Sunat.PdfURL), v.Sunat.FechaEnvio, nullIfEmpty(v.Sunat.MensajeError),
	)
	if err != nil {
		return fmt.Errorf("update venta: %w", err)
	}
	return nil
}

// ListByPeriodo lista comprobantes con fecha de emisión en [desde, hasta),
// con sus detalles.
func (r *VentaRepo) ListByPeriodo(desde, hasta time.Time) ([]*entity.Venta, error) {
	query := `SELECT ` + ventaColumns + ` FROM ventas
		WHERE fecha_emision >= $1 AND fecha_emision < $2 ORDER BY fecha_emision`
	rows, err := r.q.Query(context.Background(), query, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Venta
	for rows.Next() {
		v, err := r.scanVenta(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, v := range list {
		if err := r.loadDetalles(v); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *VentaRepo) scanVenta(row pgx.Row) (*entity.Venta, error) {
	var v entity.Venta
	var metodoPago, direccion, hash, xmlURL, cdrURL, pdfURL, mensajeError *string
	err := row.Scan(
		&v.ID, &v.TipoComprobante, &v.Serie, &v.Numero, &v.FechaEmision, &v.FechaVencimiento,
		&v.Moneda, &v.TipoOperacion, &v.FormaPago, &metodoPago,
		&v.ClienteID, &v.ClienteTipoDocumento, &v.ClienteNumeroDocumento, &v.ClienteDenominacion, &direccion,
		&v.TotalGravada, &v.TotalIGV, &v.Total, &v.MontoPagado, &v.SaldoPendiente, &v.Estado,
		&v.Sunat.Estado, &hash, &xmlURL, &cdrURL, &pdfURL, &v.Sunat.FechaEnvio, &mensajeError,
		&v.UsuarioID, &v.FechaCreacion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan venta: %w", err)
	}
	v.MetodoPago = deref(metodoPago)
	v.ClienteDireccion = deref(direccion)
	v.Sunat.Hash = deref(hash)
	v.Sunat.XMLURL = deref(xmlURL)
	v.Sunat.CdrURL = deref(cdrURL)
	v.Sunat.PdfURL = deref(pdfURL)
	v.Sunat.MensajeError = deref(mensajeError)
	return &v, nil
}

func (r *VentaRepo) loadDetalles(v *entity.Venta) error {
	query := `
		SELECT id, venta_id, producto_id, descripcion, unidad_medida,
		       cantidad, precio_unitario, valor_unitario, subtotal, porcentaje_igv, codigo_afectacion_igv
		FROM venta_detalles WHERE venta_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, v.ID)
	if err != nil {
		return fmt.Errorf("list venta detalles: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var det entity.DetalleVenta
		if err := rows.Scan(&det.ID, &det.VentaID, &det.ProductoID, &det.Descripcion, &det.UnidadMedida,
			&det.Cantidad, &det.PrecioUnitario, &det.ValorUnitario, &det.Subtotal,
			&det.PorcentajeIGV, &det.CodigoTipoAfectacionIGV); err != nil {
			return fmt.Errorf("scan venta detalle: %w", err)
		}
		v.Items = append(v.Items, &det)
	}
	return rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
