package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una compra.
const (
	CompraRegistrada = "REGISTRADA"
	CompraAnulada    = "ANULADA"
)

// Compra es un ingreso de mercadería de un proveedor.
// Cada línea genera una ENTRADA en el kardex; anular la compra genera las
// SALIDAs compensatorias (si el stock aún alcanza).
type Compra struct {
	ID                string
	ProveedorNombre   string
	NumeroComprobante string

	Total  decimal.Decimal
	Estado string // REGISTRADA | ANULADA

	UsuarioID     string
	Fecha         time.Time
	FechaCreacion time.Time

	Detalles []*DetalleCompra
}

// DetalleCompra es una línea de compra.
type DetalleCompra struct {
	ID         string
	CompraID   string
	ProductoID string

	Cantidad      int
	CostoUnitario decimal.Decimal
}
