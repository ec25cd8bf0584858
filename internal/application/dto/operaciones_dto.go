package dto

import (
	"github.com/shopspring/decimal"
)

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token emitido y datos del usuario.
type LoginResponse struct {
	Token     string `json:"token"`
	UsuarioID string `json:"usuario_id"`
	Username  string `json:"username"`
	Nombre    string `json:"nombre"`
	Rol       string `json:"rol"`
}

// RegisterRequest body para POST /api/auth/register (solo ADMIN).
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nombre   string `json:"nombre"`
	Rol      string `json:"rol"`
}

// CobranzaRequest body para POST /api/ventas/:id/pagos.
type CobranzaRequest struct {
	Monto       decimal.Decimal `json:"monto"`
	MetodoPago  string          `json:"metodo_pago"`
	Observacion string          `json:"observacion,omitempty"`
}

// ItemCompraRequest línea de compra.
type ItemCompraRequest struct {
	ProductoID    string          `json:"producto_id"`
	Cantidad      int             `json:"cantidad"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
}

// CreateCompraRequest body para POST /api/compras.
type CreateCompraRequest struct {
	ProveedorNombre   string              `json:"proveedor_nombre"`
	NumeroComprobante string              `json:"numero_comprobante"`
	Items             []ItemCompraRequest `json:"items"`
}

// AjusteStockRequest body para POST /api/inventario/ajustes.
/// Cantidad con signo: positiva suma, negativa resta.
type AjusteStockRequest struct {
	ProductoID string `json:"producto_id"`
	Cantidad   int    `json:"cantidad"`
	Motivo     string `json:"motivo"`
}

// CreateProductoRequest body para POST /api/productos.
type CreateProductoRequest struct {
	Nombre        string          `json:"nombre"`
	Marca         string          `json:"marca,omitempty"`
	UnidadMedida  string          `json:"unidad_medida,omitempty"` // NIU por defecto
	PrecioVenta   decimal.Decimal `json:"precio_venta"`
	StockInicial  int             `json:"stock_inicial,omitempty"`
	StockMinimo   int             `json:"stock_minimo,omitempty"`
	AfectacionIGV string          `json:"afectacion_igv,omitempty"` // GRAVADO por defecto
	EsServicio    bool            `json:"es_servicio,omitempty"`
}

// ReconcileRequest query para POST /api/sunat/conciliar.
type ReconcileRequest struct {
	Desde string `query:"desde"` // YYYY-MM-DD
	Hasta string `query:"hasta"` // YYYY-MM-DD
}
