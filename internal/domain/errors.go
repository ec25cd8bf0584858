package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrInvalidInput            = errors.New("entrada inválida")
	ErrDuplicate               = errors.New("recurso duplicado")
	ErrUnauthorized            = errors.New("no autorizado")
	ErrForbidden               = errors.New("acceso denegado")
	ErrProductoNoEncontrado    = errors.New("producto no encontrado")
	ErrStockInsuficiente       = errors.New("stock insuficiente")
	ErrCantidadFraccionaria    = errors.New("la cantidad debe ser entera para productos con control de stock")
	ErrSerieNoConfigurada      = errors.New("serie no configurada para el tipo de comprobante")
	ErrCajaCerrada             = errors.New("caja cerrada: debe abrir caja antes de operar")
	ErrCajaYaAbierta           = errors.New("ya existe una sesión de caja abierta")
	ErrVentaAnulada            = errors.New("la venta está anulada")
	ErrVentaNoAnulable         = errors.New("la venta no puede anularse en su estado actual")
	ErrVentaDevueltaTotal      = errors.New("la venta ya fue devuelta completamente")
	ErrPlazoDevolucionVencido  = errors.New("el plazo máximo de devolución venció")
	ErrDevolucionExcedeVendido = errors.New("la cantidad a devolver excede la cantidad vendida pendiente")
	ErrDevolucionAnulada       = errors.New("la devolución ya está anulada")
	ErrCompraAnulada           = errors.New("la compra ya está anulada")
	ErrUsuarioNoEncontrado     = errors.New("usuario no encontrado")
)
