package entity

import "time"

// Tipos de movimiento de kardex.
const (
	KardexEntrada = "ENTRADA"
	KardexSalida  = "SALIDA"
	KardexAjuste  = "AJUSTE"
)

// Kardex es una entrada del libro de inventario: registra cada delta de stock
// con snapshot antes/después. Es append-only; una corrección se expresa con
// una entrada compensatoria, nunca editando la existente.
// Invariante: StockActual == StockAnterior + delta con signo.
type Kardex struct {
	ID         string
	ProductoID string

	Tipo   string // ENTRADA | SALIDA | AJUSTE
	Motivo string // ej: "VENTA B001-123", "DEVOLUCIÓN NC C001-4 (VENTA B001-123)"

	Cantidad      int // siempre positivo; el signo lo da Tipo
	StockAnterior int
	StockActual   int

	UsuarioID string
	Fecha     time.Time
}
