package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Amortizacion es un pago (total o parcial) aplicado a una venta.
// La suma de amortizaciones de una venta es su MontoPagado.
type Amortizacion struct {
	ID      string
	VentaID string

	Monto       decimal.Decimal
	MetodoPago  string
	Observacion string

	UsuarioID string
	Fecha     time.Time
}
