package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de sesión de caja y tipos de movimiento.
const (
	SesionAbierta = "ABIERTA"
	SesionCerrada = "CERRADA"

	MovimientoIngreso = "INGRESO"
	MovimientoEgreso  = "EGRESO"
)

// SesionCaja es un turno de caja de un usuario: abre con un monto inicial y
// cierra comparando el saldo calculado contra el conteo físico.
type SesionCaja struct {
	ID        string
	UsuarioID string

	MontoInicial        decimal.Decimal
	MontoFinalCalculado decimal.Decimal
	MontoFinalReal      decimal.Decimal
	Diferencia          decimal.Decimal

	Estado      string // ABIERTA | CERRADA
	FechaInicio time.Time
	FechaFin    *time.Time
}

// MovimientoCaja registra un INGRESO o EGRESO de efectivo atado a una sesión.
// Append-only: no hay edición ni borrado en operación normal.
type MovimientoCaja struct {
	ID       string
	SesionID string

	Tipo     string // INGRESO | EGRESO
	Concepto string
	Monto    decimal.Decimal

	// ReferenciaID apunta al documento que originó el movimiento (venta, NC), si aplica.
	ReferenciaID string

	UsuarioID string
	Fecha     time.Time
}

// BalanceCaja es el resumen de una sesión: inicial + ingresos - egresos.
type BalanceCaja struct {
	Inicial  decimal.Decimal
	Ingresos decimal.Decimal
	Egresos  decimal.Decimal
	Saldo    decimal.Decimal
}
