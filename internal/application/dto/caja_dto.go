package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
)

// AperturaCajaRequest body para POST /api/caja/abrir.
type AperturaCajaRequest struct {
	MontoInicial decimal.Decimal `json:"monto_inicial"`
}

// CierreCajaRequest body para POST /api/caja/cerrar.
type CierreCajaRequest struct {
	MontoReal decimal.Decimal `json:"monto_real"`
}

// MovimientoCajaRequest body para POST /api/caja/movimientos.
type MovimientoCajaRequest struct {
	Tipo     string          `json:"tipo"` // INGRESO | EGRESO
	Concepto string          `json:"concepto"`
	Monto    decimal.Decimal `json:"monto"`
}

// SesionCajaResponse sesión en respuestas.
type SesionCajaResponse struct {
	ID                  string          `json:"id"`
	UsuarioID           string          `json:"usuario_id"`
	MontoInicial        decimal.Decimal `json:"monto_inicial"`
	MontoFinalCalculado decimal.Decimal `json:"monto_final_calculado,omitempty"`
	MontoFinalReal      decimal.Decimal `json:"monto_final_real,omitempty"`
	Diferencia          decimal.Decimal `json:"diferencia,omitempty"`
	Estado              string          `json:"estado"`
	FechaInicio         string          `json:"fecha_inicio"`
	FechaFin            string          `json:"fecha_fin,omitempty"`
}

// BalanceCajaResponse resumen de la sesión abierta.
type BalanceCajaResponse struct {
	Inicial  decimal.Decimal `json:"inicial"`
	Ingresos decimal.Decimal `json:"ingresos"`
	Egresos  decimal.Decimal `json:"egresos"`
	Saldo    decimal.Decimal `json:"saldo"`
}

// MovimientoCajaResponse movimiento en respuestas.
type MovimientoCajaResponse struct {
	ID           string          `json:"id"`
	Tipo         string          `json:"tipo"`
	Concepto     string          `json:"concepto"`
	Monto        decimal.Decimal `json:"monto"`
	ReferenciaID string          `json:"referencia_id,omitempty"`
	Fecha        string          `json:"fecha"`
}

// ToSesionCajaResponse arma la respuesta desde la entidad.
func ToSesionCajaResponse(s *entity.SesionCaja) SesionCajaResponse {
	resp := SesionCajaResponse{
		ID:                  s.ID,
		UsuarioID:           s.UsuarioID,
		MontoInicial:        s.MontoInicial,
		MontoFinalCalculado: s.MontoFinalCalculado,
		MontoFinalReal:      s.MontoFinalReal,
		Diferencia:          s.Diferencia,
		Estado:              s.Estado,
		FechaInicio:         s.FechaInicio.Format("2006-01-02T15:04:05Z07:00"),
	}
	if s.FechaFin != nil {
		resp.FechaFin = s.FechaFin.Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}
