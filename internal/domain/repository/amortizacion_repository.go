package repository

import "github.com/tu-usuario/libreria-pos/internal/domain/entity"

// AmortizacionRepository pagos aplicados a ventas al crédito.
type AmortizacionRepository interface {
	Create(a *entity.Amortizacion) error
	ListByVenta(ventaID string) ([]*entity.Amortizacion, error)
}
