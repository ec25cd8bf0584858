package sales

import "context"

// Submitter envía comprobantes electrónicos al PSE. El envío ocurre después
// del commit de la venta; un fallo nunca revierte el comprobante local.
type Submitter interface {
	SubmitVenta(ctx context.Context, ventaID string) error
}
