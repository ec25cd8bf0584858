package entity

// Correlativo es el contador de numeración por (tipo de comprobante, serie).
// Los números emitidos son estrictamente crecientes y nunca se reutilizan;
// la asignación debe ser atómica por clave (ver CorrelativoRepository.NextNumber).
type Correlativo struct {
	Codigo       string // BOLETA, FACTURA, NOTA_CREDITO, NOTA_VENTA, COTIZACION
	Serie        string // B001, F001, C001, I001...
	UltimoNumero int
}
