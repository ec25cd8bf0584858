package sunat

// Documento es el request JSON de APISUNAT (POST /documents).
type Documento struct {
	Documento          string              `json:"documento"` // "boleta", "factura", "nota_credito"
	Serie              string              `json:"serie"`
	Numero             int                 `json:"numero"`
	FechaDeEmision     string              `json:"fecha_de_emision"`            // "2025-01-03"
	FechaDeVencimiento string              `json:"fecha_de_vencimiento,omitempty"` // solo crédito
	Moneda             string              `json:"moneda"`
	TipoOperacion      string              `json:"tipo_operacion"`

	ClienteTipoDeDocumento   string `json:"cliente_tipo_de_documento"`
	ClienteNumeroDeDocumento string `json:"cliente_numero_de_documento"`
	ClienteDenominacion      string `json:"cliente_denominacion"`
	ClienteDireccion         string `json:"cliente_direccion,omitempty"`

	Items  []Item  `json:"items"`
	Cuotas []Cuota `json:"cuotas,omitempty"` // solo crédito
	Total  string  `json:"total"`

	// Solo nota de crédito.
	DocumentoAfectado     *DocumentoAfectado `json:"documento_afectado,omitempty"`
	NotaCreditoCodigoTipo string             `json:"nota_credito_codigo_tipo,omitempty"` // "01" anulación de operación
	NotaCreditoMotivo     string             `json:"nota_credito_motivo,omitempty"`
}

// Item línea del comprobante en el wire del PSE. Los montos van como string.
type Item struct {
	UnidadDeMedida          string `json:"unidad_de_medida"` // "NIU", "ZZ"
	Descripcion             string `json:"descripcion"`
	Cantidad                string `json:"cantidad"`
	ValorUnitario           string `json:"valor_unitario"` // sin IGV, 6 decimales
	PorcentajeIGV           string `json:"porcentaje_igv"`
	CodigoTipoAfectacionIGV string `json:"codigo_tipo_afectacion_igv"`
	NombreTributo           string `json:"nombre_tributo"` // "IGV"
}

// Cuota de pago para ventas a crédito.
type Cuota struct {
	Importe     string `json:"importe"`
	FechaDePago string `json:"fecha_de_pago"`
}

// DocumentoAfectado referencia al comprobante que la nota de crédito revierte.
type DocumentoAfectado struct {
	Documento string `json:"documento"`
	Serie     string `json:"serie"`
	Numero    int    `json:"numero"`
}

// Respuesta es el response JSON de APISUNAT.
type Respuesta struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Payload *Payload `json:"payload"`
}

// Payload del acuse cuando el envío fue procesado.
type Payload struct {
	Estado string `json:"estado"` // "ACEPTADO", "PENDIENTE", "RECHAZADO"
	Hash   string `json:"hash"`
	XML    string `json:"xml"` // URL del XML firmado
	Cdr    string `json:"cdr"` // URL del CDR
	Pdf    *Pdf   `json:"pdf"`
}

// Pdf URLs de representación impresa.
type Pdf struct {
	Ticket string `json:"ticket"`
	A4     string `json:"a4"`
}

// UltimoNumeroRespuesta es el response de GET /documents/last?serie=X.
type UltimoNumeroRespuesta struct {
	Serie  string `json:"serie"`
	Numero int    `json:"numero"`
}
