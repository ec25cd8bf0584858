package billing

import (
	"context"

	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
)

// Acuse es la respuesta normalizada del PSE a un envío.
type Acuse struct {
	Aceptado bool
	Estado   string // texto del PSE (ej. "ACEPTADO", "RECHAZADO")
	Hash     string
	XMLURL   string
	CdrURL   string
	PdfURL   string
	Mensaje  string
}

// Gateway es el puerto hacia el PSE de facturación electrónica (APISUNAT).
// Un error retornado significa fallo de comunicación (red, timeout, HTTP 5xx);
// un rechazo del documento llega como Acuse con Aceptado=false, sin error.
type Gateway interface {
	EnviarVenta(ctx context.Context, v *entity.Venta) (*Acuse, error)
	EnviarNotaCredito(ctx context.Context, nc *entity.NotaCredito, original *entity.Venta) (*Acuse, error)
	// UltimoNumero consulta el último número emitido en el PSE para una serie.
	UltimoNumero(ctx context.Context, tipoComprobante, serie string) (int, error)
}
