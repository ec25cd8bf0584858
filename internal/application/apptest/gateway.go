package apptest

import (
	"context"
	"strconv"
	"sync"

	"github.com/tu-usuario/libreria-pos/internal/application/billing"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
)

// Gateway es un doble del PSE: responde con el acuse configurado y registra
// cada envío para poder inspeccionarlo en los tests.
type Gateway struct {
	mu sync.Mutex

	// Acuse a devolver en el siguiente envío. Por defecto ACEPTADO.
	Acuse *billing.Acuse
	// Err fuerza un fallo de comunicación (el acuse se ignora).
	Err error

	// UltimosNumeros respuesta de UltimoNumero por serie.
	UltimosNumeros map[string]int

	VentasEnviadas []string // identificadores "B001-1"
	NotasEnviadas  []string
}

var _ billing.Gateway = (*Gateway)(nil)

// NewGateway construye un gateway que acepta todo.
func NewGateway() *Gateway {
	return &Gateway{
		Acuse: &billing.Acuse{
			Aceptado: true,
			Estado:   entity.SunatAceptado,
			Hash:     "hash-test",
			XMLURL:   "https://pse.test/doc.xml",
			CdrURL:   "https://pse.test/doc-cdr.zip",
			PdfURL:   "https://pse.test/doc.pdf",
		},
		UltimosNumeros: map[string]int{},
	}
}

// Rechazar configura el gateway para responder RECHAZADO con el mensaje dado.
func (g *Gateway) Rechazar(mensaje string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Acuse = &billing.Acuse{Aceptado: false, Estado: entity.SunatRechazado, Mensaje: mensaje}
	g.Err = nil
}

// Pendiente configura el gateway para responder PENDIENTE (la autoridad aún
// no resuelve el comprobante).
func (g *Gateway) Pendiente() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Acuse = &billing.Acuse{Aceptado: false, Estado: entity.SunatPendiente, Mensaje: "documento en cola"}
	g.Err = nil
}

// Fallar configura el gateway para fallar la comunicación.
func (g *Gateway) Fallar(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Err = err
}

// Aceptar restaura la respuesta ACEPTADO por defecto.
func (g *Gateway) Aceptar() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Err = nil
	g.Acuse = &billing.Acuse{
		Aceptado: true,
		Estado:   entity.SunatAceptado,
		Hash:     "hash-test",
		XMLURL:   "https://pse.test/doc.xml",
		CdrURL:   "https://pse.test/doc-cdr.zip",
		PdfURL:   "https://pse.test/doc.pdf",
	}
}

// EnviarVenta implementa billing.Gateway.
func (g *Gateway) EnviarVenta(ctx context.Context, v *entity.Venta) (*billing.Acuse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	g.VentasEnviadas = append(g.VentasEnviadas, identificador(v.Serie, v.Numero))
	a := *g.Acuse
	return &a, nil
}

// EnviarNotaCredito implementa billing.Gateway.
func (g *Gateway) EnviarNotaCredito(ctx context.Context, nc *entity.NotaCredito, original *entity.Venta) (*billing.Acuse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	g.NotasEnviadas = append(g.NotasEnviadas, identificador(nc.Serie, nc.Numero))
	a := *g.Acuse
	return &a, nil
}

// UltimoNumero implementa billing.Gateway.
func (g *Gateway) UltimoNumero(ctx context.Context, tipo, serie string) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return 0, g.Err
	}
	return g.UltimosNumeros[serie], nil
}

func identificador(serie string, numero int) string {
	return serie + "-" + strconv.Itoa(numero)
}
