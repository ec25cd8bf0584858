package sunat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tu-usuario/libreria-pos/internal/application/billing"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/pkg/config"
	"github.com/tu-usuario/libreria-pos/pkg/logger"
)

var _ billing.Gateway = (*Client)(nil)

// Client habla con APISUNAT (PSE) por HTTP con bearer token y timeout acotado:
// el PSE caído no puede colgar la emisión de comprobantes.
type Client struct {
	baseURL string // endpoint de documentos, ej. https://back.apisunat.com/documents
	token   string
	http    *http.Client
	log     *logger.Logger
}

// NewClient construye el cliente con la configuración del PSE.
func NewClient(cfg config.SunatConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: cfg.Timeout()},
		log:     log,
	}
}

// EnviarVenta envía una boleta o factura al PSE.
func (c *Client) EnviarVenta(ctx context.Context, v *entity.Venta) (*billing.Acuse, error) {
	return c.enviar(ctx, mapVenta(v))
}

// EnviarNotaCredito envía una nota de crédito referenciando el comprobante original.
func (c *Client) EnviarNotaCredito(ctx context.Context, nc *entity.NotaCredito, original *entity.Venta) (*billing.Acuse, error) {
	return c.enviar(ctx, mapNotaCredito(nc, original))
}

func (c *Client) enviar(ctx context.Context, doc *Documento) (*billing.Acuse, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal documento: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("enviar a PSE: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("leer respuesta PSE: %w", err)
	}
	c.log.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Str("documento", doc.Documento).
		Str("serie", doc.Serie).
		Int("numero", doc.Numero).
		Msg("respuesta del PSE")

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("PSE respondió %d: %s", resp.StatusCode, truncate(raw))
	}

	var r Respuesta
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("decodificar respuesta PSE: %w", err)
	}

	acuse := &billing.Acuse{Mensaje: r.Message}
	if r.Payload != nil {
		acuse.Estado = r.Payload.Estado
		acuse.Hash = r.Payload.Hash
		acuse.XMLURL = r.Payload.XML
		acuse.CdrURL = r.Payload.Cdr
		if r.Payload.Pdf != nil {
			acuse.PdfURL = r.Payload.Pdf.Ticket
			if acuse.PdfURL == "" {
				acuse.PdfURL = r.Payload.Pdf.A4
			}
		}
	}
	acuse.Aceptado = r.Success && acuse.Estado == "ACEPTADO"
	return acuse, nil
}

// UltimoNumero consulta el último número emitido en el PSE para una serie
// (GET /documents/last?serie=X).
func (c *Client) UltimoNumero(ctx context.Context, tipoComprobante, serie string) (int, error) {
	url := strings.Replace(c.baseURL, "/documents", "/documents/last", 1) + "?serie=" + serie
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("crear request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("consultar PSE: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, fmt.Errorf("PSE respondió %d: %s", resp.StatusCode, truncate(raw))
	}

	var r UltimoNumeroRespuesta
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return 0, fmt.Errorf("decodificar respuesta PSE: %w", err)
	}
	return r.Numero, nil
}

func truncate(b []byte) string {
	const max = 300
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
