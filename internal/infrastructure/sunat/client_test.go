package sunat_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/internal/infrastructure/sunat"
	"github.com/tu-usuario/libreria-pos/pkg/config"
	"github.com/tu-usuario/libreria-pos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func nuevoCliente(t *testing.T, handler http.HandlerFunc) *sunat.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return sunat.NewClient(config.SunatConfig{
		URL:            srv.URL + "/documents",
		Token:          "token-prueba",
		TimeoutSeconds: 5,
	}, logger.Nop())
}

func boletaEmitida() *entity.Venta {
	return &entity.Venta{
		TipoComprobante: entity.ComprobanteBoleta,
		Serie:           "B001",
		Numero:          7,
		FechaEmision:    time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
		Moneda:          "PEN",
		TipoOperacion:   "0101",
		FormaPago:       entity.FormaPagoContado,

		ClienteTipoDocumento:   "1",
		ClienteNumeroDocumento: "45678912",
		ClienteDenominacion:    "Juan Pérez",

		Total: decimal.RequireFromString("23.60"),
		Items: []*entity.DetalleVenta{{
			ProductoID:              "p1",
			Descripcion:             "Cuaderno A4",
			UnidadMedida:            "NIU",
			Cantidad:                decimal.NewFromInt(2),
			ValorUnitario:           decimal.RequireFromString("10.000000"),
			PorcentajeIGV:           decimal.NewFromInt(18),
			CodigoTipoAfectacionIGV: "10",
		}},
	}
}

func leerBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Envío de comprobantes
// ──────────────────────────────────────────────────────────────────────────────

func TestEnviarVenta_AceptadoParseaElAcuse(t *testing.T) {
	var recibido map[string]any
	cli := nuevoCliente(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/documents", r.URL.Path)
		assert.Equal(t, "Bearer token-prueba", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		recibido = leerBody(t, r)

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"payload": map[string]any{
				"estado": "ACEPTADO",
				"hash":   "abc123==",
				"xml":    "https://pse.test/b001-7.xml",
				"cdr":    "https://pse.test/r-b001-7.zip",
				"pdf":    map[string]any{"ticket": "https://pse.test/b001-7-ticket.pdf", "a4": "https://pse.test/b001-7-a4.pdf"},
			},
		})
	})

	acuse, err := cli.EnviarVenta(context.Background(), boletaEmitida())
	require.NoError(t, err)

	assert.True(t, acuse.Aceptado)
	assert.Equal(t, "ACEPTADO", acuse.Estado)
	assert.Equal(t, "abc123==", acuse.Hash)
	assert.Equal(t, "https://pse.test/b001-7.xml", acuse.XMLURL)
	assert.Equal(t, "https://pse.test/r-b001-7.zip", acuse.CdrURL)
	assert.Equal(t, "https://pse.test/b001-7-ticket.pdf", acuse.PdfURL, "prefiere el ticket sobre el A4")

	// El wire lleva los montos como string con la escala fijada en la emisión.
	assert.Equal(t, "boleta", recibido["documento"])
	assert.Equal(t, "B001", recibido["serie"])
	assert.Equal(t, float64(7), recibido["numero"])
	assert.Equal(t, "2025-03-14", recibido["fecha_de_emision"])
	assert.Equal(t, "23.60", recibido["total"])
	assert.Equal(t, "1", recibido["cliente_tipo_de_documento"])
	assert.Equal(t, "45678912", recibido["cliente_numero_de_documento"])

	items := recibido["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "10.000000", item["valor_unitario"])
	assert.Equal(t, "2", item["cantidad"])
	assert.Equal(t, "10", item["codigo_tipo_afectacion_igv"])
	assert.Equal(t, "IGV", item["nombre_tributo"])
	_, tieneCuotas := recibido["cuotas"]
	assert.False(t, tieneCuotas, "una venta al contado no lleva cuotas")
}

func TestEnviarVenta_CreditoLlevaCuotas(t *testing.T) {
	var recibido map[string]any
	cli := nuevoCliente(t, func(w http.ResponseWriter, r *http.Request) {
		recibido = leerBody(t, r)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "payload": map[string]any{"estado": "ACEPTADO"}})
	})

	v := boletaEmitida()
	v.FormaPago = entity.FormaPagoCredito
	v.FechaVencimiento = time.Date(2025, 3, 29, 0, 0, 0, 0, time.UTC)

	_, err := cli.EnviarVenta(context.Background(), v)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-29", recibido["fecha_de_vencimiento"])
	cuotas := recibido["cuotas"].([]any)
	require.Len(t, cuotas, 1)
	cuota := cuotas[0].(map[string]any)
	assert.Equal(t, "23.60", cuota["importe"])
	assert.Equal(t, "2025-03-29", cuota["fecha_de_pago"])
}

func TestEnviarVenta_RechazoNoEsErrorDeComunicacion(t *testing.T) {
	cli := nuevoCliente(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "2017: numero de documento del receptor no válido",
			"payload": map[string]any{"estado": "RECHAZADO"},
		})
	})

	acuse, err := cli.EnviarVenta(context.Background(), boletaEmitida())
	require.NoError(t, err, "el rechazo es un acuse, no un fallo de red")

	assert.False(t, acuse.Aceptado)
	assert.Equal(t, "RECHAZADO", acuse.Estado)
	assert.Contains(t, acuse.Mensaje, "2017")
}

func TestEnviarVenta_ErrorDelServidor(t *testing.T) {
	cli := nuevoCliente(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	})

	acuse, err := cli.EnviarVenta(context.Background(), boletaEmitida())
	require.Error(t, err)
	assert.Nil(t, acuse)
	assert.Contains(t, err.Error(), "500")
}

func TestEnviarNotaCredito_ReferenciaElComprobanteOriginal(t *testing.T) {
	var recibido map[string]any
	cli := nuevoCliente(t, func(w http.ResponseWriter, r *http.Request) {
		recibido = leerBody(t, r)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "payload": map[string]any{"estado": "ACEPTADO"}})
	})

	original := boletaEmitida()
	nc := &entity.NotaCredito{
		Serie:            "C001",
		Numero:           3,
		FechaEmision:     time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC),
		MotivoDevolucion: entity.MotivoProductoDefectuoso,
		TotalDevuelto:    decimal.RequireFromString("11.80"),
		Detalles: []*entity.DetalleNotaCredito{{
			ProductoID:     "p1",
			Descripcion:    "Cuaderno A4",
			Cantidad:       decimal.NewFromInt(1),
			PrecioUnitario: decimal.RequireFromString("11.80"),
		}},
	}

	_, err := cli.EnviarNotaCredito(context.Background(), nc, original)
	require.NoError(t, err)

	assert.Equal(t, "nota_credito", recibido["documento"])
	assert.Equal(t, "C001", recibido["serie"])
	assert.Equal(t, "01", recibido["nota_credito_codigo_tipo"])
	assert.Equal(t, "Producto defectuoso o en mal estado", recibido["nota_credito_motivo"])
	assert.Equal(t, "11.80", recibido["total"])

	afectado := recibido["documento_afectado"].(map[string]any)
	assert.Equal(t, "boleta", afectado["documento"])
	assert.Equal(t, "B001", afectado["serie"])
	assert.Equal(t, float64(7), afectado["numero"])

	// La línea toma el valor unitario y la afectación del comprobante original.
	item := recibido["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "10.000000", item["valor_unitario"])
	assert.Equal(t, "10", item["codigo_tipo_afectacion_igv"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Consulta de numeración
// ──────────────────────────────────────────────────────────────────────────────

func TestUltimoNumero_ConsultaPorSerie(t *testing.T) {
	cli := nuevoCliente(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/documents/last", r.URL.Path)
		assert.Equal(t, "B001", r.URL.Query().Get("serie"))
		assert.Equal(t, "Bearer token-prueba", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"serie": "B001", "numero": 42})
	})

	n, err := cli.UltimoNumero(context.Background(), entity.ComprobanteBoleta, "B001")
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestUltimoNumero_ErrorDelPSE(t *testing.T) {
	cli := nuevoCliente(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "serie desconocida", http.StatusNotFound)
	})

	_, err := cli.UltimoNumero(context.Background(), entity.ComprobanteBoleta, "X999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
