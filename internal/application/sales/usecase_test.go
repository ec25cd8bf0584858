package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/libreria-pos/internal/application/apptest"
	"github.com/tu-usuario/libreria-pos/internal/application/billing"
	"github.com/tu-usuario/libreria-pos/internal/application/cash"
	"github.com/tu-usuario/libreria-pos/internal/application/inventory"
	"github.com/tu-usuario/libreria-pos/internal/application/sales"
	"github.com/tu-usuario/libreria-pos/internal/domain"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/pkg/config"
	"github.com/tu-usuario/libreria-pos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var politicaTest = config.PoliticaConfig{
	IGVPorcentaje:       18,
	DiasDevolucion:      30,
	DiasCreditoDefault:  7,
	RequiereCajaAbierta: true,
}

type entorno struct {
	store   *apptest.Store
	caja    *cash.CajaUseCase
	gateway *apptest.Gateway
	ventas  *sales.VentaUseCase
}

// nuevoEntorno arma el caso de uso de ventas completo sobre fakes.
// Con sunatActiva, el submitter es el caso de uso de envío real contra un
// gateway fake.
func nuevoEntorno(t *testing.T, sunatActiva bool) *entorno {
	t.Helper()
	store := apptest.NewStore()
	runner := apptest.NewTxRunner(store)
	log := logger.Nop()

	inventarioUC := inventory.NewMovementUseCase(runner, &apptest.KardexRepo{Store: store}, &apptest.ProductoRepo{Store: store}, false, log)
	cajaUC := cash.NewCajaUseCase(&apptest.SesionCajaRepo{Store: store}, &apptest.MovimientoCajaRepo{Store: store}, true, log)

	var submitter sales.Submitter
	gateway := apptest.NewGateway()
	if sunatActiva {
		submitter = billing.NewSubmitUseCase(&apptest.VentaRepo{Store: store}, &apptest.NotaCreditoRepo{Store: store}, gateway, log)
	}

	ventasUC := sales.NewVentaUseCase(
		runner, inventarioUC, cajaUC,
		&apptest.VentaRepo{Store: store}, &apptest.ClienteRepo{Store: store},
		submitter, sunatActiva, politicaTest, log,
	)
	return &entorno{store: store, caja: cajaUC, gateway: gateway, ventas: ventasUC}
}

func clienteDNI() sales.ClienteInput {
	return sales.ClienteInput{NumeroDocumento: "45678912", Denominacion: "María Quispe"}
}

func clienteRUC() sales.ClienteInput {
	return sales.ClienteInput{NumeroDocumento: "20123456789", Denominacion: "Librería San Marcos SAC", Direccion: "Av. Grau 123, Lima"}
}

func boletaContado(productoID string, cantidad, precio decimal.Decimal) sales.CreateInput {
	return sales.CreateInput{
		TipoComprobante: entity.ComprobanteBoleta,
		FormaPago:       entity.FormaPagoContado,
		MetodoPago:      entity.MetodoPagoEfectivo,
		Cliente:         clienteDNI(),
		Items:           []sales.ItemInput{{ProductoID: productoID, Cantidad: cantidad, PrecioUnitario: precio}},
		UsuarioID:       "u1",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Emisión
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ContadoEfectivo(t *testing.T) {
	e := nuevoEntorno(t, false)
	productoID := e.store.SeedProducto("Diccionario escolar", decimal.NewFromFloat(11.80), 10)
	_, err := e.caja.Open(context.Background(), "u1", decimal.NewFromInt(100))
	require.NoError(t, err)

	res, err := e.ventas.Create(context.Background(), boletaContado(productoID, decimal.NewFromInt(2), decimal.NewFromFloat(11.80)))
	require.NoError(t, err)
	v := res.Venta

	// numeración y serie interna (facturación electrónica inactiva)
	assert.Equal(t, "I001", v.Serie)
	assert.Equal(t, 1, v.Numero)
	assert.Equal(t, entity.SunatNoAplica, v.Sunat.Estado)

	// totales: 2 × 11.80 = 23.60; base = 23.60/1.18 = 20.00; IGV = 3.60
	assert.True(t, v.Total.Equal(decimal.NewFromFloat(23.60)), "total: %s", v.Total)
	assert.True(t, v.TotalGravada.Equal(decimal.NewFromFloat(20.00)), "base: %s", v.TotalGravada)
	assert.True(t, v.TotalIGV.Equal(decimal.NewFromFloat(3.60)), "igv: %s", v.TotalIGV)
	assert.True(t, v.TotalGravada.Add(v.TotalIGV).Equal(v.Total), "base + IGV debe ser el total exacto")

	// contado queda liquidado de inmediato
	assert.Equal(t, entity.EstadoPagadoTotal, v.Estado)
	assert.True(t, v.SaldoPendiente.IsZero())
	assert.True(t, v.MontoPagado.Equal(v.Total))

	// línea: valor unitario sin IGV a 6 decimales
	require.Len(t, v.Items, 1)
	assert.True(t, v.Items[0].ValorUnitario.Equal(decimal.NewFromFloat(10)), "valor unitario: %s", v.Items[0].ValorUnitario)

	// stock descontado con kardex
	assert.Equal(t, 8, e.store.StockDe(productoID))
	require.Len(t, e.store.Kardex, 1)
	assert.Equal(t, entity.KardexSalida, e.store.Kardex[0].Tipo)
	assert.Equal(t, "VENTA I001-1", e.store.Kardex[0].Motivo)

	// amortización por el total y su ingreso a caja
	require.Len(t, e.store.Amortizaciones, 1)
	assert.True(t, e.store.Amortizaciones[0].Monto.Equal(v.Total))
	require.Len(t, e.store.MovimientosCaja, 1)
	assert.Equal(t, entity.MovimientoIngreso, e.store.MovimientosCaja[0].Tipo)
	assert.True(t, e.store.MovimientosCaja[0].Monto.Equal(v.Total))
	assert.Equal(t, "VENTA I001-1 (EFECTIVO)", e.store.MovimientosCaja[0].Concepto)
	assert.Empty(t, res.CashWarning)
}

// El ingreso a caja se registra para todo contado, no solo efectivo: el pago
// con billetera o tarjeta también entra al arqueo, con el método en el concepto.
func TestCreate_ContadoYapeRegistraIngreso(t *testing.T) {
	e := nuevoEntorno(t, false)
	productoID := e.store.SeedProducto("Mochila escolar", decimal.NewFromFloat(59.00), 4)
	_, err := e.caja.Open(context.Background(), "u1", decimal.NewFromInt(100))
	require.NoError(t, err)

	input := boletaContado(productoID, decimal.NewFromInt(1), decimal.NewFromFloat(59.00))
	input.MetodoPago = "YAPE"
	res, err := e.ventas.Create(context.Background(), input)
	require.NoError(t, err)

	require.Len(t, e.store.MovimientosCaja, 1)
	mov := e.store.MovimientosCaja[0]
	assert.Equal(t, entity.MovimientoIngreso, mov.Tipo)
	assert.True(t, mov.Monto.Equal(res.Venta.Total))
	assert.Equal(t, "VENTA I001-1 (YAPE)", mov.Concepto)
	assert.Empty(t, res.CashWarning)
}

func TestCreate_Credito(t *testing.T) {
	e := nuevoEntorno(t, false)
	productoID := e.store.SeedProducto("Atlas", decimal.NewFromInt(59), 5)

	input := sales.CreateInput{
		TipoComprobante: entity.ComprobanteFactura,
		FormaPago:       entity.FormaPagoCredito,
		MetodoPago:      "TRANSFERENCIA",
		DiasCredito:     15,
		Cliente:         clienteRUC(),
		Items:           []sales.ItemInput{{ProductoID: productoID, Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.NewFromInt(59)}},
		UsuarioID:       "u1",
	}
	res, err := e.ventas.Create(context.Background(), input)
	require.NoError(t, err)
	v := res.Venta

	assert.Equal(t, entity.EstadoEmitido, v.Estado)
	assert.True(t, v.MontoPagado.IsZero())
	assert.True(t, v.SaldoPendiente.Equal(v.Total))
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 15), v.FechaVencimiento, time.Minute)

	// a crédito no hay amortización ni movimiento de caja en la emisión
	assert.Empty(t, e.store.Amortizaciones)
	assert.Empty(t, e.store.MovimientosCaja)
}

func TestCreate_FacturaExigeRUC(t *testing.T) {
	e := nuevoEntorno(t, false)
	productoID := e.store.SeedProducto("Separatas", decimal.NewFromInt(10), 5)

	input := sales.CreateInput{
		TipoComprobante: entity.ComprobanteFactura,
		FormaPago:       entity.FormaPagoContado,
		MetodoPago:      entity.MetodoPagoEfectivo,
		Cliente:         clienteDNI(), // DNI de 8 dígitos
		Items:           []sales.ItemInput{{ProductoID: productoID, Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.NewFromInt(10)}},
		UsuarioID:       "u1",
	}
	_, err := e.ventas.Create(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_StockInsuficienteRevierteTodo(t *testing.T) {
	e := nuevoEntorno(t, false)
	conStock := e.store.SeedProducto("Cuaderno", decimal.NewFromInt(5), 10)
	sinStock := e.store.SeedProducto("Agenda", decimal.NewFromInt(20), 1)

	input := sales.CreateInput{
		TipoComprobante: entity.ComprobanteBoleta,
		FormaPago:       entity.FormaPagoContado,
		MetodoPago:      entity.MetodoPagoEfectivo,
		Cliente:         clienteDNI(),
		Items: []sales.ItemInput{
			{ProductoID: conStock, Cantidad: decimal.NewFromInt(2), PrecioUnitario: decimal.NewFromInt(5)},
			{ProductoID: sinStock, Cantidad: decimal.NewFromInt(3), PrecioUnitario: decimal.NewFromInt(20)},
		},
		UsuarioID: "u1",
	}
	_, err := e.ventas.Create(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrStockInsuficiente)

	// rollback completo: ni venta, ni kardex, ni descuento parcial de la primera línea
	assert.Empty(t, e.store.Ventas)
	assert.Empty(t, e.store.Kardex)
	assert.Equal(t, 10, e.store.StockDe(conStock))
	assert.Equal(t, 1, e.store.StockDe(sinStock))

	// el número descartado se reutiliza: la siguiente emisión recibe el 1
	_, err = e.caja.Open(context.Background(), "u1", decimal.Zero)
	require.NoError(t, err)
	res, err := e.ventas.Create(context.Background(), boletaContado(conStock, decimal.NewFromInt(1), decimal.NewFromInt(5)))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Venta.Numero)
}

func TestCreate_CajaCerradaDegradaAAdvertencia(t *testing.T) {
	e := nuevoEntorno(t, false)
	productoID := e.store.SeedProducto("Plumones", decimal.NewFromInt(12), 6)

	// sin sesión de caja abierta
	res, err := e.ventas.Create(context.Background(), boletaContado(productoID, decimal.NewFromInt(1), decimal.NewFromInt(12)))
	require.NoError(t, err, "la emisión no debe fallar por la caja")

	assert.NotEmpty(t, res.CashWarning)
	assert.Equal(t, entity.EstadoPagadoTotal, res.Venta.Estado)
	assert.NotNil(t, e.store.VentaGuardada(res.Venta.ID), "el comprobante queda persistido")
	assert.Empty(t, e.store.MovimientosCaja)
}

func TestCreate_ServicioNoMueveStock(t *testing.T) {
	e := nuevoEntorno(t, false)
	servicioID := e.store.SeedServicio("Forrado de libros", decimal.NewFromInt(5))
	_, err := e.caja.Open(context.Background(), "u1", decimal.Zero)
	require.NoError(t, err)

	res, err := e.ventas.Create(context.Background(), boletaContado(servicioID, decimal.NewFromInt(3), decimal.NewFromInt(5)))
	require.NoError(t, err)

	assert.Empty(t, e.store.Kardex, "un servicio no genera kardex")
	assert.Equal(t, 0, e.store.StockDe(servicioID))
	assert.Equal(t, "ZZ", res.Venta.Items[0].UnidadMedida)
}

// Un producto con control de stock solo se vende en unidades enteras; el
// rechazo es inmediato y con error propio, no un fallo genérico del kardex.
func TestCreate_CantidadFraccionariaConStock(t *testing.T) {
	e := nuevoEntorno(t, false)
	productoID := e.store.SeedProducto("Cinta adhesiva", decimal.NewFromInt(4), 10)
	_, err := e.caja.Open(context.Background(), "u1", decimal.Zero)
	require.NoError(t, err)

	_, err = e.ventas.Create(context.Background(), boletaContado(productoID, decimal.NewFromFloat(0.5), decimal.NewFromInt(4)))
	assert.ErrorIs(t, err, domain.ErrCantidadFraccionaria)
	assert.Empty(t, e.store.Kardex, "nada llega al kardex")
	assert.Equal(t, 10, e.store.StockDe(productoID))
	assert.Empty(t, e.store.Ventas, "el comprobante no se persiste")

	// un servicio sí admite fracciones (horas, metros)
	servicioID := e.store.SeedServicio("Plastificado por metro", decimal.NewFromInt(2))
	res, err := e.ventas.Create(context.Background(), boletaContado(servicioID, decimal.NewFromFloat(1.5), decimal.NewFromInt(2)))
	require.NoError(t, err)
	assert.True(t, res.Venta.Total.Equal(decimal.NewFromInt(3)), "total: %s", res.Venta.Total)
}

func TestCreate_NumeracionConsecutivaPorSerie(t *testing.T) {
	e := nuevoEntorno(t, false)
	productoID := e.store.SeedProducto("Lápiz", decimal.NewFromInt(1), 100)
	_, err := e.caja.Open(context.Background(), "u1", decimal.Zero)
	require.NoError(t, err)

	for esperado := 1; esperado <= 3; esperado++ {
		res, err := e.ventas.Create(context.Background(), boletaContado(productoID, decimal.NewFromInt(1), decimal.NewFromInt(1)))
		require.NoError(t, err)
		assert.Equal(t, esperado, res.Venta.Numero)
	}

	// una serie distinta lleva su propio contador
	nv := sales.CreateInput{
		TipoComprobante: entity.ComprobanteNotaVenta,
		FormaPago:       entity.FormaPagoContado,
		MetodoPago:      entity.MetodoPagoEfectivo,
		Cliente:         clienteDNI(),
		Items:           []sales.ItemInput{{ProductoID: productoID, Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.NewFromInt(1)}},
		UsuarioID:       "u1",
	}
	res, err := e.ventas.Create(context.Background(), nv)
	require.NoError(t, err)
	assert.Equal(t, "NI001", res.Venta.Serie)
	assert.Equal(t, 1, res.Venta.Numero)
}

func TestCreate_ClienteSeReutilizaPorDocumento(t *testing.T) {
	e := nuevoEntorno(t, false)
	productoID := e.store.SeedProducto("Tajador", decimal.NewFromInt(2), 10)
	_, err := e.caja.Open(context.Background(), "u1", decimal.Zero)
	require.NoError(t, err)

	res1, err := e.ventas.Create(context.Background(), boletaContado(productoID, decimal.NewFromInt(1), decimal.NewFromInt(2)))
	require.NoError(t, err)

	// mismo documento con denominación distinta: reutiliza el cliente y lo actualiza
	in := boletaContado(productoID, decimal.NewFromInt(1), decimal.NewFromInt(2))
	in.Cliente.Denominacion = "María Quispe Huamán"
	res2, err := e.ventas.Create(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, res1.Venta.ClienteID, res2.Venta.ClienteID)
	assert.Len(t, e.store.Clientes, 1)
	assert.Equal(t, "María Quispe Huamán", e.store.Clientes[res2.Venta.ClienteID].NombreRazonSocial)
}

// ──────────────────────────────────────────────────────────────────────────────
// PSE
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ElectronicoAceptado(t *testing.T) {
	e := nuevoEntorno(t, true)
	productoID := e.store.SeedProducto("Enciclopedia", decimal.NewFromInt(118), 4)
	_, err := e.caja.Open(context.Background(), "u1", decimal.Zero)
	require.NoError(t, err)

	res, err := e.ventas.Create(context.Background(), boletaContado(productoID, decimal.NewFromInt(1), decimal.NewFromInt(118)))
	require.NoError(t, err)

	assert.Equal(t, "B001", res.Venta.Serie, "con facturación electrónica se usa la serie oficial")
	assert.Equal(t, entity.SunatAceptado, res.Venta.Sunat.Estado)
	assert.Equal(t, "hash-test", res.Venta.Sunat.Hash)
	assert.NotNil(t, res.Venta.Sunat.FechaEnvio)
	assert.Equal(t, []string{"B001-1"}, e.gateway.VentasEnviadas)
}

func TestCreate_FalloDePSENoInvalidaLaVenta(t *testing.T) {
	e := nuevoEntorno(t, true)
	productoID := e.store.SeedProducto("Revistas", decimal.NewFromInt(10), 5)
	e.gateway.Fallar(errors.New("timeout al PSE"))
	_, err := e.caja.Open(context.Background(), "u1", decimal.Zero)
	require.NoError(t, err)

	res, err := e.ventas.Create(context.Background(), boletaContado(productoID, decimal.NewFromInt(1), decimal.NewFromInt(10)))
	require.NoError(t, err, "el comprobante vale aunque el PSE no responda")

	guardada := e.store.VentaGuardada(res.Venta.ID)
	require.NotNil(t, guardada)
	assert.Equal(t, entity.SunatError, guardada.Sunat.Estado)
	assert.Contains(t, guardada.Sunat.MensajeError, "timeout")
	assert.Equal(t, entity.EstadoPagadoTotal, guardada.Estado)
	assert.Equal(t, 4, e.store.StockDe(productoID), "el stock queda descontado igual")
}

func TestCreate_NotaVentaNoSeEnvia(t *testing.T) {
	e := nuevoEntorno(t, true)
	productoID := e.store.SeedProducto("Sobres", decimal.NewFromInt(1), 50)
	_, err := e.caja.Open(context.Background(), "u1", decimal.Zero)
	require.NoError(t, err)

	input := sales.CreateInput{
		TipoComprobante: entity.ComprobanteNotaVenta,
		FormaPago:       entity.FormaPagoContado,
		MetodoPago:      entity.MetodoPagoEfectivo,
		Cliente:         clienteDNI(),
		Items:           []sales.ItemInput{{ProductoID: productoID, Cantidad: decimal.NewFromInt(5), PrecioUnitario: decimal.NewFromInt(1)}},
		UsuarioID:       "u1",
	}
	res, err := e.ventas.Create(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, entity.SunatNoAplica, res.Venta.Sunat.Estado)
	assert.Empty(t, e.gateway.VentasEnviadas, "un documento interno nunca llega al PSE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Anulación
// ──────────────────────────────────────────────────────────────────────────────

func TestVoid_RestituyeStockYRegistraEgreso(t *testing.T) {
	e := nuevoEntorno(t, false)
	productoID := e.store.SeedProducto("Colores x12", decimal.NewFromFloat(11.80), 10)
	_, err := e.caja.Open(context.Background(), "u1", decimal.NewFromInt(100))
	require.NoError(t, err)

	res, err := e.ventas.Create(context.Background(), boletaContado(productoID, decimal.NewFromInt(2), decimal.NewFromFloat(11.80)))
	require.NoError(t, err)
	require.Equal(t, 8, e.store.StockDe(productoID))

	vr, err := e.ventas.Void(context.Background(), res.Venta.ID, "u1")
	require.NoError(t, err)

	assert.Equal(t, entity.EstadoAnulado, vr.Venta.Estado)
	assert.Equal(t, 10, e.store.StockDe(productoID), "la anulación repone el stock")

	// kardex: SALIDA de la venta + ENTRADA de la anulación
	require.Len(t, e.store.Kardex, 2)
	assert.Equal(t, entity.KardexEntrada, e.store.Kardex[1].Tipo)
	assert.Equal(t, "ANULACIÓN VENTA I001-1", e.store.Kardex[1].Motivo)

	// caja: ingreso de la venta + egreso de la anulación
	require.Len(t, e.store.MovimientosCaja, 2)
	assert.Equal(t, entity.MovimientoEgreso, e.store.MovimientosCaja[1].Tipo)
	assert.True(t, e.store.MovimientosCaja[1].Monto.Equal(vr.Venta.MontoPagado))
	assert.Empty(t, vr.CashWarning)
}

// La anulación de un contado pagado con tarjeta también registra su egreso:
// el arqueo refleja la reversión sin importar el método de pago.
func TestVoid_ContadoTarjetaRegistraEgreso(t *testing.T) {
	e := nuevoEntorno(t, false)
	productoID := e.store.SeedProducto("Agenda 2026", decimal.NewFromFloat(35.40), 6)
	_, err := e.caja.Open(context.Background(), "u1", decimal.NewFromInt(100))
	require.NoError(t, err)

	input := boletaContado(productoID, decimal.NewFromInt(1), decimal.NewFromFloat(35.40))
	input.MetodoPago = "TARJETA"
	res, err := e.ventas.Create(context.Background(), input)
	require.NoError(t, err)

	vr, err := e.ventas.Void(context.Background(), res.Venta.ID, "u1")
	require.NoError(t, err)

	require.Len(t, e.store.MovimientosCaja, 2)
	mov := e.store.MovimientosCaja[1]
	assert.Equal(t, entity.MovimientoEgreso, mov.Tipo)
	assert.True(t, mov.Monto.Equal(vr.Venta.MontoPagado))
	assert.Equal(t, "ANULACIÓN VENTA I001-1 (TARJETA)", mov.Concepto)
}

func TestVoid_DobleAnulacion(t *testing.T) {
	e := nuevoEntorno(t, false)
	productoID := e.store.SeedProducto("Goma", decimal.NewFromInt(3), 5)
	_, err := e.caja.Open(context.Background(), "u1", decimal.Zero)
	require.NoError(t, err)

	res, err := e.ventas.Create(context.Background(), boletaContado(productoID, decimal.NewFromInt(1), decimal.NewFromInt(3)))
	require.NoError(t, err)
	_, err = e.ventas.Void(context.Background(), res.Venta.ID, "u1")
	require.NoError(t, err)

	_, err = e.ventas.Void(context.Background(), res.Venta.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrVentaAnulada)
	assert.Equal(t, 5, e.store.StockDe(productoID), "no debe reponer stock dos veces")
}

func TestVoid_ElectronicoAceptadoNoSeAnula(t *testing.T) {
	e := nuevoEntorno(t, true)
	productoID := e.store.SeedProducto("Témperas", decimal.NewFromInt(15), 5)
	_, err := e.caja.Open(context.Background(), "u1", decimal.Zero)
	require.NoError(t, err)

	res, err := e.ventas.Create(context.Background(), boletaContado(productoID, decimal.NewFromInt(1), decimal.NewFromInt(15)))
	require.NoError(t, err)
	require.Equal(t, entity.SunatAceptado, res.Venta.Sunat.Estado)

	_, err = e.ventas.Void(context.Background(), res.Venta.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrVentaNoAnulable,
		"un comprobante aceptado por SUNAT se revierte con nota de crédito, no con anulación local")
}

// ──────────────────────────────────────────────────────────────────────────────
// Cotizaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestQuote_SinStockNiCajaNiPSE(t *testing.T) {
	e := nuevoEntorno(t, true)
	productoID := e.store.SeedProducto("Mochila", decimal.NewFromFloat(59.00), 3)

	v, err := e.ventas.Quote(context.Background(), sales.QuoteInput{
		Cliente:   clienteDNI(),
		Items:     []sales.ItemInput{{ProductoID: productoID, Cantidad: decimal.NewFromInt(2), PrecioUnitario: decimal.NewFromFloat(59.00)}},
		UsuarioID: "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, "COT1", v.Serie)
	assert.Equal(t, 1, v.Numero)
	assert.Equal(t, entity.EstadoCotizado, v.Estado)
	assert.Equal(t, entity.SunatNoAplica, v.Sunat.Estado)
	assert.True(t, v.Total.Equal(decimal.NewFromFloat(118.00)))
	assert.True(t, v.SaldoPendiente.Equal(v.Total))

	assert.Equal(t, 3, e.store.StockDe(productoID), "cotizar no descuenta stock")
	assert.Empty(t, e.store.Kardex)
	assert.Empty(t, e.store.MovimientosCaja)
	assert.Empty(t, e.gateway.VentasEnviadas)
}

func TestVoid_CotizacionNoSeAnula(t *testing.T) {
	e := nuevoEntorno(t, false)
	productoID := e.store.SeedProducto("Microscopio", decimal.NewFromInt(250), 1)

	v, err := e.ventas.Quote(context.Background(), sales.QuoteInput{
		Cliente:   clienteDNI(),
		Items:     []sales.ItemInput{{ProductoID: productoID, Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.NewFromInt(250)}},
		UsuarioID: "u1",
	})
	require.NoError(t, err)

	_, err = e.ventas.Void(context.Background(), v.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrVentaNoAnulable)
}
