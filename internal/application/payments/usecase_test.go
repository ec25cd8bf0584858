package payments_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/libreria-pos/internal/application/apptest"
	"github.com/tu-usuario/libreria-pos/internal/application/cash"
	"github.com/tu-usuario/libreria-pos/internal/application/payments"
	"github.com/tu-usuario/libreria-pos/internal/domain"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/pkg/logger"
)

func nuevoUseCase(store *apptest.Store, requiereCajaAbierta bool) (*payments.CobranzaUseCase, *cash.CajaUseCase) {
	log := logger.Nop()
	cajaUC := cash.NewCajaUseCase(&apptest.SesionCajaRepo{Store: store}, &apptest.MovimientoCajaRepo{Store: store}, requiereCajaAbierta, log)
	uc := payments.NewCobranzaUseCase(apptest.NewTxRunner(store), cajaUC, &apptest.AmortizacionRepo{Store: store}, requiereCajaAbierta, log)
	return uc, cajaUC
}

// sembrarVentaCredito persiste una venta a crédito con el saldo dado.
func sembrarVentaCredito(t *testing.T, store *apptest.Store, saldo decimal.Decimal) *entity.Venta {
	t.Helper()
	v := &entity.Venta{
		ID:              uuid.NewString(),
		TipoComprobante: entity.ComprobanteBoleta,
		Serie:           "I001",
		Numero:          1,
		FormaPago:       entity.FormaPagoCredito,
		Total:           saldo,
		MontoPagado:     decimal.Zero,
		SaldoPendiente:  saldo,
		Estado:          entity.EstadoEmitido,
		Sunat:           entity.SunatEnvio{Estado: entity.SunatNoAplica},
	}
	repo := &apptest.VentaRepo{Store: store}
	require.NoError(t, repo.Create(v))
	return v
}

func TestRegisterPayment_PagoParcialYTotal(t *testing.T) {
	store := apptest.NewStore()
	uc, caja := nuevoUseCase(store, true)
	venta := sembrarVentaCredito(t, store, decimal.NewFromInt(100))
	_, err := caja.Open(context.Background(), "u1", decimal.Zero)
	require.NoError(t, err)

	a, err := uc.RegisterPayment(context.Background(), venta.ID, decimal.NewFromInt(40), entity.MetodoPagoEfectivo, "", "u1")
	require.NoError(t, err)
	assert.True(t, a.Monto.Equal(decimal.NewFromInt(40)))

	guardada := store.VentaGuardada(venta.ID)
	assert.Equal(t, entity.EstadoEmitido, guardada.Estado, "con saldo pendiente sigue EMITIDO")
	assert.True(t, guardada.SaldoPendiente.Equal(decimal.NewFromInt(60)))
	assert.True(t, guardada.MontoPagado.Equal(decimal.NewFromInt(40)))

	// el pago en efectivo entra a caja
	require.Len(t, store.MovimientosCaja, 1)
	assert.Equal(t, entity.MovimientoIngreso, store.MovimientosCaja[0].Tipo)
	assert.Equal(t, "COBRANZA VENTA I001-1", store.MovimientosCaja[0].Concepto)

	// el segundo pago liquida la venta
	_, err = uc.RegisterPayment(context.Background(), venta.ID, decimal.NewFromInt(60), entity.MetodoPagoEfectivo, "", "u1")
	require.NoError(t, err)
	guardada = store.VentaGuardada(venta.ID)
	assert.Equal(t, entity.EstadoPagadoTotal, guardada.Estado)
	assert.True(t, guardada.SaldoPendiente.IsZero())

	pagos, err := uc.ListByVenta(context.Background(), venta.ID)
	require.NoError(t, err)
	assert.Len(t, pagos, 2)
}

func TestRegisterPayment_EfectivoExigeCajaAbierta(t *testing.T) {
	store := apptest.NewStore()
	uc, _ := nuevoUseCase(store, true)
	venta := sembrarVentaCredito(t, store, decimal.NewFromInt(50))

	// sin sesión abierta, el pago en efectivo se rechaza de plano
	_, err := uc.RegisterPayment(context.Background(), venta.ID, decimal.NewFromInt(50), entity.MetodoPagoEfectivo, "", "u1")
	assert.ErrorIs(t, err, domain.ErrCajaCerrada)
	assert.Empty(t, store.Amortizaciones, "no debe quedar amortización de un pago rechazado")
	assert.True(t, store.VentaGuardada(venta.ID).SaldoPendiente.Equal(decimal.NewFromInt(50)))

	// otros métodos no pasan por caja
	_, err = uc.RegisterPayment(context.Background(), venta.ID, decimal.NewFromInt(50), "TRANSFERENCIA", "", "u1")
	assert.NoError(t, err)
}

func TestRegisterPayment_MontoNoExcedeSaldo(t *testing.T) {
	store := apptest.NewStore()
	uc, _ := nuevoUseCase(store, false)
	venta := sembrarVentaCredito(t, store, decimal.NewFromInt(30))

	_, err := uc.RegisterPayment(context.Background(), venta.ID, decimal.NewFromInt(31), "YAPE", "", "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.Amortizaciones)
}

func TestRegisterPayment_EstadosNoElegibles(t *testing.T) {
	store := apptest.NewStore()
	uc, _ := nuevoUseCase(store, false)

	anulada := sembrarVentaCredito(t, store, decimal.NewFromInt(10))
	g := store.VentaGuardada(anulada.ID)
	g.Estado = entity.EstadoAnulado
	repo := &apptest.VentaRepo{Store: store}
	require.NoError(t, repo.Update(g))
	_, err := uc.RegisterPayment(context.Background(), anulada.ID, decimal.NewFromInt(10), "YAPE", "", "u1")
	assert.ErrorIs(t, err, domain.ErrVentaAnulada)

	_, err = uc.RegisterPayment(context.Background(), "no-existe", decimal.NewFromInt(10), "YAPE", "", "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
