package cash_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/libreria-pos/internal/application/apptest"
	"github.com/tu-usuario/libreria-pos/internal/application/cash"
	"github.com/tu-usuario/libreria-pos/internal/domain"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/pkg/logger"
)

func nuevoUseCase(store *apptest.Store, requiereCajaAbierta bool) *cash.CajaUseCase {
	return cash.NewCajaUseCase(
		&apptest.SesionCajaRepo{Store: store},
		&apptest.MovimientoCajaRepo{Store: store},
		requiereCajaAbierta,
		logger.Nop(),
	)
}

func TestOpen_UnaSesionPorUsuario(t *testing.T) {
	store := apptest.NewStore()
	uc := nuevoUseCase(store, true)

	s, err := uc.Open(context.Background(), "u1", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, entity.SesionAbierta, s.Estado)
	assert.True(t, s.MontoInicial.Equal(decimal.NewFromInt(100)))

	_, err = uc.Open(context.Background(), "u1", decimal.NewFromInt(50))
	assert.ErrorIs(t, err, domain.ErrCajaYaAbierta)

	// otro usuario sí puede abrir su propia sesión
	_, err = uc.Open(context.Background(), "u2", decimal.Zero)
	assert.NoError(t, err)
}

func TestRecord_SinSesion(t *testing.T) {
	store := apptest.NewStore()

	// con la política activa, sin sesión abierta el movimiento se rechaza
	uc := nuevoUseCase(store, true)
	_, err := uc.Record(context.Background(), "u1", entity.MovimientoIngreso, "VENTA B001-1", decimal.NewFromInt(10), "")
	assert.ErrorIs(t, err, domain.ErrCajaCerrada)

	// con la política desactivada, el movimiento queda sin sesión
	uc = nuevoUseCase(store, false)
	m, err := uc.Record(context.Background(), "u1", entity.MovimientoIngreso, "VENTA B001-1", decimal.NewFromInt(10), "")
	require.NoError(t, err)
	assert.Empty(t, m.SesionID)
}

func TestRecord_Validaciones(t *testing.T) {
	store := apptest.NewStore()
	uc := nuevoUseCase(store, false)

	_, err := uc.Record(context.Background(), "u1", "TRANSFERENCIA", "X", decimal.NewFromInt(1), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")

	_, err = uc.Record(context.Background(), "u1", entity.MovimientoEgreso, "X", decimal.Zero, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto cero")

	_, err = uc.Record(context.Background(), "u1", entity.MovimientoEgreso, "", decimal.NewFromInt(1), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "concepto vacío")
}

func TestBalance_InicialMasIngresosMenosEgresos(t *testing.T) {
	store := apptest.NewStore()
	uc := nuevoUseCase(store, true)

	_, err := uc.Open(context.Background(), "u1", decimal.NewFromInt(100))
	require.NoError(t, err)

	_, err = uc.Record(context.Background(), "u1", entity.MovimientoIngreso, "VENTA B001-1", decimal.NewFromFloat(23.60), "")
	require.NoError(t, err)
	_, err = uc.Record(context.Background(), "u1", entity.MovimientoIngreso, "VENTA B001-2", decimal.NewFromFloat(11.80), "")
	require.NoError(t, err)
	_, err = uc.Record(context.Background(), "u1", entity.MovimientoEgreso, "DEVOLUCIÓN NC C001-1", decimal.NewFromFloat(11.80), "")
	require.NoError(t, err)

	b, err := uc.Balance(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, b.Ingresos.Equal(decimal.NewFromFloat(35.40)), "ingresos: %s", b.Ingresos)
	assert.True(t, b.Egresos.Equal(decimal.NewFromFloat(11.80)), "egresos: %s", b.Egresos)
	assert.True(t, b.Saldo.Equal(decimal.NewFromFloat(123.60)), "saldo: %s", b.Saldo)
}

func TestClose_CalculaDiferencia(t *testing.T) {
	store := apptest.NewStore()
	uc := nuevoUseCase(store, true)

	_, err := uc.Open(context.Background(), "u1", decimal.NewFromInt(100))
	require.NoError(t, err)
	_, err = uc.Record(context.Background(), "u1", entity.MovimientoIngreso, "VENTA B001-1", decimal.NewFromInt(50), "")
	require.NoError(t, err)

	// el cajero cuenta 145: faltan 5
	s, err := uc.Close(context.Background(), "u1", decimal.NewFromInt(145))
	require.NoError(t, err)
	assert.Equal(t, entity.SesionCerrada, s.Estado)
	assert.True(t, s.MontoFinalCalculado.Equal(decimal.NewFromInt(150)))
	assert.True(t, s.Diferencia.Equal(decimal.NewFromInt(-5)), "diferencia negativa = faltante")
	require.NotNil(t, s.FechaFin)

	// cerrada la sesión, el usuario puede abrir otra
	_, err = uc.Open(context.Background(), "u1", decimal.NewFromInt(145))
	assert.NoError(t, err)
}

func TestClose_SinSesionAbierta(t *testing.T) {
	store := apptest.NewStore()
	uc := nuevoUseCase(store, true)

	_, err := uc.Close(context.Background(), "u1", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, domain.ErrCajaCerrada)
}

func TestMovimientos_SoloDeLaSesionAbierta(t *testing.T) {
	store := apptest.NewStore()
	uc := nuevoUseCase(store, true)

	_, err := uc.Open(context.Background(), "u1", decimal.NewFromInt(10))
	require.NoError(t, err)
	_, err = uc.Record(context.Background(), "u1", entity.MovimientoIngreso, "VENTA B001-1", decimal.NewFromInt(5), "")
	require.NoError(t, err)
	_, err = uc.Close(context.Background(), "u1", decimal.NewFromInt(15))
	require.NoError(t, err)

	// nueva sesión: el listado no arrastra movimientos de la anterior
	_, err = uc.Open(context.Background(), "u1", decimal.NewFromInt(15))
	require.NoError(t, err)
	movs, err := uc.Movimientos(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestMovimientosDelDia_CruzaSesiones(t *testing.T) {
	store := apptest.NewStore()
	uc := nuevoUseCase(store, true)

	// dos sesiones en el día, un movimiento en cada una
	_, err := uc.Open(context.Background(), "u1", decimal.NewFromInt(10))
	require.NoError(t, err)
	_, err = uc.Record(context.Background(), "u1", entity.MovimientoIngreso, "VENTA B001-1", decimal.NewFromInt(5), "")
	require.NoError(t, err)
	_, err = uc.Close(context.Background(), "u1", decimal.NewFromInt(15))
	require.NoError(t, err)

	_, err = uc.Open(context.Background(), "u1", decimal.NewFromInt(15))
	require.NoError(t, err)
	_, err = uc.Record(context.Background(), "u1", entity.MovimientoEgreso, "COMPRA DE ÚTILES", decimal.NewFromInt(3), "")
	require.NoError(t, err)

	movs, err := uc.MovimientosDelDia(context.Background())
	require.NoError(t, err)
	assert.Len(t, movs, 2, "el arqueo del día incluye sesiones ya cerradas")
}
