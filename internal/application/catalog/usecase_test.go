package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/libreria-pos/internal/application/apptest"
	"github.com/tu-usuario/libreria-pos/internal/application/catalog"
	"github.com/tu-usuario/libreria-pos/internal/application/inventory"
	"github.com/tu-usuario/libreria-pos/internal/domain"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/pkg/logger"
)

func nuevoCatalogo(store *apptest.Store) *catalog.ProductoUseCase {
	inv := inventory.NewMovementUseCase(
		apptest.NewTxRunner(store),
		&apptest.KardexRepo{Store: store},
		&apptest.ProductoRepo{Store: store},
		false,
		logger.Nop(),
	)
	return catalog.NewProductoUseCase(&apptest.ProductoRepo{Store: store}, inv, logger.Nop())
}

func TestCreate_StockInicialEntraPorKardex(t *testing.T) {
	store := apptest.NewStore()
	uc := nuevoCatalogo(store)

	p, err := uc.Create(context.Background(), catalog.CreateInput{
		Nombre:       "Cuaderno A4",
		Marca:        "Loro",
		PrecioVenta:  decimal.RequireFromString("11.80"),
		StockInicial: 24,
		UsuarioID:    "u-1",
	})
	require.NoError(t, err)

	assert.Equal(t, 24, p.Stock)
	assert.Equal(t, "NIU", p.UnidadMedida)
	assert.Equal(t, entity.AfectacionGravado, p.AfectacionIGV)
	assert.Equal(t, 24, store.StockDe(p.ID))

	require.Len(t, store.Kardex, 1)
	mov := store.Kardex[0]
	assert.Equal(t, entity.KardexEntrada, mov.Tipo)
	assert.Equal(t, "STOCK INICIAL", mov.Motivo)
	assert.Equal(t, 0, mov.StockAnterior)
	assert.Equal(t, 24, mov.StockActual)
}

func TestCreate_ServicioNoLlevaStock(t *testing.T) {
	store := apptest.NewStore()
	uc := nuevoCatalogo(store)

	p, err := uc.Create(context.Background(), catalog.CreateInput{
		Nombre:      "Plastificado de carnet",
		PrecioVenta: decimal.RequireFromString("5.00"),
		EsServicio:  true,
		UsuarioID:   "u-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "ZZ", p.UnidadMedida)
	assert.Zero(t, p.Stock)
	assert.Empty(t, store.Kardex)
}

func TestCreate_Validaciones(t *testing.T) {
	store := apptest.NewStore()
	uc := nuevoCatalogo(store)
	ctx := context.Background()

	_, err := uc.Create(ctx, catalog.CreateInput{Nombre: "", PrecioVenta: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, catalog.CreateInput{Nombre: "Regla", PrecioVenta: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el precio debe ser positivo")

	_, err = uc.Create(ctx, catalog.CreateInput{Nombre: "Regla", PrecioVenta: decimal.NewFromInt(5), StockInicial: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, catalog.CreateInput{Nombre: "Regla", PrecioVenta: decimal.NewFromInt(5), AfectacionIGV: "99"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_ProductoInexistente(t *testing.T) {
	store := apptest.NewStore()
	uc := nuevoCatalogo(store)

	_, err := uc.Get(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrProductoNoEncontrado)
}

func TestList_OrdenadoPorNombre(t *testing.T) {
	store := apptest.NewStore()
	uc := nuevoCatalogo(store)
	store.SeedProducto("Tajador", decimal.NewFromInt(2), 5)
	store.SeedProducto("Borrador", decimal.NewFromInt(1), 5)
	store.SeedProducto("Lapicero", decimal.NewFromInt(3), 5)

	lista, err := uc.List(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, lista, 3)
	assert.Equal(t, "Borrador", lista[0].Nombre)
	assert.Equal(t, "Lapicero", lista[1].Nombre)
	assert.Equal(t, "Tajador", lista[2].Nombre)
}
