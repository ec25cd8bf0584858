package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/libreria-pos/internal/application/apptest"
	"github.com/tu-usuario/libreria-pos/internal/application/inventory"
	"github.com/tu-usuario/libreria-pos/internal/domain"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/pkg/logger"
)

func nuevoUseCase(store *apptest.Store, permitirNegativo bool) *inventory.MovementUseCase {
	return inventory.NewMovementUseCase(
		apptest.NewTxRunner(store),
		&apptest.KardexRepo{Store: store},
		&apptest.ProductoRepo{Store: store},
		permitirNegativo,
		logger.Nop(),
	)
}

func TestRegisterMovement_EntradaYSalida(t *testing.T) {
	store := apptest.NewStore()
	productoID := store.SeedProducto("Cuaderno A4", decimal.NewFromInt(5), 10)
	uc := nuevoUseCase(store, false)

	k, err := uc.RegisterMovement(context.Background(), inventory.Delta{
		ProductoID: productoID,
		Tipo:       entity.KardexEntrada,
		Cantidad:   5,
		Motivo:     "COMPRA F-100",
		UsuarioID:  "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, k.StockAnterior)
	assert.Equal(t, 15, k.StockActual)
	assert.Equal(t, k.StockAnterior+k.Cantidad, k.StockActual,
		"el snapshot del kardex debe cuadrar con el delta")
	assert.Equal(t, 15, store.StockDe(productoID))

	k, err = uc.RegisterMovement(context.Background(), inventory.Delta{
		ProductoID: productoID,
		Tipo:       entity.KardexSalida,
		Cantidad:   4,
		Motivo:     "VENTA B001-1",
		UsuarioID:  "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, 15, k.StockAnterior)
	assert.Equal(t, 11, k.StockActual)
	assert.Equal(t, 11, store.StockDe(productoID))
}

func TestRegisterMovement_AjusteConSigno(t *testing.T) {
	store := apptest.NewStore()
	productoID := store.SeedProducto("Lapicero", decimal.NewFromInt(2), 20)
	uc := nuevoUseCase(store, false)

	// ajuste hacia abajo: cantidad negativa
	k, err := uc.RegisterMovement(context.Background(), inventory.Delta{
		ProductoID: productoID,
		Tipo:       entity.KardexAjuste,
		Cantidad:   -3,
		Motivo:     "MERMA INVENTARIO FÍSICO",
		UsuarioID:  "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, 17, k.StockActual)
	assert.Equal(t, 3, k.Cantidad, "el kardex guarda la cantidad en valor absoluto")
	assert.Equal(t, entity.KardexAjuste, k.Tipo)

	// ajuste en cero es inválido
	_, err = uc.RegisterMovement(context.Background(), inventory.Delta{
		ProductoID: productoID,
		Tipo:       entity.KardexAjuste,
		Cantidad:   0,
		Motivo:     "NADA",
		UsuarioID:  "u1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_StockInsuficiente(t *testing.T) {
	store := apptest.NewStore()
	productoID := store.SeedProducto("Regla", decimal.NewFromInt(3), 2)
	uc := nuevoUseCase(store, false)

	_, err := uc.RegisterMovement(context.Background(), inventory.Delta{
		ProductoID: productoID,
		Tipo:       entity.KardexSalida,
		Cantidad:   3,
		Motivo:     "VENTA B001-9",
		UsuarioID:  "u1",
	})
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)
	assert.Equal(t, 2, store.StockDe(productoID), "el stock no debe cambiar si la salida falla")
	assert.Empty(t, store.Kardex, "no debe quedar kardex de un movimiento fallido")
}

func TestRegisterMovement_PoliticaStockNegativo(t *testing.T) {
	store := apptest.NewStore()
	productoID := store.SeedProducto("Borrador", decimal.NewFromInt(1), 1)
	uc := nuevoUseCase(store, true)

	k, err := uc.RegisterMovement(context.Background(), inventory.Delta{
		ProductoID: productoID,
		Tipo:       entity.KardexSalida,
		Cantidad:   4,
		Motivo:     "VENTA B001-2",
		UsuarioID:  "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, -3, k.StockActual, "con la política activa el stock puede quedar negativo")
	assert.Equal(t, -3, store.StockDe(productoID))
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	store := apptest.NewStore()
	uc := nuevoUseCase(store, false)

	_, err := uc.RegisterMovement(context.Background(), inventory.Delta{
		ProductoID: "no-existe",
		Tipo:       entity.KardexEntrada,
		Cantidad:   1,
		Motivo:     "X",
		UsuarioID:  "u1",
	})
	assert.ErrorIs(t, err, domain.ErrProductoNoEncontrado)
}

func TestHistory_MasRecientePrimero(t *testing.T) {
	store := apptest.NewStore()
	productoID := store.SeedProducto("Folder", decimal.NewFromInt(2), 0)
	uc := nuevoUseCase(store, false)

	for i := 1; i <= 3; i++ {
		_, err := uc.RegisterMovement(context.Background(), inventory.Delta{
			ProductoID: productoID,
			Tipo:       entity.KardexEntrada,
			Cantidad:   i,
			Motivo:     "COMPRA",
			UsuarioID:  "u1",
		})
		require.NoError(t, err)
	}

	hist, err := uc.History(context.Background(), productoID, 10, 0)
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, 3, hist[0].Cantidad, "la entrada más reciente va primero")
	assert.Equal(t, 1, hist[2].Cantidad)
	assert.Equal(t, 6, hist[0].StockActual)
}
