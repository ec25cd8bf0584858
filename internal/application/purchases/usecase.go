package purchases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/libreria-pos/internal/application/inventory"
	"github.com/tu-usuario/libreria-pos/internal/application/ports"
	"github.com/tu-usuario/libreria-pos/internal/domain"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/internal/domain/repository"
	"github.com/tu-usuario/libreria-pos/pkg/logger"
)

// CompraUseCase registra ingresos de mercadería de proveedores. Cada línea
// genera una ENTRADA de kardex en la misma transacción que la compra.
type CompraUseCase struct {
	txRunner   ports.TxRunner
	inventario *inventory.MovementUseCase
	compras    repository.CompraRepository
	log        *logger.Logger
}

// NewCompraUseCase construye el caso de uso.
func NewCompraUseCase(
	txRunner ports.TxRunner,
	inventario *inventory.MovementUseCase,
	compras repository.CompraRepository,
	log *logger.Logger,
) *CompraUseCase {
	return &CompraUseCase{
		txRunner:   txRunner,
		inventario: inventario,
		compras:    compras,
		log:        log,
	}
}

// ItemCompra línea de compra.
type ItemCompra struct {
	ProductoID    string
	Cantidad      int
	CostoUnitario decimal.Decimal
}

// CreateInput entrada para registrar una compra.
type CreateInput struct {
	ProveedorNombre   string
	NumeroComprobante string
	Items             []ItemCompra
	UsuarioID         string
}

// Create registra la compra y suma el stock de cada línea.
func (uc *CompraUseCase) Create(ctx context.Context, input CreateInput) (*entity.Compra, error) {
	if input.ProveedorNombre == "" || input.UsuarioID == "" || len(input.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range input.Items {
		if it.ProductoID == "" || it.Cantidad <= 0 || it.CostoUnitario.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	compra := &entity.Compra{
		ID:                uuid.New().String(),
		ProveedorNombre:   input.ProveedorNombre,
		NumeroComprobante: input.NumeroComprobante,
		Estado:            entity.CompraRegistrada,
		UsuarioID:         input.UsuarioID,
		Fecha:             now,
		FechaCreacion:     now,
	}

	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		total := decimal.Zero
		for _, it := range input.Items {
			_, err := uc.inventario.ApplyDeltaInTx(r, inventory.Delta{
				ProductoID: it.ProductoID,
				Tipo:       entity.KardexEntrada,
				Cantidad:   it.Cantidad,
				Motivo:     fmt.Sprintf("COMPRA %s", input.NumeroComprobante),
				UsuarioID:  input.UsuarioID,
			})
			if err != nil {
				return err
			}
			total = total.Add(it.CostoUnitario.Mul(decimal.NewFromInt(int64(it.Cantidad))))
			compra.Detalles = append(compra.Detalles, &entity.DetalleCompra{
				ID:            uuid.New().String(),
				CompraID:      compra.ID,
				ProductoID:    it.ProductoID,
				Cantidad:      it.Cantidad,
				CostoUnitario: it.CostoUnitario,
			})
		}
		compra.Total = total.Round(2)
		return r.Compras.Create(compra)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("compra_id", compra.ID).
		Str("proveedor", compra.ProveedorNombre).
		Str("total", compra.Total.StringFixed(2)).
		Msg("compra registrada")
	return compra, nil
}

// Annul anula una compra: revierte el stock con SALIDAs compensatorias.
// Falla con ErrStockInsuficiente si la mercadería ya se vendió y la política
// no permite stock negativo.
func (uc *CompraUseCase) Annul(ctx context.Context, compraID, usuarioID string) (*entity.Compra, error) {
	if compraID == "" || usuarioID == "" {
		return nil, domain.ErrInvalidInput
	}

	var compra *entity.Compra
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		c, err := r.Compras.GetByID(compraID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		if c.Estado == entity.CompraAnulada {
			return domain.ErrCompraAnulada
		}

		for _, det := range c.Detalles {
			_, err := uc.inventario.ApplyDeltaInTx(r, inventory.Delta{
				ProductoID: det.ProductoID,
				Tipo:       entity.KardexSalida,
				Cantidad:   det.Cantidad,
				Motivo:     fmt.Sprintf("ANULACIÓN COMPRA %s", c.NumeroComprobante),
				UsuarioID:  usuarioID,
			})
			if err != nil {
				return err
			}
		}

		c.Estado = entity.CompraAnulada
		if err := r.Compras.Update(c); err != nil {
			return err
		}
		compra = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("compra_id", compra.ID).Msg("compra anulada")
	return compra, nil
}

// Get carga una compra completa.
func (uc *CompraUseCase) Get(ctx context.Context, compraID string) (*entity.Compra, error) {
	c, err := uc.compras.GetByID(compraID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// List lista compras paginadas.
func (uc *CompraUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Compra, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.compras.List(limit, offset)
}
