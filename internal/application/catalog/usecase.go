package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/libreria-pos/internal/application/inventory"
	"github.com/tu-usuario/libreria-pos/internal/domain"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/internal/domain/repository"
	"github.com/tu-usuario/libreria-pos/pkg/logger"
)

// ProductoUseCase mantiene el catálogo. El alta con stock inicial registra la
// ENTRADA por kardex; después del alta el stock solo se mueve por inventario.
type ProductoUseCase struct {
	productos  repository.ProductoRepository
	inventario *inventory.MovementUseCase
	log        *logger.Logger
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(productos repository.ProductoRepository, inventario *inventory.MovementUseCase, log *logger.Logger) *ProductoUseCase {
	return &ProductoUseCase{productos: productos, inventario: inventario, log: log}
}

// CreateInput entrada para el alta de producto.
type CreateInput struct {
	Nombre        string
	Marca         string
	UnidadMedida  string
	PrecioVenta   decimal.Decimal
	StockInicial  int
	StockMinimo   int
	AfectacionIGV string
	EsServicio    bool
	UsuarioID     string
}

// Create da de alta un producto. El stock inicial entra como movimiento de
// kardex, no como campo directo.
func (uc *ProductoUseCase) Create(ctx context.Context, input CreateInput) (*entity.Producto, error) {
	if input.Nombre == "" || !input.PrecioVenta.IsPositive() || input.StockInicial < 0 {
		return nil, domain.ErrInvalidInput
	}
	unidad := input.UnidadMedida
	if unidad == "" {
		unidad = "NIU"
	}
	if input.EsServicio {
		unidad = "ZZ"
	}
	afectacion := input.AfectacionIGV
	if afectacion == "" {
		afectacion = entity.AfectacionGravado
	}
	switch afectacion {
	case entity.AfectacionGravado, entity.AfectacionExonerado, entity.AfectacionInafecto:
	default:
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	p := &entity.Producto{
		ID:            uuid.New().String(),
		Nombre:        input.Nombre,
		Marca:         input.Marca,
		UnidadMedida:  unidad,
		PrecioVenta:   input.PrecioVenta,
		Stock:         0,
		StockMinimo:   input.StockMinimo,
		AfectacionIGV: afectacion,
		EsServicio:    input.EsServicio,
		FechaCreacion: now,
		FechaUpdate:   now,
	}
	if err := uc.productos.Create(p); err != nil {
		return nil, err
	}

	if input.StockInicial > 0 && !input.EsServicio {
		k, err := uc.inventario.RegisterMovement(ctx, inventory.Delta{
			ProductoID: p.ID,
			Tipo:       entity.KardexEntrada,
			Cantidad:   input.StockInicial,
			Motivo:     "STOCK INICIAL",
			UsuarioID:  input.UsuarioID,
		})
		if err != nil {
			return nil, err
		}
		p.Stock = k.StockActual
	}

	uc.log.Info().Str("producto_id", p.ID).Str("nombre", p.Nombre).Msg("producto creado")
	return p, nil
}

// Get carga un producto.
func (uc *ProductoUseCase) Get(ctx context.Context, id string) (*entity.Producto, error) {
	p, err := uc.productos.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductoNoEncontrado
	}
	return p, nil
}

// List lista productos paginados.
func (uc *ProductoUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Producto, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.productos.List(limit, offset)
}
