package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/libreria-pos/internal/application/ports"
	"github.com/tu-usuario/libreria-pos/internal/domain"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/internal/domain/repository"
	"github.com/tu-usuario/libreria-pos/pkg/logger"
)

// MovementUseCase aplica deltas de stock de forma transaccional, con bloqueo de
// fila (SELECT FOR UPDATE) y registro en el kardex. Es el único camino permitido
// para mutar el stock de un producto.
type MovementUseCase struct {
	txRunner         ports.TxRunner
	kardexRepo       repository.KardexRepository
	productoRepo     repository.ProductoRepository
	permitirNegativo bool
	log              *logger.Logger
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner ports.TxRunner,
	kardexRepo repository.KardexRepository,
	productoRepo repository.ProductoRepository,
	permitirNegativo bool,
	log *logger.Logger,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:         txRunner,
		kardexRepo:       kardexRepo,
		productoRepo:     productoRepo,
		permitirNegativo: permitirNegativo,
		log:              log,
	}
}

// Delta describe un cambio de stock a aplicar sobre un producto.
// Cantidad siempre positiva para ENTRADA y SALIDA; para AJUSTE puede
// ser negativa (corrección hacia abajo).
type Delta struct {
	ProductoID string
	Tipo       string // ENTRADA | SALIDA | AJUSTE
	Cantidad   int
	Motivo     string
	UsuarioID  string
}

func (d Delta) signedDelta() (int, error) {
	switch d.Tipo {
	case entity.KardexEntrada:
		if d.Cantidad <= 0 {
			return 0, domain.ErrInvalidInput
		}
		return d.Cantidad, nil
	case entity.KardexSalida:
		if d.Cantidad <= 0 {
			return 0, domain.ErrInvalidInput
		}
		return -d.Cantidad, nil
	case entity.KardexAjuste:
		if d.Cantidad == 0 {
			return 0, domain.ErrInvalidInput
		}
		return d.Cantidad, nil
	default:
		return 0, domain.ErrInvalidInput
	}
}

// ApplyDeltaInTx aplica el delta usando los repositorios de la transacción del
// caller: bloquea la fila del producto, verifica la política de stock negativo,
// actualiza el stock y registra la entrada de kardex con snapshot antes/después.
// Si la transacción del caller hace Rollback, stock y kardex se descartan juntos.
func (uc *MovementUseCase) ApplyDeltaInTx(r ports.TxRepos, d Delta) (*entity.Kardex, error) {
	delta, err := d.signedDelta()
	if err != nil {
		return nil, err
	}

	p, err := r.Productos.GetForUpdate(d.ProductoID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductoNoEncontrado
	}

	anterior := p.Stock
	actual := anterior + delta
	if actual < 0 && !uc.permitirNegativo {
		return nil, domain.ErrStockInsuficiente
	}

	if err := r.Productos.UpdateStock(d.ProductoID, actual); err != nil {
		return nil, err
	}

	cantidad := d.Cantidad
	if cantidad < 0 {
		cantidad = -cantidad
	}
	k := &entity.Kardex{
		ID:            uuid.New().String(),
		ProductoID:    d.ProductoID,
		Tipo:          d.Tipo,
		Motivo:        d.Motivo,
		Cantidad:      cantidad,
		StockAnterior: anterior,
		StockActual:   actual,
		UsuarioID:     d.UsuarioID,
		Fecha:         time.Now(),
	}
	if err := r.Kardex.Create(k); err != nil {
		return nil, err
	}
	return k, nil
}

// RegisterMovement aplica un delta en su propia transacción. Lo usan los
// ajustes manuales y los ingresos sueltos de mercadería; las ventas, compras
// y devoluciones usan ApplyDeltaInTx dentro de su propia transacción.
func (uc *MovementUseCase) RegisterMovement(ctx context.Context, d Delta) (*entity.Kardex, error) {
	var k *entity.Kardex
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		var err error
		k, err = uc.ApplyDeltaInTx(r, d)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("producto_id", d.ProductoID).
		Str("tipo", d.Tipo).
		Int("cantidad", d.Cantidad).
		Int("stock_actual", k.StockActual).
		Msg("movimiento de inventario registrado")
	return k, nil
}

// History devuelve el kardex de un producto, del más reciente al más antiguo.
func (uc *MovementUseCase) History(ctx context.Context, productoID string, limit, offset int) ([]*entity.Kardex, error) {
	if productoID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.kardexRepo.ListByProducto(productoID, limit, offset)
}
