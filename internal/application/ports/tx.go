package ports

import (
	"context"

	"github.com/tu-usuario/libreria-pos/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Ventas         repository.VentaRepository
	NotasCredito   repository.NotaCreditoRepository
	Productos      repository.ProductoRepository
	Kardex         repository.KardexRepository
	Correlativos   repository.CorrelativoRepository
	Clientes       repository.ClienteRepository
	Amortizaciones repository.AmortizacionRepository
	Compras        repository.CompraRepository
}

// TxRunner ejecuta fn dentro de una transacción, pasando repositorios atados a esa tx.
// Commit si fn retorna nil, Rollback si retorna error. Garantiza que numeración,
// stock, kardex y documento se persistan (o descarten) como una unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
