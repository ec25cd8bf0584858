package repository

import "github.com/tu-usuario/libreria-pos/internal/domain/entity"

// KardexRepository libro de inventario append-only: solo inserta y lista.
type KardexRepository interface {
	Create(k *entity.Kardex) error
	ListByProducto(productoID string, limit, offset int) ([]*entity.Kardex, error)
}
