package repository

import "github.com/tu-usuario/libreria-pos/internal/domain/entity"

// ProductoRepository acceso al catálogo de productos.
// El stock SOLO debe mutarse vía el caso de uso de inventario (kardex);
// UpdateStock existe para ese caso de uso, no para callers externos.
type ProductoRepository interface {
	GetByID(id string) (*entity.Producto, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Producto, error)
	UpdateStock(id string, stock int) error
	Create(p *entity.Producto) error
	List(limit, offset int) ([]*entity.Producto, error)
}
