package repository

import "github.com/tu-usuario/libreria-pos/internal/domain/entity"

// CompraRepository acceso a compras a proveedores.
type CompraRepository interface {
	Create(c *entity.Compra) error
	GetByID(id string) (*entity.Compra, error)
	Update(c *entity.Compra) error
	List(limit, offset int) ([]*entity.Compra, error)
}
