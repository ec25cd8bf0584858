package repository

import "github.com/tu-usuario/libreria-pos/internal/domain/entity"

// ClienteRepository acceso a clientes.
type ClienteRepository interface {
	GetByID(id string) (*entity.Cliente, error)
	GetByNumeroDocumento(numero string) (*entity.Cliente, error)
	Create(c *entity.Cliente) error
	Update(c *entity.Cliente) error
}
