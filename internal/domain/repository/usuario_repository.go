package repository

import "github.com/tu-usuario/libreria-pos/internal/domain/entity"

// UsuarioRepository acceso a usuarios del sistema.
type UsuarioRepository interface {
	FindByUsername(username string) (*entity.Usuario, error)
	GetByID(id string) (*entity.Usuario, error)
	Create(u *entity.Usuario) error
}
