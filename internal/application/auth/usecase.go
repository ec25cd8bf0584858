package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/libreria-pos/internal/domain"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/internal/domain/repository"
	"github.com/tu-usuario/libreria-pos/pkg/config"
	"github.com/tu-usuario/libreria-pos/pkg/jwtutil"
	"github.com/tu-usuario/libreria-pos/pkg/logger"
)

// UseCase autenticación y registro de usuarios.
type UseCase struct {
	usuarios repository.UsuarioRepository
	jwtCfg   config.JWTConfig
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(usuarios repository.UsuarioRepository, jwtCfg config.JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{usuarios: usuarios, jwtCfg: jwtCfg, log: log}
}

// Login valida credenciales y emite un JWT. Usuario inexistente, inactivo o
// password incorrecto devuelven el mismo ErrUnauthorized.
func (uc *UseCase) Login(ctx context.Context, username, password string) (string, *entity.Usuario, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidInput
	}
	u, err := uc.usuarios.FindByUsername(username)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !u.Activo {
		return "", nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrUnauthorized
	}

	token, err := jwtutil.Generate(uc.jwtCfg.Secret, u.ID, u.Username, u.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return "", nil, err
	}
	uc.log.Info().Str("usuario_id", u.ID).Str("username", u.Username).Msg("login exitoso")
	return token, u, nil
}

// RegisterInput entrada para crear un usuario.
type RegisterInput struct {
	Username string
	Password string
	Nombre   string
	Rol      string
}

// Register crea un usuario con password hasheado. La restricción de que solo
// un ADMIN puede registrar usuarios se aplica en la capa HTTP.
func (uc *UseCase) Register(ctx context.Context, input RegisterInput) (*entity.Usuario, error) {
	if input.Username == "" || len(input.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	if input.Rol != entity.RolAdmin && input.Rol != entity.RolVendedor {
		return nil, domain.ErrInvalidInput
	}
	existente, err := uc.usuarios.FindByUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &entity.Usuario{
		ID:            uuid.New().String(),
		Username:      input.Username,
		PasswordHash:  string(hash),
		Nombre:        input.Nombre,
		Rol:           input.Rol,
		Activo:        true,
		FechaCreacion: time.Now(),
	}
	if err := uc.usuarios.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}
