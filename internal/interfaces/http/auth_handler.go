package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/libreria-pos/internal/application/auth"
	"github.com/tu-usuario/libreria-pos/internal/application/dto"
)

// AuthHandler maneja login y registro de usuarios.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login autentica y devuelve un JWT.
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	token, u, err := h.uc.Login(c.Context(), in.Username, in.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.LoginResponse{
		Token:     token,
		UsuarioID: u.ID,
		Username:  u.Username,
		Nombre:    u.Nombre,
		Rol:       u.Rol,
	})
}

// Register crea un usuario (solo ADMIN, vía RequireRol en el router).
// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	u, err := h.uc.Register(c.Context(), auth.RegisterInput{
		Username: in.Username,
		Password: in.Password,
		Nombre:   in.Nombre,
		Rol:      in.Rol,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       u.ID,
		"username": u.Username,
		"nombre":   u.Nombre,
		"rol":      u.Rol,
	})
}
