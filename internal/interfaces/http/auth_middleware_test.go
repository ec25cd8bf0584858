package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	httpiface "github.com/tu-usuario/libreria-pos/internal/interfaces/http"
	"github.com/tu-usuario/libreria-pos/pkg/jwtutil"
)

const secretPrueba = "secreto-de-prueba"

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func appConAuth(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(httpiface.AuthMiddleware(secretPrueba))
	app.Get("/perfil", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  httpiface.GetUserID(c),
			"username": c.Locals(httpiface.LocalUsername),
			"rol":      httpiface.GetRol(c),
		})
	})
	app.Get("/admin", httpiface.RequireRol(entity.RolAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func tokenDe(t *testing.T, rol string) string {
	t.Helper()
	token, err := jwtutil.Generate(secretPrueba, "u-1", "maria", rol, "libreria-pos", 60)
	require.NoError(t, err)
	return token
}

func hacerRequest(t *testing.T, app *fiber.App, ruta, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, ruta, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenValidoDejaLaIdentidadEnLocals(t *testing.T) {
	app := appConAuth(t)

	resp := hacerRequest(t, app, "/perfil", tokenDe(t, entity.RolVendedor))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_SinHeaderDevuelve401(t *testing.T) {
	app := appConAuth(t)

	resp := hacerRequest(t, app, "/perfil", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoInvalidoDevuelve401(t *testing.T) {
	app := appConAuth(t)

	req := httptest.NewRequest(http.MethodGet, "/perfil", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FirmaIncorrectaDevuelve401(t *testing.T) {
	app := appConAuth(t)

	ajeno, err := jwtutil.Generate("otro-secreto", "u-1", "maria", entity.RolAdmin, "libreria-pos", 60)
	require.NoError(t, err)

	resp := hacerRequest(t, app, "/perfil", ajeno)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpiradoDevuelve401(t *testing.T) {
	app := appConAuth(t)

	vencido, err := jwtutil.Generate(secretPrueba, "u-1", "maria", entity.RolAdmin, "libreria-pos", -5)
	require.NoError(t, err)

	resp := hacerRequest(t, app, "/perfil", vencido)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRol
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRol_AdminPasa(t *testing.T) {
	app := appConAuth(t)

	resp := hacerRequest(t, app, "/admin", tokenDe(t, entity.RolAdmin))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRol_VendedorBloqueadoEnRutaAdmin(t *testing.T) {
	app := appConAuth(t)

	resp := hacerRequest(t, app, "/admin", tokenDe(t, entity.RolVendedor))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
