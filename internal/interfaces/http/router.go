package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/libreria-pos/internal/application/auth"
	"github.com/tu-usuario/libreria-pos/internal/application/billing"
	"github.com/tu-usuario/libreria-pos/internal/application/cash"
	"github.com/tu-usuario/libreria-pos/internal/application/catalog"
	"github.com/tu-usuario/libreria-pos/internal/application/inventory"
	"github.com/tu-usuario/libreria-pos/internal/application/payments"
	"github.com/tu-usuario/libreria-pos/internal/application/purchases"
	"github.com/tu-usuario/libreria-pos/internal/application/returns"
	"github.com/tu-usuario/libreria-pos/internal/application/sales"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	VentaUC      *sales.VentaUseCase
	DevolucionUC *returns.DevolucionUseCase
	CobranzaUC   *payments.CobranzaUseCase
	CajaUC       *cash.CajaUseCase
	InventarioUC *inventory.MovementUseCase
	ProductoUC   *catalog.ProductoUseCase
	CompraUC     *purchases.CompraUseCase

	// Nil cuando la facturación electrónica está desactivada.
	SubmitUC    *billing.SubmitUseCase
	ReconcileUC *billing.ReconcileUseCase

	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, registro solo para administradores.
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/register", AuthMiddleware(deps.JWTSecret), RequireRol(entity.RolAdmin), authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Productos
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productos.Post("/", productoHandler.Create)
	productos.Get("/", productoHandler.List)
	productos.Get("/:id", productoHandler.GetByID)

	// Inventario
	inventario := protected.Group("/inventario")
	inventarioHandler := NewInventarioHandler(deps.InventarioUC)
	inventario.Post("/ajustes", inventarioHandler.Ajuste)
	inventario.Get("/kardex/:productoId", inventarioHandler.Kardex)

	// Caja
	caja := protected.Group("/caja")
	cajaHandler := NewCajaHandler(deps.CajaUC)
	caja.Post("/abrir", cajaHandler.Abrir)
	caja.Post("/cerrar", cajaHandler.Cerrar)
	caja.Post("/movimientos", cajaHandler.Movimiento)
	caja.Get("/movimientos", cajaHandler.Movimientos)
	caja.Get("/movimientos/dia", cajaHandler.MovimientosDelDia)
	caja.Get("/balance", cajaHandler.Balance)

	// Ventas y cotizaciones
	ventaHandler := NewVentaHandler(deps.VentaUC)
	cobranzaHandler := NewCobranzaHandler(deps.CobranzaUC)
	devolucionHandler := NewDevolucionHandler(deps.DevolucionUC)
	protected.Post("/cotizaciones", ventaHandler.Quote)
	ventas := protected.Group("/ventas")
	ventas.Post("/", ventaHandler.Create)
	ventas.Get("/", ventaHandler.List)
	ventas.Get("/:id", ventaHandler.GetByID)
	ventas.Post("/:id/anular", ventaHandler.Void)
	ventas.Post("/:id/pagos", cobranzaHandler.RegisterPayment)
	ventas.Get("/:id/pagos", cobranzaHandler.ListByVenta)
	ventas.Get("/:id/devoluciones", devolucionHandler.ListByVenta)

	// Devoluciones (notas de crédito)
	devoluciones := protected.Group("/devoluciones")
	devoluciones.Post("/", devolucionHandler.Create)
	devoluciones.Get("/:id", devolucionHandler.GetByID)
	devoluciones.Post("/:id/anular", devolucionHandler.Annul)

	// Compras
	compras := protected.Group("/compras")
	compraHandler := NewCompraHandler(deps.CompraUC)
	compras.Post("/", compraHandler.Create)
	compras.Get("/", compraHandler.List)
	compras.Get("/:id", compraHandler.GetByID)
	compras.Post("/:id/anular", compraHandler.Annul)

	// Facturación electrónica (solo si el PSE está configurado)
	if deps.SubmitUC != nil && deps.ReconcileUC != nil {
		sunatHandler := NewSunatHandler(deps.SubmitUC, deps.ReconcileUC)
		ventas.Post("/:id/sunat", sunatHandler.ResubmitVenta)
		devoluciones.Post("/:id/sunat", sunatHandler.ResubmitNotaCredito)
		sunat := protected.Group("/sunat", RequireRol(entity.RolAdmin))
		sunat.Post("/conciliar", sunatHandler.Reconcile)
		sunat.Post("/sincronizar", sunatHandler.SyncSeries)
	}
}
