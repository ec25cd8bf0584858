package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/libreria-pos/internal/application/auth"
	"github.com/tu-usuario/libreria-pos/internal/application/billing"
	"github.com/tu-usuario/libreria-pos/internal/application/cash"
	"github.com/tu-usuario/libreria-pos/internal/application/catalog"
	"github.com/tu-usuario/libreria-pos/internal/application/inventory"
	"github.com/tu-usuario/libreria-pos/internal/application/payments"
	"github.com/tu-usuario/libreria-pos/internal/application/purchases"
	"github.com/tu-usuario/libreria-pos/internal/application/returns"
	"github.com/tu-usuario/libreria-pos/internal/application/sales"
	"github.com/tu-usuario/libreria-pos/internal/infrastructure/postgres"
	"github.com/tu-usuario/libreria-pos/internal/infrastructure/sunat"
	httpRouter "github.com/tu-usuario/libreria-pos/internal/interfaces/http"
	"github.com/tu-usuario/libreria-pos/pkg/config"
	"github.com/tu-usuario/libreria-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("sunat_activa", cfg.Sunat.Activa).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (lecturas y escrituras fuera de transacción).
	txRunner := postgres.NewTxRunner(pool)
	productoRepo := postgres.NewProductoRepository(pool)
	kardexRepo := postgres.NewKardexRepository(pool)
	ventaRepo := postgres.NewVentaRepository(pool)
	notaCreditoRepo := postgres.NewNotaCreditoRepository(pool)
	correlativoRepo := postgres.NewCorrelativoRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	sesionCajaRepo := postgres.NewSesionCajaRepository(pool)
	movimientoCajaRepo := postgres.NewMovimientoCajaRepository(pool)
	amortizacionRepo := postgres.NewAmortizacionRepository(pool)
	compraRepo := postgres.NewCompraRepository(pool)

	// Facturación electrónica: el gateway solo existe si el PSE está configurado.
	var submitUC *billing.SubmitUseCase
	var reconcileUC *billing.ReconcileUseCase
	var ventaSubmitter sales.Submitter
	var notaSubmitter returns.Submitter
	if cfg.Sunat.Activa {
		logPSE := log.Con("componente", "sunat")
		gateway := sunat.NewClient(cfg.Sunat, logPSE)
		submitUC = billing.NewSubmitUseCase(ventaRepo, notaCreditoRepo, gateway, logPSE)
		reconcileUC = billing.NewReconcileUseCase(submitUC, ventaRepo, notaCreditoRepo, correlativoRepo, movimientoCajaRepo, gateway, logPSE)
		ventaSubmitter = submitUC
		notaSubmitter = submitUC
	}

	inventarioUC := inventory.NewMovementUseCase(txRunner, kardexRepo, productoRepo, cfg.Politica.PermitirStockNegativo, log)
	cajaUC := cash.NewCajaUseCase(sesionCajaRepo, movimientoCajaRepo, cfg.Politica.RequiereCajaAbierta, log)
	ventaUC := sales.NewVentaUseCase(txRunner, inventarioUC, cajaUC, ventaRepo, clienteRepo, ventaSubmitter, cfg.Sunat.Activa, cfg.Politica, log)
	devolucionUC := returns.NewDevolucionUseCase(txRunner, inventarioUC, cajaUC, notaCreditoRepo, notaSubmitter, cfg.Sunat.Activa, cfg.Politica, log)
	cobranzaUC := payments.NewCobranzaUseCase(txRunner, cajaUC, amortizacionRepo, cfg.Politica.RequiereCajaAbierta, log)
	compraUC := purchases.NewCompraUseCase(txRunner, inventarioUC, compraRepo, log)
	productoUC := catalog.NewProductoUseCase(productoRepo, inventarioUC, log)
	authUC := auth.NewUseCase(usuarioRepo, cfg.JWT, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		VentaUC:      ventaUC,
		DevolucionUC: devolucionUC,
		CobranzaUC:   cobranzaUC,
		CajaUC:       cajaUC,
		InventarioUC: inventarioUC,
		ProductoUC:   productoUC,
		CompraUC:     compraUC,
		SubmitUC:     submitUC,
		ReconcileUC:  reconcileUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
