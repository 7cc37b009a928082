package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jmolina/avicola-api/docs"
	"github.com/jmolina/avicola-api/internal/application/auth"
	"github.com/jmolina/avicola-api/internal/application/catalogo"
	"github.com/jmolina/avicola-api/internal/application/clientes"
	"github.com/jmolina/avicola-api/internal/application/gastos"
	"github.com/jmolina/avicola-api/internal/application/granja"
	"github.com/jmolina/avicola-api/internal/application/inventario"
	"github.com/jmolina/avicola-api/internal/application/pedidos"
	"github.com/jmolina/avicola-api/internal/application/personal"
	"github.com/jmolina/avicola-api/internal/application/reportes"
	"github.com/jmolina/avicola-api/internal/application/ventas"
	"github.com/jmolina/avicola-api/internal/infrastructure/postgres"
	httpRouter "github.com/jmolina/avicola-api/internal/interfaces/http"
	"github.com/jmolina/avicola-api/internal/scheduler"
	"github.com/jmolina/avicola-api/pkg/config"
	"github.com/jmolina/avicola-api/pkg/logger"
	"github.com/jmolina/avicola-api/pkg/reloj"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	clock := reloj.Sistema()

	productoRepo := postgres.NewProductoRepository(pool)
	vehiculoRepo := postgres.NewVehiculoRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movRepo := postgres.NewMovimientoRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	pagoRepo := postgres.NewPagoRepository(pool)
	ventaRepo := postgres.NewVentaRepository(pool)
	siloRepo := postgres.NewSiloRepository(pool)
	galponRepo := postgres.NewGalponRepository(pool)
	loteRepo := postgres.NewLoteRepository(pool)
	pedidoRepo := postgres.NewPedidoRepository(pool)
	viajeRepo := postgres.NewViajeRepository(pool)
	gastoRepo := postgres.NewGastoRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	asistenciaRepo := postgres.NewAsistenciaRepository(pool)
	reportesRepo := postgres.NewReportesRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	catalogoUC := catalogo.NewCatalogoUseCase(productoRepo, vehiculoRepo, usuarioRepo, clock)
	inventarioUC := inventario.NewMovimientosUseCase(txRunner, productoRepo, vehiculoRepo, stockRepo, movRepo, clock)
	ventaUC := ventas.NewVentaUseCase(txRunner, inventarioUC, clienteRepo, vehiculoRepo, productoRepo, ventaRepo, clock)
	clienteUC := clientes.NewClienteUseCase(txRunner, clienteRepo, pagoRepo, clock)
	granjaUC := granja.NewGranjaUseCase(txRunner, siloRepo, galponRepo, loteRepo, clock)
	pedidoUC := pedidos.NewPedidoUseCase(pedidoRepo, viajeRepo, vehiculoRepo, clienteRepo, productoRepo, usuarioRepo, clock)
	gastoUC := gastos.NewGastoUseCase(gastoRepo, vehiculoRepo, usuarioRepo, clock)
	personalUC := personal.NewPersonalUseCase(usuarioRepo, asistenciaRepo, clock)
	reportesUC := reportes.NewReportesUseCase(reportesRepo)
	authUC := auth.NewAuthUseCase(usuarioRepo, cfg.JWT)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Avícola API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CatalogoUC:   catalogoUC,
		InventarioUC: inventarioUC,
		VentaUC:      ventaUC,
		ClienteUC:    clienteUC,
		GranjaUC:     granjaUC,
		PedidoUC:     pedidoUC,
		GastoUC:      gastoUC,
		PersonalUC:   personalUC,
		ReportesUC:   reportesUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	var sched *scheduler.Scheduler
	if cfg.Jobs.Enabled {
		sched, err = scheduler.New(cfg.Jobs, personalUC, clock, log)
		if err != nil {
			log.Fatal().Err(err).Msg("configurar scheduler")
		}
		sched.Start()
	}

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
	if sched != nil {
		sched.Stop()
	}

	log.Info().Msg("aplicación detenida")
}
