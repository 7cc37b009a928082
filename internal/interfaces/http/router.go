package http

import (
	"github.com/gofiber/fiber/v2"
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
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CatalogoUC   *catalogo.CatalogoUseCase
	InventarioUC *inventario.MovimientosUseCase
	VentaUC      *ventas.VentaUseCase
	ClienteUC    *clientes.ClienteUseCase
	GranjaUC     *granja.GranjaUseCase
	PedidoUC     *pedidos.PedidoUseCase
	GastoUC      *gastos.GastoUseCase
	PersonalUC   *personal.PersonalUseCase
	ReportesUC   *reportes.ReportesUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público, /me protegido)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	soloAdmin := RequireRole("admin")
	oficina := RequireRole("admin", "oficina")
	granjaRol := RequireRole("admin", "supervisor", "galponero")
	ventasRol := RequireRole("admin", "oficina", "vendedor", "chofer")
	cobranza := RequireRole("admin", "oficina", "vendedor", "cobrador")
	reportesRol := RequireRole("admin", "oficina", "supervisor")

	// Productos (protegido)
	catalogoHandler := NewCatalogoHandler(deps.CatalogoUC)
	productos := protected.Group("/productos")
	productos.Post("/", oficina, catalogoHandler.CreateProducto)
	productos.Get("/", catalogoHandler.ListProductos)
	productos.Get("/bajo-minimo", catalogoHandler.ProductosBajoMinimo)
	productos.Get("/:id", catalogoHandler.GetProducto)
	productos.Put("/:id", oficina, catalogoHandler.UpdateProducto)
	productos.Delete("/:id", soloAdmin, catalogoHandler.DeleteProducto)

	// Vehículos (protegido)
	vehiculos := protected.Group("/vehiculos")
	vehiculos.Post("/", oficina, catalogoHandler.CreateVehiculo)
	vehiculos.Get("/", catalogoHandler.ListVehiculos)
	vehiculos.Get("/:id", catalogoHandler.GetVehiculo)
	vehiculos.Put("/:id", oficina, catalogoHandler.UpdateVehiculo)
	vehiculos.Delete("/:id", soloAdmin, catalogoHandler.DeleteVehiculo)

	// Inventario y stock (protegido, depósito/oficina)
	inventarioHandler := NewInventarioHandler(deps.InventarioUC)
	invGroup := protected.Group("/inventario")
	invGroup.Post("/compras", oficina, inventarioHandler.RegistrarCompra)
	invGroup.Post("/cargas", oficina, inventarioHandler.CargarVehiculo)
	invGroup.Post("/descargas", oficina, inventarioHandler.DescargarVehiculo)
	invGroup.Post("/mermas", oficina, inventarioHandler.RegistrarMerma)
	invGroup.Post("/devoluciones", oficina, inventarioHandler.RegistrarDevolucion)
	invGroup.Post("/ajustes", soloAdmin, inventarioHandler.AjusteManual)
	invGroup.Get("/stock/deposito", inventarioHandler.StockDeposito)
	invGroup.Get("/stock/vehiculos/:id", inventarioHandler.StockVehiculo)
	invGroup.Get("/movimientos", inventarioHandler.ListarMovimientos)

	// Ventas (protegido)
	ventaHandler := NewVentaHandler(deps.VentaUC)
	ventasGroup := protected.Group("/ventas")
	ventasGroup.Post("/", ventasRol, ventaHandler.Crear)
	ventasGroup.Get("/", ventaHandler.List)
	ventasGroup.Get("/:id", ventaHandler.GetByID)

	// Clientes y cuenta corriente (protegido)
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientesGroup := protected.Group("/clientes")
	clientesGroup.Post("/", cobranza, clienteHandler.Create)
	clientesGroup.Get("/", clienteHandler.List)
	clientesGroup.Get("/morosos", clienteHandler.Morosos)
	clientesGroup.Get("/:id", clienteHandler.GetByID)
	clientesGroup.Put("/:id", cobranza, clienteHandler.Update)
	clientesGroup.Post("/:id/pagos", cobranza, clienteHandler.RegistrarPago)
	clientesGroup.Get("/:id/pagos", clienteHandler.ListPagos)
	clientesGroup.Post("/:id/ajuste-deuda", oficina, clienteHandler.AjustarDeuda)

	// Granja: silos, galpones y lotes (protegido)
	granjaHandler := NewGranjaHandler(deps.GranjaUC)
	silos := protected.Group("/silos")
	silos.Post("/", granjaRol, granjaHandler.CreateSilo)
	silos.Get("/", granjaHandler.ListSilos)
	silos.Get("/:id", granjaHandler.GetSilo)
	silos.Post("/:id/ingresos", granjaRol, granjaHandler.IngresoSilo)
	silos.Post("/:id/consumos", granjaRol, granjaHandler.ConsumoSilo)

	galpones := protected.Group("/galpones")
	galpones.Post("/", granjaRol, granjaHandler.CreateGalpon)
	galpones.Get("/", granjaHandler.ListGalpones)
	galpones.Get("/:id", granjaHandler.GetGalpon)
	galpones.Post("/:id/lotes", granjaRol, granjaHandler.CrearLote)

	lotes := protected.Group("/lotes")
	lotes.Get("/", granjaHandler.ListLotes)
	lotes.Get("/:id", granjaHandler.GetLote)
	lotes.Post("/:id/mortalidad", granjaRol, granjaHandler.RegistrarMortalidad)
	lotes.Get("/:id/mortalidad", granjaHandler.ListMortalidad)
	lotes.Post("/:id/cerrar", granjaRol, granjaHandler.CerrarLote)
	lotes.Post("/:id/transferir", granjaRol, granjaHandler.TransferirLote)

	// Pedidos y viajes de reparto (protegido)
	pedidoHandler := NewPedidoHandler(deps.PedidoUC)
	pedidosGroup := protected.Group("/pedidos")
	pedidosGroup.Post("/", ventasRol, pedidoHandler.Crear)
	pedidosGroup.Get("/", pedidoHandler.List)
	pedidosGroup.Get("/:id", pedidoHandler.GetByID)
	pedidosGroup.Post("/:id/asignar", ventasRol, pedidoHandler.Asignar)
	pedidosGroup.Post("/:id/entregar", ventasRol, pedidoHandler.Entregar)
	pedidosGroup.Post("/:id/cancelar", ventasRol, pedidoHandler.Cancelar)

	viajes := protected.Group("/viajes")
	viajes.Post("/", ventasRol, pedidoHandler.IniciarViaje)
	viajes.Get("/", pedidoHandler.ListViajes)
	viajes.Get("/:id", pedidoHandler.GetViaje)
	viajes.Post("/:id/finalizar", ventasRol, pedidoHandler.FinalizarViaje)

	// Gastos (protegido)
	gastoHandler := NewGastoHandler(deps.GastoUC)
	gastosGroup := protected.Group("/gastos")
	gastosGroup.Post("/", oficina, gastoHandler.Registrar)
	gastosGroup.Get("/", oficina, gastoHandler.List)
	gastosGroup.Get("/:id", oficina, gastoHandler.GetByID)
	gastosGroup.Delete("/:id", soloAdmin, gastoHandler.Delete)

	// Personal (mutaciones solo admin)
	personalHandler := NewPersonalHandler(deps.PersonalUC)
	empleados := protected.Group("/empleados")
	empleados.Post("/", soloAdmin, personalHandler.CreateEmpleado)
	empleados.Get("/", oficina, personalHandler.ListEmpleados)
	empleados.Get("/:id", oficina, personalHandler.GetEmpleado)
	empleados.Put("/:id", soloAdmin, personalHandler.UpdateEmpleado)
	empleados.Delete("/:id", soloAdmin, personalHandler.DeleteEmpleado)
	empleados.Get("/:id/asistencias/estadisticas", oficina, personalHandler.EstadisticasMensuales)

	asistencias := protected.Group("/asistencias")
	asistencias.Post("/", oficina, personalHandler.RegistrarAsistencia)
	asistencias.Get("/", oficina, personalHandler.AsistenciasDelDia)

	// Reportes (protegido, gestión)
	reportesHandler := NewReportesHandler(deps.ReportesUC)
	reportesGroup := protected.Group("/reportes", reportesRol)
	reportesGroup.Get("/financiero", reportesHandler.Financiero)
	reportesGroup.Get("/ventas-por-producto", reportesHandler.VentasPorProducto)
	reportesGroup.Get("/ventas-por-vendedor", reportesHandler.VentasPorVendedor)
	reportesGroup.Get("/gastos-por-vehiculo", reportesHandler.GastosPorVehiculo)
}
