package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmolina/avicola-api/internal/application/dto"
	"github.com/jmolina/avicola-api/internal/application/inventario"
	"github.com/jmolina/avicola-api/internal/domain/repository"
)

// InventarioHandler maneja las peticiones HTTP del motor de stock (protegido).
type InventarioHandler struct {
	uc *inventario.MovimientosUseCase
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(uc *inventario.MovimientosUseCase) *InventarioHandler {
	return &InventarioHandler{uc: uc}
}

// RegistrarCompra godoc
// @Summary      Registrar compra al depósito
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarCompraRequest  true  "proveedor e items con costo unitario"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventario/compras [post]
func (h *InventarioHandler) RegistrarCompra(c *fiber.Ctx) error {
	var in dto.RegistrarCompraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.RegistrarCompra(c.Context(), GetUserID(c), in); err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "compra registrada"})
}

// CargarVehiculo godoc
// @Summary      Cargar un vehículo desde el depósito
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CargarVehiculoRequest  true  "vehiculo_id e items; recarga=true para recargas del día"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/cargas [post]
func (h *InventarioHandler) CargarVehiculo(c *fiber.Ctx) error {
	var in dto.CargarVehiculoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.CargarVehiculo(c.Context(), GetUserID(c), in); err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "vehículo cargado"})
}

// DescargarVehiculo godoc
// @Summary      Descargar el remanente de un vehículo al depósito
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DescargarVehiculoRequest  true  "vehiculo_id; sin items descarga todo el remanente"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/descargas [post]
func (h *InventarioHandler) DescargarVehiculo(c *fiber.Ctx) error {
	var in dto.DescargarVehiculoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.DescargarVehiculo(c.Context(), GetUserID(c), in); err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "vehículo descargado"})
}

// RegistrarMerma godoc
// @Summary      Registrar merma (rotura o pérdida)
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarMermaRequest  true  "producto, cantidad, ubicación y motivo (obligatorio)"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/mermas [post]
func (h *InventarioHandler) RegistrarMerma(c *fiber.Ctx) error {
	var in dto.RegistrarMermaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.RegistrarMerma(c.Context(), GetUserID(c), in); err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "merma registrada"})
}

// RegistrarDevolucion godoc
// @Summary      Registrar devolución de un cliente al vehículo
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DevolucionClienteRequest  true  "vehiculo, producto y cantidad devuelta"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventario/devoluciones [post]
func (h *InventarioHandler) RegistrarDevolucion(c *fiber.Ctx) error {
	var in dto.DevolucionClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.RegistrarDevolucion(c.Context(), GetUserID(c), in); err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "devolución registrada"})
}

// AjusteManual godoc
// @Summary      Ajuste manual de stock (con motivo)
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AjusteManualRequest  true  "cantidad con signo y motivo obligatorio"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/ajustes [post]
func (h *InventarioHandler) AjusteManual(c *fiber.Ctx) error {
	var in dto.AjusteManualRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.AjusteManual(c.Context(), GetUserID(c), in); err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "ajuste registrado"})
}

// StockDeposito godoc
// @Summary      Stock actual del depósito central
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StockItemResponse
// @Router       /api/inventario/stock/deposito [get]
func (h *InventarioHandler) StockDeposito(c *fiber.Ctx) error {
	items, err := h.uc.StockPorUbicacion(c.Context(), "deposito", "")
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(items)
}

// StockVehiculo godoc
// @Summary      Stock actual de un vehículo
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del vehículo"
// @Success      200  {array}   dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/stock/vehiculos/{id} [get]
func (h *InventarioHandler) StockVehiculo(c *fiber.Ctx) error {
	items, err := h.uc.StockPorUbicacion(c.Context(), "vehiculo", c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(items)
}

// ListarMovimientos godoc
// @Summary      Libro de movimientos de stock
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        ubicacion_tipo  query  string  false  "deposito, vehiculo, silo"
// @Param        ubicacion_id    query  string  false  "ID de vehículo o silo"
// @Param        producto_id     query  string  false  "filtrar por producto"
// @Param        tipo            query  string  false  "tipo de movimiento"
// @Param        desde           query  string  false  "RFC3339"
// @Param        hasta           query  string  false  "RFC3339"
// @Success      200  {array}   dto.MovimientoResponse
// @Router       /api/inventario/movimientos [get]
func (h *InventarioHandler) ListarMovimientos(c *fiber.Ctx) error {
	f := repository.MovimientoFiltro{
		UbicacionTipo: c.Query("ubicacion_tipo"),
		UbicacionID:   c.Query("ubicacion_id"),
		ProductoID:    c.Query("producto_id"),
		Tipo:          c.Query("tipo"),
		Limit:         c.QueryInt("limit", 100),
		Offset:        c.QueryInt("offset", 0),
	}
	if s := c.Query("desde"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde: fecha inválida (RFC3339)"})
		}
		f.Desde = &t
	}
	if s := c.Query("hasta"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta: fecha inválida (RFC3339)"})
		}
		f.Hasta = &t
	}
	movs, err := h.uc.ListarMovimientos(c.Context(), f)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(movs)
}
