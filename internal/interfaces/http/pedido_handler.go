package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmolina/avicola-api/internal/application/dto"
	"github.com/jmolina/avicola-api/internal/application/pedidos"
)

// PedidoHandler maneja pedidos y viajes de reparto (protegido).
type PedidoHandler struct {
	uc *pedidos.PedidoUseCase
}

// NewPedidoHandler construye el handler.
func NewPedidoHandler(uc *pedidos.PedidoUseCase) *PedidoHandler {
	return &PedidoHandler{uc: uc}
}

// Crear godoc
// @Summary      Crear pedido
// @Description  Registra el encargo de un cliente. No mueve stock.
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearPedidoRequest  true  "cliente e ítems"
// @Success      201   {object}  dto.PedidoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pedidos [post]
func (h *PedidoHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearPedidoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CrearPedido(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del pedido"
// @Success      200  {object}  dto.PedidoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id} [get]
func (h *PedidoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetPedido(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar pedidos
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        estado  query  string  false  "pendiente|asignado|entregado|cancelado"
// @Param        limit   query  int     false  "máximo por página"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.PedidoResponse
// @Router       /api/pedidos [get]
func (h *PedidoHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListPedidos(c.Context(), c.Query("estado"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Asignar godoc
// @Summary      Asignar pedido a un viaje en curso
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del pedido"
// @Param        body  body  dto.AsignarPedidoRequest  true  "viaje destino"
// @Success      200   {object}  dto.PedidoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/asignar [post]
func (h *PedidoHandler) Asignar(c *fiber.Ctx) error {
	var in dto.AsignarPedidoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AsignarPedido(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Entregar godoc
// @Summary      Marcar pedido como entregado
// @Description  La venta asociada se registra aparte por POST /api/ventas.
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del pedido"
// @Param        body  body  dto.EntregarPedidoRequest  true  "si quedó pagado"
// @Success      200   {object}  dto.PedidoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/entregar [post]
func (h *PedidoHandler) Entregar(c *fiber.Ctx) error {
	var in dto.EntregarPedidoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.EntregarPedido(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Cancelar godoc
// @Summary      Cancelar pedido
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del pedido"
// @Success      200  {object}  dto.PedidoResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/cancelar [post]
func (h *PedidoHandler) Cancelar(c *fiber.Ctx) error {
	out, err := h.uc.CancelarPedido(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// IniciarViaje godoc
// @Summary      Iniciar viaje de reparto
// @Description  Un vehículo no puede tener dos viajes en curso.
// @Tags         viajes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IniciarViajeRequest  true  "vehículo, chofer y ruta"
// @Success      201   {object}  dto.ViajeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/viajes [post]
func (h *PedidoHandler) IniciarViaje(c *fiber.Ctx) error {
	var in dto.IniciarViajeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.IniciarViaje(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// FinalizarViaje godoc
// @Summary      Finalizar viaje de reparto
// @Tags         viajes
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del viaje"
// @Success      200  {object}  dto.ViajeResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/viajes/{id}/finalizar [post]
func (h *PedidoHandler) FinalizarViaje(c *fiber.Ctx) error {
	out, err := h.uc.FinalizarViaje(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// GetViaje godoc
// @Summary      Obtener viaje
// @Tags         viajes
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del viaje"
// @Success      200  {object}  dto.ViajeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/viajes/{id} [get]
func (h *PedidoHandler) GetViaje(c *fiber.Ctx) error {
	out, err := h.uc.GetViaje(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ListViajes godoc
// @Summary      Listar viajes
// @Tags         viajes
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo por página"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.ViajeResponse
// @Router       /api/viajes [get]
func (h *PedidoHandler) ListViajes(c *fiber.Ctx) error {
	out, err := h.uc.ListViajes(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
