package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmolina/avicola-api/internal/application/dto"
	"github.com/jmolina/avicola-api/internal/application/gastos"
)

// GastoHandler maneja el registro de gastos operativos (protegido).
type GastoHandler struct {
	uc *gastos.GastoUseCase
}

// NewGastoHandler construye el handler.
func NewGastoHandler(uc *gastos.GastoUseCase) *GastoHandler {
	return &GastoHandler{uc: uc}
}

// Registrar godoc
// @Summary      Registrar gasto
// @Description  Combustible, mantenimiento, sueldos, alimento u otros. Un gasto de combustible con kilometraje actualiza el odómetro del vehículo.
// @Tags         gastos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarGastoRequest  true  "tipo, monto y referencias"
// @Success      201   {object}  dto.GastoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/gastos [post]
func (h *GastoHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistrarGastoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Registrar(c.Context(), GetUserID(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener gasto
// @Tags         gastos
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del gasto"
// @Success      200  {object}  dto.GastoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/gastos/{id} [get]
func (h *GastoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar gastos del período
// @Tags         gastos
// @Security     Bearer
// @Produce      json
// @Param        desde   query  string  false  "fecha inicial (RFC3339 o 2006-01-02)"
// @Param        hasta   query  string  false  "fecha final"
// @Param        tipo    query  string  false  "filtrar por tipo"
// @Param        limit   query  int     false  "máximo por página"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.GastoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/gastos [get]
func (h *GastoHandler) List(c *fiber.Ctx) error {
	desde, hasta, err := rangoFechas(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida"})
	}
	out, err := h.uc.List(c.Context(), desde, hasta, c.Query("tipo"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar gasto
// @Tags         gastos
// @Security     Bearer
// @Param        id  path  string  true  "ID del gasto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/gastos/{id} [delete]
func (h *GastoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
