package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmolina/avicola-api/internal/application/dto"
	"github.com/jmolina/avicola-api/internal/application/personal"
)

// PersonalHandler maneja empleados y asistencias (protegido, solo admin).
type PersonalHandler struct {
	uc *personal.PersonalUseCase
}

// NewPersonalHandler construye el handler.
func NewPersonalHandler(uc *personal.PersonalUseCase) *PersonalHandler {
	return &PersonalHandler{uc: uc}
}

// CreateEmpleado godoc
// @Summary      Alta de empleado
// @Tags         personal
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmpleadoRequest  true  "datos y rol"
// @Success      201   {object}  dto.UsuarioResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/empleados [post]
func (h *PersonalHandler) CreateEmpleado(c *fiber.Ctx) error {
	var in dto.CreateEmpleadoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateEmpleado(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetEmpleado godoc
// @Summary      Obtener empleado
// @Tags         personal
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del empleado"
// @Success      200  {object}  dto.UsuarioResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/empleados/{id} [get]
func (h *PersonalHandler) GetEmpleado(c *fiber.Ctx) error {
	out, err := h.uc.GetEmpleado(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ListEmpleados godoc
// @Summary      Listar empleados
// @Tags         personal
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo por página"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.UsuarioResponse
// @Router       /api/empleados [get]
func (h *PersonalHandler) ListEmpleados(c *fiber.Ctx) error {
	out, err := h.uc.ListEmpleados(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// UpdateEmpleado godoc
// @Summary      Actualizar empleado
// @Description  No permite dejar el sistema sin administradores activos.
// @Tags         personal
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del empleado"
// @Param        body  body  dto.UpdateEmpleadoRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.UsuarioResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/empleados/{id} [put]
func (h *PersonalHandler) UpdateEmpleado(c *fiber.Ctx) error {
	var in dto.UpdateEmpleadoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateEmpleado(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// DeleteEmpleado godoc
// @Summary      Baja de empleado
// @Tags         personal
// @Security     Bearer
// @Param        id  path  string  true  "ID del empleado"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/empleados/{id} [delete]
func (h *PersonalHandler) DeleteEmpleado(c *fiber.Ctx) error {
	if err := h.uc.DeleteEmpleado(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegistrarAsistencia godoc
// @Summary      Registrar asistencia del día
// @Description  Una sola marca por empleado y día.
// @Tags         personal
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarAsistenciaRequest  true  "empleado, fecha y presente/ausente"
// @Success      201   {object}  dto.AsistenciaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/asistencias [post]
func (h *PersonalHandler) RegistrarAsistencia(c *fiber.Ctx) error {
	var in dto.RegistrarAsistenciaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegistrarAsistencia(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AsistenciasDelDia godoc
// @Summary      Asistencias de una fecha
// @Tags         personal
// @Security     Bearer
// @Produce      json
// @Param        fecha  query  string  false  "día (2006-01-02), por defecto hoy"
// @Success      200  {array}  dto.AsistenciaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/asistencias [get]
func (h *PersonalHandler) AsistenciasDelDia(c *fiber.Ctx) error {
	fecha := time.Now()
	if s := c.Query("fecha"); s != "" {
		t, err := parseFecha(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida"})
		}
		fecha = t
	}
	out, err := h.uc.AsistenciasDelDia(c.Context(), fecha)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// EstadisticasMensuales godoc
// @Summary      Estadísticas de asistencia del mes
// @Tags         personal
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true  "ID del empleado"
// @Param        anio  query  int     true  "año"
// @Param        mes   query  int     true  "mes (1-12)"
// @Success      200  {object}  dto.EstadisticasAsistenciaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/empleados/{id}/asistencias/estadisticas [get]
func (h *PersonalHandler) EstadisticasMensuales(c *fiber.Ctx) error {
	anio := c.QueryInt("anio", time.Now().Year())
	mes := c.QueryInt("mes", int(time.Now().Month()))
	if mes < 1 || mes > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "mes fuera de rango"})
	}
	out, err := h.uc.EstadisticasMensuales(c.Context(), c.Params("id"), anio, time.Month(mes))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
