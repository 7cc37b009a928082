package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmolina/avicola-api/internal/application/dto"
	"github.com/jmolina/avicola-api/internal/application/granja"
)

// GranjaHandler maneja silos, galpones y lotes de aves (protegido).
type GranjaHandler struct {
	uc *granja.GranjaUseCase
}

// NewGranjaHandler construye el handler.
func NewGranjaHandler(uc *granja.GranjaUseCase) *GranjaHandler {
	return &GranjaHandler{uc: uc}
}

// CreateSilo godoc
// @Summary      Crear silo
// @Tags         granja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSiloRequest  true  "nombre y capacidad en kg"
// @Success      201   {object}  dto.SiloResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/silos [post]
func (h *GranjaHandler) CreateSilo(c *fiber.Ctx) error {
	var in dto.CreateSiloRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateSilo(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetSilo godoc
// @Summary      Obtener silo con su contenido
// @Tags         granja
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del silo"
// @Success      200  {object}  dto.SiloResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/silos/{id} [get]
func (h *GranjaHandler) GetSilo(c *fiber.Ctx) error {
	out, err := h.uc.GetSilo(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ListSilos godoc
// @Summary      Listar silos
// @Tags         granja
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SiloResponse
// @Router       /api/silos [get]
func (h *GranjaHandler) ListSilos(c *fiber.Ctx) error {
	out, err := h.uc.ListSilos(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// IngresoSilo godoc
// @Summary      Ingresar alimento al silo
// @Description  Suma kilos de un material y repondera el costo promedio.
// @Tags         granja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del silo"
// @Param        body  body  dto.IngresoSiloRequest  true  "material, kilos y costo"
// @Success      201   {object}  dto.SiloResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/silos/{id}/ingresos [post]
func (h *GranjaHandler) IngresoSilo(c *fiber.Ctx) error {
	var in dto.IngresoSiloRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.IngresoSilo(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ConsumoSilo godoc
// @Summary      Registrar consumo de alimento
// @Tags         granja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del silo"
// @Param        body  body  dto.ConsumoSiloRequest  true  "material, kilos y galpón destino"
// @Success      201   {object}  dto.SiloResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/silos/{id}/consumos [post]
func (h *GranjaHandler) ConsumoSilo(c *fiber.Ctx) error {
	var in dto.ConsumoSiloRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ConsumoSilo(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateGalpon godoc
// @Summary      Crear galpón
// @Tags         granja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGalponRequest  true  "nombre, tipo y capacidad"
// @Success      201   {object}  dto.GalponResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/galpones [post]
func (h *GranjaHandler) CreateGalpon(c *fiber.Ctx) error {
	var in dto.CreateGalponRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateGalpon(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListGalpones godoc
// @Summary      Listar galpones
// @Tags         granja
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.GalponResponse
// @Router       /api/galpones [get]
func (h *GranjaHandler) ListGalpones(c *fiber.Ctx) error {
	out, err := h.uc.ListGalpones(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// GetGalpon godoc
// @Summary      Obtener galpón
// @Tags         granja
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del galpón"
// @Success      200  {object}  dto.GalponResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/galpones/{id} [get]
func (h *GranjaHandler) GetGalpon(c *fiber.Ctx) error {
	out, err := h.uc.GetGalpon(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// CrearLote godoc
// @Summary      Ingresar un lote de aves al galpón
// @Description  Solo puede haber un lote activo por galpón.
// @Tags         granja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del galpón"
// @Param        body  body  dto.CrearLoteRequest  true  "cantidad y raza"
// @Success      201   {object}  dto.LoteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/galpones/{id}/lotes [post]
func (h *GranjaHandler) CrearLote(c *fiber.Ctx) error {
	var in dto.CrearLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CrearLote(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetLote godoc
// @Summary      Obtener lote
// @Tags         granja
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del lote"
// @Success      200  {object}  dto.LoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lotes/{id} [get]
func (h *GranjaHandler) GetLote(c *fiber.Ctx) error {
	out, err := h.uc.GetLote(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ListLotes godoc
// @Summary      Listar lotes
// @Tags         granja
// @Security     Bearer
// @Produce      json
// @Param        galpon_id  query  string  false  "filtrar por galpón"
// @Success      200  {array}  dto.LoteResponse
// @Router       /api/lotes [get]
func (h *GranjaHandler) ListLotes(c *fiber.Ctx) error {
	out, err := h.uc.ListLotes(c.Context(), c.Query("galpon_id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// RegistrarMortalidad godoc
// @Summary      Registrar mortalidad del lote
// @Description  Descuenta aves del lote y del galpón. Nunca deja el lote en negativo.
// @Tags         granja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID del lote"
// @Param        body  body  dto.RegistrarMortalidadRequest  true  "cantidad y motivo"
// @Success      201   {object}  dto.LoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/lotes/{id}/mortalidad [post]
func (h *GranjaHandler) RegistrarMortalidad(c *fiber.Ctx) error {
	var in dto.RegistrarMortalidadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegistrarMortalidad(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMortalidad godoc
// @Summary      Eventos de mortalidad del lote
// @Tags         granja
// @Security     Bearer
// @Produce      json
// @Param        id   path     string  true  "ID del lote"
// @Success      200  {array}  dto.MortalidadResponse
// @Router       /api/lotes/{id}/mortalidad [get]
func (h *GranjaHandler) ListMortalidad(c *fiber.Ctx) error {
	out, err := h.uc.ListMortalidad(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// CerrarLote godoc
// @Summary      Cerrar lote (fin de ciclo o venta de descarte)
// @Tags         granja
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del lote"
// @Success      200  {object}  dto.LoteResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/lotes/{id}/cerrar [post]
func (h *GranjaHandler) CerrarLote(c *fiber.Ctx) error {
	out, err := h.uc.CerrarLote(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// TransferirLote godoc
// @Summary      Transferir aves a otro galpón
// @Description  Mueve aves del lote a un galpón de producción. Si el origen queda en cero se cierra solo.
// @Tags         granja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del lote origen"
// @Param        body  body  dto.TransferirLoteRequest  true  "galpón destino y cantidad"
// @Success      200   {object}  dto.LoteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/lotes/{id}/transferir [post]
func (h *GranjaHandler) TransferirLote(c *fiber.Ctx) error {
	var in dto.TransferirLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.TransferirLote(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
