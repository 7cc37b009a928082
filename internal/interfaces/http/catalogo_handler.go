package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmolina/avicola-api/internal/application/catalogo"
	"github.com/jmolina/avicola-api/internal/application/dto"
)

// CatalogoHandler maneja productos y vehículos (protegido).
type CatalogoHandler struct {
	uc *catalogo.CatalogoUseCase
}

// NewCatalogoHandler construye el handler.
func NewCatalogoHandler(uc *catalogo.CatalogoUseCase) *CatalogoHandler {
	return &CatalogoHandler{uc: uc}
}

// CreateProducto godoc
// @Summary      Crear producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductoRequest  true  "datos del producto"
// @Success      201   {object}  dto.ProductoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *CatalogoHandler) CreateProducto(c *fiber.Ctx) error {
	var in dto.CreateProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateProducto(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetProducto godoc
// @Summary      Obtener producto
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.ProductoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *CatalogoHandler) GetProducto(c *fiber.Ctx) error {
	out, err := h.uc.GetProducto(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ListProductos godoc
// @Summary      Listar productos
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo por página"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.ProductoListResponse
// @Router       /api/productos [get]
func (h *CatalogoHandler) ListProductos(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 50), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListProductos(c.Context(), page)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// UpdateProducto godoc
// @Summary      Actualizar producto
// @Description  El tipo y la unidad base no se tocan después del alta.
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del producto"
// @Param        body  body  dto.UpdateProductoRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.ProductoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [put]
func (h *CatalogoHandler) UpdateProducto(c *fiber.Ctx) error {
	var in dto.UpdateProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateProducto(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// DeleteProducto godoc
// @Summary      Eliminar producto
// @Tags         productos
// @Security     Bearer
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [delete]
func (h *CatalogoHandler) DeleteProducto(c *fiber.Ctx) error {
	if err := h.uc.DeleteProducto(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ProductosBajoMinimo godoc
// @Summary      Productos con stock total bajo el mínimo
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductoResponse
// @Router       /api/productos/bajo-minimo [get]
func (h *CatalogoHandler) ProductosBajoMinimo(c *fiber.Ctx) error {
	out, err := h.uc.ProductosBajoMinimo(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// CreateVehiculo godoc
// @Summary      Alta de vehículo
// @Tags         vehiculos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVehiculoRequest  true  "patente y datos"
// @Success      201   {object}  dto.VehiculoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vehiculos [post]
func (h *CatalogoHandler) CreateVehiculo(c *fiber.Ctx) error {
	var in dto.CreateVehiculoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateVehiculo(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetVehiculo godoc
// @Summary      Obtener vehículo
// @Tags         vehiculos
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del vehículo"
// @Success      200  {object}  dto.VehiculoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vehiculos/{id} [get]
func (h *CatalogoHandler) GetVehiculo(c *fiber.Ctx) error {
	out, err := h.uc.GetVehiculo(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ListVehiculos godoc
// @Summary      Listar vehículos
// @Tags         vehiculos
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo por página"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.VehiculoResponse
// @Router       /api/vehiculos [get]
func (h *CatalogoHandler) ListVehiculos(c *fiber.Ctx) error {
	out, err := h.uc.ListVehiculos(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// UpdateVehiculo godoc
// @Summary      Actualizar vehículo
// @Description  El kilometraje solo avanza, nunca retrocede.
// @Tags         vehiculos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del vehículo"
// @Param        body  body  dto.UpdateVehiculoRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.VehiculoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vehiculos/{id} [put]
func (h *CatalogoHandler) UpdateVehiculo(c *fiber.Ctx) error {
	var in dto.UpdateVehiculoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateVehiculo(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// DeleteVehiculo godoc
// @Summary      Baja de vehículo
// @Description  No se puede dar de baja un vehículo en ruta.
// @Tags         vehiculos
// @Security     Bearer
// @Param        id  path  string  true  "ID del vehículo"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/vehiculos/{id} [delete]
func (h *CatalogoHandler) DeleteVehiculo(c *fiber.Ctx) error {
	if err := h.uc.DeleteVehiculo(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
