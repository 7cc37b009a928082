package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmolina/avicola-api/internal/application/dto"
	"github.com/jmolina/avicola-api/internal/application/reportes"
)

// ReportesHandler expone los reportes de gestión (protegido, admin/oficina).
type ReportesHandler struct {
	uc *reportes.ReportesUseCase
}

// NewReportesHandler construye el handler.
func NewReportesHandler(uc *reportes.ReportesUseCase) *ReportesHandler {
	return &ReportesHandler{uc: uc}
}

// Financiero godoc
// @Summary      Resumen financiero del período
// @Description  Ventas por método de pago, cobros, gastos por tipo, resultado y deuda viva.
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "fecha inicial (RFC3339 o 2006-01-02)"
// @Param        hasta  query  string  false  "fecha final"
// @Success      200  {object}  dto.ReporteFinancieroDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/financiero [get]
func (h *ReportesHandler) Financiero(c *fiber.Ctx) error {
	desde, hasta, err := rangoFechas(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida"})
	}
	out, err := h.uc.Financiero(c.Context(), desde, hasta)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// VentasPorProducto godoc
// @Summary      Ventas y margen por producto
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "fecha inicial"
// @Param        hasta  query  string  false  "fecha final"
// @Success      200  {array}  dto.VentasPorProductoDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/ventas-por-producto [get]
func (h *ReportesHandler) VentasPorProducto(c *fiber.Ctx) error {
	desde, hasta, err := rangoFechas(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida"})
	}
	out, err := h.uc.VentasPorProducto(c.Context(), desde, hasta)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// VentasPorVendedor godoc
// @Summary      Ventas por vendedor
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "fecha inicial"
// @Param        hasta  query  string  false  "fecha final"
// @Success      200  {array}  dto.VentasPorVendedorDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/ventas-por-vendedor [get]
func (h *ReportesHandler) VentasPorVendedor(c *fiber.Ctx) error {
	desde, hasta, err := rangoFechas(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida"})
	}
	out, err := h.uc.VentasPorVendedor(c.Context(), desde, hasta)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// GastosPorVehiculo godoc
// @Summary      Gastos por vehículo
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "fecha inicial"
// @Param        hasta  query  string  false  "fecha final"
// @Success      200  {array}  dto.GastosPorVehiculoDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/gastos-por-vehiculo [get]
func (h *ReportesHandler) GastosPorVehiculo(c *fiber.Ctx) error {
	desde, hasta, err := rangoFechas(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida"})
	}
	out, err := h.uc.GastosPorVehiculo(c.Context(), desde, hasta)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
