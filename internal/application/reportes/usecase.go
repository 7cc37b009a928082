package reportes

import (
	"context"
	"time"

	"github.com/jmolina/avicola-api/internal/application/dto"
	"github.com/jmolina/avicola-api/internal/domain"
	"github.com/jmolina/avicola-api/internal/domain/repository"
)

// ReportesUseCase arma los reportes financieros a partir de las consultas
// agregadas del repositorio. No guarda estado: los totales salen siempre de
// las filas de detalle para que reconcilien con los libros.
type ReportesUseCase struct {
	repo repository.ReportesRepository
}

// NewReportesUseCase construye el caso de uso.
func NewReportesUseCase(repo repository.ReportesRepository) *ReportesUseCase {
	return &ReportesUseCase{repo: repo}
}

// Financiero devuelve el resumen del período: ventas, cobros, gastos y deuda.
func (uc *ReportesUseCase) Financiero(ctx context.Context, desde, hasta time.Time) (*dto.ReporteFinancieroDTO, error) {
	if hasta.Before(desde) {
		return nil, domain.ErrInvalidInput
	}
	r, err := uc.repo.ResumenFinanciero(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	out := &dto.ReporteFinancieroDTO{
		Periodo: dto.PeriodoDTO{
			Inicio: desde.Format("2006-01-02"),
			Fin:    hasta.Format("2006-01-02"),
		},
		VentasTotal: r.VentasTotal,
		CantVentas:  r.CantVentas,
		CobrosTotal: r.CobrosTotal,
		GastosTotal: r.GastosTotal,
		Resultado:   r.VentasTotal.Sub(r.GastosTotal),
		DeudaTotal:  r.DeudaTotal,
	}
	for _, m := range r.VentasPorMetodo {
		out.VentasPorMetodo = append(out.VentasPorMetodo, dto.MontoPorClaveDTO(m))
	}
	for _, m := range r.GastosPorTipo {
		out.GastosPorTipo = append(out.GastosPorTipo, dto.MontoPorClaveDTO(m))
	}
	return out, nil
}

// VentasPorProducto devuelve cantidades, ingresos y margen por producto.
func (uc *ReportesUseCase) VentasPorProducto(ctx context.Context, desde, hasta time.Time) ([]dto.VentasPorProductoDTO, error) {
	if hasta.Before(desde) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.repo.VentasPorProducto(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VentasPorProductoDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.VentasPorProductoDTO{
			ProductoID:   r.ProductoID,
			Producto:     r.Producto,
			UnidadBase:   r.UnidadBase,
			CantidadBase: r.CantidadBase,
			Ingresos:     r.Ingresos,
			Costo:        r.Costo,
			Margen:       r.Margen,
		})
	}
	return out, nil
}

// VentasPorVendedor devuelve ventas e ingresos por vendedor.
func (uc *ReportesUseCase) VentasPorVendedor(ctx context.Context, desde, hasta time.Time) ([]dto.VentasPorVendedorDTO, error) {
	if hasta.Before(desde) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.repo.VentasPorVendedor(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VentasPorVendedorDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.VentasPorVendedorDTO{
			VendedorID: r.VendedorID,
			Vendedor:   r.Vendedor,
			CantVentas: r.CantVentas,
			Ingresos:   r.Ingresos,
		})
	}
	return out, nil
}

// GastosPorVehiculo devuelve el gasto acumulado de cada vehículo.
func (uc *ReportesUseCase) GastosPorVehiculo(ctx context.Context, desde, hasta time.Time) ([]dto.GastosPorVehiculoDTO, error) {
	if hasta.Before(desde) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.repo.GastosPorVehiculo(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GastosPorVehiculoDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.GastosPorVehiculoDTO{
			VehiculoID: r.VehiculoID,
			Patente:    r.Patente,
			Total:      r.Total,
			Litros:     r.Litros,
		})
	}
	return out, nil
}
