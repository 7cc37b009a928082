package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompraItem línea de una compra al depósito.
type CompraItem struct {
	ProductoID    string          `json:"producto_id"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	Unidad        string          `json:"unidad"` // por defecto la unidad base del producto
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
}

// RegistrarCompraRequest body para POST /api/inventario/compras.
type RegistrarCompraRequest struct {
	Proveedor string       `json:"proveedor"`
	Items     []CompraItem `json:"items"`
}

// CargaItem línea de carga/descarga de un vehículo.
type CargaItem struct {
	ProductoID string          `json:"producto_id"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	Unidad     string          `json:"unidad"`
}

// CargarVehiculoRequest body para POST /api/inventario/cargas.
type CargarVehiculoRequest struct {
	VehiculoID string      `json:"vehiculo_id"`
	Items      []CargaItem `json:"items"`
	// Recarga distingue recargas del día de la carga inicial, solo a efectos
	// del tipo de movimiento en el libro.
	Recarga bool `json:"recarga"`
}

// DescargarVehiculoRequest body para POST /api/inventario/descargas.
// Sin items: descarga todo el remanente del vehículo.
type DescargarVehiculoRequest struct {
	VehiculoID string      `json:"vehiculo_id"`
	Items      []CargaItem `json:"items"`
}

// RegistrarMermaRequest body para POST /api/inventario/mermas.
type RegistrarMermaRequest struct {
	ProductoID    string          `json:"producto_id"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	Unidad        string          `json:"unidad"`
	UbicacionTipo string          `json:"ubicacion_tipo"` // deposito o vehiculo
	VehiculoID    string          `json:"vehiculo_id,omitempty"`
	Motivo        string          `json:"motivo"`
}

// DevolucionClienteRequest body para POST /api/inventario/devoluciones.
type DevolucionClienteRequest struct {
	VehiculoID string          `json:"vehiculo_id"`
	ProductoID string          `json:"producto_id"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	Unidad     string          `json:"unidad"`
	Motivo     string          `json:"motivo"`
}

// AjusteManualRequest body para POST /api/inventario/ajustes.
type AjusteManualRequest struct {
	ProductoID    string          `json:"producto_id"`
	Cantidad      decimal.Decimal `json:"cantidad"` // con signo, en la unidad indicada
	Unidad        string          `json:"unidad"`
	UbicacionTipo string          `json:"ubicacion_tipo"`
	VehiculoID    string          `json:"vehiculo_id,omitempty"`
	Motivo        string          `json:"motivo"`
}

// StockItemResponse stock de un producto en una ubicación.
type StockItemResponse struct {
	ProductoID string          `json:"producto_id"`
	Producto   string          `json:"producto"`
	UnidadBase string          `json:"unidad_base"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// MovimientoResponse una fila del libro de movimientos.
type MovimientoResponse struct {
	ID            string          `json:"id"`
	Tipo          string          `json:"tipo"`
	UbicacionTipo string          `json:"ubicacion_tipo"`
	UbicacionID   string          `json:"ubicacion_id,omitempty"`
	ProductoID    string          `json:"producto_id"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	Referencia    string          `json:"referencia,omitempty"`
	Motivo        string          `json:"motivo,omitempty"`
	UsuarioID     string          `json:"usuario_id"`
	Fecha         time.Time       `json:"fecha"`
}
