package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de ubicación de stock. El depósito central es único, por lo que las
// filas de depósito usan UbicacionID vacío.
const (
	UbicacionDeposito = "deposito"
	UbicacionVehiculo = "vehiculo"
)

// Stock representa la cantidad actual de un producto en una ubicación
// (depósito central o un vehículo), en la unidad base del producto.
type Stock struct {
	UbicacionTipo string
	UbicacionID   string // ID del vehículo; vacío para el depósito
	ProductoID    string
	Cantidad      decimal.Decimal
	UpdatedAt     time.Time
}
