package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovCargaInicial      = "carga_inicial"      // primera carga del vehículo en el día
	MovRecarga           = "recarga"            // recargas posteriores
	MovVenta             = "venta"              // salida por venta desde vehículo
	MovDevolucionCliente = "devolucion_cliente" // reingreso por devolución
	MovDescargaFinal     = "descarga_final"     // vuelta del remanente al depósito
	MovMerma             = "merma"              // rotura / pérdida, con motivo
	MovAjuste            = "ajuste"             // ajuste manual con signo
	MovCompra            = "compra"             // ingreso al depósito por compra
	MovConsumoProduccion = "consumo_produccion" // salida de silo hacia galpones
	MovIngresoSilo       = "ingreso_silo"       // ingreso de materia prima al silo
)

// MovimientoStock es una fila del libro de movimientos: se inserta una vez y
// nunca se modifica. Cantidad va siempre en la unidad base del producto (o en
// kg para silos), con signo: positivo entra, negativo sale de la ubicación.
type MovimientoStock struct {
	ID            string
	Tipo          string
	UbicacionTipo string // deposito, vehiculo, silo, galpon
	UbicacionID   string
	ProductoID    string
	Cantidad      decimal.Decimal
	Referencia    string // ID de venta, compra, viaje o lote asociado
	Motivo        string // obligatorio para merma y ajuste
	UsuarioID     string
	Fecha         time.Time
	CreatedAt     time.Time
}
