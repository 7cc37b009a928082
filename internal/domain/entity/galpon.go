package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos y estados de galpón.
const (
	GalponProduccion = "produccion" // ponedoras
	GalponCria       = "cria"       // pollitas en recría

	GalponActivo        = "activo"
	GalponEnLimpieza    = "en_limpieza"
	GalponDeshabilitado = "deshabilitado"
)

// Galpon es una nave avícola. CantidadAves refleja el lote activo más las
// transferencias recibidas; se mantiene junto con los lotes en la misma
// transacción.
type Galpon struct {
	ID           string
	Nombre       string
	Tipo         string // produccion, cria
	Estado       string
	CantidadAves int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Estados de lote.
const (
	LoteActivo  = "activo"
	LoteCerrado = "cerrado"
)

// LoteAve es una camada ingresada a un galpón. Un galpón tiene a lo sumo un
// lote activo a la vez; la regla se aplica en el caso de uso, no en el schema.
type LoteAve struct {
	ID              string
	GalponID        string
	TipoAve         string
	CantidadInicial int
	CantidadActual  int
	PrecioPorAve    decimal.Decimal
	FechaIngreso    time.Time
	FechaSalida     *time.Time
	Estado          string // activo, cerrado
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EventoMortalidad registra bajas de un lote. Solo inserción, nunca se edita.
type EventoMortalidad struct {
	ID        string
	LoteID    string
	Cantidad  int
	Motivo    string
	Fecha     time.Time
	UsuarioID string
	CreatedAt time.Time
}
