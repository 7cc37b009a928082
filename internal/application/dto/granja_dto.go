package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Silos ─────────────────────────────────────────────────────────────────────

// CreateSiloRequest body para POST /api/silos.
type CreateSiloRequest struct {
	Nombre      string          `json:"nombre"`
	CapacidadKg decimal.Decimal `json:"capacidad_kg"`
}

// IngresoSiloRequest body para POST /api/silos/:id/ingresos.
type IngresoSiloRequest struct {
	Material   string          `json:"material"`
	CantidadKg decimal.Decimal `json:"cantidad_kg"`
	CostoPorKg decimal.Decimal `json:"costo_por_kg"`
}

// ConsumoSiloRequest body para POST /api/silos/:id/consumos.
type ConsumoSiloRequest struct {
	Material   string          `json:"material"`
	CantidadKg decimal.Decimal `json:"cantidad_kg"`
	GalponID   string          `json:"galpon_id,omitempty"`
}

// ContenidoSiloResponse una materia prima dentro del silo.
type ContenidoSiloResponse struct {
	Material   string          `json:"material"`
	CantidadKg decimal.Decimal `json:"cantidad_kg"`
	CostoPorKg decimal.Decimal `json:"costo_por_kg"`
}

// SiloResponse silo con su contenido.
type SiloResponse struct {
	ID             string                  `json:"id"`
	Nombre         string                  `json:"nombre"`
	CapacidadKg    decimal.Decimal         `json:"capacidad_kg"`
	CantidadActual decimal.Decimal         `json:"cantidad_actual"`
	Contenido      []ContenidoSiloResponse `json:"contenido,omitempty"`
}

// ── Galpones y lotes ──────────────────────────────────────────────────────────

// CreateGalponRequest body para POST /api/galpones.
type CreateGalponRequest struct {
	Nombre string `json:"nombre"`
	Tipo   string `json:"tipo"` // produccion, cria
}

// GalponResponse representación de un galpón.
type GalponResponse struct {
	ID           string `json:"id"`
	Nombre       string `json:"nombre"`
	Tipo         string `json:"tipo"`
	Estado       string `json:"estado"`
	CantidadAves int    `json:"cantidad_aves"`
}

// CrearLoteRequest body para POST /api/galpones/:id/lotes.
type CrearLoteRequest struct {
	TipoAve      string          `json:"tipo_ave"`
	Cantidad     int             `json:"cantidad"`
	PrecioPorAve decimal.Decimal `json:"precio_por_ave"`
}

// LoteResponse representación de un lote.
type LoteResponse struct {
	ID              string          `json:"id"`
	GalponID        string          `json:"galpon_id"`
	TipoAve         string          `json:"tipo_ave"`
	CantidadInicial int             `json:"cantidad_inicial"`
	CantidadActual  int             `json:"cantidad_actual"`
	PrecioPorAve    decimal.Decimal `json:"precio_por_ave"`
	FechaIngreso    time.Time       `json:"fecha_ingreso"`
	FechaSalida     *time.Time      `json:"fecha_salida,omitempty"`
	Estado          string          `json:"estado"`
}

// RegistrarMortalidadRequest body para POST /api/lotes/:id/mortalidad.
type RegistrarMortalidadRequest struct {
	Cantidad int    `json:"cantidad"`
	Motivo   string `json:"motivo"`
}

// MortalidadResponse un evento de mortalidad del lote.
type MortalidadResponse struct {
	ID       string    `json:"id"`
	LoteID   string    `json:"lote_id"`
	Cantidad int       `json:"cantidad"`
	Motivo   string    `json:"motivo,omitempty"`
	Fecha    time.Time `json:"fecha"`
}

// TransferirLoteRequest body para POST /api/lotes/:id/transferir.
// Mueve aves del lote (galpón de cría) a un galpón de producción.
type TransferirLoteRequest struct {
	GalponDestinoID string `json:"galpon_destino_id"`
	Cantidad        int    `json:"cantidad"`
}
