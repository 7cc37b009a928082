package entity

import "time"

// Estados de viaje.
const (
	ViajeEnCurso    = "en_curso"
	ViajeFinalizado = "finalizado"
)

// Viaje es una salida a ruta de un vehículo con su chofer. Un vehículo tiene
// a lo sumo un viaje en curso; la regla se aplica en el caso de uso.
type Viaje struct {
	ID           string
	VehiculoID   string
	ChoferID     string
	FechaSalida  time.Time
	FechaRegreso *time.Time
	Estado       string
	Notas        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
