package entity

import "time"

// Vehiculo representa un vehículo de reparto.
type Vehiculo struct {
	ID                string
	Patente           string
	Kilometraje       int
	EnRuta            bool
	ChoferID          string // vacío si no tiene chofer asignado
	UltimoService     *time.Time
	VencimientoVTV    *time.Time
	VencimientoSeguro *time.Time
	Activo            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
