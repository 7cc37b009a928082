package dto

import "time"

// CreateVehiculoRequest body para POST /api/vehiculos.
type CreateVehiculoRequest struct {
	Patente     string `json:"patente"`
	Kilometraje int    `json:"kilometraje"`
	ChoferID    string `json:"chofer_id,omitempty"`
}

// UpdateVehiculoRequest body para PUT /api/vehiculos/:id.
type UpdateVehiculoRequest struct {
	Kilometraje       *int       `json:"kilometraje,omitempty"`
	ChoferID          *string    `json:"chofer_id,omitempty"`
	UltimoService     *time.Time `json:"ultimo_service,omitempty"`
	VencimientoVTV    *time.Time `json:"vencimiento_vtv,omitempty"`
	VencimientoSeguro *time.Time `json:"vencimiento_seguro,omitempty"`
	Activo            *bool      `json:"activo,omitempty"`
}

// VehiculoResponse representación de un vehículo.
type VehiculoResponse struct {
	ID                string     `json:"id"`
	Patente           string     `json:"patente"`
	Kilometraje       int        `json:"kilometraje"`
	EnRuta            bool       `json:"en_ruta"`
	ChoferID          string     `json:"chofer_id,omitempty"`
	UltimoService     *time.Time `json:"ultimo_service,omitempty"`
	VencimientoVTV    *time.Time `json:"vencimiento_vtv,omitempty"`
	VencimientoSeguro *time.Time `json:"vencimiento_seguro,omitempty"`
	Activo            bool       `json:"activo"`
}
