package dto

import "time"

// CreateEmpleadoRequest body para POST /api/empleados.
type CreateEmpleadoRequest struct {
	Nombre   string `json:"nombre"`
	DNI      string `json:"dni"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      string `json:"rol"`
}

// UpdateEmpleadoRequest body para PUT /api/empleados/:id.
type UpdateEmpleadoRequest struct {
	Nombre *string `json:"nombre,omitempty"`
	Email  *string `json:"email,omitempty"`
	Rol    *string `json:"rol,omitempty"`
	Activo *bool   `json:"activo,omitempty"`
}

// RegistrarAsistenciaRequest body para POST /api/asistencias.
type RegistrarAsistenciaRequest struct {
	UsuarioID      string     `json:"usuario_id"`
	Fecha          *time.Time `json:"fecha,omitempty"` // por defecto hoy
	Presente       bool       `json:"presente"`
	MotivoAusencia string     `json:"motivo_ausencia,omitempty"`
	Justificada    bool       `json:"justificada,omitempty"`
}

// AsistenciaResponse registro de un día de un empleado.
type AsistenciaResponse struct {
	ID             string    `json:"id"`
	UsuarioID      string    `json:"usuario_id"`
	Fecha          time.Time `json:"fecha"`
	Presente       bool      `json:"presente"`
	MotivoAusencia string    `json:"motivo_ausencia,omitempty"`
	Justificada    bool      `json:"justificada,omitempty"`
}

// EstadisticasAsistenciaResponse resumen mensual de un empleado.
type EstadisticasAsistenciaResponse struct {
	UsuarioID               string `json:"usuario_id"`
	Anio                    int    `json:"anio"`
	Mes                     int    `json:"mes"`
	DiasPresente            int    `json:"dias_presente"`
	AusenciasJustificadas   int    `json:"ausencias_justificadas"`
	AusenciasInjustificadas int    `json:"ausencias_injustificadas"`
}
