package entity

import "time"

// Asistencia registra presencia o ausencia de un empleado en un día.
// Una fila por (usuario, fecha); el job nocturno inserta las ausencias de
// quien no registró actividad.
type Asistencia struct {
	ID             string
	UsuarioID      string
	Fecha          time.Time // solo la parte fecha es significativa
	Presente       bool
	MotivoAusencia string
	Justificada    bool
	CreatedAt      time.Time
}
