package entity

import "time"

// Roles válidos para Usuario. El rol viaja como string solo en el borde
// HTTP/JWT; dentro del sistema siempre se compara contra estas constantes.
const (
	RolAdmin      = "admin"
	RolOficina    = "oficina"
	RolChofer     = "chofer"
	RolGalponero  = "galponero"
	RolVendedor   = "vendedor"
	RolSupervisor = "supervisor"
	RolCobrador   = "cobrador"
)

// RolValido informa si el string corresponde a un rol conocido.
func RolValido(rol string) bool {
	switch rol {
	case RolAdmin, RolOficina, RolChofer, RolGalponero, RolVendedor, RolSupervisor, RolCobrador:
		return true
	}
	return false
}

// Usuario representa un empleado con acceso al sistema.
type Usuario struct {
	ID           string
	Nombre       string
	DNI          string
	Email        string
	PasswordHash string // bcrypt, nunca en claro después de persistir
	Rol          string
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
