package repository

import "github.com/jmolina/avicola-api/internal/domain/entity"

// VehiculoRepository puerto de persistencia para vehículos.
type VehiculoRepository interface {
	Create(v *entity.Vehiculo) error
	GetByID(id string) (*entity.Vehiculo, error)
	GetByPatente(patente string) (*entity.Vehiculo, error)
	Update(v *entity.Vehiculo) error
	List(limit, offset int) ([]*entity.Vehiculo, error)
	Delete(id string) error
}

// ViajeRepository puerto de persistencia para viajes.
type ViajeRepository interface {
	Create(v *entity.Viaje) error
	GetByID(id string) (*entity.Viaje, error)
	// GetEnCursoPorVehiculo devuelve el viaje en curso del vehículo o nil.
	GetEnCursoPorVehiculo(vehiculoID string) (*entity.Viaje, error)
	Update(v *entity.Viaje) error
	List(limit, offset int) ([]*entity.Viaje, error)
}
