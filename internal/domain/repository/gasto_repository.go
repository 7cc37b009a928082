package repository

import (
	"time"

	"github.com/jmolina/avicola-api/internal/domain/entity"
)

// GastoRepository puerto de persistencia para gastos.
type GastoRepository interface {
	Create(g *entity.Gasto) error
	GetByID(id string) (*entity.Gasto, error)
	List(desde, hasta time.Time, tipo string, limit, offset int) ([]*entity.Gasto, error)
	Delete(id string) error
}
