package repository

import "github.com/jmolina/avicola-api/internal/domain/entity"

// SiloRepository puerto de persistencia para silos y sus contenidos.
type SiloRepository interface {
	Create(s *entity.Silo) error
	GetByID(id string) (*entity.Silo, error)
	GetForUpdate(id string) (*entity.Silo, error)
	Update(s *entity.Silo) error
	List() ([]*entity.Silo, error)

	GetContenidoForUpdate(siloID, material string) (*entity.ContenidoSilo, error)
	UpsertContenido(c *entity.ContenidoSilo) error
	ListContenido(siloID string) ([]*entity.ContenidoSilo, error)
}

// GalponRepository puerto de persistencia para galpones.
type GalponRepository interface {
	Create(g *entity.Galpon) error
	GetByID(id string) (*entity.Galpon, error)
	GetForUpdate(id string) (*entity.Galpon, error)
	Update(g *entity.Galpon) error
	List() ([]*entity.Galpon, error)
}

// LoteRepository puerto de persistencia para lotes de aves y su mortalidad.
type LoteRepository interface {
	Create(l *entity.LoteAve) error
	GetByID(id string) (*entity.LoteAve, error)
	GetForUpdate(id string) (*entity.LoteAve, error)
	// GetActivoPorGalpon devuelve el lote activo del galpón o nil.
	GetActivoPorGalpon(galponID string) (*entity.LoteAve, error)
	Update(l *entity.LoteAve) error
	ListByGalpon(galponID string) ([]*entity.LoteAve, error)

	CreateMortalidad(e *entity.EventoMortalidad) error
	ListMortalidad(loteID string) ([]*entity.EventoMortalidad, error)
}
