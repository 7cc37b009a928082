package granja

import (
	"context"

	"github.com/jmolina/avicola-api/internal/domain/repository"
)

// TxRunner ejecuta operaciones de granja dentro de una transacción. Silos,
// galpones y lotes comparten runner porque una transferencia de aves toca
// dos galpones y dos lotes a la vez.
type TxRunner interface {
	RunGranja(ctx context.Context, fn func(
		galponRepo repository.GalponRepository,
		loteRepo repository.LoteRepository,
		siloRepo repository.SiloRepository,
		movRepo repository.MovimientoRepository,
	) error) error
}
