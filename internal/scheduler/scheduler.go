// Package scheduler agrupa las tareas programadas de la aplicación.
package scheduler

import (
	"context"
	"time"

	"github.com/jmolina/avicola-api/internal/application/personal"
	"github.com/jmolina/avicola-api/pkg/config"
	"github.com/jmolina/avicola-api/pkg/logger"
	"github.com/jmolina/avicola-api/pkg/reloj"
	"github.com/robfig/cron/v3"
)

// Scheduler corre los jobs periódicos sobre robfig/cron.
type Scheduler struct {
	cron       *cron.Cron
	personalUC *personal.PersonalUseCase
	clock      reloj.Clock
	log        *logger.Logger
}

// New construye el scheduler con sus jobs registrados pero sin arrancar.
func New(cfg config.JobsConfig, personalUC *personal.PersonalUseCase, clock reloj.Clock, log *logger.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:       cron.New(),
		personalUC: personalUC,
		clock:      clock,
		log:        log,
	}

	// Cierre diario de asistencias: todo empleado activo sin marca queda
	// como ausente injustificado. El job es idempotente.
	if _, err := s.cron.AddFunc(cfg.AsistenciaCron, s.marcarAusentes); err != nil {
		return nil, err
	}

	return s, nil
}

// Start arranca el cron en su propia goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler iniciado")
}

// Stop detiene el cron y espera a que terminen los jobs en curso.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler detenido")
}

func (s *Scheduler) marcarAusentes() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fecha := s.clock.Now()
	n, err := s.personalUC.MarcarAusentes(ctx, fecha)
	if err != nil {
		s.log.Error().Err(err).Msg("cierre de asistencias falló")
		return
	}
	s.log.Info().
		Str("fecha", fecha.Format("2006-01-02")).
		Int("marcados", n).
		Msg("cierre de asistencias")
}
