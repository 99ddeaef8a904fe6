package worker

// pizarra_cron.go
// Scheduled refresh of the price board cache so requests rarely pay for a
// scrape. Skips ticks while the feed breaker is open.

import (
	"context"
	"fmt"
	"time"

	"github.com/carlos-rodrigo/margen-agro/internal/model"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

const refreshTimeout = 2 * time.Minute

// Refresher is satisfied by service.PizarraService.
type Refresher interface {
	Refrescar(ctx context.Context) (model.PreciosPizarra, error)
}

// PizarraCronConfig holds all dependencies for the scheduler.
type PizarraCronConfig struct {
	Spec      string // robfig/cron spec, e.g. "@every 1h" or "0 */2 * * *"
	Refresher Refresher
	CB        *gobreaker.CircuitBreaker // optional
	WarmUp    bool                      // refresh once right after Start
}

type PizarraCron struct {
	cron *cron.Cron
	cfg  PizarraCronConfig
}

func NewPizarraCron(cfg PizarraCronConfig) *PizarraCron {
	return &PizarraCron{
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		cfg:  cfg,
	}
}

// Start schedules the refresh job and starts the cron goroutine.
func (p *PizarraCron) Start() error {
	if _, err := p.cron.AddFunc(p.cfg.Spec, p.refresh); err != nil {
		return fmt.Errorf("pizarra_cron: invalid spec %q: %w", p.cfg.Spec, err)
	}
	p.cron.Start()
	log.Info().Str("spec", p.cfg.Spec).Msg("pizarra_cron: started")

	if p.cfg.WarmUp {
		go p.refresh()
	}
	return nil
}

// Stop halts scheduling and waits for a running refresh to finish.
func (p *PizarraCron) Stop(ctx context.Context) {
	log.Info().Msg("pizarra_cron: shutting down")
	select {
	case <-p.cron.Stop().Done():
	case <-ctx.Done():
		log.Warn().Msg("pizarra_cron: refresh still running at shutdown")
	}
}

func (p *PizarraCron) refresh() {
	if p.cfg.CB != nil && p.cfg.CB.State() == gobreaker.StateOpen {
		log.Debug().Msg("pizarra_cron: circuit breaker is open, skipping tick")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	precios, err := p.cfg.Refresher.Refrescar(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("pizarra_cron: refresh failed")
		return
	}
	log.Info().Int("precios", len(precios.Precios)).Msg("pizarra_cron: board refreshed")
}
