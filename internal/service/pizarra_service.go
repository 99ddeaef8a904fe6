package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carlos-rodrigo/margen-agro/internal/infra"
	"github.com/carlos-rodrigo/margen-agro/internal/metrics"
	"github.com/carlos-rodrigo/margen-agro/internal/model"
	"github.com/carlos-rodrigo/margen-agro/internal/repository"

	"github.com/rs/zerolog/log"
)

var ErrCultivoSinPrecio = errors.New("no hay precio de pizarra para el cultivo")

// PizarraFeed is the upstream price board (infra.BolsaClient).
type PizarraFeed interface {
	Fetch(ctx context.Context) (model.PreciosPizarra, error)
}

// PizarraService serves board prices: cache first, then the feed, then
// reference prices. Reading never fails.
type PizarraService interface {
	Precios(ctx context.Context) model.PreciosPizarra
	PrecioCultivo(ctx context.Context, cultivo string) (model.PrecioPizarra, error)
	// Refrescar bypasses the cache. On error the cache is left untouched.
	Refrescar(ctx context.Context) (model.PreciosPizarra, error)
}

type pizarraService struct {
	feed PizarraFeed
	repo repository.PizarraRepository
	now  func() time.Time
}

func NewPizarraService(feed PizarraFeed, repo repository.PizarraRepository) PizarraService {
	return &pizarraService{feed: feed, repo: repo, now: time.Now}
}

func (s *pizarraService) Precios(ctx context.Context) model.PreciosPizarra {
	cached, ok, err := s.repo.Get(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("pizarra: cache no disponible")
	}
	if ok && len(cached.Precios) > 0 {
		return cached
	}

	p, err := s.Refrescar(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("pizarra: usando precios referenciales")
		metrics.FeedFetches.WithLabelValues("bolsa", "fallback").Inc()
		return infra.DefaultPrecios(s.now())
	}
	return p
}

func (s *pizarraService) PrecioCultivo(ctx context.Context, cultivo string) (model.PrecioPizarra, error) {
	p, ok := s.Precios(ctx).Buscar(cultivo)
	if !ok {
		return model.PrecioPizarra{}, fmt.Errorf("%w: %s", ErrCultivoSinPrecio, cultivo)
	}
	return p, nil
}

func (s *pizarraService) Refrescar(ctx context.Context) (model.PreciosPizarra, error) {
	p, err := s.feed.Fetch(ctx)
	if err != nil {
		return model.PreciosPizarra{}, err
	}
	if len(p.Precios) == 0 {
		return model.PreciosPizarra{}, infra.ErrBolsaSinPrecios
	}
	if err := s.repo.Save(ctx, p); err != nil {
		log.Warn().Err(err).Msg("pizarra: no se pudo cachear")
	}
	return p, nil
}
