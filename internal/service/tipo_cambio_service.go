package service

import (
	"context"
	"time"

	"github.com/carlos-rodrigo/margen-agro/internal/infra"
	"github.com/carlos-rodrigo/margen-agro/internal/metrics"
	"github.com/carlos-rodrigo/margen-agro/internal/model"
	"github.com/carlos-rodrigo/margen-agro/internal/repository"

	"github.com/rs/zerolog/log"
)

// TipoCambioFeed is the upstream exchange rate (infra.DolarClient).
type TipoCambioFeed interface {
	Fetch(ctx context.Context) (model.TipoCambio, error)
}

// TipoCambioService returns the ARS/USD rate used for display only.
type TipoCambioService interface {
	Obtener(ctx context.Context) model.TipoCambio
}

type tipoCambioService struct {
	feed TipoCambioFeed
	repo repository.TipoCambioRepository
	now  func() time.Time
}

func NewTipoCambioService(feed TipoCambioFeed, repo repository.TipoCambioRepository) TipoCambioService {
	return &tipoCambioService{feed: feed, repo: repo, now: time.Now}
}

func (s *tipoCambioService) Obtener(ctx context.Context) model.TipoCambio {
	cached, ok, err := s.repo.Get(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("tipo de cambio: cache no disponible")
	}
	if ok && cached.Venta.IsPositive() {
		return cached
	}

	tc, err := s.feed.Fetch(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("tipo de cambio: usando valor referencial")
		metrics.FeedFetches.WithLabelValues("dolar", "fallback").Inc()
		return infra.DefaultTipoCambio(s.now())
	}
	if err := s.repo.Save(ctx, tc); err != nil {
		log.Warn().Err(err).Msg("tipo de cambio: no se pudo cachear")
	}
	return tc
}
