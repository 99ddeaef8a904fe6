package service

import (
	"context"
	"errors"
	"sync"

	"github.com/carlos-rodrigo/margen-agro/internal/model"
	"github.com/carlos-rodrigo/margen-agro/internal/repository"
)

// ── In-memory caches ─────────────────────────────────────────────────────────

type memPizarraRepo struct {
	p     *model.PreciosPizarra
	err   error
	saves int
}

var _ repository.PizarraRepository = (*memPizarraRepo)(nil)

func (r *memPizarraRepo) Get(_ context.Context) (model.PreciosPizarra, bool, error) {
	if r.err != nil {
		return model.PreciosPizarra{}, false, r.err
	}
	if r.p == nil {
		return model.PreciosPizarra{}, false, nil
	}
	return *r.p, true, nil
}

func (r *memPizarraRepo) Save(_ context.Context, p model.PreciosPizarra) error {
	if r.err != nil {
		return r.err
	}
	r.saves++
	r.p = &p
	return nil
}

type memTipoCambioRepo struct {
	tc *model.TipoCambio
}

var _ repository.TipoCambioRepository = (*memTipoCambioRepo)(nil)

func (r *memTipoCambioRepo) Get(_ context.Context) (model.TipoCambio, bool, error) {
	if r.tc == nil {
		return model.TipoCambio{}, false, nil
	}
	return *r.tc, true, nil
}

func (r *memTipoCambioRepo) Save(_ context.Context, tc model.TipoCambio) error {
	r.tc = &tc
	return nil
}

type memResultadoRepo struct {
	mu    sync.Mutex
	data  map[string]model.CalculationResults
	err   error
	gets  int
	saves int
}

var _ repository.ResultadoRepository = (*memResultadoRepo)(nil)

func newMemResultadoRepo() *memResultadoRepo {
	return &memResultadoRepo{data: make(map[string]model.CalculationResults)}
}

func (r *memResultadoRepo) Get(_ context.Context, key string) (model.CalculationResults, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	if r.err != nil {
		return model.CalculationResults{}, false, r.err
	}
	res, ok := r.data[key]
	return res, ok, nil
}

func (r *memResultadoRepo) Save(_ context.Context, key string, res model.CalculationResults) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.saves++
	r.data[key] = res
	return nil
}

// ── Feeds ────────────────────────────────────────────────────────────────────

var errFeedCaido = errors.New("feed caido")

type stubPizarraFeed struct {
	p     model.PreciosPizarra
	err   error
	calls int
}

var _ PizarraFeed = (*stubPizarraFeed)(nil)

func (f *stubPizarraFeed) Fetch(_ context.Context) (model.PreciosPizarra, error) {
	f.calls++
	return f.p, f.err
}

type stubTipoCambioFeed struct {
	tc    model.TipoCambio
	err   error
	calls int
}

var _ TipoCambioFeed = (*stubTipoCambioFeed)(nil)

func (f *stubTipoCambioFeed) Fetch(_ context.Context) (model.TipoCambio, error) {
	f.calls++
	return f.tc, f.err
}
