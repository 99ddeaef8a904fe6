package repository

import (
	"context"
	"time"

	"github.com/carlos-rodrigo/margen-agro/internal/model"

	"github.com/redis/go-redis/v9"
)

type TipoCambioRepository interface {
	Get(ctx context.Context) (model.TipoCambio, bool, error)
	Save(ctx context.Context, tc model.TipoCambio) error
}

type tipoCambioRepository struct {
	cache jsonCache[model.TipoCambio]
}

func NewTipoCambioRepository(rdb *redis.Client, ttl time.Duration) TipoCambioRepository {
	return &tipoCambioRepository{cache: jsonCache[model.TipoCambio]{
		rdb: rdb, name: "tipo_cambio", prefix: "tipo_cambio:", ttl: ttl,
	}}
}

func (r *tipoCambioRepository) Get(ctx context.Context) (model.TipoCambio, bool, error) {
	return r.cache.get(ctx, "oficial")
}

func (r *tipoCambioRepository) Save(ctx context.Context, tc model.TipoCambio) error {
	return r.cache.set(ctx, "oficial", tc)
}
