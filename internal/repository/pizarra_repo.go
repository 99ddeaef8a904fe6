package repository

import (
	"context"
	"time"

	"github.com/carlos-rodrigo/margen-agro/internal/model"

	"github.com/redis/go-redis/v9"
)

// PizarraRepository caches the last successful price board fetch.
type PizarraRepository interface {
	Get(ctx context.Context) (model.PreciosPizarra, bool, error)
	Save(ctx context.Context, p model.PreciosPizarra) error
}

type pizarraRepository struct {
	cache jsonCache[model.PreciosPizarra]
}

func NewPizarraRepository(rdb *redis.Client, ttl time.Duration) PizarraRepository {
	return &pizarraRepository{cache: jsonCache[model.PreciosPizarra]{
		rdb: rdb, name: "pizarra", prefix: "pizarra:", ttl: ttl,
	}}
}

func (r *pizarraRepository) Get(ctx context.Context) (model.PreciosPizarra, bool, error) {
	return r.cache.get(ctx, "actual")
}

func (r *pizarraRepository) Save(ctx context.Context, p model.PreciosPizarra) error {
	return r.cache.set(ctx, "actual", p)
}
