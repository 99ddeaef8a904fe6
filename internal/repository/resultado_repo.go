package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/carlos-rodrigo/margen-agro/internal/model"

	"github.com/redis/go-redis/v9"
)

// ResultadoRepository memoizes engine results keyed by their inputs.
type ResultadoRepository interface {
	Get(ctx context.Context, key string) (model.CalculationResults, bool, error)
	Save(ctx context.Context, key string, r model.CalculationResults) error
}

type resultadoRepository struct {
	cache jsonCache[model.CalculationResults]
}

func NewResultadoRepository(rdb *redis.Client, ttl time.Duration) ResultadoRepository {
	return &resultadoRepository{cache: jsonCache[model.CalculationResults]{
		rdb: rdb, name: "resultado", prefix: "resultado:", ttl: ttl,
	}}
}

func (r *resultadoRepository) Get(ctx context.Context, key string) (model.CalculationResults, bool, error) {
	return r.cache.get(ctx, key)
}

func (r *resultadoRepository) Save(ctx context.Context, key string, res model.CalculationResults) error {
	return r.cache.set(ctx, key, res)
}

// ClaveResultado is the SHA-256 of the canonical inputs JSON. Item ids are part
// of the key; two inputs differing only in ids get separate entries.
func ClaveResultado(in model.CalculatorInputs) (string, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("resultado key: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
