// Command pizarra scrapes the board once and prints it as JSON.
// With -save the result is also written to the Redis cache the API reads.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/carlos-rodrigo/margen-agro/internal/config"
	"github.com/carlos-rodrigo/margen-agro/internal/infra"
	"github.com/carlos-rodrigo/margen-agro/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	save := flag.Bool("save", false, "store the board in redis")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	bolsa := infra.NewBolsaClient(infra.BolsaConfig{URL: cfg.BolsaURL, Timeout: cfg.FeedTimeout()})
	precios, err := bolsa.Fetch(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("url", cfg.BolsaURL).Msg("scrape failed")
	}

	if *save {
		rdb, err := infra.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		if err := repository.NewPizarraRepository(rdb, cfg.PreciosTTL()).Save(ctx, precios); err != nil {
			log.Fatal().Err(err).Msg("failed to save board")
		}
		log.Info().Int("precios", len(precios.Precios)).Msg("board saved")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(precios); err != nil {
		log.Fatal().Err(err).Msg("encode failed")
	}
}
