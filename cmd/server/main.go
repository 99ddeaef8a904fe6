package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carlos-rodrigo/margen-agro/internal/config"
	"github.com/carlos-rodrigo/margen-agro/internal/infra"
	"github.com/carlos-rodrigo/margen-agro/internal/router"
	"github.com/carlos-rodrigo/margen-agro/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger — dev: pretty, prod: JSON
	zerolog.TimeFieldFormat = time.RFC3339
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	breaker := infra.CircuitBreakerConfig{
		FailureThreshold: cfg.CBFailures,
		OpenTimeout:      time.Duration(cfg.CBOpenSeconds) * time.Second,
	}
	bolsa := infra.NewBolsaClient(infra.BolsaConfig{
		URL:     cfg.BolsaURL,
		Timeout: cfg.FeedTimeout(),
		Breaker: breaker,
	})
	dolar := infra.NewDolarClient(infra.DolarConfig{
		URL:     cfg.DolarAPIURL,
		Timeout: cfg.FeedTimeout(),
		Breaker: breaker,
	})

	svc := router.NewServices(cfg, rdb, bolsa, dolar)

	// The scheduler refreshes through the same service (and feed breaker) the API reads.
	cron := worker.NewPizarraCron(worker.PizarraCronConfig{
		Spec:      cfg.PizarraCron,
		Refresher: svc.Pizarra,
		CB:        bolsa.Breaker(),
		WarmUp:    true,
	})
	if err := cron.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start pizarra scheduler")
	}

	r := router.New(cfg, rdb, svc, bolsa.Breaker(), dolar.Breaker())

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("RindeMax API listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	cron.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
