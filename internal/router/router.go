package router

import (
	"time"

	"github.com/carlos-rodrigo/margen-agro/internal/config"
	"github.com/carlos-rodrigo/margen-agro/internal/handler"
	"github.com/carlos-rodrigo/margen-agro/internal/middleware"
	"github.com/carlos-rodrigo/margen-agro/internal/repository"
	"github.com/carlos-rodrigo/margen-agro/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
)

// Services are the application services shared by the HTTP API and the
// background scheduler.
type Services struct {
	Pizarra    service.PizarraService
	TipoCambio service.TipoCambioService
	Margen     service.MargenService
}

// NewServices wires Service ← Repository ← Redis / Feed clients.
func NewServices(cfg *config.Config, rdb *redis.Client, bolsa service.PizarraFeed, dolar service.TipoCambioFeed) Services {
	pizarraRepo := repository.NewPizarraRepository(rdb, cfg.PreciosTTL())
	tipoCambioRepo := repository.NewTipoCambioRepository(rdb, cfg.PreciosTTL())
	resultadoRepo := repository.NewResultadoRepository(rdb, cfg.ResultadosTTL())

	pizarra := service.NewPizarraService(bolsa, pizarraRepo)
	tipoCambio := service.NewTipoCambioService(dolar, tipoCambioRepo)
	return Services{
		Pizarra:    pizarra,
		TipoCambio: tipoCambio,
		Margen:     service.NewMargenService(pizarra, tipoCambio, resultadoRepo),
	}
}

// New returns a configured Gin engine serving svc. breakers are reported by /health.
func New(cfg *config.Config, rdb *redis.Client, svc Services, breakers ...*gobreaker.CircuitBreaker) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Handlers ─────────────────────────────────────────────────────────────
	preciosH := handler.NewPreciosHandler(svc.Pizarra, svc.TipoCambio)
	margenH := handler.NewMargenHandler(svc.Margen, cfg.PublicURL)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(rdb, breakers...))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.GET("/inputs/default", margenH.Default)

		precios := v1.Group("/precios")
		{
			precios.GET("", preciosH.Listar)
			precios.GET("/:cultivo", preciosH.PorCultivo)
			// Forces a scrape; cheap to abuse so it gets the tight limiter.
			precios.POST("/refrescar", middleware.HeavyRateLimiter(), preciosH.Refrescar)
		}
		v1.GET("/tipo-cambio", preciosH.TipoCambio)

		margen := v1.Group("/margen")
		{
			margen.POST("/calcular", margenH.Calcular)
			margen.POST("/compartir", margenH.Compartir)
			margen.GET("/estado", margenH.Estado)
			margen.POST("/informe", margenH.Informe)
			margen.POST("/informe/pdf", middleware.HeavyRateLimiter(), margenH.InformePDF)
		}
	}

	// Swagger UI — only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
