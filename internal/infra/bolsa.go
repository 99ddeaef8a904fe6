package infra

// bolsa.go — price board ("pizarra") scraper for the Bolsa de Cereales site.
// The page has no API; quotes live in plain HTML tables where the first cell
// names the crop and the second carries the price.

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/carlos-rodrigo/margen-agro/internal/metrics"
	"github.com/carlos-rodrigo/margen-agro/internal/model"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
)

const (
	FuenteBolsa       = "Bolsa de Cereales de Buenos Aires"
	FuenteReferencial = "Precio referencial"

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// ErrBolsaSinPrecios is returned when the page loads but no known crop row parses.
var ErrBolsaSinPrecios = errors.New("bolsa: no se encontraron precios")

// cultivoKeys is checked in order; the first key contained in the row name wins.
var cultivoKeys = []struct {
	key     string
	cultivo string
}{
	{"soja", "soja"},
	{"soja fabrica", "soja"},
	{"maiz", "maiz"},
	{"maíz", "maiz"},
	{"trigo", "trigo"},
	{"girasol", "girasol"},
	{"cebada", "cebada"},
	{"sorgo", "sorgo"},
}

var precioRe = regexp.MustCompile(`[\d.,]+`)

type BolsaConfig struct {
	URL        string
	Timeout    time.Duration
	MaxRetries uint64
	Breaker    CircuitBreakerConfig
}

// BolsaClient fetches the board through resty, retrying with exponential
// backoff inside a circuit breaker.
type BolsaClient struct {
	http       *resty.Client
	url        string
	maxRetries uint64
	cb         *gobreaker.CircuitBreaker
	now        func() time.Time
}

func NewBolsaClient(cfg BolsaConfig) *BolsaClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2
	}

	restyClient := resty.New()
	restyClient.
		SetHeader("User-Agent", browserUserAgent).
		SetHeader("Accept", "text/html").
		SetTimeout(cfg.Timeout)

	return &BolsaClient{
		http:       restyClient,
		url:        cfg.URL,
		maxRetries: cfg.MaxRetries,
		cb:         NewCircuitBreaker("bolsa", cfg.Breaker),
		now:        time.Now,
	}
}

// Breaker exposes the breaker for health reporting.
func (c *BolsaClient) Breaker() *gobreaker.CircuitBreaker { return c.cb }

// Fetch downloads and parses the board. Errors are returned as-is; falling
// back to reference prices is the caller's decision.
func (c *BolsaClient) Fetch(ctx context.Context) (model.PreciosPizarra, error) {
	out, err := c.cb.Execute(func() (interface{}, error) {
		var body []byte
		op := func() error {
			resp, err := c.http.R().SetContext(ctx).Get(c.url)
			if err != nil {
				return fmt.Errorf("bolsa: request: %w", err)
			}
			if resp.IsError() {
				err := fmt.Errorf("bolsa: http status %d", resp.StatusCode())
				if resp.StatusCode() < http.StatusInternalServerError {
					return backoff.Permanent(err)
				}
				return err
			}
			body = resp.Body()
			return nil
		}

		bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
		if err := backoff.Retry(op, bo); err != nil {
			return nil, err
		}

		now := c.now()
		precios, err := ParsePizarra(bytes.NewReader(body), now)
		if err != nil {
			return nil, err
		}
		return model.PreciosPizarra{Precios: precios, UltimaActualizacion: now.UTC()}, nil
	})
	if err != nil {
		metrics.FeedFetches.WithLabelValues("bolsa", "error").Inc()
		return model.PreciosPizarra{}, err
	}
	metrics.FeedFetches.WithLabelValues("bolsa", "ok").Inc()
	return out.(model.PreciosPizarra), nil
}

// ParsePizarra extracts one quote per known crop from every table row with at
// least two cells. The first row found for a crop is kept.
func ParsePizarra(r io.Reader, now time.Time) ([]model.PrecioPizarra, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("bolsa: parse html: %w", err)
	}

	fecha := dia(now)
	vistos := make(map[string]bool)
	var precios []model.PrecioPizarra

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		nombre := strings.ToLower(strings.TrimSpace(cells.Eq(0).Text()))
		cultivo, ok := matchCultivo(nombre)
		if !ok || vistos[cultivo] {
			return
		}
		precio, ok := ParsePrecio(strings.TrimSpace(cells.Eq(1).Text()))
		if !ok {
			return
		}
		vistos[cultivo] = true
		precios = append(precios, model.PrecioPizarra{
			Cultivo: cultivo,
			Precio:  precio,
			Fecha:   fecha,
			Fuente:  FuenteBolsa,
		})
	})

	if len(precios) == 0 {
		return nil, ErrBolsaSinPrecios
	}
	return precios, nil
}

func matchCultivo(nombre string) (string, bool) {
	for _, k := range cultivoKeys {
		if strings.Contains(nombre, k.key) {
			return k.cultivo, true
		}
	}
	return "", false
}

// ParsePrecio reads the first number in s. With a comma present, dots are
// thousands separators and the comma is the decimal mark ("1.234,50").
// Only positive prices are accepted.
func ParsePrecio(s string) (decimal.Decimal, bool) {
	m := precioRe.FindString(s)
	if m == "" {
		return decimal.Zero, false
	}
	if strings.Contains(m, ",") {
		m = strings.ReplaceAll(m, ".", "")
		m = strings.Replace(m, ",", ".", 1)
		m = strings.ReplaceAll(m, ",", "")
	}
	m = strings.Trim(m, ".")

	v, err := decimal.NewFromString(m)
	if err != nil || !v.IsPositive() {
		return decimal.Zero, false
	}
	return v, true
}

// DefaultPrecios are historical reference quotes (USD/tn) served when the board is unreachable.
func DefaultPrecios(now time.Time) model.PreciosPizarra {
	fecha := dia(now)
	ref := func(cultivo string, precio int64) model.PrecioPizarra {
		return model.PrecioPizarra{Cultivo: cultivo, Precio: decimal.NewFromInt(precio), Fecha: fecha, Fuente: FuenteReferencial}
	}
	return model.PreciosPizarra{
		Precios: []model.PrecioPizarra{
			ref("soja", 340),
			ref("maiz", 180),
			ref("trigo", 220),
			ref("girasol", 380),
			ref("cebada", 200),
			ref("sorgo", 170),
		},
		UltimaActualizacion: now.UTC(),
	}
}

func dia(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
