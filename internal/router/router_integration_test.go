//go:build integration

package router

// End-to-end tests against real Redis (testcontainers) and fake upstream feeds.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/carlos-rodrigo/margen-agro/internal/config"
	"github.com/carlos-rodrigo/margen-agro/internal/dto"
	"github.com/carlos-rodrigo/margen-agro/internal/infra"
	"github.com/carlos-rodrigo/margen-agro/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

const bolsaHTML = `<html><body><table>
<tr><th>Producto</th><th>Precio</th></tr>
<tr><td>Soja</td><td>US$ 320</td></tr>
<tr><td>Maíz</td><td>175</td></tr>
</table></body></html>`

type testEnv struct {
	server *httptest.Server
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(rdURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	bolsaSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(bolsaHTML))
	}))
	t.Cleanup(bolsaSrv.Close)
	dolarSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"compra":1000,"venta":1050,"fechaActualizacion":"2026-05-04T14:00:00Z"}`))
	}))
	t.Cleanup(dolarSrv.Close)

	cfg := &config.Config{
		Port:                 8000,
		Env:                  "test",
		RateLimitPerMinute:   1000,
		PublicURL:            "https://rindemax.test",
		RedisURL:             rdURL,
		PreciosCacheMinutes:  60,
		ResultadosCacheHours: 1,
	}
	bolsa := infra.NewBolsaClient(infra.BolsaConfig{URL: bolsaSrv.URL, Timeout: 2 * time.Second})
	dolar := infra.NewDolarClient(infra.DolarConfig{URL: dolarSrv.URL, Timeout: 2 * time.Second})

	svc := NewServices(cfg, rdb, bolsa, dolar)
	srv := httptest.NewServer(New(cfg, rdb, svc, bolsa.Breaker(), dolar.Breaker()))
	t.Cleanup(srv.Close)
	return &testEnv{server: srv}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func TestE2E_PizarraYMargen(t *testing.T) {
	env := setupTestEnv(t)

	resp := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/v1/precios/soja", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var soja model.PrecioPizarra
	decodeJSON(t, resp, &soja)
	assert.True(t, decimal.NewFromInt(320).Equal(soja.Precio))
	assert.Equal(t, infra.FuenteBolsa, soja.Fuente)

	body := map[string]any{
		"produccion": map[string]any{"cultivo": "soja", "superficie": 100, "rendimiento": 35, "unidadRendimiento": "qq"},
		"precio":     map[string]any{"precioBruto": 0, "gastosComerciales": 5, "modoGastosComerciales": "percent", "isPrecioPizarra": true},
	}
	resp = env.do(t, http.MethodPost, "/v1/margen/calcular", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var calc dto.CalculoResponse
	decodeJSON(t, resp, &calc)
	assert.True(t, decimal.NewFromInt(320).Equal(calc.Inputs.Precio.PrecioBruto))

	// Same scenario again is served from the result cache with the same figures.
	resp = env.do(t, http.MethodPost, "/v1/margen/calcular", body)
	var again dto.CalculoResponse
	decodeJSON(t, resp, &again)
	assert.True(t, calc.Resultados.MargenBrutoHa.Equal(again.Resultados.MargenBrutoHa))

	resp = env.do(t, http.MethodGet, "/v1/tipo-cambio", nil)
	var tc model.TipoCambio
	decodeJSON(t, resp, &tc)
	assert.True(t, decimal.NewFromInt(1050).Equal(tc.Venta))

	resp = env.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
