package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/carlos-rodrigo/margen-agro/internal/calculator"
	"github.com/carlos-rodrigo/margen-agro/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInputs() model.CalculatorInputs {
	in := calculator.DefaultInputs()
	in.Produccion.Cultivo = "soja"
	in.Produccion.Superficie = decimal.NewFromInt(100)
	in.Produccion.Rendimiento = decimal.NewFromInt(35)
	in.Precio.PrecioBruto = decimal.NewFromInt(340)
	in.Labores.Labores = []model.LaborItem{
		{ID: "l1", Nombre: "Siembra", Modalidad: model.LaborContratada, Cantidad: 1, CostoUnitario: decimal.NewFromInt(25)},
	}
	in.Arrendamiento = model.ArrendamientoData{
		EsArrendado: true,
		Modalidad:   model.ArrendamientoFijo{MontoFijoUSD: decimal.NewFromInt(200)},
	}
	return in
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	in := sampleInputs()

	token, err := Encode(in)
	require.NoError(t, err)

	got, err := Decode(token)
	require.NoError(t, err)

	want, err := json.Marshal(calculator.CalculateMargin(in))
	require.NoError(t, err)
	have, err := json.Marshal(calculator.CalculateMargin(got))
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(have))
	assert.Equal(t, "soja", got.Produccion.Cultivo)
	assert.Equal(t, model.ArrendamientoModoFijo, got.Arrendamiento.Modalidad.Modo())
	require.Len(t, got.Labores.Labores, 1)
	assert.Equal(t, "l1", got.Labores.Labores[0].ID)
}

func TestDecode_PartialStateMergesOntoDefaults(t *testing.T) {
	raw := `{"produccion":{"cultivo":"maiz","superficie":50,"rendimiento":80,"unidadRendimiento":"qq"},"arrendamiento":{"esArrendado":true}}`
	token := base64.StdEncoding.EncodeToString([]byte(raw))

	got, err := Decode(token)
	require.NoError(t, err)

	def := calculator.DefaultInputs()
	assert.Equal(t, "maiz", got.Produccion.Cultivo)
	assert.True(t, got.Cosecha.TarifaBase.Equal(def.Cosecha.TarifaBase))
	assert.True(t, got.Financiamiento.TEA.Equal(def.Financiamiento.TEA))
	assert.Equal(t, model.GastoModoPorcentaje, got.Precio.GastoComercial.Modo())
	assert.True(t, got.Arrendamiento.EsArrendado)
	assert.True(t, got.Arrendamiento.Modalidad.CostoHa().Equal(decimal.NewFromInt(360)))
}

func TestDecode_BrowserToken(t *testing.T) {
	raw := `{"produccion":{"cultivo":"girasol","superficie":10,"rendimiento":2.5,"unidadRendimiento":"tn"}}`
	token := base64.StdEncoding.EncodeToString([]byte(url.QueryEscape(raw)))

	got, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "girasol", got.Produccion.Cultivo)
	assert.Equal(t, model.UnidadTonelada, got.Produccion.UnidadRendimiento)
}

func TestDecode_URLSafeWithoutPadding(t *testing.T) {
	raw := `{"produccion":{"cultivo":"trigo"}}`
	token := base64.RawURLEncoding.EncodeToString([]byte(raw))

	got, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "trigo", got.Produccion.Cultivo)
}

func TestDecode_Invalid(t *testing.T) {
	cases := map[string]string{
		"not base64":       "%%%",
		"not json":         base64.StdEncoding.EncodeToString([]byte("hola")),
		"sin produccion":   base64.StdEncoding.EncodeToString([]byte(`{"precio":{"precioBruto":1}}`)),
		"modo desconocido": base64.StdEncoding.EncodeToString([]byte(`{"produccion":{},"arrendamiento":{"modo":"x"}}`)),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(token)
			assert.True(t, errors.Is(err, ErrEstadoInvalido), "got %v", err)
		})
	}
}

func TestShareURL(t *testing.T) {
	token, err := Encode(sampleInputs())
	require.NoError(t, err)
	u, err := ShareURL("https://rindemax.app/?ref=x", token)
	require.NoError(t, err)

	parsed, err := url.Parse(u)
	require.NoError(t, err)
	assert.Equal(t, "x", parsed.Query().Get("ref"))

	got, err := Decode(parsed.Query().Get(StateParam))
	require.NoError(t, err)
	assert.Equal(t, "soja", got.Produccion.Cultivo)
}

func TestShareText(t *testing.T) {
	assert.Equal(t,
		"Calculé mi margen bruto de soja: USD 1000.00/ha con RindeMax",
		ShareText("soja", decimal.NewFromInt(1000)))
}

func TestShareIntents(t *testing.T) {
	r := ShareIntents("https://rindemax.app/?state=abc", "hola")
	assert.True(t, strings.HasPrefix(r.Twitter, "https://twitter.com/intent/tweet?text=hola&url="))
	assert.Contains(t, r.WhatsApp, "hola%0Ahttps")
	assert.Contains(t, r.LinkedIn, url.QueryEscape("https://rindemax.app/?state=abc"))
}
