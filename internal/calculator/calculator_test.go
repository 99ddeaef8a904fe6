package calculator

import (
	"testing"

	"github.com/carlos-rodrigo/margen-agro/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, d(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

// baseInputs is a blank scenario: no commercial expense, no harvest tariff,
// no commission, so each test only sees the costs it sets.
func baseInputs() model.CalculatorInputs {
	in := DefaultInputs()
	in.Precio.GastoComercial = model.GastoPorcentual{Porcentaje: decimal.Zero}
	in.Cosecha.TarifaBase = decimal.Zero
	in.Cosecha.ComisionAcopio = decimal.Zero
	in.Cosecha.FleteTarifa = decimal.Zero
	return in
}

func TestCalculateMargin_IngresoBruto(t *testing.T) {
	in := baseInputs()
	in.Produccion.Superficie = d("100")
	in.Produccion.Rendimiento = d("35")
	in.Precio.PrecioBruto = d("350")

	r := CalculateMargin(in)

	assertDec(t, "1225", r.IngresoBrutoHa)
	assertDec(t, "122500", r.IngresoBrutoTotal)
}

func TestCalculateMargin_Labores(t *testing.T) {
	in := baseInputs()
	in.Labores.Labores = []model.LaborItem{
		{ID: "1", Nombre: "Siembra", Modalidad: model.LaborContratada, Cantidad: 1, CostoUnitario: d("25")},
		{ID: "2", Nombre: "Pulverización", Modalidad: model.LaborPropia, Cantidad: 3, CostoUnitario: d("10")},
	}

	r := CalculateMargin(in)

	assertDec(t, "55", r.DesgloseCostos.Labores)
	assertDec(t, "55", r.CostosDirectosHa)
}

func TestCalculateMargin_Insumos(t *testing.T) {
	in := baseInputs()
	in.Insumos.Semilla = model.Semilla{Dosis: d("80"), Precio: d("0.5")}
	in.Insumos.TratamientoSemilla = model.TratamientoSemilla{Activo: true, Costo: d("10")}
	in.Insumos.Fertilizantes = []model.FertilizerItem{{ID: "1", Producto: "Urea", Dosis: d("100"), Precio: d("0.6")}}
	in.Insumos.Agroquimicos = []model.AgrochemicalItem{{ID: "1", Tipo: "herbicida", Producto: "Glifosato", Dosis: d("3"), Precio: d("5")}}

	r := CalculateMargin(in)

	assertDec(t, "50", r.DesgloseCostos.Semilla)
	assertDec(t, "60", r.DesgloseCostos.Fertilizantes)
	assertDec(t, "15", r.DesgloseCostos.Agroquimicos)
	assertDec(t, "125", r.CostosDirectosHa)
}

func TestCalculateMargin_TratamientoInactivoNoSuma(t *testing.T) {
	in := baseInputs()
	in.Insumos.Semilla = model.Semilla{Dosis: d("80"), Precio: d("0.5")}
	in.Insumos.TratamientoSemilla = model.TratamientoSemilla{Activo: false, Costo: d("10")}

	assertDec(t, "40", CalculateMargin(in).DesgloseCostos.Semilla)
}

func TestCalculateMargin_Flete(t *testing.T) {
	in := baseInputs()
	in.Produccion.Rendimiento = d("35")
	in.Cosecha.FleteDistancia = d("100")
	in.Cosecha.FleteTarifa = d("0.08")

	assertDec(t, "28", CalculateMargin(in).DesgloseCostos.Flete)
}

func TestCalculateMargin_GastosComercialesPorcentaje(t *testing.T) {
	in := baseInputs()
	in.Produccion.Rendimiento = d("35")
	in.Precio.PrecioBruto = d("350")
	in.Precio.GastoComercial = model.GastoPorcentual{Porcentaje: d("5")}

	// 1225 * 5% = 61.25
	assertDec(t, "61.25", CalculateMargin(in).DesgloseCostos.Comercializacion)
}

func TestCalculateMargin_GastosComercialesPorTonelada(t *testing.T) {
	in := baseInputs()
	in.Produccion.Rendimiento = d("35")
	in.Precio.PrecioBruto = d("350")
	in.Precio.GastoComercial = model.GastoPorTonelada{Monto: d("4")}
	in.Cosecha.ComisionAcopio = d("2")
	in.Cosecha.OtrosGastos = d("5")

	// 1225*2% + 4*3.5 + 5
	assertDec(t, "43.5", CalculateMargin(in).DesgloseCostos.Comercializacion)
}

func TestCalculateMargin_GastoComercialNilEsCero(t *testing.T) {
	in := baseInputs()
	in.Produccion.Rendimiento = d("35")
	in.Precio.PrecioBruto = d("350")
	in.Precio.GastoComercial = nil

	assert.True(t, CalculateMargin(in).DesgloseCostos.Comercializacion.IsZero())
}

func TestCalculateMargin_ArrendamientoQQSoja(t *testing.T) {
	in := baseInputs()
	in.Arrendamiento = model.ArrendamientoData{
		EsArrendado: true,
		Modalidad:   model.ArrendamientoQQSoja{QQSojaHa: d("12"), PrecioSojaQQ: d("30")},
	}

	r := CalculateMargin(in)

	assertDec(t, "360", r.DesgloseCostos.Arrendamiento)
	assert.True(t, r.CostosDirectosHa.IsZero())
	assertDec(t, "-360", r.MargenBrutoAjustadoHa)
}

func TestCalculateMargin_ArrendamientoFijo(t *testing.T) {
	in := baseInputs()
	in.Arrendamiento = model.ArrendamientoData{
		EsArrendado: true,
		Modalidad:   model.ArrendamientoFijo{MontoFijoUSD: d("250")},
	}

	assertDec(t, "250", CalculateMargin(in).DesgloseCostos.Arrendamiento)
}

func TestCalculateMargin_NoArrendadoIgnoraModalidad(t *testing.T) {
	in := baseInputs()
	in.Arrendamiento.EsArrendado = false

	assert.True(t, CalculateMargin(in).DesgloseCostos.Arrendamiento.IsZero())
}

func TestCalculateMargin_Financiamiento(t *testing.T) {
	in := baseInputs()
	in.Cosecha.TarifaBase = d("200")
	in.Financiamiento = model.FinanciamientoData{Incluir: true, TEA: d("24")}

	r := CalculateMargin(in)

	assertDec(t, "200", r.CostosDirectosHa)
	assertDec(t, "12", r.DesgloseCostos.Financiamiento)
	assertDec(t, "-212", r.MargenBrutoAjustadoHa)
}

func TestCalculateMargin_FinanciamientoExcluido(t *testing.T) {
	in := baseInputs()
	in.Cosecha.TarifaBase = d("200")
	in.Financiamiento = model.FinanciamientoData{Incluir: false, TEA: d("24")}

	assert.True(t, CalculateMargin(in).DesgloseCostos.Financiamiento.IsZero())
}

func TestCalculateMargin_RindeIndiferencia(t *testing.T) {
	in := baseInputs()
	in.Precio.PrecioBruto = d("350")
	in.Cosecha.TarifaBase = d("700")

	assertDec(t, "20", CalculateMargin(in).RindeIndiferencia)

	in.Produccion.UnidadRendimiento = model.UnidadTonelada
	assertDec(t, "2", CalculateMargin(in).RindeIndiferencia)
}

func TestCalculateMargin_MargenYRetorno(t *testing.T) {
	in := baseInputs()
	in.Produccion.Superficie = d("100")
	in.Produccion.Rendimiento = d("35")
	in.Precio.PrecioBruto = d("350")
	in.Cosecha.TarifaBase = d("225")

	r := CalculateMargin(in)

	assertDec(t, "1225", r.IngresoBrutoHa)
	assertDec(t, "225", r.CostosDirectosHa)
	assertDec(t, "22500", r.CostosDirectosTotal)
	assertDec(t, "1000", r.MargenBrutoHa)
	assertDec(t, "100000", r.MargenBrutoTotal)
	assertDec(t, "444.44", r.RetornoPorPesoInvertido.Round(2))
}

func TestCalculateMargin_CostosDirectosExcluyenArrendamientoYFinanciamiento(t *testing.T) {
	in := baseInputs()
	in.Produccion.Superficie = d("50")
	in.Produccion.Rendimiento = d("30")
	in.Precio.PrecioBruto = d("300")
	in.Cosecha.TarifaBase = d("35")
	in.Labores.Labores = []model.LaborItem{{ID: "1", Cantidad: 2, CostoUnitario: d("20")}}
	in.Arrendamiento = model.ArrendamientoData{
		EsArrendado: true,
		Modalidad:   model.ArrendamientoFijo{MontoFijoUSD: d("300")},
	}
	in.Financiamiento = model.FinanciamientoData{Incluir: true, TEA: d("40")}

	r := CalculateMargin(in)

	assertDec(t, "75", r.CostosDirectosHa)
	assert.True(t, r.CostosDirectosHa.Equal(r.DesgloseCostos.Directos()))
	assertDec(t, "825", r.MargenBrutoHa)
	assertDec(t, "7.5", r.DesgloseCostos.Financiamiento)
	// 825 - 300 - 7.5
	assertDec(t, "517.5", r.MargenBrutoAjustadoHa)
	assertDec(t, "25875", r.MargenBrutoAjustadoTotal)
}

func TestCalculateMargin_PrecioCeroSinIndiferencia(t *testing.T) {
	in := baseInputs()
	in.Cosecha.TarifaBase = d("100")

	r := CalculateMargin(in)

	assert.True(t, r.RindeIndiferencia.IsZero())
	assertDec(t, "-100", r.MargenBrutoHa)
}

func TestCalculateMargin_CostosCeroSinRetorno(t *testing.T) {
	in := baseInputs()
	in.Produccion.Rendimiento = d("35")
	in.Precio.PrecioBruto = d("350")

	r := CalculateMargin(in)

	assert.True(t, r.CostosDirectosHa.IsZero())
	assert.True(t, r.RetornoPorPesoInvertido.IsZero())
}

func TestCalculateMargin_QuintalesYToneladasEquivalentes(t *testing.T) {
	qq := baseInputs()
	qq.Produccion.Rendimiento = d("35")
	qq.Precio.PrecioBruto = d("350")

	tn := qq
	tn.Produccion.Rendimiento = d("3.5")
	tn.Produccion.UnidadRendimiento = model.UnidadTonelada

	assert.True(t, CalculateMargin(qq).IngresoBrutoHa.Equal(CalculateMargin(tn).IngresoBrutoHa))
}

func TestCalculateMargin_Idempotente(t *testing.T) {
	in := baseInputs()
	in.Produccion.Superficie = d("120")
	in.Produccion.Rendimiento = d("42")
	in.Precio.PrecioBruto = d("180")
	in.Labores.Labores = []model.LaborItem{{ID: "1", Cantidad: 2, CostoUnitario: d("18.5")}}
	in.Financiamiento.Incluir = true

	first := CalculateMargin(in)
	second := CalculateMargin(in)

	require.Equal(t, first, second)
}

func TestCalculateMargin_EntradasNegativasSePropagan(t *testing.T) {
	in := baseInputs()
	in.Produccion.Rendimiento = d("-10")
	in.Precio.PrecioBruto = d("100")

	assertDec(t, "-100", CalculateMargin(in).IngresoBrutoHa)
}

func TestCalculateMargin_NoMutaEntradas(t *testing.T) {
	in := baseInputs()
	in.Labores.Labores = []model.LaborItem{{ID: "1", Cantidad: 1, CostoUnitario: d("25")}}
	before := in.Labores.Labores[0]

	CalculateMargin(in)

	assert.Equal(t, before, in.Labores.Labores[0])
}

func TestDefaultInputs(t *testing.T) {
	in := DefaultInputs()

	assert.Equal(t, model.UnidadQuintal, in.Produccion.UnidadRendimiento)
	assert.Equal(t, model.GastoPorcentual{Porcentaje: decimal.NewFromInt(5)}, in.Precio.GastoComercial)
	assertDec(t, "35", in.Cosecha.TarifaBase)
	assertDec(t, "0.08", in.Cosecha.FleteTarifa)
	assertDec(t, "2", in.Cosecha.ComisionAcopio)
	assert.False(t, in.Arrendamiento.EsArrendado)
	assertDec(t, "360", in.Arrendamiento.Modalidad.CostoHa())
	assert.False(t, in.Financiamiento.Incluir)
	assertDec(t, "24", in.Financiamiento.TEA)
	assert.Empty(t, in.Labores.Labores)
	assert.NotNil(t, in.Labores.Labores)

	// Fresh slices: appending to one copy never leaks into the next.
	in.Labores.Labores = append(in.Labores.Labores, model.LaborItem{ID: "x"})
	assert.Empty(t, DefaultInputs().Labores.Labores)
}

func TestDefaultInputs_CalculaSinErrores(t *testing.T) {
	r := CalculateMargin(DefaultInputs())

	assertDec(t, "35", r.CostosDirectosHa)
	assert.True(t, r.IngresoBrutoHa.IsZero())
	assert.True(t, r.RindeIndiferencia.IsZero())
	assertDec(t, "-35", r.MargenBrutoHa)
	assertDec(t, "-100", r.RetornoPorPesoInvertido)
}
