// Package calculator computes the gross margin of one crop-season scenario.
//
// CalculateMargin is a total function: it never validates, never errors and
// performs no I/O. Divisions are guarded so a zero price or zero direct cost
// yields 0 for the dependent indicator.
package calculator

import (
	"github.com/carlos-rodrigo/margen-agro/internal/model"

	"github.com/shopspring/decimal"
)

var (
	cien  = decimal.NewFromInt(100)
	medio = decimal.NewFromFloat(0.5)
)

// CalculateMargin derives revenue, direct costs, margins and indicators from in.
// All monetary outputs are in the currency of the input price, per hectare
// unless the field name says Total.
func CalculateMargin(in model.CalculatorInputs) model.CalculationResults {
	prod := in.Produccion
	precio := in.Precio.PrecioBruto

	rindeTnHa := prod.UnidadRendimiento.ATonelada(prod.Rendimiento)

	ingresoHa := rindeTnHa.Mul(precio)
	ingresoTotal := ingresoHa.Mul(prod.Superficie)

	desglose := model.DesgloseCostos{
		Labores:       costoLabores(in.Labores),
		Semilla:       costoSemilla(in.Insumos),
		Fertilizantes: costoFertilizantes(in.Insumos.Fertilizantes),
		Agroquimicos:  costoAgroquimicos(in.Insumos.Agroquimicos),
		Cosecha:       in.Cosecha.TarifaBase,
		Flete:         in.Cosecha.FleteDistancia.Mul(in.Cosecha.FleteTarifa).Mul(rindeTnHa),
		Comercializacion: ingresoHa.Mul(in.Cosecha.ComisionAcopio).Div(cien).
			Add(gastoComercial(in.Precio.GastoComercial, ingresoHa, rindeTnHa)).
			Add(in.Cosecha.OtrosGastos),
		Arrendamiento: costoArrendamiento(in.Arrendamiento),
	}

	directosHa := desglose.Directos()
	margenHa := ingresoHa.Sub(directosHa)

	if in.Financiamiento.Incluir {
		desglose.Financiamiento = directosHa.Mul(medio).Mul(in.Financiamiento.TEA).Div(cien).Mul(medio)
	}

	ajustadoHa := margenHa.Sub(desglose.Arrendamiento).Sub(desglose.Financiamiento)

	rindeIndiferencia := decimal.Zero
	if precio.GreaterThan(decimal.Zero) {
		rindeIndiferencia = prod.UnidadRendimiento.DesdeTonelada(directosHa.Div(precio))
	}

	retorno := decimal.Zero
	if directosHa.GreaterThan(decimal.Zero) {
		retorno = margenHa.Div(directosHa).Mul(cien)
	}

	return model.CalculationResults{
		IngresoBrutoHa:           ingresoHa,
		IngresoBrutoTotal:        ingresoTotal,
		CostosDirectosHa:         directosHa,
		CostosDirectosTotal:      directosHa.Mul(prod.Superficie),
		MargenBrutoHa:            margenHa,
		MargenBrutoTotal:         margenHa.Mul(prod.Superficie),
		RindeIndiferencia:        rindeIndiferencia,
		RetornoPorPesoInvertido:  retorno,
		DesgloseCostos:           desglose,
		MargenBrutoAjustadoHa:    ajustadoHa,
		MargenBrutoAjustadoTotal: ajustadoHa.Mul(prod.Superficie),
	}
}

// gastoComercial returns the commercial expense per hectare. A nil variant costs nothing.
func gastoComercial(g model.GastoComercial, ingresoHa, rindeTnHa decimal.Decimal) decimal.Decimal {
	switch g := g.(type) {
	case model.GastoPorcentual:
		return ingresoHa.Mul(g.Porcentaje).Div(cien)
	case model.GastoPorTonelada:
		return g.Monto.Mul(rindeTnHa)
	default:
		return decimal.Zero
	}
}

func costoArrendamiento(a model.ArrendamientoData) decimal.Decimal {
	if !a.EsArrendado || a.Modalidad == nil {
		return decimal.Zero
	}
	return a.Modalidad.CostoHa()
}

func costoLabores(l model.LaboresData) decimal.Decimal {
	total := decimal.Zero
	for _, item := range l.Labores {
		total = total.Add(item.Costo())
	}
	return total
}

func costoSemilla(i model.InsumosData) decimal.Decimal {
	costo := i.Semilla.Dosis.Mul(i.Semilla.Precio)
	if i.TratamientoSemilla.Activo {
		costo = costo.Add(i.TratamientoSemilla.Costo)
	}
	return costo
}

func costoFertilizantes(items []model.FertilizerItem) decimal.Decimal {
	total := decimal.Zero
	for _, f := range items {
		total = total.Add(f.Costo())
	}
	return total
}

func costoAgroquimicos(items []model.AgrochemicalItem) decimal.Decimal {
	total := decimal.Zero
	for _, a := range items {
		total = total.Add(a.Costo())
	}
	return total
}
