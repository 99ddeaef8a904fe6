// Package informe turns calculation results into the report shown in the
// results panel, the shared PDF and the /informe endpoint.
package informe

import (
	"time"

	"github.com/carlos-rodrigo/margen-agro/internal/dto"
	"github.com/carlos-rodrigo/margen-agro/internal/model"
	"github.com/carlos-rodrigo/margen-agro/internal/share"

	"github.com/shopspring/decimal"
)

const Titulo = "RindeMax - Análisis de Margen Bruto"

var cien = decimal.NewFromInt(100)

var nombresCultivo = map[string]string{
	"soja":    "Soja",
	"maiz":    "Maíz",
	"trigo":   "Trigo",
	"girasol": "Girasol",
	"cebada":  "Cebada",
	"sorgo":   "Sorgo",
}

// NombreCultivo returns the display name for a crop id, or the id itself.
func NombreCultivo(id string) string {
	if n, ok := nombresCultivo[id]; ok {
		return n
	}
	return id
}

type rubro struct {
	nombre string
	valor  decimal.Decimal
}

// Cascada builds the waterfall: gross revenue, one negative step per direct
// cost above zero, and the gross margin. Returns nil when there is nothing to plot.
func Cascada(r model.CalculationResults) []dto.PasoCascada {
	if !r.IngresoBrutoHa.IsPositive() && !r.CostosDirectosHa.IsPositive() {
		return nil
	}

	d := r.DesgloseCostos
	costos := []rubro{
		{"Labores", d.Labores},
		{"Semilla", d.Semilla},
		{"Fertiliz.", d.Fertilizantes},
		{"Agroquím.", d.Agroquimicos},
		{"Cosecha", d.Cosecha},
		{"Flete", d.Flete},
		{"Comerc.", d.Comercializacion},
	}

	pasos := []dto.PasoCascada{{
		Nombre: "Ingreso",
		Valor:  r.IngresoBrutoHa,
		Inicio: decimal.Zero,
		Fin:    r.IngresoBrutoHa,
	}}

	acumulado := r.IngresoBrutoHa
	for _, c := range costos {
		if !c.valor.IsPositive() {
			continue
		}
		inicio := acumulado
		acumulado = acumulado.Sub(c.valor)
		pasos = append(pasos, dto.PasoCascada{
			Nombre: c.nombre,
			Valor:  c.valor.Neg(),
			Inicio: inicio,
			Fin:    acumulado,
		})
	}

	return append(pasos, dto.PasoCascada{
		Nombre: "Margen",
		Valor:  r.MargenBrutoHa,
		Inicio: decimal.Zero,
		Fin:    r.MargenBrutoHa,
	})
}

// Desglose lists every cost category above zero with its share of their sum.
// Rent and financing are included here, unlike the direct costs.
func Desglose(r model.CalculationResults) []dto.ItemDesglose {
	d := r.DesgloseCostos
	rubros := []rubro{
		{"Labores", d.Labores},
		{"Semilla", d.Semilla},
		{"Fertilizantes", d.Fertilizantes},
		{"Agroquímicos", d.Agroquimicos},
		{"Cosecha", d.Cosecha},
		{"Flete", d.Flete},
		{"Comercialización", d.Comercializacion},
		{"Arrendamiento", d.Arrendamiento},
		{"Financiamiento", d.Financiamiento},
	}

	total := decimal.Zero
	for _, rb := range rubros {
		if rb.valor.IsPositive() {
			total = total.Add(rb.valor)
		}
	}
	if total.IsZero() {
		return nil
	}

	items := make([]dto.ItemDesglose, 0, len(rubros))
	for _, rb := range rubros {
		if !rb.valor.IsPositive() {
			continue
		}
		items = append(items, dto.ItemDesglose{
			Rubro:      rb.nombre,
			Valor:      rb.valor,
			Porcentaje: rb.valor.Div(total).Mul(cien).Round(2),
		})
	}
	return items
}

// Convertir mirrors every monetary result in pesos at tc.Venta, rounded to
// whole pesos. Indicators (break-even yield, return) are not currency values.
func Convertir(r model.CalculationResults, tc model.TipoCambio) dto.ResultadosARS {
	ars := func(v decimal.Decimal) decimal.Decimal { return v.Mul(tc.Venta).Round(0) }
	d := r.DesgloseCostos

	return dto.ResultadosARS{
		TipoCambio:               tc.Venta,
		Fuente:                   tc.Fuente,
		IngresoBrutoHa:           ars(r.IngresoBrutoHa),
		IngresoBrutoTotal:        ars(r.IngresoBrutoTotal),
		CostosDirectosHa:         ars(r.CostosDirectosHa),
		CostosDirectosTotal:      ars(r.CostosDirectosTotal),
		MargenBrutoHa:            ars(r.MargenBrutoHa),
		MargenBrutoTotal:         ars(r.MargenBrutoTotal),
		MargenBrutoAjustadoHa:    ars(r.MargenBrutoAjustadoHa),
		MargenBrutoAjustadoTotal: ars(r.MargenBrutoAjustadoTotal),
		DesgloseCostos: model.DesgloseCostos{
			Labores:          ars(d.Labores),
			Semilla:          ars(d.Semilla),
			Fertilizantes:    ars(d.Fertilizantes),
			Agroquimicos:     ars(d.Agroquimicos),
			Cosecha:          ars(d.Cosecha),
			Flete:            ars(d.Flete),
			Comercializacion: ars(d.Comercializacion),
			Arrendamiento:    ars(d.Arrendamiento),
			Financiamiento:   ars(d.Financiamiento),
		},
	}
}

// Construir assembles the full report. tc is optional; when nil the report is USD only.
func Construir(in model.CalculatorInputs, r model.CalculationResults, tc *model.TipoCambio, now time.Time) dto.InformeResponse {
	resp := dto.InformeResponse{
		Titulo:         Titulo,
		Cultivo:        NombreCultivo(in.Produccion.Cultivo),
		Inputs:         in,
		Resultados:     r,
		Cascada:        Cascada(r),
		Desglose:       Desglose(r),
		TextoCompartir: share.ShareText(in.Produccion.Cultivo, r.MargenBrutoHa),
		GeneradoEl:     now.Format("02/01/2006"),
	}
	if tc != nil {
		ars := Convertir(r, *tc)
		resp.ARS = &ars
	}
	return resp
}
