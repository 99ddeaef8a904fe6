package dto

import (
	"github.com/carlos-rodrigo/margen-agro/internal/model"

	"github.com/shopspring/decimal"
)

// CalculoResponse is returned by POST /v1/margen/calcular and GET /v1/margen/estado.
// Inputs echoes what was actually calculated, including a board price fill-in.
type CalculoResponse struct {
	Inputs     model.CalculatorInputs   `json:"inputs"`
	Resultados model.CalculationResults `json:"resultados"`
}

// CompartirResponse is returned by POST /v1/margen/compartir.
type CompartirResponse struct {
	State string     `json:"state"`
	URL   string     `json:"url"`
	Texto string     `json:"texto"`
	Redes RedesShare `json:"redes"`
}

type RedesShare struct {
	Twitter  string `json:"twitter"`
	WhatsApp string `json:"whatsapp"`
	LinkedIn string `json:"linkedin"`
}

// ─── Informe ─────────────────────────────────────────────────────────────────

const (
	MonedaUSD = "USD"
	MonedaARS = "ARS"
)

// InformeRequest is the body of POST /v1/margen/informe and /informe/pdf.
type InformeRequest struct {
	Inputs model.CalculatorInputs `json:"inputs"`
	Moneda string                 `json:"moneda" validate:"omitempty,oneof=USD ARS"` // empty = USD
}

// PasoCascada is one bar of the waterfall chart. Valor is signed; Inicio and Fin
// are the bar's floating bounds.
type PasoCascada struct {
	Nombre string          `json:"nombre"`
	Valor  decimal.Decimal `json:"valor"`
	Inicio decimal.Decimal `json:"inicio"`
	Fin    decimal.Decimal `json:"fin"`
}

type ItemDesglose struct {
	Rubro      string          `json:"rubro"`
	Valor      decimal.Decimal `json:"valor"`
	Porcentaje decimal.Decimal `json:"porcentaje"`
}

// ResultadosARS mirrors the monetary fields of CalculationResults in pesos,
// under the same keys.
type ResultadosARS struct {
	TipoCambio               decimal.Decimal      `json:"tipoCambio"`
	Fuente                   string               `json:"fuente"`
	IngresoBrutoHa           decimal.Decimal      `json:"ingresoBrutoHa"`
	IngresoBrutoTotal        decimal.Decimal      `json:"ingresoBrutoTotal"`
	CostosDirectosHa         decimal.Decimal      `json:"costosDirectosHa"`
	CostosDirectosTotal      decimal.Decimal      `json:"costosDirectosTotal"`
	MargenBrutoHa            decimal.Decimal      `json:"margenBrutoHa"`
	MargenBrutoTotal         decimal.Decimal      `json:"margenBrutoTotal"`
	MargenBrutoAjustadoHa    decimal.Decimal      `json:"margenBrutoAjustadoHa"`
	MargenBrutoAjustadoTotal decimal.Decimal      `json:"margenBrutoAjustadoTotal"`
	DesgloseCostos           model.DesgloseCostos `json:"desgloseCostos"`
}

// InformeResponse is returned by POST /v1/margen/informe.
type InformeResponse struct {
	Titulo         string                   `json:"titulo"`
	Cultivo        string                   `json:"cultivo"`
	Inputs         model.CalculatorInputs   `json:"inputs"`
	Resultados     model.CalculationResults `json:"resultados"`
	Cascada        []PasoCascada            `json:"cascada"`
	Desglose       []ItemDesglose           `json:"desglose"`
	ARS            *ResultadosARS           `json:"ars,omitempty"`
	TextoCompartir string                   `json:"texto_compartir"`
	GeneradoEl     string                   `json:"generado_el"`
}
