package model

import "github.com/shopspring/decimal"

// DesgloseCostos holds one USD/ha figure per cost category.
// Arrendamiento and Financiamiento are not part of the direct costs.
type DesgloseCostos struct {
	Labores          decimal.Decimal `json:"labores"`
	Semilla          decimal.Decimal `json:"semilla"`
	Fertilizantes    decimal.Decimal `json:"fertilizantes"`
	Agroquimicos     decimal.Decimal `json:"agroquimicos"`
	Cosecha          decimal.Decimal `json:"cosecha"`
	Flete            decimal.Decimal `json:"flete"`
	Comercializacion decimal.Decimal `json:"comercializacion"`
	Arrendamiento    decimal.Decimal `json:"arrendamiento"`
	Financiamiento   decimal.Decimal `json:"financiamiento"`
}

// Directos sums the categories that make up the direct costs.
func (d DesgloseCostos) Directos() decimal.Decimal {
	return decimal.Sum(d.Labores, d.Semilla, d.Fertilizantes, d.Agroquimicos, d.Cosecha, d.Flete, d.Comercializacion)
}

// CalculationResults is the engine output. RindeIndiferencia is expressed in
// the same unit as the input yield; RetornoPorPesoInvertido is a percentage.
type CalculationResults struct {
	IngresoBrutoHa           decimal.Decimal `json:"ingresoBrutoHa"`
	IngresoBrutoTotal        decimal.Decimal `json:"ingresoBrutoTotal"`
	CostosDirectosHa         decimal.Decimal `json:"costosDirectosHa"`
	CostosDirectosTotal      decimal.Decimal `json:"costosDirectosTotal"`
	MargenBrutoHa            decimal.Decimal `json:"margenBrutoHa"`
	MargenBrutoTotal         decimal.Decimal `json:"margenBrutoTotal"`
	RindeIndiferencia        decimal.Decimal `json:"rindeIndiferencia"`
	RetornoPorPesoInvertido  decimal.Decimal `json:"retornoPorPesoInvertido"`
	DesgloseCostos           DesgloseCostos  `json:"desgloseCostos"`
	MargenBrutoAjustadoHa    decimal.Decimal `json:"margenBrutoAjustadoHa"`
	MargenBrutoAjustadoTotal decimal.Decimal `json:"margenBrutoAjustadoTotal"`
}
