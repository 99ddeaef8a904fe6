package model

import "github.com/shopspring/decimal"

// CosechaData groups harvest and logistics costs.
type CosechaData struct {
	TarifaBase decimal.Decimal `json:"tarifaBase" validate:"min=0"` // USD/ha
	// CorreccionRendimiento is carried through the API but no formula reads it yet.
	CorreccionRendimiento bool            `json:"correccionRendimiento"`
	FleteDistancia        decimal.Decimal `json:"fleteDistancia" validate:"min=0"` // km
	FleteTarifa           decimal.Decimal `json:"fleteTarifa"    validate:"min=0"` // USD/tn/km
	ComisionAcopio        decimal.Decimal `json:"comisionAcopio" validate:"min=0"` // % of sale
	OtrosGastos           decimal.Decimal `json:"otrosGastos"    validate:"min=0"` // USD/ha
}
