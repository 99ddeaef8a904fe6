package model

import "github.com/shopspring/decimal"

type FinanciamientoData struct {
	Incluir bool            `json:"incluir"`
	TEA     decimal.Decimal `json:"tea" validate:"min=0"` // % tasa efectiva anual
}
