package model

import "github.com/shopspring/decimal"

// FertilizerItem: dosis in kg/ha or lt/ha, precio in USD per unit.
type FertilizerItem struct {
	ID       string          `json:"id"`
	Producto string          `json:"producto"`
	Dosis    decimal.Decimal `json:"dosis"  validate:"min=0"`
	Precio   decimal.Decimal `json:"precio" validate:"min=0"`
}

func (f FertilizerItem) Costo() decimal.Decimal { return f.Dosis.Mul(f.Precio) }

// AgrochemicalItem: Tipo is herbicida, insecticida, fungicida, etc.
type AgrochemicalItem struct {
	ID       string          `json:"id"`
	Tipo     string          `json:"tipo"`
	Producto string          `json:"producto"`
	Dosis    decimal.Decimal `json:"dosis"  validate:"min=0"`
	Precio   decimal.Decimal `json:"precio" validate:"min=0"`
}

func (a AgrochemicalItem) Costo() decimal.Decimal { return a.Dosis.Mul(a.Precio) }

type Semilla struct {
	Dosis  decimal.Decimal `json:"dosis"  validate:"min=0"` // kg/ha
	Precio decimal.Decimal `json:"precio" validate:"min=0"` // USD/kg
}

type TratamientoSemilla struct {
	Activo bool            `json:"activo"`
	Costo  decimal.Decimal `json:"costo" validate:"min=0"` // USD/ha
}

type InsumosData struct {
	Semilla            Semilla            `json:"semilla"`
	TratamientoSemilla TratamientoSemilla `json:"tratamientoSemilla"`
	Fertilizantes      []FertilizerItem   `json:"fertilizantes" validate:"dive"`
	Agroquimicos       []AgrochemicalItem `json:"agroquimicos"  validate:"dive"`
}
