package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// Shared states are read back by the browser client, which expects numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// UnidadRendimiento is the unit the user enters the yield in.
type UnidadRendimiento string

const (
	UnidadQuintal  UnidadRendimiento = "qq"
	UnidadTonelada UnidadRendimiento = "tn"
)

// QuintalesPorTonelada is the fixed qq → tn conversion factor.
var QuintalesPorTonelada = decimal.NewFromInt(10)

// ATonelada converts a value expressed in u into tonnes.
func (u UnidadRendimiento) ATonelada(v decimal.Decimal) decimal.Decimal {
	if u == UnidadQuintal {
		return v.Div(QuintalesPorTonelada)
	}
	return v
}

// DesdeTonelada converts a tonnage back into u.
func (u UnidadRendimiento) DesdeTonelada(v decimal.Decimal) decimal.Decimal {
	if u == UnidadQuintal {
		return v.Mul(QuintalesPorTonelada)
	}
	return v
}

func (u *UnidadRendimiento) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch UnidadRendimiento(s) {
	case UnidadQuintal, UnidadTonelada:
		*u = UnidadRendimiento(s)
		return nil
	default:
		return fmt.Errorf("unidad de rendimiento desconocida: %q", s)
	}
}

// ProductionData describes what is planted and how much it yields per hectare.
type ProductionData struct {
	Cultivo           string            `json:"cultivo"`
	Superficie        decimal.Decimal   `json:"superficie"        validate:"min=0"` // ha
	Rendimiento       decimal.Decimal   `json:"rendimiento"       validate:"min=0"` // per ha, in UnidadRendimiento
	UnidadRendimiento UnidadRendimiento `json:"unidadRendimiento" validate:"required,oneof=qq tn"`
}
