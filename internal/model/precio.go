package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ModoGastoComercial is the wire tag of a GastoComercial variant.
type ModoGastoComercial string

const (
	GastoModoPorcentaje ModoGastoComercial = "percent"
	GastoModoUSD        ModoGastoComercial = "usd"
)

// GastoComercial is either GastoPorcentual or GastoPorTonelada.
type GastoComercial interface {
	Modo() ModoGastoComercial
	Tasa() decimal.Decimal
}

// GastoPorcentual charges a percentage of gross revenue.
type GastoPorcentual struct {
	Porcentaje decimal.Decimal
}

func (g GastoPorcentual) Modo() ModoGastoComercial { return GastoModoPorcentaje }
func (g GastoPorcentual) Tasa() decimal.Decimal    { return g.Porcentaje }

// GastoPorTonelada charges a fixed amount per tonne sold.
type GastoPorTonelada struct {
	Monto decimal.Decimal
}

func (g GastoPorTonelada) Modo() ModoGastoComercial { return GastoModoUSD }
func (g GastoPorTonelada) Tasa() decimal.Decimal    { return g.Monto }

// PriceData holds the gross price (USD/tn) and the commercial expense applied on sale.
type PriceData struct {
	PrecioBruto     decimal.Decimal `json:"precioBruto" validate:"min=0"`
	GastoComercial  GastoComercial  `json:"gastosComerciales" validate:"-"` // checked per variant at the HTTP boundary
	IsPrecioPizarra bool            `json:"isPrecioPizarra"`
}

type priceDataJSON struct {
	PrecioBruto           decimal.Decimal    `json:"precioBruto"`
	GastosComerciales     decimal.Decimal    `json:"gastosComerciales"`
	ModoGastosComerciales ModoGastoComercial `json:"modoGastosComerciales"`
	IsPrecioPizarra       bool               `json:"isPrecioPizarra"`
}

func (p PriceData) MarshalJSON() ([]byte, error) {
	aux := priceDataJSON{
		PrecioBruto:     p.PrecioBruto,
		IsPrecioPizarra: p.IsPrecioPizarra,
	}
	if p.GastoComercial != nil {
		aux.GastosComerciales = p.GastoComercial.Tasa()
		aux.ModoGastosComerciales = p.GastoComercial.Modo()
	}
	return json.Marshal(aux)
}

// UnmarshalJSON decodes on top of the current value, so fields absent from
// the payload keep what the receiver already had.
func (p *PriceData) UnmarshalJSON(b []byte) error {
	aux := priceDataJSON{
		PrecioBruto:     p.PrecioBruto,
		IsPrecioPizarra: p.IsPrecioPizarra,
	}
	if p.GastoComercial != nil {
		aux.GastosComerciales = p.GastoComercial.Tasa()
		aux.ModoGastosComerciales = p.GastoComercial.Modo()
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	switch aux.ModoGastosComerciales {
	case GastoModoPorcentaje:
		p.GastoComercial = GastoPorcentual{Porcentaje: aux.GastosComerciales}
	case GastoModoUSD:
		p.GastoComercial = GastoPorTonelada{Monto: aux.GastosComerciales}
	case "":
		p.GastoComercial = nil
	default:
		return fmt.Errorf("modo de gastos comerciales desconocido: %q", aux.ModoGastosComerciales)
	}
	p.PrecioBruto = aux.PrecioBruto
	p.IsPrecioPizarra = aux.IsPrecioPizarra
	return nil
}
