package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ModoArrendamiento is the wire tag of a ModalidadArrendamiento variant.
type ModoArrendamiento string

const (
	ArrendamientoModoQQSoja ModoArrendamiento = "qq_soja"
	ArrendamientoModoFijo   ModoArrendamiento = "usd_fijo"
)

// ModalidadArrendamiento is either ArrendamientoQQSoja or ArrendamientoFijo.
type ModalidadArrendamiento interface {
	Modo() ModoArrendamiento
	CostoHa() decimal.Decimal
}

// ArrendamientoQQSoja is rent owed in soybean quintals per hectare.
type ArrendamientoQQSoja struct {
	QQSojaHa     decimal.Decimal
	PrecioSojaQQ decimal.Decimal // USD/qq
}

func (a ArrendamientoQQSoja) Modo() ModoArrendamiento  { return ArrendamientoModoQQSoja }
func (a ArrendamientoQQSoja) CostoHa() decimal.Decimal { return a.QQSojaHa.Mul(a.PrecioSojaQQ) }

// ArrendamientoFijo is a flat USD/ha rent.
type ArrendamientoFijo struct {
	MontoFijoUSD decimal.Decimal
}

func (a ArrendamientoFijo) Modo() ModoArrendamiento  { return ArrendamientoModoFijo }
func (a ArrendamientoFijo) CostoHa() decimal.Decimal { return a.MontoFijoUSD }

type ArrendamientoData struct {
	EsArrendado bool                   `json:"esArrendado"`
	Modalidad   ModalidadArrendamiento `json:"modo" validate:"-"`
}

type arrendamientoJSON struct {
	EsArrendado  bool              `json:"esArrendado"`
	Modo         ModoArrendamiento `json:"modo"`
	QQSojaHa     decimal.Decimal   `json:"qqSojaHa"`
	PrecioSojaQQ decimal.Decimal   `json:"precioSojaQq"`
	MontoFijoUSD decimal.Decimal   `json:"montoFijoUsd"`
}

func (a ArrendamientoData) toJSON() arrendamientoJSON {
	aux := arrendamientoJSON{EsArrendado: a.EsArrendado}
	switch m := a.Modalidad.(type) {
	case ArrendamientoQQSoja:
		aux.Modo = m.Modo()
		aux.QQSojaHa = m.QQSojaHa
		aux.PrecioSojaQQ = m.PrecioSojaQQ
	case ArrendamientoFijo:
		aux.Modo = m.Modo()
		aux.MontoFijoUSD = m.MontoFijoUSD
	}
	return aux
}

func (a ArrendamientoData) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.toJSON())
}

// UnmarshalJSON decodes on top of the current value; only the fields of the
// selected modo survive.
func (a *ArrendamientoData) UnmarshalJSON(b []byte) error {
	aux := a.toJSON()
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	switch aux.Modo {
	case ArrendamientoModoQQSoja:
		a.Modalidad = ArrendamientoQQSoja{QQSojaHa: aux.QQSojaHa, PrecioSojaQQ: aux.PrecioSojaQQ}
	case ArrendamientoModoFijo:
		a.Modalidad = ArrendamientoFijo{MontoFijoUSD: aux.MontoFijoUSD}
	case "":
		a.Modalidad = nil
	default:
		return fmt.Errorf("modo de arrendamiento desconocido: %q", aux.Modo)
	}
	a.EsArrendado = aux.EsArrendado
	return nil
}
