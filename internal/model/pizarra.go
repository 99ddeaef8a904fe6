package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PrecioPizarra is one board quote in USD/tn.
type PrecioPizarra struct {
	Cultivo string          `json:"cultivo"`
	Precio  decimal.Decimal `json:"precio"`
	Fecha   time.Time       `json:"fecha"`
	Fuente  string          `json:"fuente"`
}

type PreciosPizarra struct {
	Precios             []PrecioPizarra `json:"precios"`
	UltimaActualizacion time.Time       `json:"ultimaActualizacion"`
}

// Buscar returns the quote for cultivo, if any.
func (p PreciosPizarra) Buscar(cultivo string) (PrecioPizarra, bool) {
	for _, pr := range p.Precios {
		if pr.Cultivo == cultivo {
			return pr, true
		}
	}
	return PrecioPizarra{}, false
}

// TipoCambio is the official ARS/USD quote. Only Venta is used for conversion.
type TipoCambio struct {
	Compra decimal.Decimal `json:"compra"`
	Venta  decimal.Decimal `json:"venta"`
	Fecha  time.Time       `json:"fecha"`
	Fuente string          `json:"fuente"`
}
