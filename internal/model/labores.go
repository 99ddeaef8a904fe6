package model

import "github.com/shopspring/decimal"

// ModalidadLabor tells whether a field operation is done with own machinery or hired.
type ModalidadLabor string

const (
	LaborPropia     ModalidadLabor = "propio"
	LaborContratada ModalidadLabor = "contratado"
)

// LaborItem is one field operation; costoUnitario is USD/ha per pass.
type LaborItem struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	Modalidad     ModalidadLabor  `json:"modalidad"     validate:"omitempty,oneof=propio contratado"`
	Cantidad      int             `json:"cantidad"      validate:"min=1"`
	CostoUnitario decimal.Decimal `json:"costoUnitario" validate:"min=0"`
}

// Costo returns cantidad × costoUnitario.
func (l LaborItem) Costo() decimal.Decimal {
	return decimal.NewFromInt(int64(l.Cantidad)).Mul(l.CostoUnitario)
}

type LaboresData struct {
	Labores []LaborItem `json:"labores" validate:"dive"`
}
