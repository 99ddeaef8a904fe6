package model

import "github.com/google/uuid"

// CalculatorInputs is the full snapshot the margin engine consumes.
// It is passed by value; callers own the nested slices.
type CalculatorInputs struct {
	Produccion     ProductionData     `json:"produccion"`
	Precio         PriceData          `json:"precio"`
	Labores        LaboresData        `json:"labores"`
	Insumos        InsumosData        `json:"insumos"`
	Cosecha        CosechaData        `json:"cosecha"`
	Arrendamiento  ArrendamientoData  `json:"arrendamiento"`
	Financiamiento FinanciamientoData `json:"financiamiento"`
}

// ConIDs returns a copy where every list item without an id gets a fresh UUID.
// The receiver's slices are never written to.
func (in CalculatorInputs) ConIDs() CalculatorInputs {
	out := in

	out.Labores.Labores = make([]LaborItem, len(in.Labores.Labores))
	for i, l := range in.Labores.Labores {
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		out.Labores.Labores[i] = l
	}

	out.Insumos.Fertilizantes = make([]FertilizerItem, len(in.Insumos.Fertilizantes))
	for i, f := range in.Insumos.Fertilizantes {
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		out.Insumos.Fertilizantes[i] = f
	}

	out.Insumos.Agroquimicos = make([]AgrochemicalItem, len(in.Insumos.Agroquimicos))
	for i, a := range in.Insumos.Agroquimicos {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		out.Insumos.Agroquimicos[i] = a
	}

	return out
}
