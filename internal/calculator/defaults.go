package calculator

import (
	"github.com/carlos-rodrigo/margen-agro/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultInputs returns the baseline scenario shown on first load and used as
// the merge base for partial shared states. Slices are fresh on every call.
func DefaultInputs() model.CalculatorInputs {
	return model.CalculatorInputs{
		Produccion: model.ProductionData{
			Cultivo:           "",
			Superficie:        decimal.Zero,
			Rendimiento:       decimal.Zero,
			UnidadRendimiento: model.UnidadQuintal,
		},
		Precio: model.PriceData{
			PrecioBruto:     decimal.Zero,
			GastoComercial:  model.GastoPorcentual{Porcentaje: decimal.NewFromInt(5)},
			IsPrecioPizarra: false,
		},
		Labores: model.LaboresData{Labores: []model.LaborItem{}},
		Insumos: model.InsumosData{
			Semilla:            model.Semilla{Dosis: decimal.Zero, Precio: decimal.Zero},
			TratamientoSemilla: model.TratamientoSemilla{Activo: false, Costo: decimal.Zero},
			Fertilizantes:      []model.FertilizerItem{},
			Agroquimicos:       []model.AgrochemicalItem{},
		},
		Cosecha: model.CosechaData{
			TarifaBase:            decimal.NewFromInt(35),
			CorreccionRendimiento: false,
			FleteDistancia:        decimal.Zero,
			FleteTarifa:           decimal.RequireFromString("0.08"),
			ComisionAcopio:        decimal.NewFromInt(2),
			OtrosGastos:           decimal.Zero,
		},
		Arrendamiento: model.ArrendamientoData{
			EsArrendado: false,
			Modalidad: model.ArrendamientoQQSoja{
				QQSojaHa:     decimal.NewFromInt(12),
				PrecioSojaQQ: decimal.NewFromInt(30),
			},
		},
		Financiamiento: model.FinanciamientoData{
			Incluir: false,
			TEA:     decimal.NewFromInt(24),
		},
	}
}
