package infra

// pdf.go — margin report PDF using go-pdf/fpdf.
// A4 portrait with:
//   - Title and generation date
//   - Production data (crop, surface, yield, price)
//   - Gross margin highlight box
//   - Economic summary per ha and total
//   - Cost breakdown (categories above zero) with total
//   - Indicators and adjusted margin
//   - ARS column when the report carries an exchange rate

import (
	"fmt"
	"io"

	"github.com/carlos-rodrigo/margen-agro/internal/dto"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

var (
	verde = [3]int{22, 163, 74}
	rojo  = [3]int{220, 38, 38}
	gris  = [3]int{102, 102, 102}
)

// GenerateInformePDF renders inf as a PDF into w.
func GenerateInformePDF(w io.Writer, inf dto.InformeResponse) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle(inf.Titulo, true)
	pdf.AddPage()

	// Core fonts are cp1252; accents need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	prod := inf.Inputs.Produccion
	res := inf.Resultados
	ars := inf.ARS

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetTextColor(verde[0], verde[1], verde[2])
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, tr(inf.Titulo), "", 1, "L", false, 0, "")
	pdf.SetTextColor(gris[0], gris[1], gris[2])
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Generado el "+inf.GeneradoEl, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	seccion := func(titulo string) {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(verde[0], verde[1], verde[2])
		pdf.CellFormat(contentW, 7, tr(titulo), "B", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	par := func(label, valor string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW*0.5, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW*0.5, 6, tr(valor), "", 1, "R", false, 0, "")
	}

	// ── Production data ───────────────────────────────────────────────────────
	seccion("Datos de Producción")
	cultivo := inf.Cultivo
	if cultivo == "" {
		cultivo = "-"
	}
	par("Cultivo:", cultivo)
	par("Superficie:", prod.Superficie.String()+" ha")
	par("Rendimiento:", fmt.Sprintf("%s %s/ha", prod.Rendimiento.String(), prod.UnidadRendimiento))
	par("Precio:", usd(inf.Inputs.Precio.PrecioBruto)+"/tn")

	// ── Margin box ────────────────────────────────────────────────────────────
	pdf.Ln(4)
	color := verde
	if res.MargenBrutoHa.IsNegative() {
		color = rojo
	}
	pdf.SetDrawColor(color[0], color[1], color[2])
	pdf.SetTextColor(color[0], color[1], color[2])
	pdf.SetLineWidth(0.6)
	boxY := pdf.GetY()
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Margen Bruto", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, usd(res.MargenBrutoHa)+"/ha", "", 1, "L", false, 0, "")
	if prod.Superficie.IsPositive() {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW, 6, "Total: "+usd(res.MargenBrutoTotal), "", 1, "L", false, 0, "")
	}
	pdf.Rect(15, boxY-1, contentW, pdf.GetY()-boxY+2, "D")
	pdf.SetLineWidth(0.2)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(3)

	// ── Tables ────────────────────────────────────────────────────────────────
	cols := []float64{contentW * 0.5, contentW * 0.5}
	if ars != nil {
		cols = []float64{contentW * 0.4, contentW * 0.3, contentW * 0.3}
	}
	encabezado := func(titulo string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(245, 245, 245)
		pdf.CellFormat(cols[0], 7, tr(titulo), "B", 0, "L", true, 0, "")
		if ars != nil {
			pdf.CellFormat(cols[1], 7, "USD/ha", "B", 0, "R", true, 0, "")
			pdf.CellFormat(cols[2], 7, "ARS/ha", "B", 1, "R", true, 0, "")
			return
		}
		pdf.CellFormat(cols[1], 7, "USD/ha", "B", 1, "R", true, 0, "")
	}
	fila := func(label string, v, vARS decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(cols[0], 6, tr(label), "B", 0, "L", false, 0, "")
		if ars != nil {
			pdf.CellFormat(cols[1], 6, usd(v), "B", 0, "R", false, 0, "")
			pdf.CellFormat(cols[2], 6, pesos(vARS), "B", 1, "R", false, 0, "")
			return
		}
		pdf.CellFormat(cols[1], 6, usd(v), "B", 1, "R", false, 0, "")
	}
	enARS := func(v decimal.Decimal) decimal.Decimal {
		if ars == nil {
			return decimal.Zero
		}
		return v.Mul(ars.TipoCambio).Round(0)
	}

	seccion("Resumen Económico")
	encabezado("Concepto")
	fila("Ingreso Bruto", res.IngresoBrutoHa, enARS(res.IngresoBrutoHa), false)
	fila("Costos Directos", res.CostosDirectosHa.Neg(), enARS(res.CostosDirectosHa.Neg()), false)
	fila("Margen Bruto", res.MargenBrutoHa, enARS(res.MargenBrutoHa), true)

	seccion("Desglose de Costos")
	encabezado("Rubro")
	for _, item := range inf.Desglose {
		fila(item.Rubro, item.Valor, enARS(item.Valor), false)
	}
	fila("Total Costos Directos", res.CostosDirectosHa, enARS(res.CostosDirectosHa), true)

	// ── Indicators ────────────────────────────────────────────────────────────
	seccion("Indicadores")
	par("Rinde de indiferencia:", fmt.Sprintf("%s %s/ha", res.RindeIndiferencia.StringFixed(1), prod.UnidadRendimiento))
	signo := ""
	if !res.RetornoPorPesoInvertido.IsNegative() {
		signo = "+"
	}
	par("Retorno por $ invertido:", signo+res.RetornoPorPesoInvertido.StringFixed(1)+"%")
	par("Margen bruto ajustado:", usd(res.MargenBrutoAjustadoHa)+"/ha")
	if prod.Superficie.IsPositive() {
		par("Margen bruto ajustado total:", usd(res.MargenBrutoAjustadoTotal))
	}
	if ars != nil {
		par("Tipo de cambio:", fmt.Sprintf("$%s (%s)", ars.TipoCambio.StringFixed(0), ars.Fuente))
	}

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(8)
	pdf.SetTextColor(gris[0], gris[1], gris[2])
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 4, tr("RindeMax - Calculá tu margen. Maximizá tu campo."), "T", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 4, tr("Este es un análisis referencial. Consulte con un profesional para decisiones comerciales."), "", 1, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: write informe: %w", err)
	}
	return nil
}

func usd(v decimal.Decimal) string {
	return "USD " + v.StringFixed(2)
}

func pesos(v decimal.Decimal) string {
	return "$ " + v.StringFixed(0)
}
