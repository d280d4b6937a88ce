package export

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/laserquote/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	tableRowH    = 6.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// WriteQuotePDF generates the printable quote summary: a jobs overview, the
// priced part table and the batch totals block. Long part lists flow across
// pages; the table header repeats on each one.
func WriteQuotePDF(path string, res *model.BatchResult) error {
	if len(res.Parts) == 0 {
		return fmt.Errorf("no parts to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	y := renderQuoteHeader(pdf, res)
	y = renderJobsTable(pdf, res.Jobs, y+4)
	y = renderPartsTable(pdf, res.Parts, y+6)
	renderTotals(pdf, res.Totals, y+6)

	return pdf.OutputFileAndClose(path)
}

func renderQuoteHeader(pdf *fpdf.Fpdf, res *model.BatchResult) float64 {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 10, "Laser Cutting Quote", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(marginLeft, marginTop+10)
	meta := fmt.Sprintf("Batch %s | %s | %s", res.ID[:8], res.Folder, time.Now().Format("2006-01-02"))
	pdf.CellFormat(contentWidth, 5, meta, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+17, pageWidth-marginRight, marginTop+17)

	return marginTop + 19
}

func renderJobsTable(pdf *fpdf.Fpdf, jobs []model.Job, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 7, "Jobs", "", 0, "L", false, 0, "")
	y += 8

	colWidths := []float64{12, 50, 30, 22, 18, 24, 24}
	headers := []string{"#", "File", "Material", "Thk [mm]", "Gas", "Cut [h]", "Sheets"}
	y = renderTableHeader(pdf, headers, colWidths, y)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetFillColor(255, 255, 255)
	for _, j := range jobs {
		if y+tableRowH > pageHeight-marginBottom-2 {
			pdf.AddPage()
			y = renderTableHeader(pdf, headers, colWidths, marginTop)
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetFillColor(255, 255, 255)
		}
		cells := []string{
			fmt.Sprintf("%d", j.GroupID),
			j.File,
			j.Material,
			fmt.Sprintf("%.1f", j.ThicknessMM),
			j.Gas.String(),
			fmt.Sprintf("%.2f", j.CutTimeHours),
			fmt.Sprintf("%d", j.SheetCount),
		}
		y = renderTableRow(pdf, cells, colWidths, y)
	}
	return y
}

func renderPartsTable(pdf *fpdf.Fpdf, parts []model.PartLineItem, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 7, "Parts", "", 0, "L", false, 0, "")
	y += 8

	colWidths := []float64{12, 58, 28, 18, 16, 24, 24}
	headers := []string{"#", "Name", "Material", "Thk", "Qty", "Unit [PLN]", "Total [PLN]"}
	y = renderTableHeader(pdf, headers, colWidths, y)

	pdf.SetFont("Helvetica", "", 9)
	for i, p := range parts {
		// New page with a repeated header when the table runs out of room.
		if y+tableRowH > pageHeight-marginBottom-2 {
			pdf.AddPage()
			y = renderTableHeader(pdf, headers, colWidths, marginTop)
			pdf.SetFont("Helvetica", "", 9)
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		cells := []string{
			fmt.Sprintf("%d", p.ID),
			p.Name,
			p.Material,
			fmt.Sprintf("%.1f", p.ThicknessMM),
			fmt.Sprintf("%d", p.Quantity),
			fmt.Sprintf("%.2f", p.UnitTotal()),
			fmt.Sprintf("%.2f", p.LineTotal()),
		}
		y = renderTableRow(pdf, cells, colWidths, y)
	}
	return y
}

func renderTableHeader(pdf *fpdf.Fpdf, headers []string, colWidths []float64, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], tableRowH, h, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	return y + tableRowH
}

func renderTableRow(pdf *fpdf.Fpdf, cells []string, colWidths []float64, y float64) float64 {
	x := marginLeft
	for i, c := range cells {
		align := "C"
		if i == 1 {
			align = "L"
		}
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], tableRowH, c, "1", 0, align, true, 0, "")
		x += colWidths[i]
	}
	return y + tableRowH
}

func renderTotals(pdf *fpdf.Fpdf, totals model.BatchTotals, y float64) {
	if y+40 > pageHeight-marginBottom {
		pdf.AddPage()
		y = marginTop
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 7, "Totals", "", 0, "L", false, 0, "")
	y += 9

	items := []struct {
		label string
		value string
	}{
		{"Total sheets", fmt.Sprintf("%d", totals.TotalSheets)},
		{"Total part quantity", fmt.Sprintf("%d", totals.TotalPartQuantity)},
		{"Oxygen cutting", fmt.Sprintf("%.2f h / %.2f PLN", totals.OxygenCutHours, totals.OxygenCutCost)},
		{"Nitrogen cutting", fmt.Sprintf("%.2f h / %.2f PLN", totals.NitrogenCutHours, totals.NitrogenCutCost)},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		y += 7
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft+5, y+2)
	pdf.CellFormat(60, 7, "Grand total:", "", 0, "L", false, 0, "")
	pdf.CellFormat(60, 7, fmt.Sprintf("%.2f PLN", model.Round2(totals.GrandTotal)), "", 0, "L", false, 0, "")
}
