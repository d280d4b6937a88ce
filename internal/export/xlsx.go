// Package export writes the analysis results out as spreadsheets, a quote
// summary PDF and QR-coded part labels.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/laserquote/internal/model"
)

// WriteInternalReport writes the full costing workbook for the quoting team:
// every extracted quantity, the base price-list rates and both cost columns,
// plus a warnings sheet when the run produced any.
func WriteInternalReport(path string, res *model.BatchResult) error {
	if len(res.Parts) == 0 {
		return fmt.Errorf("no parts to report")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Costing"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	header := []interface{}{
		"#", "Group", "Name", "Material", "Thickness [mm]", "Qty",
		"Raw weight [kg]", "Adj. weight [kg]", "Cut length [m]", "Contours",
		"Marking [m]", "Defilm [m]", "Price [PLN/kg]", "Rate [PLN/m]",
		"Base unit [PLN]", "Unit [PLN]", "Bending [PLN]", "Additional [PLN]",
		"Line total [PLN]",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := boldRow(f, sheet, 1, len(header)); err != nil {
		return err
	}

	row := 2
	for _, p := range res.Parts {
		values := []interface{}{
			p.ID, p.GroupID, p.Name, p.Material, p.ThicknessMM, p.Quantity,
			p.RawWeightKG, p.AdjustedWeightKG, p.CutLengthM, p.ContourCount,
			p.MarkingLengthM, p.DefilmLengthM, p.BasePricePerKG, p.BaseRatePerM,
			p.BaseUnitCost, p.UnitCost, p.BendingPerUnit, p.AdditionalPerUnit,
			model.Round2(p.LineTotal()),
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		row++
	}

	row++
	totals := [][]interface{}{
		{"Total sheets", res.Totals.TotalSheets},
		{"Total part quantity", res.Totals.TotalPartQuantity},
		{"Material cost (base) [PLN]", model.Round2(res.Totals.TotalMaterialCost)},
		{"Oxygen cutting [h / PLN]", res.Totals.OxygenCutHours, model.Round2(res.Totals.OxygenCutCost)},
		{"Nitrogen cutting [h / PLN]", res.Totals.NitrogenCutHours, model.Round2(res.Totals.NitrogenCutCost)},
		{"Grand total [PLN]", model.Round2(res.Totals.GrandTotal)},
	}
	for _, values := range totals {
		v := values
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &v); err != nil {
			return err
		}
		row++
	}

	if err := writeJobsSheet(f, res.Jobs); err != nil {
		return err
	}
	if len(res.Warnings) > 0 {
		if err := writeWarningsSheet(f, res.Warnings); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// WriteClientReport writes the customer-facing quote: final prices only, no
// rates, weights or internal margins.
func WriteClientReport(path string, res *model.BatchResult) error {
	if len(res.Parts) == 0 {
		return fmt.Errorf("no parts to report")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Quote"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	header := []interface{}{
		"#", "Name", "Material", "Thickness [mm]", "Qty", "Unit [PLN]",
		"Bending [PLN]", "Additional [PLN]", "Unit total [PLN]", "Line total [PLN]",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := boldRow(f, sheet, 1, len(header)); err != nil {
		return err
	}

	row := 2
	for _, p := range res.Parts {
		values := []interface{}{
			p.ID, p.Name, p.Material, p.ThicknessMM, p.Quantity,
			p.UnitCost, p.BendingPerUnit, p.AdditionalPerUnit,
			model.Round2(p.UnitTotal()), model.Round2(p.LineTotal()),
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		row++
	}

	row++
	total := []interface{}{"Total [PLN]", "", "", "", "", "", "", "", "", model.Round2(res.Totals.GrandTotal)}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &total); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeJobsSheet(f *excelize.File, jobs []model.Job) error {
	const sheet = "Jobs"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := []interface{}{
		"Group", "File", "Material", "Thickness [mm]", "Gas",
		"Cut time [h]", "Cut length [m]", "Utilization", "Sheets",
		"Suggested material margin [%]", "Suggested cutting margin [%]",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := boldRow(f, sheet, 1, len(header)); err != nil {
		return err
	}
	for i, j := range jobs {
		values := []interface{}{
			j.GroupID, j.File, j.Material, j.ThicknessMM, j.Gas.String(),
			j.CutTimeHours, j.TotalCutLengthM, j.UtilizationRate, j.SheetCount,
			model.Round2(j.SuggestedMaterialMarginPct), model.Round2(j.SuggestedCuttingMarginPct),
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return err
		}
	}
	return nil
}

func writeWarningsSheet(f *excelize.File, warnings []string) error {
	const sheet = "Warnings"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	for i, w := range warnings {
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", i+1), w); err != nil {
			return err
		}
	}
	return nil
}

func boldRow(f *excelize.File, sheet string, row, cols int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, style)
}
