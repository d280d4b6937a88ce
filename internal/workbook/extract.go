package workbook

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/laserquote/internal/model"
)

// PartRow is one raw part record from the cost sheet, before pricing.
type PartRow struct {
	ID             int
	Name           string
	Quantity       int
	RawWeightKG    float64
	ContourCount   float64
	CutLengthM     float64
	MarkingLengthM float64
	DefilmLengthM  float64
}

// NestRow is one nesting row from the task sheet: a plate size and how many
// sheets of it the job consumes. Feeds the advisory material margin curve.
type NestRow struct {
	PlateAreaM2 float64
	Sheets      int
}

// Extraction is everything one workbook contributes to a batch.
type Extraction struct {
	Job      model.Job
	Rows     []PartRow
	NestRows []NestRow

	// Per-unit rates from the Material Price row.
	RatePerContour float64
	RatePerMarking float64
	RatePerDefilm  float64

	Warnings []string
}

// ExtractJob opens a job workbook, locates its tables and returns the typed
// job data. Any missing sheet, anchor or required header value is fatal.
func ExtractJob(path string) (*Extraction, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	layout, warnings, err := Locate(f)
	if err != nil {
		return nil, err
	}

	ex := &Extraction{Warnings: warnings}

	material := NormalizeCode(cellValue(f, SheetTaskList, cellMaterial))
	if material == "" {
		return nil, &MissingFieldError{Cell: SheetTaskList + "!" + cellMaterial, Field: "material"}
	}
	thickness, ok := ParseNumber(cellValue(f, SheetTaskList, cellThickness))
	if !ok {
		return nil, &MissingFieldError{Cell: SheetTaskList + "!" + cellThickness, Field: "thickness"}
	}
	gasRaw := cellValue(f, SheetTaskList, cellGas)
	gas := MapGas(gasRaw)
	if gas == model.GasUnknown {
		return nil, &UnsupportedGasError{Raw: gasRaw}
	}

	ex.Job = model.Job{
		File:         filepath.Base(path),
		Material:     material,
		ThicknessMM:  thickness,
		Gas:          gas,
		CutTimeHours: cutTimeHours(f, SheetTaskList, cellCutTime),
	}

	if v, ok := ParseNumber(cellAt(f, SheetTaskList, layout.TotalRow, totalLengthCol)); ok {
		ex.Job.TotalCutLengthM = v
	}

	utilRaw := cellAt(f, SheetCostList, layout.UtilizationRow, utilizationCol)
	if v, ok := ParseNumber(strings.ReplaceAll(utilRaw, "%", "")); ok {
		ex.Job.UtilizationRate = v / 100
	}
	if ex.Job.UtilizationRate <= 0 || ex.Job.UtilizationRate > 1 {
		ex.Warnings = append(ex.Warnings, fmt.Sprintf(
			"%s: average utilization out of range (%.4f)", ex.Job.File, ex.Job.UtilizationRate))
	}

	ex.RatePerContour = model.Cell(cellAt(f, SheetCostList, layout.MaterialRateRow, rateContourCol)).AsLooseNumber()
	ex.RatePerMarking = model.Cell(cellAt(f, SheetCostList, layout.MaterialRateRow, rateMarkingCol)).AsLooseNumber()
	ex.RatePerDefilm = model.Cell(cellAt(f, SheetCostList, layout.MaterialRateRow, rateDefilmCol)).AsLooseNumber()

	// Nesting rows: consume the sheet-count column until the first gap.
	for r := taskDataStartRow; ; r++ {
		raw := cellAt(f, SheetTaskList, r, layout.SheetsCol)
		if strings.TrimSpace(raw) == "" {
			break
		}
		row := NestRow{
			PlateAreaM2: ParsePlateSize(cellAt(f, SheetTaskList, r, layout.PlateSizeCol)),
		}
		if n, ok := ParseNumber(raw); ok {
			row.Sheets = int(n)
			ex.Job.SheetCount += row.Sheets
		}
		ex.NestRows = append(ex.NestRows, row)
	}

	// Part block: contiguous numeric IDs in column A.
	for r := layout.PartStartRow; ; r++ {
		if _, ok := ParseNumber(cellAt(f, SheetCostList, r, 1)); !ok {
			break
		}
		row := PartRow{
			ID:             len(ex.Rows) + 1,
			Name:           strings.TrimSpace(cellAt(f, SheetCostList, r, partNameCol)),
			RawWeightKG:    model.Cell(cellAt(f, SheetCostList, r, partWeightCol)).AsLooseNumber(),
			ContourCount:   model.Cell(cellAt(f, SheetCostList, r, partContoursCol)).AsLooseNumber(),
			CutLengthM:     model.Cell(cellAt(f, SheetCostList, r, partCutLenCol)).AsLooseNumber(),
			MarkingLengthM: model.Cell(cellAt(f, SheetCostList, r, partMarkingCol)).AsLooseNumber(),
			DefilmLengthM:  model.Cell(cellAt(f, SheetCostList, r, partDefilmCol)).AsLooseNumber(),
		}
		if q, ok := ParseNumber(cellAt(f, SheetCostList, r, partQtyCol)); ok && q > 0 {
			row.Quantity = int(q)
		}
		ex.Rows = append(ex.Rows, row)
	}

	return ex, nil
}

func cellValue(f *excelize.File, sheet, cell string) string {
	v, _ := f.GetCellValue(sheet, cell)
	return v
}

// cutTimeHours reads the declared cut time. A numeric-typed cell holds
// hours; text cells go through the duration forms, where a bare number
// means seconds. Numeric cells carry no type attribute in the sheet, so
// both Number and Unset count as numeric when the value parses cleanly.
func cutTimeHours(f *excelize.File, sheet, cell string) float64 {
	raw := cellValue(f, sheet, cell)
	ct, err := f.GetCellType(sheet, cell)
	if err == nil && (ct == excelize.CellTypeNumber || ct == excelize.CellTypeUnset) {
		if v, ok := ParseNumber(raw); ok {
			return v
		}
	}
	return ParseDurationToHours(raw)
}

func cellAt(f *excelize.File, sheet string, row, col int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	return cellValue(f, sheet, name)
}
