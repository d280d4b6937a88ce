package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Required sheet names in every job workbook.
const (
	SheetTaskList  = "All Task List"
	SheetPartsList = "All Parts List"
	SheetCostList  = "Cost List"
)

// Anchor substrings located by scanning.
const (
	anchorUtilization  = "Average utilization:"
	anchorMaterialRate = "Material Price"
	anchorTotal        = "Total"
)

// Fixed positions of the nesting software's export layout.
const (
	cellMaterial  = "B4"
	cellThickness = "C4"
	cellGas       = "E4"
	cellCutTime   = "F4"

	taskHeaderRow    = 7
	taskDataStartRow = 8

	defaultPlateSizeCol = 3 // column C
	defaultSheetsCol    = 4 // column D

	totalLengthCol = 8  // column H on the Total row
	utilizationCol = 11 // column K on the utilization row

	rateContourCol = 7  // column G on the Material Price row
	rateMarkingCol = 9  // column I
	rateDefilmCol  = 10 // column J

	partNameCol     = 2
	partQtyCol      = 5
	partWeightCol   = 6
	partContoursCol = 7
	partCutLenCol   = 8
	partMarkingCol  = 9
	partDefilmCol   = 10
)

// JobLayout is the resolved position of every table the extractor reads.
// Produced by Locate from a workbook snapshot, independent of any UI state.
type JobLayout struct {
	UtilizationRow  int // cost sheet row holding "Average utilization:"
	MaterialRateRow int // cost sheet row holding "Material Price"
	PartStartRow    int // first cost sheet row with a numeric ID in column A
	TotalRow        int // task sheet row whose column A contains "Total"
	PlateSizeCol    int
	SheetsCol       int
	FallbackColumns bool // header columns not found, defaults in use
}

// Locate scans a workbook for the sheets and anchor rows the extractor
// needs. Missing sheets or anchors are fatal; missing optional header
// columns degrade to the default positions with a warning.
func Locate(f *excelize.File) (JobLayout, []string, error) {
	var warnings []string

	for _, name := range []string{SheetTaskList, SheetPartsList, SheetCostList} {
		if idx, _ := f.GetSheetIndex(name); idx < 0 {
			return JobLayout{}, nil, &MissingSheetError{Sheet: name}
		}
	}

	costRows, err := f.GetRows(SheetCostList)
	if err != nil {
		return JobLayout{}, nil, fmt.Errorf("read %s: %w", SheetCostList, err)
	}
	taskRows, err := f.GetRows(SheetTaskList)
	if err != nil {
		return JobLayout{}, nil, fmt.Errorf("read %s: %w", SheetTaskList, err)
	}

	layout := JobLayout{
		PlateSizeCol: defaultPlateSizeCol,
		SheetsCol:    defaultSheetsCol,
	}

	// Utilization anchor may sit in any column.
	layout.UtilizationRow = findRowContaining(costRows, anchorUtilization, 0)
	if layout.UtilizationRow == 0 {
		return JobLayout{}, nil, &MissingAnchorError{Sheet: SheetCostList, Anchor: anchorUtilization}
	}

	// The rate row and the part block are keyed off column A.
	layout.MaterialRateRow = findRowContaining(costRows, anchorMaterialRate, 1)
	if layout.MaterialRateRow == 0 {
		return JobLayout{}, nil, &MissingAnchorError{Sheet: SheetCostList, Anchor: anchorMaterialRate}
	}

	layout.PartStartRow = findNumericRow(costRows)
	if layout.PartStartRow == 0 {
		return JobLayout{}, nil, &MissingAnchorError{Sheet: SheetCostList, Anchor: "part ID in column A"}
	}

	layout.TotalRow = findRowContaining(taskRows, anchorTotal, 1)
	if layout.TotalRow == 0 {
		return JobLayout{}, nil, &MissingAnchorError{Sheet: SheetTaskList, Anchor: anchorTotal}
	}

	// Optional header columns on the task sheet.
	plateCol, sheetsCol := 0, 0
	if len(taskRows) >= taskHeaderRow {
		for i, cell := range taskRows[taskHeaderRow-1] {
			header := strings.ToLower(strings.TrimSpace(cell))
			switch {
			case strings.Contains(header, "plate size") && plateCol == 0:
				plateCol = i + 1
			case strings.Contains(header, "sheets") && sheetsCol == 0:
				sheetsCol = i + 1
			}
		}
	}
	if plateCol > 0 {
		layout.PlateSizeCol = plateCol
	}
	if sheetsCol > 0 {
		layout.SheetsCol = sheetsCol
	}
	if plateCol == 0 || sheetsCol == 0 {
		layout.FallbackColumns = true
		warnings = append(warnings, fmt.Sprintf(
			"%s: Plate Size/Sheets headers not found in row %d, using default columns %s/%s",
			SheetTaskList, taskHeaderRow, columnName(layout.PlateSizeCol), columnName(layout.SheetsCol)))
	}

	return layout, warnings, nil
}

// findRowContaining returns the 1-based index of the first row whose cells
// contain the substring (case-insensitive). col restricts the scan to one
// 1-based column; 0 scans every cell. Returns 0 when never found.
func findRowContaining(rows [][]string, substr string, col int) int {
	needle := strings.ToLower(substr)
	for r, row := range rows {
		if col > 0 {
			if col <= len(row) && strings.Contains(strings.ToLower(row[col-1]), needle) {
				return r + 1
			}
			continue
		}
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), needle) {
				return r + 1
			}
		}
	}
	return 0
}

// findNumericRow returns the first 1-based row whose column A parses as a
// number, marking the start of the part block.
func findNumericRow(rows [][]string) int {
	for r, row := range rows {
		if len(row) == 0 {
			continue
		}
		if _, ok := ParseNumber(row[0]); ok {
			return r + 1
		}
	}
	return 0
}

func columnName(col int) string {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return fmt.Sprintf("#%d", col)
	}
	return name
}
