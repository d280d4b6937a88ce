// Package pricebook loads the material and cutting price lists the quote
// engine resolves base rates from. Lists are tabular CSV or Excel files with
// columns identified by header name, case-insensitive and order-independent.
package pricebook

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/laserquote/internal/model"
	"github.com/piwi3910/laserquote/internal/workbook"
)

// MaterialKey addresses one PLN/kg entry.
type MaterialKey struct {
	Material    string
	ThicknessMM float64
}

// CuttingKey addresses one PLN/m entry.
type CuttingKey struct {
	ThicknessMM float64
	Material    string
	Gas         model.Gas
}

// PriceBook holds both tables, built once per batch and read-only afterwards.
type PriceBook struct {
	Material map[MaterialKey]float64
	Cutting  map[CuttingKey]float64
	Warnings []string
}

// MissingColumnError reports a price list lacking required header columns.
type MissingColumnError struct {
	File    string
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.File, strings.Join(e.Columns, ", "))
}

// headerAliases maps canonical column roles to accepted spellings (lowercase).
var headerAliases = map[string][]string{
	"material":  {"material", "materiał", "mat"},
	"thickness": {"thickness", "thk", "grubość"},
	"gas":       {"gas", "gaz"},
	"price":     {"price", "cena"},
}

// Load builds a complete PriceBook from the two price list files.
func Load(materialPath, cuttingPath string) (*PriceBook, error) {
	book := &PriceBook{}

	material, warnings, err := LoadMaterialPrices(materialPath)
	if err != nil {
		return nil, err
	}
	book.Material = material
	book.Warnings = append(book.Warnings, warnings...)

	cutting, warnings, err := LoadCuttingPrices(cuttingPath)
	if err != nil {
		return nil, err
	}
	book.Cutting = cutting
	book.Warnings = append(book.Warnings, warnings...)

	return book, nil
}

// MaterialPrice looks up the PLN/kg rate. A miss returns 0 and false; the
// caller must surface the miss so nobody quotes at a silently-zero price.
func (b *PriceBook) MaterialPrice(material string, thicknessMM float64) (float64, bool) {
	v, ok := b.Material[MaterialKey{Material: workbook.NormalizeCode(material), ThicknessMM: thicknessMM}]
	return v, ok
}

// CuttingRate looks up the PLN/m rate for a thickness/material/gas triple.
func (b *PriceBook) CuttingRate(thicknessMM float64, material string, gas model.Gas) (float64, bool) {
	v, ok := b.Cutting[CuttingKey{ThicknessMM: thicknessMM, Material: workbook.NormalizeCode(material), Gas: gas}]
	return v, ok
}

// LoadMaterialPrices reads a (material, thickness) -> PLN/kg table.
// Unparsable rows are skipped with a warning; missing required columns are
// fatal.
func LoadMaterialPrices(path string) (map[MaterialKey]float64, []string, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, nil, err
	}
	cols, err := mapColumns(path, rows, "material", "thickness", "price")
	if err != nil {
		return nil, nil, err
	}

	prices := make(map[MaterialKey]float64)
	var warnings []string
	for i, row := range rows[1:] {
		material := workbook.NormalizeCode(cell(row, cols["material"]))
		thickness, okT := workbook.ParseNumber(cell(row, cols["thickness"]))
		price, okP := workbook.ParseNumber(cell(row, cols["price"]))
		if material == "" || !okT || !okP {
			if !rowEmpty(row) {
				warnings = append(warnings, fmt.Sprintf("%s: row %d skipped, unparsable entry", filepath.Base(path), i+2))
			}
			continue
		}
		prices[MaterialKey{Material: material, ThicknessMM: thickness}] = price
	}
	return prices, warnings, nil
}

// LoadCuttingPrices reads a (thickness, material, gas) -> PLN/m table.
func LoadCuttingPrices(path string) (map[CuttingKey]float64, []string, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, nil, err
	}
	cols, err := mapColumns(path, rows, "thickness", "material", "gas", "price")
	if err != nil {
		return nil, nil, err
	}

	rates := make(map[CuttingKey]float64)
	var warnings []string
	for i, row := range rows[1:] {
		thickness, okT := workbook.ParseNumber(cell(row, cols["thickness"]))
		material := workbook.NormalizeCode(cell(row, cols["material"]))
		gas := workbook.MapGas(cell(row, cols["gas"]))
		price, okP := workbook.ParseNumber(cell(row, cols["price"]))
		if !okT || material == "" || gas == model.GasUnknown || !okP {
			if !rowEmpty(row) {
				warnings = append(warnings, fmt.Sprintf("%s: row %d skipped, unparsable entry", filepath.Base(path), i+2))
			}
			continue
		}
		rates[CuttingKey{ThicknessMM: thickness, Material: material, Gas: gas}] = price
	}
	return rates, warnings, nil
}

// mapColumns resolves required column roles against the header row.
func mapColumns(path string, rows [][]string, required ...string) (map[string]int, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: file is empty", filepath.Base(path))
	}

	cols := make(map[string]int)
	for i, header := range rows[0] {
		normalized := strings.ToLower(strings.TrimSpace(header))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					if _, taken := cols[role]; !taken {
						cols[role] = i
					}
				}
			}
		}
	}

	var missing []string
	for _, role := range required {
		if _, ok := cols[role]; !ok {
			missing = append(missing, role)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{File: filepath.Base(path), Columns: missing}
	}
	return cols, nil
}

// readRows loads the tabular content of a CSV or Excel price list.
func readRows(path string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("open price list: %w", err)
		}
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = DetectCSVDelimiter(data)
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("read price list: %w", err)
		}
		return rows, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open price list: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", filepath.Base(path))
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read price list: %w", err)
	}
	return rows, nil
}

// DetectCSVDelimiter determines the most likely delimiter by scoring the
// consistency of column counts for each candidate.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
