// Package engine orchestrates the quote pipeline: it walks a folder of job
// workbooks, prices every part through the configured policy, then runs the
// batch-wide overhead and reconciliation stages.
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/laserquote/internal/model"
	"github.com/piwi3910/laserquote/internal/pricebook"
	"github.com/piwi3910/laserquote/internal/pricing"
	"github.com/piwi3910/laserquote/internal/workbook"
)

// BatchContext carries everything one analysis run needs. Price tables are
// loaded once and shared read-only across all jobs of the batch; nothing in
// the pipeline mutates them.
type BatchContext struct {
	Config model.AppConfig
	Prices *pricebook.PriceBook
	Policy pricing.Policy
}

// NewBatchContext resolves the configured pricing policy.
func NewBatchContext(cfg model.AppConfig, prices *pricebook.PriceBook) (*BatchContext, error) {
	policy, err := pricing.ForName(cfg.Policy, cfg.MaxBoost)
	if err != nil {
		return nil, err
	}
	return &BatchContext{Config: cfg, Prices: prices, Policy: policy}, nil
}

// AnalyzeFolder processes every job workbook in a folder, sequentially and
// to completion. The first fatal extraction error aborts the whole batch,
// wrapped with the offending file name. Non-fatal conditions accumulate as
// warnings on the result.
func (c *BatchContext) AnalyzeFolder(folder string) (*model.BatchResult, error) {
	files, err := listWorkbooks(folder)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .xlsx files in %s", folder)
	}

	res := model.NewBatchResult(folder)
	res.Warnings = append(res.Warnings, c.Prices.Warnings...)

	for group, name := range files {
		if err := c.analyzeFile(res, filepath.Join(folder, name), group+1); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	AllocateOverhead(res, c.Config)

	res.Totals.OxygenCutCost = res.Totals.OxygenCutHours * c.Config.OxygenRatePerHour
	res.Totals.NitrogenCutCost = res.Totals.NitrogenCutHours * c.Config.NitrogenRatePerHour
	res.RecomputeGrandTotal()

	return res, nil
}

// analyzeFile extracts one workbook and appends its priced parts.
func (c *BatchContext) analyzeFile(res *model.BatchResult, path string, groupID int) error {
	ex, err := workbook.ExtractJob(path)
	if err != nil {
		return err
	}
	res.Warnings = append(res.Warnings, ex.Warnings...)

	job := ex.Job
	job.GroupID = groupID

	switch job.Gas {
	case model.GasOxygen:
		res.Totals.OxygenCutHours += job.CutTimeHours
	case model.GasNitrogen:
		res.Totals.NitrogenCutHours += job.CutTimeHours
	}

	basePrice, ok := c.Prices.MaterialPrice(job.Material, job.ThicknessMM)
	if !ok {
		res.Warn(fmt.Sprintf("%s: material price not found for %s %.2f mm, using 0.00",
			job.File, job.Material, job.ThicknessMM))
	}
	baseRate, ok := c.Prices.CuttingRate(job.ThicknessMM, job.Material, job.Gas)
	if !ok {
		res.Warn(fmt.Sprintf("%s: cutting rate not found for %.2f mm / %s / %s, using 0.00",
			job.File, job.ThicknessMM, job.Material, job.Gas))
	}

	materialFactor, cuttingFactor := c.Policy.Factors(job)

	// Advisory geometry margins, for operator review only.
	plates := make([]pricing.PlateRow, len(ex.NestRows))
	for i, n := range ex.NestRows {
		plates[i] = pricing.PlateRow{AreaM2: n.PlateAreaM2, Sheets: n.Sheets}
	}
	cuts := make([]pricing.CutRow, len(ex.Rows))
	for i, r := range ex.Rows {
		cuts[i] = pricing.CutRow{LengthMM: r.CutLengthM * 1000, Quantity: r.Quantity}
	}
	job.SuggestedMaterialMarginPct = pricing.SuggestMaterialMargin(c.Config.MaterialMarginCurve, plates)
	job.SuggestedCuttingMarginPct = pricing.SuggestCuttingMargin(c.Config.CuttingMarginCurve, cuts)

	for _, row := range ex.Rows {
		adjWeight := row.RawWeightKG
		if job.UtilizationRate > 0 {
			adjWeight = row.RawWeightKG / job.UtilizationRate
		}

		in := pricing.CostInputs{
			AdjustedWeightKG: adjWeight,
			PricePerKG:       basePrice,
			CutLengthM:       row.CutLengthM,
			RatePerM:         baseRate,
			ContourCount:     row.ContourCount,
			RatePerContour:   ex.RatePerContour,
			MarkingLengthM:   row.MarkingLengthM,
			RatePerMarking:   ex.RatePerMarking,
			DefilmLengthM:    row.DefilmLengthM,
			RatePerDefilm:    ex.RatePerDefilm,
		}
		base := pricing.UnitCost(in)

		in.PricePerKG = basePrice * materialFactor
		in.RatePerM = baseRate * cuttingFactor
		adjusted := pricing.UnitCost(in)

		res.Parts = append(res.Parts, model.PartLineItem{
			ID:               row.ID,
			GroupID:          groupID,
			Name:             row.Name,
			Material:         job.Material,
			ThicknessMM:      job.ThicknessMM,
			Quantity:         row.Quantity,
			RawWeightKG:      row.RawWeightKG,
			AdjustedWeightKG: adjWeight,
			CutLengthM:       row.CutLengthM,
			ContourCount:     row.ContourCount,
			MarkingLengthM:   row.MarkingLengthM,
			DefilmLengthM:    row.DefilmLengthM,
			BasePricePerKG:   basePrice,
			BaseRatePerM:     baseRate,
			BaseUnitCost:     model.Round2(base.Total),
			UnitCost:         model.Round2(adjusted.Total),
		})

		res.Totals.TotalPartQuantity += row.Quantity
		res.Totals.TotalMaterialCost += base.MaterialCost * float64(row.Quantity)
	}

	res.Totals.TotalSheets += job.SheetCount
	res.Jobs = append(res.Jobs, job)
	return nil
}

// listWorkbooks returns the sorted .xlsx files of a folder, skipping Office
// lock files.
func listWorkbooks(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("read folder: %w", err)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "~$") {
			continue
		}
		if strings.EqualFold(filepath.Ext(name), ".xlsx") {
			files = append(files, name)
		}
	}
	return files, nil
}
