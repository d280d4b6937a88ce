package export

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/laserquote/internal/model"
)

// buildTestBatch creates a realistic two-job analysis result.
func buildTestBatch() *model.BatchResult {
	res := model.NewBatchResult("/orders/2026-08/acme")
	res.Jobs = []model.Job{
		{
			File: "job1.xlsx", GroupID: 1, Material: "S235", ThicknessMM: 3,
			Gas: model.GasOxygen, CutTimeHours: 1.5, TotalCutLengthM: 312.51,
			UtilizationRate: 0.85, SheetCount: 3,
			SuggestedMaterialMarginPct: 120, SuggestedCuttingMarginPct: 80,
		},
		{
			File: "job2.xlsx", GroupID: 2, Material: "1.4301", ThicknessMM: 2,
			Gas: model.GasNitrogen, CutTimeHours: 0.75, TotalCutLengthM: 120,
			UtilizationRate: 0.78, SheetCount: 1,
		},
	}
	res.Parts = []model.PartLineItem{
		{
			ID: 1, GroupID: 1, Name: "Bracket", Material: "S235", ThicknessMM: 3,
			Quantity: 10, RawWeightKG: 2.0, AdjustedWeightKG: 2.35, CutLengthM: 5,
			ContourCount: 3, BasePricePerKG: 10, BaseRatePerM: 20,
			BaseUnitCost: 125.0, UnitCost: 138.5,
		},
		{
			ID: 2, GroupID: 1, Name: "Cover plate", Material: "S235", ThicknessMM: 3,
			Quantity: 4, RawWeightKG: 1.2, AdjustedWeightKG: 1.41, CutLengthM: 2.4,
			BasePricePerKG: 10, BaseRatePerM: 20,
			BaseUnitCost: 62.1, UnitCost: 68.9, BendingPerUnit: 5,
		},
		{
			ID: 1, GroupID: 2, Name: "Panel", Material: "1.4301", ThicknessMM: 2,
			Quantity: 20, RawWeightKG: 0.8, AdjustedWeightKG: 1.03, CutLengthM: 1.8,
			BasePricePerKG: 25, BaseRatePerM: 30,
			BaseUnitCost: 79.6, UnitCost: 85.2,
		},
	}
	res.Totals = model.BatchTotals{
		TotalSheets:       4,
		TotalPartQuantity: 34,
		TotalMaterialCost: 850.5,
		OxygenCutHours:    1.5,
		NitrogenCutHours:  0.75,
		OxygenCutCost:     450,
		NitrogenCutCost:   262.5,
	}
	res.RecomputeGrandTotal()
	res.Warn("job2.xlsx: average utilization out of range (0.7800)")
	return res
}

func assertFileWritten(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("file is empty")
	}
}

func TestWriteInternalReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "internal.xlsx")
	if err := WriteInternalReport(path, buildTestBatch()); err != nil {
		t.Fatalf("WriteInternalReport: %v", err)
	}
	assertFileWritten(t, path)

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Costing", "Jobs", "Warnings"} {
		if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
			t.Errorf("missing sheet %q", sheet)
		}
	}
	if v, _ := f.GetCellValue("Costing", "C2"); v != "Bracket" {
		t.Errorf("C2 = %q, want Bracket", v)
	}
	if v, _ := f.GetCellValue("Jobs", "B2"); v != "job1.xlsx" {
		t.Errorf("Jobs!B2 = %q", v)
	}
	if v, _ := f.GetCellValue("Warnings", "A1"); v == "" {
		t.Error("warnings sheet is empty")
	}
}

func TestWriteClientReportHidesInternals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.xlsx")
	if err := WriteClientReport(path, buildTestBatch()); err != nil {
		t.Fatalf("WriteClientReport: %v", err)
	}
	assertFileWritten(t, path)

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	// Quote sheet only: no jobs, warnings or rate columns.
	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != "Quote" {
		t.Errorf("sheets = %v, want [Quote]", sheets)
	}
	if v, _ := f.GetCellValue("Quote", "B2"); v != "Bracket" {
		t.Errorf("B2 = %q, want Bracket", v)
	}
	// Cover plate row: bending listed separately, unit total includes it.
	if v, _ := f.GetCellValue("Quote", "G3"); v != "5" {
		t.Errorf("G3 = %q, want 5", v)
	}
	if v, _ := f.GetCellValue("Quote", "I3"); v != "73.9" {
		t.Errorf("I3 = %q, want 73.9", v)
	}
}

func TestWriteReportsRejectEmptyBatch(t *testing.T) {
	dir := t.TempDir()
	empty := model.NewBatchResult("empty")
	if err := WriteInternalReport(filepath.Join(dir, "i.xlsx"), empty); err == nil {
		t.Error("internal report: expected error for empty batch")
	}
	if err := WriteClientReport(filepath.Join(dir, "c.xlsx"), empty); err == nil {
		t.Error("client report: expected error for empty batch")
	}
	if err := WriteQuotePDF(filepath.Join(dir, "q.pdf"), empty); err == nil {
		t.Error("quote pdf: expected error for empty batch")
	}
	if err := WriteLabels(filepath.Join(dir, "l.pdf"), empty); err == nil {
		t.Error("labels: expected error for empty batch")
	}
}

func TestWriteQuotePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.pdf")
	if err := WriteQuotePDF(path, buildTestBatch()); err != nil {
		t.Fatalf("WriteQuotePDF: %v", err)
	}
	assertFileWritten(t, path)
}

func TestWriteQuotePDFManyParts(t *testing.T) {
	res := buildTestBatch()
	// Force the part table onto a second page.
	for i := 0; i < 60; i++ {
		res.Parts = append(res.Parts, model.PartLineItem{
			ID: i + 3, GroupID: 2, Name: "Filler", Material: "S235",
			ThicknessMM: 3, Quantity: 1, UnitCost: 10,
		})
	}
	res.RecomputeGrandTotal()

	path := filepath.Join(t.TempDir(), "long.pdf")
	if err := WriteQuotePDF(path, res); err != nil {
		t.Fatalf("WriteQuotePDF: %v", err)
	}
	assertFileWritten(t, path)
}

func TestWriteQuotePDFManyJobs(t *testing.T) {
	res := buildTestBatch()
	// Force the jobs table onto a second page.
	for i := 0; i < 50; i++ {
		res.Jobs = append(res.Jobs, model.Job{
			File: fmt.Sprintf("job%d.xlsx", i+3), GroupID: i + 3,
			Material: "S235", ThicknessMM: 3, Gas: model.GasOxygen,
			CutTimeHours: 0.5, SheetCount: 1,
		})
	}

	path := filepath.Join(t.TempDir(), "many_jobs.pdf")
	if err := WriteQuotePDF(path, res); err != nil {
		t.Fatalf("WriteQuotePDF: %v", err)
	}
	assertFileWritten(t, path)
}

func TestWriteLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	if err := WriteLabels(path, buildTestBatch()); err != nil {
		t.Fatalf("WriteLabels: %v", err)
	}
	assertFileWritten(t, path)
}

func TestCollectLabelInfos(t *testing.T) {
	res := buildTestBatch()
	labels := CollectLabelInfos(res)
	if len(labels) != 3 {
		t.Fatalf("labels = %d, want 3", len(labels))
	}
	if labels[0].Name != "Bracket" || labels[0].GroupID != 1 || labels[0].Quantity != 10 {
		t.Errorf("first label = %+v", labels[0])
	}
	if labels[2].Material != "1.4301" || labels[2].BatchID != res.ID {
		t.Errorf("last label = %+v", labels[2])
	}
}
