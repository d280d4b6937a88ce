// Command laserquote prices a folder of laser-cutting job workbooks and
// writes the quote reports.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/laserquote/internal/engine"
	"github.com/piwi3910/laserquote/internal/export"
	"github.com/piwi3910/laserquote/internal/geometry"
	"github.com/piwi3910/laserquote/internal/history"
	"github.com/piwi3910/laserquote/internal/model"
	"github.com/piwi3910/laserquote/internal/pricebook"
	"github.com/piwi3910/laserquote/internal/project"
)

func main() {
	var (
		folder       = flag.String("folder", "", "folder with job workbooks (.xlsx)")
		configPath   = flag.String("config", project.DefaultConfigPath(), "application config file")
		initConfig   = flag.Bool("init-config", false, "write the default config file and exit")
		materials    = flag.String("materials", "", "material price list (overrides config)")
		cutting      = flag.String("cutting", "", "cutting price list (overrides config)")
		target       = flag.Float64("target", 0, "reconcile the grand total to this negotiated amount")
		reportPath   = flag.String("report", "", "write the internal costing workbook here")
		clientPath   = flag.String("client-report", "", "write the customer-facing quote workbook here")
		pdfPath      = flag.String("pdf", "", "write the quote summary PDF here")
		labelsPath   = flag.String("labels", "", "write QR part labels PDF here")
		historyPath  = flag.String("history", "", "sqlite database to record this run in")
		dxfDir       = flag.String("dxf", "", "folder with part drawings to cross-check against")
		dxfTolerance = flag.Float64("dxf-tolerance", 5, "allowed drawing deviation in percent")
	)
	flag.Parse()

	if err := run(*folder, *configPath, *initConfig, *materials, *cutting, *target,
		*reportPath, *clientPath, *pdfPath, *labelsPath, *historyPath, *dxfDir, *dxfTolerance); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(folder, configPath string, initConfig bool, materials, cutting string, target float64,
	reportPath, clientPath, pdfPath, labelsPath, historyPath, dxfDir string, dxfTolerance float64) error {

	if initConfig {
		if err := project.SaveAppConfig(configPath, model.DefaultAppConfig()); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Println("wrote", configPath)
		return nil
	}
	if folder == "" {
		return fmt.Errorf("no -folder given")
	}

	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if materials != "" {
		cfg.MaterialPricesPath = materials
	}
	if cutting != "" {
		cfg.CuttingPricesPath = cutting
	}

	prices, err := pricebook.Load(cfg.MaterialPricesPath, cfg.CuttingPricesPath)
	if err != nil {
		return fmt.Errorf("load price lists: %w", err)
	}

	ctx, err := engine.NewBatchContext(cfg, prices)
	if err != nil {
		return err
	}
	res, err := ctx.AnalyzeFolder(folder)
	if err != nil {
		return err
	}

	if dxfDir != "" {
		crossCheckDrawings(res, dxfDir, dxfTolerance)
	}
	if target > 0 {
		if err := engine.Reconcile(res, target); err != nil {
			return err
		}
	}

	if reportPath != "" {
		if err := export.WriteInternalReport(reportPath, res); err != nil {
			return fmt.Errorf("internal report: %w", err)
		}
	}
	if clientPath != "" {
		if err := export.WriteClientReport(clientPath, res); err != nil {
			return fmt.Errorf("client report: %w", err)
		}
	}
	if pdfPath != "" {
		if err := export.WriteQuotePDF(pdfPath, res); err != nil {
			return fmt.Errorf("quote pdf: %w", err)
		}
	}
	if labelsPath != "" {
		if err := export.WriteLabels(labelsPath, res); err != nil {
			return fmt.Errorf("labels: %w", err)
		}
	}
	if historyPath != "" {
		store, err := history.Open(historyPath)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer store.Close()
		if err := store.SaveBatch(res); err != nil {
			return fmt.Errorf("save history: %w", err)
		}
	}

	printSummary(res)
	return nil
}

// crossCheckDrawings measures any DXF drawing named after a part and records
// the deviations as warnings. Parts without a drawing are skipped.
func crossCheckDrawings(res *model.BatchResult, dir string, tolerancePct float64) {
	for _, p := range res.Parts {
		path := filepath.Join(dir, p.Name+".dxf")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		m, err := geometry.MeasureDXF(path)
		if err != nil {
			res.Warn(fmt.Sprintf("%s: %v", path, err))
			continue
		}
		for _, w := range geometry.CrossCheck(m, p, tolerancePct) {
			res.Warn(w)
		}
	}
}

func printSummary(res *model.BatchResult) {
	fmt.Printf("Batch %s (%s)\n", res.ID[:8], res.Folder)
	for _, j := range res.Jobs {
		fmt.Printf("  [%d] %-30s %s %.1f mm, %s, %d sheets, %.2f h\n",
			j.GroupID, j.File, j.Material, j.ThicknessMM, j.Gas, j.SheetCount, j.CutTimeHours)
		fmt.Printf("       suggested margins: material %.1f%%, cutting %.1f%%\n",
			j.SuggestedMaterialMarginPct, j.SuggestedCuttingMarginPct)
	}

	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("  parts: %d pcs on %d sheets\n", res.Totals.TotalPartQuantity, res.Totals.TotalSheets)
	if res.Totals.OxygenCutHours > 0 {
		fmt.Printf("  oxygen cutting:   %.2f h (%.2f PLN)\n", res.Totals.OxygenCutHours, res.Totals.OxygenCutCost)
	}
	if res.Totals.NitrogenCutHours > 0 {
		fmt.Printf("  nitrogen cutting: %.2f h (%.2f PLN)\n", res.Totals.NitrogenCutHours, res.Totals.NitrogenCutCost)
	}
	fmt.Printf("  grand total: %.2f PLN\n", model.Round2(res.Totals.GrandTotal))

	if len(res.Warnings) > 0 {
		fmt.Fprintln(os.Stderr, "warnings:")
		for _, w := range res.Warnings {
			fmt.Fprintln(os.Stderr, "  -", w)
		}
	}
}
