package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/laserquote/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.OpCostPerSheet = 55.0
	cfg.Policy = "floor"
	cfg.MaterialPricesPath = "/prices/materials.xlsx"

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.OpCostPerSheet != 55.0 {
		t.Errorf("expected OpCostPerSheet=55.0, got %f", loaded.OpCostPerSheet)
	}
	if loaded.Policy != "floor" {
		t.Errorf("expected Policy=floor, got %s", loaded.Policy)
	}
	if loaded.MaterialPricesPath != "/prices/materials.xlsx" {
		t.Errorf("expected saved materials path, got %s", loaded.MaterialPricesPath)
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.OpCostPerSheet != defaults.OpCostPerSheet {
		t.Errorf("expected default op cost %f, got %f", defaults.OpCostPerSheet, cfg.OpCostPerSheet)
	}
	if cfg.Policy != "boost" {
		t.Errorf("expected policy=boost, got %s", cfg.Policy)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigFillsOldFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	// Config from an older version without policy or curve fields.
	data := []byte(`{"op_cost_per_sheet":45,"tech_cost_per_order":60}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.OpCostPerSheet != 45 || cfg.TechCostPerOrder != 60 {
		t.Errorf("explicit values lost: %+v", cfg)
	}
	if cfg.Policy != "boost" || cfg.MaxBoost != 3.5 {
		t.Errorf("missing fields should default: %+v", cfg)
	}
	if cfg.MaterialMarginCurve.MaxMarginPct == 0 {
		t.Error("margin curve should default, not zero out")
	}
}
