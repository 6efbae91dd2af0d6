package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("expected defaults for a missing file; got error %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected default config; got %+v", cfg)
	}
}

func TestLoadFullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radlog.yaml")
	content := "input_path: counts.csv\nmargin_cpm: 3\ntable_width: 40\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.InputPath != "counts.csv" {
		t.Fatalf("expected input_path counts.csv; got %q", cfg.InputPath)
	}
	if cfg.MarginCPM != 3 {
		t.Fatalf("expected margin_cpm 3; got %d", cfg.MarginCPM)
	}
	if cfg.TableWidth != 40 {
		t.Fatalf("expected table_width 40; got %d", cfg.TableWidth)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radlog.yaml")
	if err := os.WriteFile(path, []byte("margin_cpm: 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.MarginCPM != 2 {
		t.Fatalf("expected margin_cpm 2; got %d", cfg.MarginCPM)
	}
	if cfg.InputPath != DefaultInputPath {
		t.Fatalf("expected default input path; got %q", cfg.InputPath)
	}
	if cfg.TableWidth != DefaultTableWidth {
		t.Fatalf("expected default table width; got %d", cfg.TableWidth)
	}
}

func TestLoadKeepsZeroMargin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radlog.yaml")
	if err := os.WriteFile(path, []byte("margin_cpm: 0\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.MarginCPM != 0 {
		t.Fatalf("expected explicit zero margin kept; got %d", cfg.MarginCPM)
	}
}

func TestLoadNormalizesOutOfRangeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radlog.yaml")
	content := "input_path: \"\"\nmargin_cpm: -4\ntable_width: 0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected out-of-range values normalized to defaults; got %+v", cfg)
	}
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radlog.yaml")
	if err := os.WriteFile(path, []byte("input_path: [unterminated\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error for invalid YAML")
	}
}
