package main

import (
	"flag"
	"log"
	"os"

	"radlog/config"
	"radlog/internal/tripreport"
)

const (
	// envConfigPath overrides the default config location when -config is not given.
	envConfigPath     = "RADLOG_CONFIG"
	defaultConfigPath = "trip_report.yaml"
)

func main() {
	configFlag := flag.String("config", "", "Path to config YAML (defaults to trip_report.yaml; built-in defaults when missing)")
	inputFlag := flag.String("input", "", "Radiation log to analyze (overrides config input_path)")
	marginFlag := flag.Int("margin", -1, "CPM margin below the max still counted as high (overrides config margin_cpm; -1 keeps it)")
	widthFlag := flag.Int("width", 0, "Report table rule width (overrides config table_width; 0 keeps it)")
	jsonOutFlag := flag.String("json-out", "", "Optional JSON summary output path")
	reportOutFlag := flag.String("report-out", "", "Optional file copy of the report")
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.LUTC)

	cfgPath := resolveConfigPath(*configFlag)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Invalid config %q: %v", cfgPath, err)
	}
	cfg = applyOverrides(cfg, *inputFlag, *marginFlag, *widthFlag)

	if _, err := tripreport.Generate(tripreport.Options{
		InputPath:  cfg.InputPath,
		MarginCPM:  cfg.MarginCPM,
		TableWidth: cfg.TableWidth,
		JSONOut:    *jsonOutFlag,
		ReportOut:  *reportOutFlag,
		Logger:     log.Default(),
	}); err != nil {
		log.Fatal(err)
	}
}

// resolveConfigPath picks the config file: the -config flag wins, then the
// RADLOG_CONFIG environment variable, then the default location.
func resolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(envConfigPath); env != "" {
		return env
	}
	return defaultConfigPath
}

// applyOverrides layers explicit flag values over the loaded config. The
// margin sentinel is -1 so that -margin 0 is a real override, while width
// and input treat their zero values as unset.
func applyOverrides(cfg config.Config, input string, margin, width int) config.Config {
	if input != "" {
		cfg.InputPath = input
	}
	if margin >= 0 {
		cfg.MarginCPM = margin
	}
	if width > 0 {
		cfg.TableWidth = width
	}
	return cfg
}
