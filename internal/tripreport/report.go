// Package tripreport turns a Geiger-counter CSV log into the camping-trip
// report: the high-count sample table, the most likely trip date, and the
// table of samples from that day.
package tripreport

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"

	"radlog/config"
	"radlog/sample"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Logger interface {
	Printf(format string, args ...any)
}

type Options struct {
	InputPath  string    // Log file to analyze; empty means the configured default
	MarginCPM  int       // Counts below the max still treated as high; negative means the default
	TableWidth int       // Horizontal rule width; non-positive means the default
	JSONOut    string    // Optional machine-readable summary path; empty skips it
	ReportOut  string    // Optional file copy of the report; empty skips it
	Stdout     io.Writer // Report destination; nil means os.Stdout
	Logger     Logger    // Diagnostics destination; nil silences them
}

type Result struct {
	Output     string
	JSONPath   string
	ReportPath string
	TripDate   string
	Found      bool
	Summary    reportSummary
}

type reportSummary struct {
	InputFile      string       `json:"input_file"`
	MarginCPM      int          `json:"margin_cpm"`
	MaxCPM         int          `json:"max_cpm"`
	TotalSamples   int          `json:"total_samples"`
	DiscardedLines int          `json:"discarded_lines"`
	HighSamples    int          `json:"high_samples"`
	MalformedDates int          `json:"malformed_dates"`
	Days           []daySummary `json:"days"`
	TripDate       string       `json:"trip_date,omitempty"`
	TripSamples    int          `json:"trip_samples"`
}

type daySummary struct {
	Date    string `json:"date"`
	Samples int    `json:"samples"`
}

func readSamples(path string) ([]sample.Sample, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	const maxLineBytes = 1024 * 1024
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	samples := make([]sample.Sample, 0, 4096)
	discarded := 0
	for scanner.Scan() {
		s, err := sample.ParseLine(scanner.Text())
		if err != nil {
			discarded++
			continue
		}
		samples = append(samples, s)
	}
	if err := scanner.Err(); err != nil {
		// Keep what was read; the caller decides how to report the failure.
		return samples, discarded, err
	}
	return samples, discarded, nil
}

// ReadSamples exposes the log parsing helper for callers that need raw
// samples. It returns the parsed samples, the count of lines skipped for
// carrying no usable sample, and any read error. A read error mid-file still
// returns the samples parsed up to that point.
func ReadSamples(path string) ([]sample.Sample, int, error) {
	return readSamples(path)
}

// Generate runs the full analysis and writes the report to opts.Stdout. A
// missing or unreadable input file is a diagnostic, not an error: the report
// still renders over whatever was read (possibly nothing). Generate fails
// only when a requested artifact cannot be produced.
func Generate(opts Options) (Result, error) {
	var result Result
	logf := func(format string, args ...any) {
		if opts.Logger != nil {
			opts.Logger.Printf(format, args...)
		}
	}

	inputPath := strings.TrimSpace(opts.InputPath)
	if inputPath == "" {
		inputPath = config.DefaultInputPath
	}
	margin := opts.MarginCPM
	if margin < 0 {
		margin = config.DefaultMarginCPM
	}
	width := opts.TableWidth
	if width <= 0 {
		width = config.DefaultTableWidth
	}

	samples, discarded, err := readSamples(inputPath)
	if err != nil {
		logf("Error reading file: %v", err)
	}

	maxCPM := sample.MaxCPM(samples)
	high := sample.FilterNearMax(samples, maxCPM, margin)
	if err == nil {
		logf("Parsed %s samples from %s (max %d CPM, %d non-sample lines skipped)",
			humanize.Comma(int64(len(samples))), inputPath, maxCPM, discarded)
	}

	groups, malformed := sample.GroupByDate(high)
	for _, s := range malformed {
		logf("Skipping malformed date: %s", s.DateTimeText)
	}

	tripDate, tripCount, found := sample.MostActiveDate(groups)

	var b strings.Builder
	b.WriteString(renderTable(fmt.Sprintf("Radiation samples with CPM >= (max - %d)", margin), high, width))
	dateText := "none"
	if found {
		dateText = tripDate
	}
	fmt.Fprintf(&b, "Most Likely Camping trip date: %s, number of high counts that day : %d\n", dateText, tripCount)
	b.WriteString(renderTable("Samples that day", groups[tripDate], width))
	output := b.String()

	dates := make([]string, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	days := make([]daySummary, 0, len(dates))
	for _, d := range dates {
		days = append(days, daySummary{Date: d, Samples: len(groups[d])})
	}

	summary := reportSummary{
		InputFile:      inputPath,
		MarginCPM:      margin,
		MaxCPM:         maxCPM,
		TotalSamples:   len(samples),
		DiscardedLines: discarded,
		HighSamples:    len(high),
		MalformedDates: len(malformed),
		Days:           days,
		TripSamples:    tripCount,
	}
	if found {
		summary.TripDate = tripDate
	}

	if jsonOut := strings.TrimSpace(opts.JSONOut); jsonOut != "" {
		jsonBytes, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return result, err
		}
		if err := os.MkdirAll(filepath.Dir(jsonOut), 0o755); err != nil {
			return result, err
		}
		if err := os.WriteFile(jsonOut, jsonBytes, 0o644); err != nil {
			return result, err
		}
		result.JSONPath = jsonOut
		logf("Wrote JSON summary: %s", jsonOut)
	}

	if reportOut := strings.TrimSpace(opts.ReportOut); reportOut != "" {
		if err := os.MkdirAll(filepath.Dir(reportOut), 0o755); err != nil {
			return result, err
		}
		if err := os.WriteFile(reportOut, []byte(output), 0o644); err != nil {
			return result, err
		}
		result.ReportPath = reportOut
		logf("Wrote report: %s", reportOut)
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	if _, err := io.WriteString(stdout, output); err != nil {
		return result, err
	}

	result.Output = output
	result.TripDate = tripDate
	result.Found = found
	result.Summary = summary
	return result, nil
}

// renderTable renders one bordered report section: a rule, the centered
// title, a rule, one row per sample, a closing rule. The title's left
// padding is (width - len(title)) / 2 with truncating integer division;
// titles wider than the table print unpadded. Rows keep a fixed 20-character
// timestamp cell and a 3-digit count cell regardless of table width.
func renderTable(title string, samples []sample.Sample, width int) string {
	rule := strings.Repeat("-", width)
	padding := (width - len(title)) / 2

	var b strings.Builder
	b.WriteString(rule)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%*s\n", padding+len(title), title)
	b.WriteString(rule)
	b.WriteByte('\n')
	for _, s := range samples {
		fmt.Fprintf(&b, "| %-20s | %3d |\n", s.DateTimeText, s.CPM)
	}
	b.WriteString(rule)
	b.WriteByte('\n')
	return b.String()
}
