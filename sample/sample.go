// Package sample defines the canonical radiation sample structure and the pure
// operations the analyzer pipeline applies to it: log-line parsing, peak
// detection, threshold filtering, calendar-date grouping, and trip-date
// selection.
package sample

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// TimestampLayout matches the log's M/D/YYYY H:MM timestamps. Month, day,
	// and hour accept one or two digits; minutes are always two.
	TimestampLayout = "1/2/2006 15:04"

	// DateLayout is the calendar-date rendering used for bucket keys and the
	// summary line. Lexicographic order on these keys is chronological order.
	DateLayout = "2006-01-02"
)

// minFields is how many comma-separated fields a line needs before it carries
// count data: timestamp, raw count, counts per minute.
const minFields = 3

var (
	// ErrShortLine reports a line with fewer than the three comma-separated
	// fields the log format requires (header and preamble lines).
	ErrShortLine = errors.New("line has fewer than 3 fields")

	// ErrBadCount reports a counts-per-minute field that is not a
	// non-negative integer.
	ErrBadCount = errors.New("counts-per-minute field is not a non-negative integer")
)

// Sample represents one radiation log entry in canonical form
type Sample struct {
	DateTimeText string // Timestamp text exactly as logged (e.g., "6/1/2019 7:05"); shown verbatim in tables
	CPM          int    // Counts per minute; never negative in a parsed sample
}

// ParseLine parses one comma-separated log line into a Sample. The first
// field is kept verbatim as the sample's timestamp text and the third is the
// counts-per-minute reading; anything past the third field is ignored.
// Returns ErrShortLine or ErrBadCount (wrapped with the offending text) for
// lines that do not carry a usable sample; callers skip those and keep going.
func ParseLine(line string) (Sample, error) {
	fields := strings.Split(line, ",")
	if len(fields) < minFields {
		return Sample{}, fmt.Errorf("%w: %q", ErrShortLine, line)
	}
	cpm, err := strconv.Atoi(fields[2])
	if err != nil || cpm < 0 {
		return Sample{}, fmt.Errorf("%w: %q", ErrBadCount, fields[2])
	}
	return Sample{DateTimeText: fields[0], CPM: cpm}, nil
}

// MaxCPM returns the highest counts-per-minute reading in samples, or 0 when
// samples is empty. Counts are never negative, so 0 is the natural floor.
func MaxCPM(samples []Sample) int {
	max := 0
	for _, s := range samples {
		if s.CPM > max {
			max = s.CPM
		}
	}
	return max
}

// FilterNearMax returns the samples whose count is within margin of max,
// preserving input order. Duplicate readings stay; each one is its own
// sample and counts on its own.
func FilterNearMax(samples []Sample, max, margin int) []Sample {
	high := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if s.CPM >= max-margin {
			high = append(high, s)
		}
	}
	return high
}

// ParseTimestamp parses a sample's raw timestamp text. Parsing is strict
// about shape (numeric month/day/year, 24-hour clock, two-digit minutes) and
// about range: an out-of-range day such as 6/31 is a parse failure, not a
// value to resolve.
func ParseTimestamp(text string) (time.Time, error) {
	return time.Parse(TimestampLayout, text)
}

// GroupByDate buckets samples by the calendar date of their timestamp, keyed
// by the DateLayout rendering. Samples whose timestamp text does not parse
// come back in the second slice so callers can report them; they never join
// a bucket. Within a bucket, samples keep input order.
func GroupByDate(samples []Sample) (map[string][]Sample, []Sample) {
	groups := make(map[string][]Sample)
	var malformed []Sample
	for _, s := range samples {
		ts, err := ParseTimestamp(s.DateTimeText)
		if err != nil {
			malformed = append(malformed, s)
			continue
		}
		key := ts.Format(DateLayout)
		groups[key] = append(groups[key], s)
	}
	return groups, malformed
}

// MostActiveDate returns the date whose bucket holds the most samples, along
// with that bucket's size. Ties go to the earliest date: keys are walked in
// ascending order and a later date must be strictly larger to displace the
// current best. ok is false only when there are no buckets at all; a bucket
// is never empty, so a selected date always has at least one sample.
func MostActiveDate(groups map[string][]Sample) (date string, count int, ok bool) {
	if len(groups) == 0 {
		return "", 0, false
	}
	dates := make([]string, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		if n := len(groups[d]); n > count {
			date, count = d, n
		}
	}
	return date, count, true
}
