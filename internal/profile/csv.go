// v1
// internal/profile/csv.go
package profile

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// The exchange format is semicolon-delimited with minute-precision
// timestamps and a decimal comma, as produced by German metering exports:
//
//	timestamp;load
//	2024-01-01 00:00;23,50
//
// Projected output appends the provenance column: timestamp;load;source.

const timestampLayout = "2006-01-02 15:04"

// ParseCSV reads a load profile. The header row and malformed rows are
// skipped, matching the tolerant behavior metering exports require; rows
// are returned sorted by timestamp.
func ParseCSV(r io.Reader) ([]Interval, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var out []Interval
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		// Rows that do not parse are dropped; this also covers the header.
		iv, ok := parseRow(line)
		if !ok {
			continue
		}
		out = append(out, iv)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read load profile: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrEmptyProfile
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func parseRow(line string) (Interval, bool) {
	parts := strings.Split(line, ";")
	if len(parts) < 2 {
		return Interval{}, false
	}
	ts, err := time.ParseInLocation(timestampLayout, strings.TrimSpace(parts[0]), time.UTC)
	if err != nil {
		return Interval{}, false
	}
	raw := strings.ReplaceAll(strings.TrimSpace(parts[1]), ",", ".")
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return Interval{}, false
	}
	return Interval{Timestamp: ts, Value: value}, true
}

// WriteCSV emits a projected profile as timestamp;load;source rows with a
// decimal comma and two fractional digits.
func WriteCSV(w io.Writer, p *Projected) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("timestamp;load;source\n"); err != nil {
		return err
	}
	for _, iv := range p.Intervals {
		load := strings.ReplaceAll(iv.Value.StringFixed(2), ".", ",")
		if _, err := fmt.Fprintf(bw, "%s;%s;%s\n", iv.Timestamp.Format(timestampLayout), load, iv.Label); err != nil {
			return err
		}
	}
	return bw.Flush()
}
