// v1
// internal/profile/interval.go

// Package profile holds the load-profile data model: raw intervals, the
// framer slicing them into daily chunks, the CSV codec for the exchange
// format, and the assembler producing projected target-year profiles.
package profile

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/timeisseler/ferienplanung/internal/daytype"
)

var (
	// ErrInputRange signals source data spanning anything other than exactly
	// one calendar year.
	ErrInputRange = errors.New("source data must span exactly one calendar year")

	// ErrIrregularSampling signals timestamp gaps that are not a whole
	// multiple of the detected sampling interval.
	ErrIrregularSampling = errors.New("irregular sampling interval")

	// ErrAssemblyIncomplete signals that a projected profile failed the
	// post-assembly completeness validation. It indicates a logic defect and
	// is always fatal.
	ErrAssemblyIncomplete = errors.New("assembled profile incomplete")

	// ErrEmptyProfile signals an input without a single parseable interval.
	ErrEmptyProfile = errors.New("empty load profile")
)

// Interval is one measurement: a minute-precision timestamp and the load
// value. Values are carried as decimals and copied verbatim into
// projections, never modeled.
type Interval struct {
	Timestamp time.Time
	Value     decimal.Decimal
}

// DayChunk is one calendar day's ordered interval sequence. Partial marks
// days with fewer than the expected per-day count; those are excluded as
// match sources but may still be target days needing a match.
type DayChunk struct {
	Date      daytype.Date
	Intervals []Interval
	Partial   bool
}

// LabeledInterval is a projected interval carrying its provenance label.
type LabeledInterval struct {
	Interval
	Label string
}

// Projected is a fully assembled target-year profile. It is immutable after
// assembly: the assembler either returns a validated instance or fails.
type Projected struct {
	Year      int
	Intervals []LabeledInterval
}
