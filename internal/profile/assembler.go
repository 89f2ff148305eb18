// v1
// internal/profile/assembler.go
package profile

import (
	"fmt"
	"time"

	"github.com/timeisseler/ferienplanung/internal/daytype"
	"github.com/timeisseler/ferienplanung/internal/matcher"
)

// Assemble concatenates the matched source chunks in target-date order into
// one continuous target-year profile. Each interval keeps its intraday
// time-of-day and value but is re-stamped onto the target date, and carries
// the match's provenance label. The result is validated for completeness;
// any violation is ErrAssemblyIncomplete and fatal, never patched.
func Assemble(frame *Frame, targetYear int, results []matcher.Result) (*Projected, error) {
	expectedDays := daytype.DaysInYear(targetYear)
	if len(results) != expectedDays {
		return nil, fmt.Errorf("%w: %d match results for %d target days", ErrAssemblyIncomplete, len(results), expectedDays)
	}

	out := &Projected{
		Year:      targetYear,
		Intervals: make([]LabeledInterval, 0, expectedDays*frame.IntervalsPerDay),
	}

	wantDate := daytype.FirstOfYear(targetYear)
	for _, res := range results {
		if res.Target != wantDate {
			return nil, fmt.Errorf("%w: expected target date %s, got %s", ErrAssemblyIncomplete, wantDate, res.Target)
		}
		chunk, ok := frame.Chunk(res.Source)
		if !ok || chunk.Partial {
			return nil, fmt.Errorf("%w: source chunk for %s (target %s) is missing or partial", ErrAssemblyIncomplete, res.Source, res.Target)
		}
		dayStart := res.Target.Time()
		srcStart := res.Source.Time()
		for _, iv := range chunk.Intervals {
			out.Intervals = append(out.Intervals, LabeledInterval{
				Interval: Interval{
					Timestamp: dayStart.Add(iv.Timestamp.Sub(srcStart)),
					Value:     iv.Value,
				},
				Label: res.Label,
			})
		}
		wantDate = wantDate.AddDays(1)
	}

	if err := validate(out, frame.IntervalsPerDay, expectedDays); err != nil {
		return nil, err
	}
	return out, nil
}

// validate checks the total interval count and strict timestamp ordering.
func validate(p *Projected, perDay, days int) error {
	want := perDay * days
	if len(p.Intervals) != want {
		return fmt.Errorf("%w: %d intervals, want %d", ErrAssemblyIncomplete, len(p.Intervals), want)
	}
	var prev time.Time
	for i, iv := range p.Intervals {
		if iv.Timestamp.Year() != p.Year {
			return fmt.Errorf("%w: interval %d stamped %s outside target year %d", ErrAssemblyIncomplete, i, iv.Timestamp.Format(timestampLayout), p.Year)
		}
		if i > 0 && !iv.Timestamp.After(prev) {
			return fmt.Errorf("%w: timestamps not strictly increasing at %s", ErrAssemblyIncomplete, iv.Timestamp.Format(timestampLayout))
		}
		prev = iv.Timestamp
	}
	return nil
}
