// v1
// internal/profile/framer.go
package profile

import (
	"fmt"
	"sort"
	"time"

	"github.com/timeisseler/ferienplanung/internal/daytype"
)

// samplingTolerance absorbs sub-second jitter in source timestamps when
// checking gaps against the detected interval length.
const samplingTolerance = time.Second

// Frame is the framed source year: the detected sampling step, the expected
// per-day interval count, and the per-date chunks. A Frame is built once per
// uploaded profile and read-only afterwards.
type Frame struct {
	Year            int
	Step            time.Duration
	IntervalsPerDay int
	Chunks          map[daytype.Date]DayChunk
}

// BuildFrame slices a raw interval sequence into daily chunks. The sequence
// must lie within a single calendar year (ErrInputRange otherwise). The
// sampling step is the minimum gap between consecutive timestamps; every gap
// must be a whole multiple of it within a small tolerance, and the step must
// divide a day evenly (ErrIrregularSampling otherwise). Missing rows show up
// as partial days, not as errors.
func BuildFrame(intervals []Interval) (*Frame, error) {
	if len(intervals) == 0 {
		return nil, ErrEmptyProfile
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	year := sorted[0].Timestamp.Year()
	for _, iv := range sorted {
		if iv.Timestamp.Year() != year {
			return nil, fmt.Errorf("%w: found %d and %d", ErrInputRange, year, iv.Timestamp.Year())
		}
	}

	step, err := detectStep(sorted)
	if err != nil {
		return nil, err
	}
	day := 24 * time.Hour
	if day%step != 0 {
		return nil, fmt.Errorf("%w: %s does not divide a day evenly", ErrIrregularSampling, step)
	}
	perDay := int(day / step)

	chunks := make(map[daytype.Date]DayChunk)
	for _, iv := range sorted {
		d := daytype.DateOf(iv.Timestamp)
		chunk := chunks[d]
		chunk.Date = d
		chunk.Intervals = append(chunk.Intervals, iv)
		chunks[d] = chunk
	}
	for d, chunk := range chunks {
		chunk.Partial = len(chunk.Intervals) != perDay
		chunks[d] = chunk
	}

	return &Frame{
		Year:            year,
		Step:            step,
		IntervalsPerDay: perDay,
		Chunks:          chunks,
	}, nil
}

// detectStep finds the minimum positive gap and validates every gap against
// it. Duplicate timestamps are rejected.
func detectStep(sorted []Interval) (time.Duration, error) {
	if len(sorted) < 2 {
		return 0, fmt.Errorf("%w: need at least two intervals to detect the sampling step", ErrIrregularSampling)
	}
	minGap := time.Duration(0)
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].Timestamp.Sub(sorted[i-1].Timestamp)
		if gap <= 0 {
			return 0, fmt.Errorf("%w: duplicate timestamp %s", ErrIrregularSampling,
				sorted[i].Timestamp.Format("2006-01-02 15:04"))
		}
		if minGap == 0 || gap < minGap {
			minGap = gap
		}
	}
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].Timestamp.Sub(sorted[i-1].Timestamp)
		rem := gap % minGap
		if rem > samplingTolerance && minGap-rem > samplingTolerance {
			return 0, fmt.Errorf("%w: gap %s at %s is not a multiple of %s", ErrIrregularSampling,
				gap, sorted[i].Timestamp.Format("2006-01-02 15:04"), minGap)
		}
	}
	return minGap, nil
}

// Chunk returns the chunk stored for a date.
func (f *Frame) Chunk(d daytype.Date) (DayChunk, bool) {
	c, ok := f.Chunks[d]
	return c, ok
}

// HasFullChunk reports whether the date holds a complete, non-partial chunk.
// This is the predicate the matcher uses to skip unusable source days.
func (f *Frame) HasFullChunk(d daytype.Date) bool {
	c, ok := f.Chunks[d]
	return ok && !c.Partial
}

// FullDays and PartialDays count the chunk population for diagnostics.
func (f *Frame) FullDays() int {
	n := 0
	for _, c := range f.Chunks {
		if !c.Partial {
			n++
		}
	}
	return n
}

func (f *Frame) PartialDays() int {
	n := 0
	for _, c := range f.Chunks {
		if c.Partial {
			n++
		}
	}
	return n
}
