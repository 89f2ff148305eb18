// v1
// internal/matcher/matcher.go

// Package matcher maps every date of a target year onto the most
// semantically equivalent date of the source year. The rules run in a fixed
// order per target date; the first rule producing a usable candidate wins.
// All tie-breaks are total-ordered, so identical inputs always yield an
// identical mapping.
package matcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/timeisseler/ferienplanung/internal/calendar"
	"github.com/timeisseler/ferienplanung/internal/daytype"
	"github.com/timeisseler/ferienplanung/internal/holiday"
)

// ordinarySearchRadius bounds the outward day-by-day search for an ordinary
// source day before the matcher accepts any category.
const ordinarySearchRadius = 7

// ErrNoUsableSource signals a source year without a single complete day
// chunk, which makes matching impossible.
var ErrNoUsableSource = errors.New("source year has no complete day chunks")

// Kind identifies the rule that produced a mapping.
type Kind int

const (
	ExactHoliday Kind = iota
	ExactSchoolHolidayOffset
	AlignedWeekend
	AlignedOrdinary
	FallbackNearest
)

func (k Kind) String() string {
	switch k {
	case ExactHoliday:
		return "exact_holiday"
	case ExactSchoolHolidayOffset:
		return "exact_school_holiday_offset"
	case AlignedWeekend:
		return "aligned_weekend"
	case AlignedOrdinary:
		return "aligned_ordinary"
	default:
		return "fallback_nearest"
	}
}

// Result is the resolved mapping for one target date.
type Result struct {
	Target daytype.Date
	Source daytype.Date
	Kind   Kind
	Label  string
}

// Matcher resolves target dates against a framed, classified source year.
type Matcher struct {
	source  *calendar.YearCalendar
	target  *calendar.YearCalendar
	hasFull func(daytype.Date) bool
}

// New builds a matcher. hasFull reports whether the source date carries a
// complete day chunk; partial or missing chunks are skipped as sources.
func New(source, target *calendar.YearCalendar, hasFull func(daytype.Date) bool) *Matcher {
	return &Matcher{source: source, target: target, hasFull: hasFull}
}

// Run resolves every date of the target year in ascending order. It fails
// only when the source year holds no usable chunk at all.
func (m *Matcher) Run() ([]Result, error) {
	if !m.anyFullChunk() {
		return nil, ErrNoUsableSource
	}
	dates := m.target.Dates()
	out := make([]Result, 0, len(dates))
	for _, t := range dates {
		meta, _ := m.target.Meta(t)
		out = append(out, m.matchOne(meta))
	}
	return out, nil
}

func (m *Matcher) anyFullChunk() bool {
	for _, d := range m.source.Dates() {
		if m.hasFull(d) {
			return true
		}
	}
	return false
}

// matchOne applies the ordered rule set to a single target date.
func (m *Matcher) matchOne(t daytype.Meta) Result {
	switch t.Category.Kind {
	case daytype.PublicHoliday:
		if s, ok := m.firstFull(m.source.HolidayDates(t.Category.HolidayName)); ok {
			return m.result(t.Date, s, ExactHoliday)
		}
	case daytype.SchoolHoliday:
		base := holiday.PeriodBaseName(t.Category.PeriodName)
		if s, ok := m.schoolOffsetCandidate(t, base); ok {
			// The source day inside the period may itself be classified as a
			// weekend under the precedence order, so the label carries the
			// period name rather than the source category.
			return Result{
				Target: t.Date,
				Source: s,
				Kind:   ExactSchoolHolidayOffset,
				Label:  fmt.Sprintf("%s-%d", slug(base), m.source.Year),
			}
		}
	case daytype.Weekend:
		if s, ok := m.weekendCandidate(t); ok {
			return m.result(t.Date, s, AlignedWeekend)
		}
	}
	return m.ordinaryFallback(t)
}

// firstFull picks the first candidate carrying a complete chunk, preserving
// the candidates' order.
func (m *Matcher) firstFull(candidates []daytype.Date) (daytype.Date, bool) {
	for _, c := range candidates {
		if m.hasFull(c) {
			return c, true
		}
	}
	return daytype.Date{}, false
}

// schoolOffsetCandidate maps a school-holiday target date to the source
// period of the same base name at the same offset from the period start,
// clamped to the source period's length. When the chunk at that offset is
// unusable, neighboring offsets within the period are tried outward
// (later first), before giving up to the ordinary fallback.
func (m *Matcher) schoolOffsetCandidate(t daytype.Meta, base string) (daytype.Date, bool) {
	_, start, end, ok := m.source.Period(base)
	if !ok {
		return daytype.Date{}, false
	}
	length := start.DaysUntil(end) + 1
	offset := t.Category.PeriodStart.DaysUntil(t.Date)
	if offset < 0 {
		offset = 0
	}
	if offset >= length {
		offset = length - 1
	}

	candidates := make([]daytype.Date, 0, length)
	candidates = append(candidates, start.AddDays(offset))
	for delta := 1; delta < length; delta++ {
		if next := offset + delta; next < length {
			candidates = append(candidates, start.AddDays(next))
		}
		if prev := offset - delta; prev >= 0 {
			candidates = append(candidates, start.AddDays(prev))
		}
	}
	return m.firstFull(candidates)
}

// weekendCandidate finds a source weekend day in the same ISO week with the
// same weekday. When calendar drift leaves that week without one, the
// neighboring weeks are searched with the earlier week winning ties.
func (m *Matcher) weekendCandidate(t daytype.Meta) (daytype.Date, bool) {
	candidates := append([]daytype.Date(nil), m.source.WeekendDates(t.ISOWeek, t.WeekdayIx)...)
	candidates = append(candidates, m.source.WeekendDates(t.ISOWeek-1, t.WeekdayIx)...)
	candidates = append(candidates, m.source.WeekendDates(t.ISOWeek+1, t.WeekdayIx)...)
	return m.firstFull(candidates)
}

// ordinaryFallback is rule 4: prefer the source date with the same
// day-of-year (clamped to the source year's length for the leap-day case),
// searching outward alternating +1, -1, +2, -2, … up to the bounded radius
// for an Ordinary day with a complete chunk. Beyond the radius the nearest
// complete chunk wins regardless of category and the match is flagged.
func (m *Matcher) ordinaryFallback(t daytype.Meta) Result {
	anchor := daytype.DateForDayOfYear(m.source.Year, t.DayOfYear)

	if s, ok := m.searchOutward(anchor, ordinarySearchRadius, func(meta daytype.Meta) bool {
		return meta.Category.Kind == daytype.Ordinary
	}); ok {
		return m.result(t.Date, s, AlignedOrdinary)
	}

	// Wider search: nearest usable chunk of any category.
	maxRadius := daytype.DaysInYear(m.source.Year)
	s, _ := m.searchOutward(anchor, maxRadius, func(daytype.Meta) bool { return true })
	return m.result(t.Date, s, FallbackNearest)
}

// searchOutward walks 0, +1, -1, +2, -2, … from the anchor, keeping within
// the source year, and returns the first date accepted by the predicate
// that also carries a complete chunk.
func (m *Matcher) searchOutward(anchor daytype.Date, radius int, accept func(daytype.Meta) bool) (daytype.Date, bool) {
	for delta := 0; delta <= radius; delta++ {
		offsets := []int{delta}
		if delta > 0 {
			offsets = []int{delta, -delta}
		}
		for _, off := range offsets {
			d := anchor.AddDays(off)
			meta, ok := m.source.Meta(d)
			if !ok {
				continue
			}
			if !accept(meta) || !m.hasFull(d) {
				continue
			}
			return d, true
		}
	}
	return daytype.Date{}, false
}

// result fills in the provenance label for a resolved pair.
func (m *Matcher) result(target, source daytype.Date, kind Kind) Result {
	srcMeta, _ := m.source.Meta(source)
	return Result{
		Target: target,
		Source: source,
		Kind:   kind,
		Label:  label(kind, srcMeta),
	}
}

// label encodes the match kind and the originating source day, e.g.
// weekend-KW32-2024, sommerferien-2024, ordinary-2024-03-14.
func label(kind Kind, src daytype.Meta) string {
	switch kind {
	case ExactHoliday:
		return fmt.Sprintf("holiday-%s-%d", slug(src.Category.HolidayName), src.Date.Year)
	case AlignedWeekend:
		return fmt.Sprintf("weekend-KW%d-%d", src.ISOWeek, src.Date.Year)
	case AlignedOrdinary:
		return fmt.Sprintf("ordinary-%s", src.Date)
	default:
		return fmt.Sprintf("fallback-%s", src.Date)
	}
}

// slug lowercases a name and replaces whitespace runs with hyphens so labels
// stay single CSV tokens.
func slug(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	if len(fields) == 0 {
		return "unnamed"
	}
	return strings.Join(fields, "-")
}
