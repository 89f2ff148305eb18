// v1
// internal/matcher/matcher_test.go
package matcher

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/timeisseler/ferienplanung/internal/calendar"
	"github.com/timeisseler/ferienplanung/internal/daytype"
	"github.com/timeisseler/ferienplanung/internal/holiday"
)

func date(y int, m time.Month, d int) daytype.Date {
	return daytype.NewDate(y, m, d)
}

// scenario classifies a 2024 source year and a 2026 target year with
// matching holiday and school-period data.
func scenario() (source, target *calendar.YearCalendar) {
	sourceHolidays := []holiday.PublicHoliday{
		{Date: date(2024, time.January, 1), Name: "Neujahr"},
		{Date: date(2024, time.December, 25), Name: "Weihnachten"},
	}
	targetHolidays := []holiday.PublicHoliday{
		{Date: date(2026, time.January, 1), Name: "Neujahr"},
		{Date: date(2026, time.December, 25), Name: "Weihnachten"},
	}
	sourcePeriods := []holiday.SchoolPeriod{
		{Name: "winterferien bayern 2024", Start: date(2024, time.February, 5), End: date(2024, time.February, 9)},
		{Name: "sommerferien bayern 2024", Start: date(2024, time.August, 1), End: date(2024, time.August, 30)},
	}
	targetPeriods := []holiday.SchoolPeriod{
		{Name: "winterferien bayern 2026", Start: date(2026, time.February, 2), End: date(2026, time.February, 13)},
		{Name: "sommerferien bayern 2026", Start: date(2026, time.August, 3), End: date(2026, time.September, 1)},
	}
	source = calendar.Classify(2024, "BY", sourceHolidays, sourcePeriods)
	target = calendar.Classify(2026, "BY", targetHolidays, targetPeriods)
	return source, target
}

func allFull(daytype.Date) bool { return true }

// runIndexed runs the matcher and indexes results by target date.
func runIndexed(t *testing.T, m *Matcher) map[daytype.Date]Result {
	t.Helper()
	results, err := m.Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 365 {
		t.Fatalf("expected 365 results for 2026, got %d", len(results))
	}
	out := make(map[daytype.Date]Result, len(results))
	for _, r := range results {
		out[r.Target] = r
	}
	return out
}

func TestExactHolidayMatch(t *testing.T) {
	source, target := scenario()
	byDate := runIndexed(t, New(source, target, allFull))

	r := byDate[date(2026, time.December, 25)]
	if r.Kind != ExactHoliday {
		t.Fatalf("expected exact_holiday, got %s", r.Kind)
	}
	if r.Source != date(2024, time.December, 25) {
		t.Fatalf("expected source 2024-12-25, got %s", r.Source)
	}
	if r.Label != "holiday-weihnachten-2024" {
		t.Fatalf("unexpected label %q", r.Label)
	}
}

func TestSchoolHolidayOffsetMatch(t *testing.T) {
	source, target := scenario()
	byDate := runIndexed(t, New(source, target, allFull))

	// 2026-08-04 is the second day (offset 1) of the target summer break and
	// maps onto the second day of the source summer break.
	r := byDate[date(2026, time.August, 4)]
	if r.Kind != ExactSchoolHolidayOffset {
		t.Fatalf("expected exact_school_holiday_offset, got %s", r.Kind)
	}
	if r.Source != date(2024, time.August, 2) {
		t.Fatalf("expected source 2024-08-02, got %s", r.Source)
	}
	if r.Label != "sommerferien-2024" {
		t.Fatalf("unexpected label %q", r.Label)
	}
}

func TestSchoolHolidayOffsetClamped(t *testing.T) {
	source, target := scenario()
	byDate := runIndexed(t, New(source, target, allFull))

	// The target winter break is longer than the source one. 2026-02-12 sits
	// at offset 10, which clamps to the source period's last day.
	r := byDate[date(2026, time.February, 12)]
	if r.Kind != ExactSchoolHolidayOffset {
		t.Fatalf("expected exact_school_holiday_offset, got %s", r.Kind)
	}
	if r.Source != date(2024, time.February, 9) {
		t.Fatalf("expected clamp to 2024-02-09, got %s", r.Source)
	}
}

func TestAlignedWeekendMatch(t *testing.T) {
	source, target := scenario()
	byDate := runIndexed(t, New(source, target, allFull))

	// Both 2026-08-08 and 2024-08-10 are the Saturday of ISO week 32. The
	// target date also lies inside the summer break, but weekend outranks
	// school holiday in classification, so rule 3 applies.
	r := byDate[date(2026, time.August, 8)]
	if r.Kind != AlignedWeekend {
		t.Fatalf("expected aligned_weekend, got %s", r.Kind)
	}
	if r.Source != date(2024, time.August, 10) {
		t.Fatalf("expected source 2024-08-10, got %s", r.Source)
	}
	if r.Label != "weekend-KW32-2024" {
		t.Fatalf("unexpected label %q", r.Label)
	}
}

func TestWeekendNeighborWeekEarlierWins(t *testing.T) {
	source, target := scenario()
	// The Saturday of source week 32 has no usable chunk, so the neighboring
	// weeks are consulted with the earlier one winning.
	hasFull := func(d daytype.Date) bool { return d != date(2024, time.August, 10) }
	byDate := runIndexed(t, New(source, target, hasFull))

	r := byDate[date(2026, time.August, 8)]
	if r.Kind != AlignedWeekend {
		t.Fatalf("expected aligned_weekend, got %s", r.Kind)
	}
	if r.Source != date(2024, time.August, 3) {
		t.Fatalf("expected week 31 Saturday 2024-08-03, got %s", r.Source)
	}
}

func TestAlignedOrdinarySkipsNonOrdinaryAnchor(t *testing.T) {
	source, target := scenario()
	byDate := runIndexed(t, New(source, target, allFull))

	// 2026-03-11 (Wednesday) has day-of-year 70; day 70 of 2024 is Sunday
	// 2024-03-10, so the outward search moves to Monday 2024-03-11.
	r := byDate[date(2026, time.March, 11)]
	if r.Kind != AlignedOrdinary {
		t.Fatalf("expected aligned_ordinary, got %s", r.Kind)
	}
	if r.Source != date(2024, time.March, 11) {
		t.Fatalf("expected source 2024-03-11, got %s", r.Source)
	}
	if r.Label != "ordinary-2024-03-11" {
		t.Fatalf("unexpected label %q", r.Label)
	}
}

func TestLeapDayClamp(t *testing.T) {
	// Source 2023 has 365 days; target 2024 has 366. Day 366 clamps to the
	// source year's last day before the outward search begins.
	source := calendar.Classify(2023, "BY", nil, nil)
	target := calendar.Classify(2024, "BY", nil, nil)
	m := New(source, target, allFull)
	results, err := m.Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	last := results[len(results)-1]
	if last.Target != date(2024, time.December, 31) {
		t.Fatalf("unexpected last target %s", last.Target)
	}
	// 2023-12-31 is a Sunday and 2023-12-30 a Saturday; the nearest ordinary
	// day is Friday 2023-12-29.
	if last.Kind != AlignedOrdinary || last.Source != date(2023, time.December, 29) {
		t.Fatalf("expected ordinary 2023-12-29, got %s %s", last.Kind, last.Source)
	}
}

func TestFallbackNearestBeyondRadius(t *testing.T) {
	source, target := scenario()
	// Only one source day is usable at all, far away from most anchors.
	only := date(2024, time.June, 15)
	hasFull := func(d daytype.Date) bool { return d == only }
	byDate := runIndexed(t, New(source, target, hasFull))

	r := byDate[date(2026, time.January, 5)]
	if r.Kind != FallbackNearest {
		t.Fatalf("expected fallback_nearest, got %s", r.Kind)
	}
	if r.Source != only {
		t.Fatalf("expected source %s, got %s", only, r.Source)
	}
	if r.Label != "fallback-2024-06-15" {
		t.Fatalf("unexpected label %q", r.Label)
	}
}

func TestOrdinaryStaysWithinRadius(t *testing.T) {
	source, target := scenario()
	byDate := runIndexed(t, New(source, target, allFull))

	for targetDate, r := range byDate {
		if r.Kind != AlignedOrdinary {
			continue
		}
		anchor := daytype.DateForDayOfYear(2024, targetDate.DayOfYear())
		dist := anchor.DaysUntil(r.Source)
		if dist < 0 {
			dist = -dist
		}
		if dist > 7 {
			t.Fatalf("ordinary match for %s drifted %d days from anchor", targetDate, dist)
		}
	}
}

func TestDeterminism(t *testing.T) {
	source, target := scenario()
	first, err := New(source, target, allFull).Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	second, err := New(source, target, allFull).Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("matching is not deterministic")
	}
}

func TestNoUsableSource(t *testing.T) {
	source, target := scenario()
	_, err := New(source, target, func(daytype.Date) bool { return false }).Run()
	if !errors.Is(err, ErrNoUsableSource) {
		t.Fatalf("expected ErrNoUsableSource, got %v", err)
	}
}

func TestHolidayWithoutSourceCounterpartFallsThrough(t *testing.T) {
	// The target has a holiday the source year does not carry; rule 4 takes
	// over instead of failing.
	source := calendar.Classify(2024, "BY", nil, nil)
	target := calendar.Classify(2026, "BY",
		[]holiday.PublicHoliday{{Date: date(2026, time.October, 3), Name: "Tag der Deutschen Einheit"}}, nil)
	byDate := runIndexed(t, New(source, target, allFull))

	r := byDate[date(2026, time.October, 3)]
	if r.Kind != AlignedOrdinary && r.Kind != FallbackNearest {
		t.Fatalf("expected a fallback rule, got %s", r.Kind)
	}
}
