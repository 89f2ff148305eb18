// v1
// internal/calendar/classifier_test.go
package calendar

import (
	"testing"
	"time"

	"github.com/timeisseler/ferienplanung/internal/daytype"
	"github.com/timeisseler/ferienplanung/internal/holiday"
)

func date(y int, m time.Month, d int) daytype.Date {
	return daytype.NewDate(y, m, d)
}

func TestClassifyCoversWholeYear(t *testing.T) {
	cal := Classify(2024, "BW", nil, nil)
	dates := cal.Dates()
	if len(dates) != 366 {
		t.Fatalf("expected 366 dates for 2024, got %d", len(dates))
	}
	for _, d := range dates {
		if _, ok := cal.Meta(d); !ok {
			t.Fatalf("no meta for %s", d)
		}
	}
	// 2024-02-29 is a Thursday, so without holiday data it is ordinary.
	if m, _ := cal.Meta(date(2024, time.February, 29)); m.Category.Kind != daytype.Ordinary {
		t.Fatalf("unexpected leap day category %s", m.Category)
	}
}

func TestClassifyPrecedence(t *testing.T) {
	// 2026-12-26 is a Saturday inside the Weihnachtsferien, and also a public
	// holiday. The holiday must win over both weekend and school holiday.
	holidays := []holiday.PublicHoliday{
		{Date: date(2026, time.December, 26), Name: "2. Weihnachtstag"},
	}
	periods := []holiday.SchoolPeriod{
		{Name: "weihnachtsferien baden-württemberg 2026", Start: date(2026, time.December, 23), End: date(2026, time.December, 31)},
	}
	cal := Classify(2026, "BW", holidays, periods)

	m, _ := cal.Meta(date(2026, time.December, 26))
	if m.Category.Kind != daytype.PublicHoliday || m.Category.HolidayName != "2. Weihnachtstag" {
		t.Fatalf("expected public holiday, got %s", m.Category)
	}

	// 2026-12-27 is a Sunday inside the period: weekend beats school holiday.
	m, _ = cal.Meta(date(2026, time.December, 27))
	if m.Category.Kind != daytype.Weekend {
		t.Fatalf("expected weekend, got %s", m.Category)
	}

	// 2026-12-28 is a Monday inside the period: school holiday.
	m, _ = cal.Meta(date(2026, time.December, 28))
	if m.Category.Kind != daytype.SchoolHoliday {
		t.Fatalf("expected school holiday, got %s", m.Category)
	}
	if m.Category.PeriodStart != date(2026, time.December, 23) {
		t.Fatalf("unexpected period start %s", m.Category.PeriodStart)
	}
}

func TestClassifyDuplicateHolidayDeterministic(t *testing.T) {
	holidays := []holiday.PublicHoliday{
		{Date: date(2024, time.May, 1), Name: "Tag der Arbeit"},
		{Date: date(2024, time.May, 1), Name: "Maifeiertag"},
	}
	cal := Classify(2024, "BY", holidays, nil)
	m, _ := cal.Meta(date(2024, time.May, 1))
	if m.Category.HolidayName != "Maifeiertag" {
		t.Fatalf("expected lexicographically smaller name to win, got %q", m.Category.HolidayName)
	}
}

func TestMergeWrappingPeriod(t *testing.T) {
	// A wrapping Weihnachtsferien delivered as two rows: the December tail of
	// the year and the head wrapping past the year end. The January part is
	// clipped away, the rows merge into one window.
	periods := []holiday.SchoolPeriod{
		{Name: "weihnachtsferien bayern 2024", Start: date(2024, time.December, 23), End: date(2024, time.December, 31)},
		{Name: "weihnachtsferien bayern 2024", Start: date(2024, time.December, 28), End: date(2025, time.January, 6)},
	}
	cal := Classify(2024, "BY", nil, periods)
	_, start, end, ok := cal.Period("weihnachtsferien")
	if !ok {
		t.Fatalf("merged period not indexed")
	}
	if start != date(2024, time.December, 23) || end != date(2024, time.December, 31) {
		t.Fatalf("unexpected merged window %s..%s", start, end)
	}
}

func TestPeriodIndexKeepsEarlierWindow(t *testing.T) {
	// The same base name at the start and end of a year (January head and
	// December tail of two different wrapping breaks): the earlier window is
	// the canonical one.
	periods := []holiday.SchoolPeriod{
		{Name: "weihnachtsferien bayern 2023", Start: date(2024, time.January, 1), End: date(2024, time.January, 5)},
		{Name: "weihnachtsferien bayern 2024", Start: date(2024, time.December, 23), End: date(2024, time.December, 31)},
	}
	cal := Classify(2024, "BY", nil, periods)
	_, start, _, ok := cal.Period("weihnachtsferien")
	if !ok {
		t.Fatalf("period not indexed")
	}
	if start != date(2024, time.January, 1) {
		t.Fatalf("expected the January window, got start %s", start)
	}
}

func TestWeekendIndex(t *testing.T) {
	cal := Classify(2024, "BW", nil, nil)
	// 2024-08-10 is the Saturday of ISO week 32.
	got := cal.WeekendDates(32, 5)
	if len(got) != 1 || got[0] != date(2024, time.August, 10) {
		t.Fatalf("unexpected weekend index result %v", got)
	}
	if len(cal.WeekendDates(32, 2)) != 0 {
		t.Fatalf("expected no weekend entry for a Wednesday slot")
	}
}

func TestHolidayDatesSorted(t *testing.T) {
	holidays := []holiday.PublicHoliday{
		{Date: date(2024, time.December, 26), Name: "Weihnachten"},
		{Date: date(2024, time.December, 25), Name: "Weihnachten"},
	}
	cal := Classify(2024, "BW", holidays, nil)
	got := cal.HolidayDates("Weihnachten")
	if len(got) != 2 || !got[0].Before(got[1]) {
		t.Fatalf("expected two ascending dates, got %v", got)
	}
}

func TestClassifyIgnoresForeignYearHolidays(t *testing.T) {
	holidays := []holiday.PublicHoliday{
		{Date: date(2023, time.December, 25), Name: "Weihnachten"},
	}
	cal := Classify(2024, "BW", holidays, nil)
	if len(cal.HolidayDates("Weihnachten")) != 0 {
		t.Fatalf("holiday outside the year must be dropped")
	}
}
