// v1
// internal/projector/projector_test.go
package projector

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/timeisseler/ferienplanung/internal/daytype"
	"github.com/timeisseler/ferienplanung/internal/holiday"
	"github.com/timeisseler/ferienplanung/internal/matcher"
	"github.com/timeisseler/ferienplanung/internal/profile"
)

// fakeSource serves a synthetic calendar for any year and can be scripted to
// fail specific years.
type fakeSource struct {
	failYears map[int]bool
}

func (f *fakeSource) PublicHolidays(_ context.Context, _ string, year int) ([]holiday.PublicHoliday, error) {
	if f.failYears[year] {
		return nil, holiday.ErrSourceUnavailable
	}
	return []holiday.PublicHoliday{
		{Date: daytype.NewDate(year, time.January, 1), Name: "Neujahr"},
		{Date: daytype.NewDate(year, time.December, 25), Name: "Weihnachten"},
	}, nil
}

func (f *fakeSource) SchoolHolidays(_ context.Context, _ string, year int) ([]holiday.SchoolPeriod, error) {
	if f.failYears[year] {
		return nil, holiday.ErrSourceUnavailable
	}
	return []holiday.SchoolPeriod{
		{
			Name:  holiday.NormalizePeriodName("sommerferien", "BW", year),
			Start: daytype.NewDate(year, time.August, 1),
			End:   daytype.NewDate(year, time.August, 28),
		},
	}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sourceFrame(t *testing.T) *profile.Frame {
	t.Helper()
	var intervals []profile.Interval
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for ts := start; ts.Before(end); ts = ts.Add(6 * time.Hour) {
		intervals = append(intervals, profile.Interval{
			Timestamp: ts,
			Value:     decimal.NewFromInt(int64(ts.YearDay())),
		})
	}
	frame, err := profile.BuildFrame(intervals)
	if err != nil {
		t.Fatalf("frame build failed: %v", err)
	}
	return frame
}

func TestProjectMultipleYears(t *testing.T) {
	p := New(&fakeSource{}, testLogger())
	frame := sourceFrame(t)

	results, err := p.Project(context.Background(), frame, "bw", []int{2026, 2027})
	if err != nil {
		t.Fatalf("project failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 year slots, got %d", len(results))
	}
	if results[0].Year != 2026 || results[1].Year != 2027 {
		t.Fatalf("slot order not preserved: %d, %d", results[0].Year, results[1].Year)
	}
	for _, yp := range results {
		if yp.Err != nil {
			t.Fatalf("year %d failed: %v", yp.Year, yp.Err)
		}
		want := daytype.DaysInYear(yp.Year) * frame.IntervalsPerDay
		if len(yp.Profile.Intervals) != want {
			t.Fatalf("year %d: %d intervals, want %d", yp.Year, len(yp.Profile.Intervals), want)
		}
		if len(yp.Matches) != daytype.DaysInYear(yp.Year) {
			t.Fatalf("year %d: %d matches", yp.Year, len(yp.Matches))
		}
	}

	// Christmas maps exactly.
	var christmas *matcher.Result
	for i := range results[0].Matches {
		if results[0].Matches[i].Target == daytype.NewDate(2026, time.December, 25) {
			christmas = &results[0].Matches[i]
			break
		}
	}
	if christmas == nil || christmas.Kind != matcher.ExactHoliday {
		t.Fatalf("expected exact holiday match for Christmas, got %+v", christmas)
	}
}

func TestProjectIsolatesFailingYear(t *testing.T) {
	p := New(&fakeSource{failYears: map[int]bool{2027: true}}, testLogger())
	frame := sourceFrame(t)

	results, err := p.Project(context.Background(), frame, "BW", []int{2026, 2027})
	if err != nil {
		t.Fatalf("project failed: %v", err)
	}
	if results[0].Err != nil {
		t.Fatalf("healthy year must succeed: %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Fatalf("failing year must carry its error")
	}
	if !errors.Is(results[1].Err, holiday.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", results[1].Err)
	}
	if results[1].Profile != nil {
		t.Fatalf("failed year must not carry a profile")
	}
}

func TestProjectFailsOnSourceYearLookup(t *testing.T) {
	p := New(&fakeSource{failYears: map[int]bool{2024: true}}, testLogger())
	frame := sourceFrame(t)

	if _, err := p.Project(context.Background(), frame, "BW", []int{2026}); err == nil {
		t.Fatalf("expected fatal error when the source year cannot be classified")
	}
}

func TestProjectRejectsUnknownRegion(t *testing.T) {
	p := New(&fakeSource{}, testLogger())
	frame := sourceFrame(t)

	if _, err := p.Project(context.Background(), frame, "QQ", []int{2026}); !errors.Is(err, holiday.ErrUnknownRegion) {
		t.Fatalf("expected ErrUnknownRegion, got %v", err)
	}
}
