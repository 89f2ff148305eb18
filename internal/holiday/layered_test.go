// v1
// internal/holiday/layered_test.go
package holiday

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/timeisseler/ferienplanung/internal/daytype"
)

func TestLayeredPrefersPrimary(t *testing.T) {
	primary := &stubSource{holidays: []PublicHoliday{{Date: daytype.NewDate(2024, time.January, 1), Name: "Neujahr"}}}
	fallback := &stubSource{holidays: []PublicHoliday{{Name: "should-not-appear"}}}
	l := NewLayered(primary, fallback, discardLogger())

	hs, err := l.PublicHolidays(context.Background(), "BW", 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hs) != 1 || hs[0].Name != "Neujahr" {
		t.Fatalf("expected primary data, got %+v", hs)
	}
	if fallback.publicCalls != 0 {
		t.Fatalf("fallback must not be consulted when the primary delivers")
	}
}

func TestLayeredFallsBackOnError(t *testing.T) {
	primary := &stubSource{err: errors.New("boom"), alwaysFail: true}
	fallback := &stubSource{periods: []SchoolPeriod{{Name: "sommerferien bayern 2030"}}}
	l := NewLayered(primary, fallback, discardLogger())

	ps, err := l.SchoolHolidays(context.Background(), "BY", 2030)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ps) != 1 {
		t.Fatalf("expected fallback data, got %+v", ps)
	}
}

func TestLayeredFallsBackOnEmptyResult(t *testing.T) {
	// Far-future years typically return an empty list, not an error.
	primary := &stubSource{}
	fallback := &stubSource{holidays: []PublicHoliday{{Name: "Neujahr"}}}
	l := NewLayered(primary, fallback, discardLogger())

	hs, err := l.PublicHolidays(context.Background(), "BW", 2035)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hs) != 1 {
		t.Fatalf("expected fallback data for empty primary, got %+v", hs)
	}
}

func TestLayeredWithoutFallbackSurfacesError(t *testing.T) {
	primary := &stubSource{err: errors.New("boom"), alwaysFail: true}
	l := NewLayered(primary, nil, discardLogger())

	if _, err := l.PublicHolidays(context.Background(), "BW", 2024); err == nil {
		t.Fatalf("expected primary error to surface")
	}
}
