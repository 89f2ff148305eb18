// v0
// internal/holiday/stub_test.go
package holiday

import (
	"context"
	"io"
	"log/slog"
)

// stubSource scripts per-call outcomes and counts invocations. The first
// failRemaining calls across both methods fail with err; when alwaysFail is
// set every call fails.
type stubSource struct {
	holidays      []PublicHoliday
	periods       []SchoolPeriod
	err           error
	failRemaining int
	alwaysFail    bool
	publicCalls   int
	schoolCalls   int
}

func (s *stubSource) fail() bool {
	if s.alwaysFail {
		return true
	}
	if s.failRemaining > 0 {
		s.failRemaining--
		return true
	}
	return false
}

func (s *stubSource) PublicHolidays(_ context.Context, _ string, _ int) ([]PublicHoliday, error) {
	s.publicCalls++
	if s.fail() {
		return nil, s.err
	}
	return s.holidays, nil
}

func (s *stubSource) SchoolHolidays(_ context.Context, _ string, _ int) ([]SchoolPeriod, error) {
	s.schoolCalls++
	if s.fail() {
		return nil, s.err
	}
	return s.periods, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
