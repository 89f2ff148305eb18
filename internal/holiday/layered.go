// v1
// internal/holiday/layered.go
package holiday

import (
	"context"
	"log/slog"
)

// Layered consults the primary source first and falls back to the secondary
// when the primary fails or returns nothing for the year, which is the
// normal case for far-future years the public APIs do not carry yet.
type Layered struct {
	primary  Source
	fallback Source
	logger   *slog.Logger
}

// NewLayered wires a primary source with a fallback. A nil fallback makes
// primary failures surface directly.
func NewLayered(primary, fallback Source, logger *slog.Logger) *Layered {
	return &Layered{primary: primary, fallback: fallback, logger: logger}
}

func (l *Layered) PublicHolidays(ctx context.Context, region string, year int) ([]PublicHoliday, error) {
	hs, err := l.primary.PublicHolidays(ctx, region, year)
	if err == nil && len(hs) > 0 {
		return hs, nil
	}
	if l.fallback == nil {
		if err == nil {
			return hs, nil
		}
		return nil, err
	}
	if err != nil {
		l.logger.Warn("public_holidays_fallback",
			slog.String("region", region),
			slog.Int("year", year),
			slog.Any("err", err))
	}
	return l.fallback.PublicHolidays(ctx, region, year)
}

func (l *Layered) SchoolHolidays(ctx context.Context, region string, year int) ([]SchoolPeriod, error) {
	ps, err := l.primary.SchoolHolidays(ctx, region, year)
	if err == nil && len(ps) > 0 {
		return ps, nil
	}
	if l.fallback == nil {
		if err == nil {
			return ps, nil
		}
		return nil, err
	}
	if err != nil {
		l.logger.Warn("school_holidays_fallback",
			slog.String("region", region),
			slog.Int("year", year),
			slog.Any("err", err))
	}
	return l.fallback.SchoolHolidays(ctx, region, year)
}
