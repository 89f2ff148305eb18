// v1
// internal/projector/projector.go

// Package projector drives the full pipeline: classify the source year,
// then for every requested target year classify, match and assemble. Target
// years are independent and run in parallel over the shared read-only
// source data.
package projector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/timeisseler/ferienplanung/internal/calendar"
	"github.com/timeisseler/ferienplanung/internal/holiday"
	"github.com/timeisseler/ferienplanung/internal/matcher"
	"github.com/timeisseler/ferienplanung/internal/metrics"
	"github.com/timeisseler/ferienplanung/internal/profile"
)

// YearProjection is the isolated result slot of one target year. A lookup
// failure for that year fills Err and leaves the other years untouched.
type YearProjection struct {
	Year    int
	Profile *profile.Projected
	Matches []matcher.Result
	Err     error
}

// Projector projects framed source profiles onto target years.
type Projector struct {
	src    holiday.Source
	logger *slog.Logger
}

// New builds a projector over the given holiday source. The source should
// already be wrapped with retry and caching.
func New(src holiday.Source, logger *slog.Logger) *Projector {
	return &Projector{src: src, logger: logger}
}

// Project runs the pipeline for every requested target year. Failing to
// classify the source year is fatal for the whole run; a failure for one
// target year is recorded in its slot only. The returned slice preserves the
// order of years.
func (p *Projector) Project(ctx context.Context, frame *profile.Frame, region string, years []int) ([]YearProjection, error) {
	region, err := holiday.ValidateRegion(region)
	if err != nil {
		return nil, err
	}

	sourceCal, err := p.classify(ctx, region, frame.Year)
	if err != nil {
		return nil, fmt.Errorf("classify source year %d: %w", frame.Year, err)
	}
	p.logger.Info("source_year_classified",
		slog.Int("year", frame.Year),
		slog.String("region", region),
		slog.Int("full_days", frame.FullDays()),
		slog.Int("partial_days", frame.PartialDays()))

	out := make([]YearProjection, len(years))
	g, gctx := errgroup.WithContext(ctx)
	for i, year := range years {
		out[i] = YearProjection{Year: year}
		slot := &out[i]
		g.Go(func() error {
			slot.Profile, slot.Matches, slot.Err = p.projectYear(gctx, frame, sourceCal, region, slot.Year)
			return nil
		})
	}
	// Goroutines report through their slots; the group only propagates
	// context cancellation.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Projector) projectYear(ctx context.Context, frame *profile.Frame, sourceCal *calendar.YearCalendar, region string, year int) (*profile.Projected, []matcher.Result, error) {
	started := time.Now()
	proj, matches, err := p.projectYearInner(ctx, frame, sourceCal, region, year)
	metrics.ObserveProjection(time.Since(started), err)
	if err != nil {
		p.logger.Error("projection_failed",
			slog.Int("target_year", year),
			slog.String("region", region),
			slog.Any("err", err))
		return nil, nil, err
	}
	p.logger.Info("projection_complete",
		slog.Int("target_year", year),
		slog.String("region", region),
		slog.Int("intervals", len(proj.Intervals)),
		slog.Duration("elapsed", time.Since(started)))
	return proj, matches, nil
}

func (p *Projector) projectYearInner(ctx context.Context, frame *profile.Frame, sourceCal *calendar.YearCalendar, region string, year int) (*profile.Projected, []matcher.Result, error) {
	targetCal, err := p.classify(ctx, region, year)
	if err != nil {
		return nil, nil, fmt.Errorf("classify target year %d: %w", year, err)
	}

	m := matcher.New(sourceCal, targetCal, frame.HasFullChunk)
	matches, err := m.Run()
	if err != nil {
		return nil, nil, err
	}
	for _, res := range matches {
		metrics.IncMatchKind(res.Kind.String())
	}

	proj, err := profile.Assemble(frame, year, matches)
	if err != nil {
		return nil, nil, err
	}
	return proj, matches, nil
}

// classify performs the two holiday lookups for a (region, year) pair and
// builds its calendar.
func (p *Projector) classify(ctx context.Context, region string, year int) (*calendar.YearCalendar, error) {
	holidays, err := p.src.PublicHolidays(ctx, region, year)
	metrics.IncHolidayLookup("public", err)
	if err != nil {
		return nil, err
	}
	periods, err := p.src.SchoolHolidays(ctx, region, year)
	metrics.IncHolidayLookup("school", err)
	if err != nil {
		return nil, err
	}
	return calendar.Classify(year, region, holidays, periods), nil
}
