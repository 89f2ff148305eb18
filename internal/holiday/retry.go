// v1
// internal/holiday/retry.go
package holiday

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Retrying wraps a Source with a bounded retry. Lookups are attempted up to
// Attempts times with a short pause in between; exhaustion surfaces
// ErrSourceUnavailable. Region validation errors are never retried.
type Retrying struct {
	src      Source
	attempts int
	pause    time.Duration
	logger   *slog.Logger
}

// NewRetrying builds the wrapper. Attempts below one are raised to the
// default of two.
func NewRetrying(src Source, attempts int, pause time.Duration, logger *slog.Logger) *Retrying {
	if attempts < 1 {
		attempts = 2
	}
	if pause <= 0 {
		pause = 500 * time.Millisecond
	}
	return &Retrying{src: src, attempts: attempts, pause: pause, logger: logger}
}

func (r *Retrying) PublicHolidays(ctx context.Context, region string, year int) ([]PublicHoliday, error) {
	var out []PublicHoliday
	err := r.do(ctx, "public_holidays", region, year, func(ctx context.Context) error {
		var err error
		out, err = r.src.PublicHolidays(ctx, region, year)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Retrying) SchoolHolidays(ctx context.Context, region string, year int) ([]SchoolPeriod, error) {
	var out []SchoolPeriod
	err := r.do(ctx, "school_holidays", region, year, func(ctx context.Context) error {
		var err error
		out, err = r.src.SchoolHolidays(ctx, region, year)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Retrying) do(ctx context.Context, op, region string, year int, call func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		lastErr = call(ctx)
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, ErrUnknownRegion) || ctx.Err() != nil {
			return lastErr
		}
		if attempt < r.attempts {
			r.logger.Warn("holiday_lookup_retry",
				slog.String("op", op),
				slog.String("region", region),
				slog.Int("year", year),
				slog.Int("attempt", attempt),
				slog.Any("err", lastErr))
			select {
			case <-time.After(r.pause):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return fmt.Errorf("%w: %s %s/%d after %d attempts: %v",
		ErrSourceUnavailable, op, region, year, r.attempts, lastErr)
}
