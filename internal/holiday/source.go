// v1
// internal/holiday/source.go
package holiday

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/timeisseler/ferienplanung/internal/daytype"
)

// ErrSourceUnavailable signals that holiday data could not be retrieved for
// a (region, year) pair after the bounded retries were exhausted. Callers
// treat it as fatal for that year's projection only.
var ErrSourceUnavailable = errors.New("holiday source unavailable")

// ErrUnknownRegion signals a federal-state code outside the supported set.
var ErrUnknownRegion = errors.New("unknown federal state")

// PublicHoliday is one public holiday delivered by a source.
type PublicHoliday struct {
	Date daytype.Date `json:"date"`
	Name string       `json:"name"`
}

// SchoolPeriod is one named school-holiday window delivered by a source.
// Start and End are inclusive.
type SchoolPeriod struct {
	Name  string       `json:"name"`
	Start daytype.Date `json:"start"`
	End   daytype.Date `json:"end"`
}

// Source provides the calendar data the classifier consumes. Implementations
// must treat future years as potentially incomplete or unavailable; the
// matcher's fallback rules absorb gaps.
type Source interface {
	PublicHolidays(ctx context.Context, region string, year int) ([]PublicHoliday, error)
	SchoolHolidays(ctx context.Context, region string, year int) ([]SchoolPeriod, error)
}

// federalStates maps the state codes accepted as region identifiers to the
// state names used when normalizing school-period names.
var federalStates = map[string]string{
	"BW": "baden-württemberg",
	"BY": "bayern",
	"BE": "berlin",
	"BB": "brandenburg",
	"HB": "bremen",
	"HH": "hamburg",
	"HE": "hessen",
	"MV": "mecklenburg-vorpommern",
	"NI": "niedersachsen",
	"NW": "nordrhein-westfalen",
	"RP": "rheinland-pfalz",
	"SL": "saarland",
	"SN": "sachsen",
	"ST": "sachsen-anhalt",
	"SH": "schleswig-holstein",
	"TH": "thüringen",
}

// States returns the supported federal-state codes in sorted order.
func States() []string {
	out := make([]string, 0, len(federalStates))
	for code := range federalStates {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// StateName resolves a state code to its lowercase full name.
func StateName(code string) (string, bool) {
	name, ok := federalStates[strings.ToUpper(strings.TrimSpace(code))]
	return name, ok
}

// ValidateRegion canonicalizes a state code, rejecting unknown ones.
func ValidateRegion(region string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(region))
	if _, ok := federalStates[code]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}
	return code, nil
}

// NormalizePeriodName brings a school-period name into the canonical
// "<name> <state> <year>" lowercase form the rest of the pipeline expects,
// matching what the upstream APIs deliver inconsistently.
func NormalizePeriodName(name, region string, year int) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		lower = "schulferien"
	}
	state, ok := StateName(region)
	if !ok {
		state = strings.ToLower(region)
	}
	yearToken := fmt.Sprintf("%d", year)
	hasState := strings.Contains(lower, state)
	hasYear := strings.Contains(lower, yearToken)
	switch {
	case !hasState && !hasYear:
		return fmt.Sprintf("%s %s %s", lower, state, yearToken)
	case !hasState:
		base := strings.TrimSpace(strings.ReplaceAll(lower, yearToken, ""))
		return fmt.Sprintf("%s %s %s", base, state, yearToken)
	case !hasYear:
		return fmt.Sprintf("%s %s", lower, yearToken)
	default:
		return lower
	}
}

// PeriodBaseName strips state and year qualifiers from a normalized period
// name so that periods can be matched across years ("sommerferien bayern
// 2024" and "sommerferien bayern 2026" share the base "sommerferien").
func PeriodBaseName(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if isYearToken(f) {
			continue
		}
		if isStateToken(f) {
			continue
		}
		kept = append(kept, f)
	}
	if len(kept) == 0 {
		return strings.ToLower(strings.TrimSpace(name))
	}
	return strings.Join(kept, " ")
}

func isYearToken(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isStateToken(s string) bool {
	for _, name := range federalStates {
		if s == name {
			return true
		}
	}
	return false
}
