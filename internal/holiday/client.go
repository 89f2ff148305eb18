// v1
// internal/holiday/client.go
package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/timeisseler/ferienplanung/internal/daytype"
)

const (
	// DefaultPublicAPIBase serves nationwide public holidays with per-state
	// county annotations.
	DefaultPublicAPIBase = "https://date.nager.at"
	// DefaultSchoolAPIBase serves school-holiday windows per federal state.
	DefaultSchoolAPIBase = "https://ferien-api.de"
)

// APIClient fetches holiday data from the two public APIs. It implements
// Source and performs no caching or retrying itself; wrap it with Retrying
// and Cached.
type APIClient struct {
	publicBase string
	schoolBase string
	h          *http.Client
	logger     *slog.Logger
}

// NewAPIClient builds a client against the given base URLs. Empty bases
// fall back to the public endpoints.
func NewAPIClient(publicBase, schoolBase string, timeout time.Duration, logger *slog.Logger) *APIClient {
	if publicBase == "" {
		publicBase = DefaultPublicAPIBase
	}
	if schoolBase == "" {
		schoolBase = DefaultSchoolAPIBase
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &APIClient{
		publicBase: strings.TrimRight(publicBase, "/"),
		schoolBase: strings.TrimRight(schoolBase, "/"),
		h:          &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type nagerHoliday struct {
	Date      string   `json:"date"`
	LocalName string   `json:"localName"`
	Name      string   `json:"name"`
	Counties  []string `json:"counties"`
}

// PublicHolidays calls GET /api/v3/publicholidays/{year}/DE and keeps the
// holidays that are nationwide (empty counties) or listed for the region.
func (c *APIClient) PublicHolidays(ctx context.Context, region string, year int) ([]PublicHoliday, error) {
	code, err := ValidateRegion(region)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/v3/publicholidays/%d/DE", c.publicBase, year)
	var payload []nagerHoliday
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return nil, err
	}

	county := "DE-" + code
	out := make([]PublicHoliday, 0, len(payload))
	for _, h := range payload {
		if len(h.Counties) > 0 && !containsString(h.Counties, county) {
			continue
		}
		d, err := daytype.ParseDate(h.Date)
		if err != nil {
			c.logger.Warn("public_holiday_date_skipped", slog.String("date", h.Date), slog.Any("err", err))
			continue
		}
		name := h.LocalName
		if name == "" {
			name = h.Name
		}
		out = append(out, PublicHoliday{Date: d, Name: name})
	}
	sortPublicHolidays(out)
	return out, nil
}

type ferienPeriod struct {
	Name  string `json:"name"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// SchoolHolidays calls GET /api/v1/holidays/{state}/{year} and normalizes
// the period names to the canonical "<name> <state> <year>" form.
func (c *APIClient) SchoolHolidays(ctx context.Context, region string, year int) ([]SchoolPeriod, error) {
	code, err := ValidateRegion(region)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/v1/holidays/%s/%d", c.schoolBase, code, year)
	var payload []ferienPeriod
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return nil, err
	}

	out := make([]SchoolPeriod, 0, len(payload))
	for _, p := range payload {
		start, okStart := parseFlexibleDate(p.Start)
		end, okEnd := parseFlexibleDate(p.End)
		if !okStart || !okEnd {
			c.logger.Warn("school_period_skipped",
				slog.String("name", p.Name),
				slog.String("start", p.Start),
				slog.String("end", p.End))
			continue
		}
		if end.Before(start) {
			start, end = end, start
		}
		out = append(out, SchoolPeriod{
			Name:  NormalizePeriodName(p.Name, code, year),
			Start: start,
			End:   end,
		})
	}
	sortSchoolPeriods(out)
	return out, nil
}

func (c *APIClient) getJSON(ctx context.Context, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.h.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s returned %d: %s", ErrSourceUnavailable, url, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %s: decode: %v", ErrSourceUnavailable, url, err)
	}
	return nil
}

// parseFlexibleDate tolerates the date shapes the school API has shipped
// over time.
func parseFlexibleDate(s string) (daytype.Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return daytype.Date{}, false
	}
	formats := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return daytype.DateOf(t), true
		}
	}
	return daytype.Date{}, false
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func sortPublicHolidays(hs []PublicHoliday) {
	sort.Slice(hs, func(i, j int) bool {
		if hs[i].Date != hs[j].Date {
			return hs[i].Date.Before(hs[j].Date)
		}
		return hs[i].Name < hs[j].Name
	})
}

func sortSchoolPeriods(ps []SchoolPeriod) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Start != ps[j].Start {
			return ps[i].Start.Before(ps[j].Start)
		}
		return ps[i].Name < ps[j].Name
	})
}
