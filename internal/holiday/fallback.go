// v1
// internal/holiday/fallback.go
package holiday

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/timeisseler/ferienplanung/internal/daytype"
)

// FallbackData describes the computed holiday calendar used when the public
// APIs have nothing for a requested year (typically far-future years). The
// built-in defaults cover the common German holidays; a YAML file can
// replace them for deployments with better regional knowledge.
type FallbackData struct {
	// FixedHolidays recur on the same month/day every year.
	FixedHolidays []FixedHoliday `yaml:"public_holidays"`
	// EasterHolidays float relative to Easter Sunday.
	EasterHolidays []EasterHoliday `yaml:"easter_holidays"`
	// SchoolPeriods are approximate recurring windows. A period limited to
	// certain states lists their codes; an empty list applies everywhere.
	SchoolPeriods []PeriodTemplate `yaml:"school_periods"`
}

// FixedHoliday is a holiday on a fixed calendar day.
type FixedHoliday struct {
	Name  string     `yaml:"name"`
	Month time.Month `yaml:"month"`
	Day   int        `yaml:"day"`
}

// EasterHoliday is a holiday at a fixed day offset from Easter Sunday.
type EasterHoliday struct {
	Name   string `yaml:"name"`
	Offset int    `yaml:"offset"`
}

// PeriodTemplate is a recurring school-holiday window. EndNextYear marks
// windows that wrap into January of the following year.
type PeriodTemplate struct {
	Name        string     `yaml:"name"`
	StartMonth  time.Month `yaml:"start_month"`
	StartDay    int        `yaml:"start_day"`
	EndMonth    time.Month `yaml:"end_month"`
	EndDay      int        `yaml:"end_day"`
	EndNextYear bool       `yaml:"end_next_year"`
	States      []string   `yaml:"states"`
}

// DefaultFallbackData returns the built-in calendar: the nationwide fixed
// holidays, the Easter-derived ones, and typical school windows with the
// later summer break of the southern states.
func DefaultFallbackData() FallbackData {
	return FallbackData{
		FixedHolidays: []FixedHoliday{
			{Name: "Neujahr", Month: time.January, Day: 1},
			{Name: "Tag der Arbeit", Month: time.May, Day: 1},
			{Name: "Tag der Deutschen Einheit", Month: time.October, Day: 3},
			{Name: "Weihnachten", Month: time.December, Day: 25},
			{Name: "2. Weihnachtstag", Month: time.December, Day: 26},
		},
		EasterHolidays: []EasterHoliday{
			{Name: "Karfreitag", Offset: -2},
			{Name: "Ostersonntag", Offset: 0},
			{Name: "Ostermontag", Offset: 1},
			{Name: "Christi Himmelfahrt", Offset: 39},
			{Name: "Pfingstmontag", Offset: 50},
		},
		SchoolPeriods: []PeriodTemplate{
			{Name: "winterferien", StartMonth: time.February, StartDay: 10, EndMonth: time.February, EndDay: 24},
			{Name: "sommerferien", StartMonth: time.July, StartDay: 25, EndMonth: time.September, EndDay: 7, States: []string{"BY", "BW"}},
			{Name: "sommerferien", StartMonth: time.July, StartDay: 1, EndMonth: time.August, EndDay: 15,
				States: []string{"BE", "BB", "HB", "HH", "HE", "MV", "NI", "NW", "RP", "SL", "SN", "ST", "SH", "TH"}},
			{Name: "herbstferien", StartMonth: time.October, StartDay: 14, EndMonth: time.October, EndDay: 25},
			{Name: "weihnachtsferien", StartMonth: time.December, StartDay: 23, EndMonth: time.January, EndDay: 6, EndNextYear: true},
		},
	}
}

// LoadFallbackData reads a FallbackData YAML file.
func LoadFallbackData(path string) (FallbackData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return FallbackData{}, fmt.Errorf("read fallback data: %w", err)
	}
	var data FallbackData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return FallbackData{}, fmt.Errorf("parse fallback data %s: %w", path, err)
	}
	return data, nil
}

// FallbackSource serves the computed calendar. It never fails for a valid
// region, which keeps far-future projections possible when the APIs have no
// data yet.
type FallbackSource struct {
	data FallbackData
}

// NewFallbackSource builds a source over the given data.
func NewFallbackSource(data FallbackData) *FallbackSource {
	return &FallbackSource{data: data}
}

// PublicHolidays computes the fixed and Easter-derived holidays of a year.
func (f *FallbackSource) PublicHolidays(_ context.Context, region string, year int) ([]PublicHoliday, error) {
	if _, err := ValidateRegion(region); err != nil {
		return nil, err
	}
	out := make([]PublicHoliday, 0, len(f.data.FixedHolidays)+len(f.data.EasterHolidays))
	for _, h := range f.data.FixedHolidays {
		out = append(out, PublicHoliday{Date: daytype.NewDate(year, h.Month, h.Day), Name: h.Name})
	}
	easter := EasterSunday(year)
	for _, h := range f.data.EasterHolidays {
		out = append(out, PublicHoliday{Date: easter.AddDays(h.Offset), Name: h.Name})
	}
	sortPublicHolidays(out)
	return out, nil
}

// SchoolHolidays instantiates the period templates for a year. Windows
// wrapping into January are emitted twice so that both the December tail and
// the January head of a year are covered, mirroring how the upstream API
// reports Weihnachtsferien.
func (f *FallbackSource) SchoolHolidays(_ context.Context, region string, year int) ([]SchoolPeriod, error) {
	code, err := ValidateRegion(region)
	if err != nil {
		return nil, err
	}
	var out []SchoolPeriod
	for _, tpl := range f.data.SchoolPeriods {
		if len(tpl.States) > 0 && !containsString(tpl.States, code) {
			continue
		}
		name := NormalizePeriodName(tpl.Name, code, year)
		if tpl.EndNextYear {
			out = append(out,
				SchoolPeriod{Name: name, Start: daytype.NewDate(year, tpl.StartMonth, tpl.StartDay), End: daytype.LastOfYear(year)},
				SchoolPeriod{Name: name, Start: daytype.FirstOfYear(year), End: daytype.NewDate(year, tpl.EndMonth, tpl.EndDay)},
			)
			continue
		}
		out = append(out, SchoolPeriod{
			Name:  name,
			Start: daytype.NewDate(year, tpl.StartMonth, tpl.StartDay),
			End:   daytype.NewDate(year, tpl.EndMonth, tpl.EndDay),
		})
	}
	sortSchoolPeriods(out)
	return out, nil
}

// EasterSunday computes Easter Sunday with Gauss's algorithm.
func EasterSunday(year int) daytype.Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return daytype.NewDate(year, time.Month(month), day)
}
