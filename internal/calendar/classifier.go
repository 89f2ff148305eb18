// v1
// internal/calendar/classifier.go

// Package calendar classifies every date of a (region, year) pair into its
// day category and indexes the result for the matcher: holidays by name,
// school periods by base name, weekend days by (ISO week, weekday).
package calendar

import (
	"sort"

	"github.com/timeisseler/ferienplanung/internal/daytype"
	"github.com/timeisseler/ferienplanung/internal/holiday"
)

// YearCalendar is the classified calendar of one (region, year) pair. It is
// built once and read-only afterwards, so concurrent target-year projections
// can share the source-year instance freely.
type YearCalendar struct {
	Year   int
	Region string

	meta map[daytype.Date]daytype.Meta

	holidaysByName map[string][]daytype.Date
	periodsByBase  map[string]mergedPeriod
	weekendIndex   map[weekKey][]daytype.Date
}

type weekKey struct {
	isoWeek   int
	weekdayIx int
}

type mergedPeriod struct {
	name  string
	start daytype.Date
	end   daytype.Date
}

// Classify builds the full-year calendar. Every date of the year, including
// a leap day, receives exactly one category under the precedence
// public holiday > weekend > school holiday > ordinary. Classification is a
// pure function of its inputs: the same holiday data always yields the same
// calendar.
func Classify(year int, region string, holidays []holiday.PublicHoliday, periods []holiday.SchoolPeriod) *YearCalendar {
	cal := &YearCalendar{
		Year:           year,
		Region:         region,
		meta:           make(map[daytype.Date]daytype.Meta, daytype.DaysInYear(year)),
		holidaysByName: make(map[string][]daytype.Date),
		periodsByBase:  make(map[string]mergedPeriod),
		weekendIndex:   make(map[weekKey][]daytype.Date),
	}

	holidayByDate := make(map[daytype.Date]string, len(holidays))
	for _, h := range holidays {
		if h.Date.Year != year {
			continue
		}
		if _, taken := holidayByDate[h.Date]; taken {
			// Two holidays on one date: the lexicographically smaller name
			// wins so reruns stay byte-identical.
			if existing := holidayByDate[h.Date]; h.Name >= existing {
				continue
			}
		}
		holidayByDate[h.Date] = h.Name
	}
	for d, name := range holidayByDate {
		cal.holidaysByName[name] = append(cal.holidaysByName[name], d)
	}
	for name := range cal.holidaysByName {
		dates := cal.holidaysByName[name]
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
		cal.holidaysByName[name] = dates
	}

	merged := mergePeriods(year, periods)
	for _, p := range merged {
		base := holiday.PeriodBaseName(p.name)
		if existing, ok := cal.periodsByBase[base]; ok {
			// Same base name appearing twice after merging (December tail
			// and January head of a wrapping break): keep the earlier window
			// as the canonical one for offset matching.
			if existing.start.Before(p.start) {
				continue
			}
		}
		cal.periodsByBase[base] = p
	}

	first := daytype.FirstOfYear(year)
	days := daytype.DaysInYear(year)
	for i := 0; i < days; i++ {
		d := first.AddDays(i)
		cat := categorize(d, holidayByDate, merged)
		m := daytype.MetaFor(d, cat)
		cal.meta[d] = m
		if cat.Kind == daytype.Weekend {
			key := weekKey{isoWeek: m.ISOWeek, weekdayIx: m.WeekdayIx}
			cal.weekendIndex[key] = append(cal.weekendIndex[key], d)
		}
	}
	return cal
}

// categorize applies the precedence order. First match wins.
func categorize(d daytype.Date, holidayByDate map[daytype.Date]string, periods []mergedPeriod) daytype.Category {
	if name, ok := holidayByDate[d]; ok {
		return daytype.PublicHolidayDay(name)
	}
	if d.IsWeekend() {
		return daytype.WeekendDay()
	}
	for _, p := range periods {
		if !d.Before(p.start) && !d.After(p.end) {
			return daytype.SchoolHolidayDay(p.name, p.start, p.end)
		}
	}
	return daytype.OrdinaryDay
}

// mergePeriods clips school periods to the year and merges overlapping or
// adjacent ranges sharing a name, as delivered by sources that split a
// wrapping break into two rows. Ranges are never invented, only joined.
func mergePeriods(year int, periods []holiday.SchoolPeriod) []mergedPeriod {
	clipped := make([]mergedPeriod, 0, len(periods))
	yearStart := daytype.FirstOfYear(year)
	yearEnd := daytype.LastOfYear(year)
	for _, p := range periods {
		start, end := p.Start, p.End
		if end.Before(yearStart) || start.After(yearEnd) {
			continue
		}
		if start.Before(yearStart) {
			start = yearStart
		}
		if end.After(yearEnd) {
			end = yearEnd
		}
		clipped = append(clipped, mergedPeriod{name: p.Name, start: start, end: end})
	}
	sort.Slice(clipped, func(i, j int) bool {
		if clipped[i].start != clipped[j].start {
			return clipped[i].start.Before(clipped[j].start)
		}
		return clipped[i].name < clipped[j].name
	})

	out := make([]mergedPeriod, 0, len(clipped))
	for _, p := range clipped {
		if n := len(out); n > 0 {
			last := &out[n-1]
			if last.name == p.name && !p.start.After(last.end.AddDays(1)) {
				if p.end.After(last.end) {
					last.end = p.end
				}
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// Meta returns the classified metadata of a date belonging to the year.
func (c *YearCalendar) Meta(d daytype.Date) (daytype.Meta, bool) {
	m, ok := c.meta[d]
	return m, ok
}

// Dates returns every date of the year in ascending order.
func (c *YearCalendar) Dates() []daytype.Date {
	first := daytype.FirstOfYear(c.Year)
	days := daytype.DaysInYear(c.Year)
	out := make([]daytype.Date, days)
	for i := range out {
		out[i] = first.AddDays(i)
	}
	return out
}

// HolidayDates returns the dates carrying the named public holiday, sorted
// ascending. Usually a single date.
func (c *YearCalendar) HolidayDates(name string) []daytype.Date {
	return c.holidaysByName[name]
}

// Period looks up the merged school period with the given base name.
func (c *YearCalendar) Period(baseName string) (name string, start, end daytype.Date, ok bool) {
	p, ok := c.periodsByBase[baseName]
	if !ok {
		return "", daytype.Date{}, daytype.Date{}, false
	}
	return p.name, p.start, p.end, true
}

// WeekendDates returns the weekend dates indexed under (ISO week, weekday),
// sorted ascending. Weeks at year boundaries can legitimately carry the same
// (week, weekday) twice.
func (c *YearCalendar) WeekendDates(isoWeek, weekdayIx int) []daytype.Date {
	return c.weekendIndex[weekKey{isoWeek: isoWeek, weekdayIx: weekdayIx}]
}
