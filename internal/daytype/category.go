// v1
// internal/daytype/category.go
package daytype

import "fmt"

// Kind enumerates the closed set of day categories. The numeric order
// doubles as the precedence order applied when a date matches multiple raw
// signals: a public holiday outranks a weekend, a weekend outranks a school
// holiday, and everything outranks an ordinary day.
type Kind int

const (
	Ordinary Kind = iota
	SchoolHoliday
	Weekend
	PublicHoliday
)

func (k Kind) String() string {
	switch k {
	case PublicHoliday:
		return "public_holiday"
	case Weekend:
		return "weekend"
	case SchoolHoliday:
		return "school_holiday"
	default:
		return "ordinary"
	}
}

// Category is the tagged variant classifying a single date. Exactly the
// fields belonging to the kind are populated; the rest stay zero.
type Category struct {
	Kind Kind

	// HolidayName is set for PublicHoliday.
	HolidayName string

	// PeriodName, PeriodStart and PeriodEnd are set for SchoolHoliday and
	// describe the named period (after same-name merging) the date falls in.
	PeriodName  string
	PeriodStart Date
	PeriodEnd   Date
}

// OrdinaryDay is the zero category.
var OrdinaryDay = Category{Kind: Ordinary}

// WeekendDay builds a weekend category.
func WeekendDay() Category {
	return Category{Kind: Weekend}
}

// PublicHolidayDay builds a public-holiday category carrying the holiday
// name as delivered by the holiday source.
func PublicHolidayDay(name string) Category {
	return Category{Kind: PublicHoliday, HolidayName: name}
}

// SchoolHolidayDay builds a school-holiday category for the named period.
func SchoolHolidayDay(name string, start, end Date) Category {
	return Category{Kind: SchoolHoliday, PeriodName: name, PeriodStart: start, PeriodEnd: end}
}

func (c Category) String() string {
	switch c.Kind {
	case PublicHoliday:
		return fmt.Sprintf("public_holiday(%s)", c.HolidayName)
	case SchoolHoliday:
		return fmt.Sprintf("school_holiday(%s %s..%s)", c.PeriodName, c.PeriodStart, c.PeriodEnd)
	default:
		return c.Kind.String()
	}
}

// Meta bundles a date with its category and the week-position index used as
// the secondary alignment key by the matcher. It never overrides
// category-based matching.
type Meta struct {
	Date      Date
	Category  Category
	ISOWeek   int
	WeekdayIx int
	DayOfYear int
}

// MetaFor computes the pure week-position index for a date and attaches the
// given category.
func MetaFor(d Date, c Category) Meta {
	return Meta{
		Date:      d,
		Category:  c,
		ISOWeek:   d.ISOWeek(),
		WeekdayIx: d.Weekday(),
		DayOfYear: d.DayOfYear(),
	}
}
