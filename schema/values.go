package schema

import (
	"fmt"
	"time"
)

// Pair is the value form of a Tuple schema.
type Pair struct {
	First  interface{}
	Second interface{}
}

// Variant is the value form of an Enumeration schema: the selected case
// name together with its payload.
type Variant struct {
	Case  string
	Value interface{}
}

// Year is a calendar year, proleptic Gregorian.
type Year int

// ZoneOffset is a fixed offset from UTC in total seconds east.
type ZoneOffset int

// MonthDay is a month-day combination without a year.
type MonthDay struct {
	Month time.Month
	Day   int
}

// YearMonth is a year-month combination without a day.
type YearMonth struct {
	Year  int
	Month time.Month
}

// Period is a date-based amount of years, months and days. Components
// may be negative independently.
type Period struct {
	Years  int
	Months int
	Days   int
}

// Location returns the offset as a fixed *time.Location.
func (z ZoneOffset) Location() *time.Location {
	return time.FixedZone(z.String(), int(z))
}

func (z ZoneOffset) String() string {
	if z == 0 {
		return "Z"
	}
	sign := "+"
	s := int(z)
	if s < 0 {
		sign = "-"
		s = -s
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, s/3600, (s/60)%60, s%60)
}

func (m MonthDay) String() string {
	return fmt.Sprintf("--%02d-%02d", int(m.Month), m.Day)
}

func (y YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", y.Year, int(y.Month))
}

func (p Period) String() string {
	return fmt.Sprintf("P%dY%dM%dD", p.Years, p.Months, p.Days)
}
