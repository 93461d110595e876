package core

import "time"

// MonthKey identifies a calendar month (year + month), the grouping period
// for every derived view. It orders chronologically, not lexically.
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthOf buckets a date into its month.
func MonthOf(d Date) MonthKey {
	return MonthKey{Year: d.Time.Year(), Month: d.Time.Month()}
}

// Before reports whether k is chronologically earlier than o.
func (k MonthKey) Before(o MonthKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Month < o.Month
}

// Contains reports whether the date falls inside the month.
func (k MonthKey) Contains(d Date) bool {
	return d.Time.Year() == k.Year && d.Time.Month() == k.Month
}

// Start returns the first instant of the month, UTC.
func (k MonthKey) Start() time.Time {
	return time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.UTC)
}

// String renders the sortable "2006-01" form.
func (k MonthKey) String() string {
	return k.Start().Format("2006-01")
}

// Label renders the human form used in report titles and filenames,
// e.g. "January 2024".
func (k MonthKey) Label() string {
	return k.Month.String() + " " + k.Start().Format("2006")
}

// Valid reports whether the key denotes a real month.
func (k MonthKey) Valid() bool {
	return k.Year > 0 && k.Month >= time.January && k.Month <= time.December
}
