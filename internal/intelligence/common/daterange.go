// Package common carries the helpers shared by the readiness and risk
// extractors: "M/D" date parsing and enumeration, section-scoped text
// excerpts, keyword matching, and the pipeline metrics contract.
package common

import (
	"fmt"
	"regexp"
	"strconv"
)

// MonthDay is a year-less calendar date in the note's "M/D" contract
// (no zero-padding, no year).
type MonthDay struct {
	Month int
	Day   int
}

// String renders the M/D form.
func (d MonthDay) String() string {
	return fmt.Sprintf("%d/%d", d.Month, d.Day)
}

// daysPerMonth is the fixed month-length table used for day enumeration.
// February is 29 regardless of year: the note carries no year, so the walk
// deliberately ignores leap arithmetic.
var daysPerMonth = [13]int{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

var (
	reAdmissionDate = regexp.MustCompile(`(?i)admission date[^0-9]*(\d+)\s*/\s*(\d+)`)
	reDischargeDate = regexp.MustCompile(`(?i)discharge date[^0-9]*(\d+)\s*/\s*(\d+)`)
)

// maxEnumeratedDays bounds day enumeration.  The month>12 rollover check
// already terminates well-formed walks; this guard additionally stops
// malformed inputs (discharge before admission, impossible day-of-month)
// from producing oversized ranges.
const maxEnumeratedDays = 366

// ParseStayRange extracts the admission and discharge dates from the raw
// note.  ok is false when either anchor is absent or unparsable; callers
// treat that as "no data available", not as an error.
func ParseStayRange(rawNote string) (admission, discharge MonthDay, ok bool) {
	a := reAdmissionDate.FindStringSubmatch(rawNote)
	d := reDischargeDate.FindStringSubmatch(rawNote)
	if a == nil || d == nil {
		return MonthDay{}, MonthDay{}, false
	}
	admission, okA := toMonthDay(a[1], a[2])
	discharge, okD := toMonthDay(d[1], d[2])
	if !okA || !okD {
		return MonthDay{}, MonthDay{}, false
	}
	return admission, discharge, true
}

func toMonthDay(monthStr, dayStr string) (MonthDay, bool) {
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return MonthDay{}, false
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 {
		return MonthDay{}, false
	}
	return MonthDay{Month: month, Day: day}, true
}

// EnumerateDays walks day-by-day from start to end inclusive, rolling the
// month over on overflow of the fixed month-length table.  The walk
// terminates when the end date is reached, when the month counter exceeds
// December, or at the maxEnumeratedDays bound, whichever comes first, so it
// can never loop forever on inconsistent input.
func EnumerateDays(start, end MonthDay) []string {
	out := []string{}
	month, day := start.Month, start.Day

	for i := 0; i < maxEnumeratedDays; i++ {
		if month > 12 {
			break
		}
		out = append(out, MonthDay{Month: month, Day: day}.String())
		if month == end.Month && day == end.Day {
			break
		}
		day++
		if day > daysPerMonth[month] {
			day = 1
			month++
		}
	}
	return out
}
