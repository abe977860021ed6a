package period

import (
	"time"
)

// PayrollGroup is one of the two alternating pay cohorts. Groups are offset
// by one week so processing load is staggered.
type PayrollGroup string

const (
	GroupA PayrollGroup = "A"
	GroupB PayrollGroup = "B"
)

const (
	// DateLayout is the wire format for all pay dates.
	DateLayout = "2006-01-02"

	payDateToPeriodEndDays = 9
	periodLengthDays       = 14
)

// anchorDate pays Group A. All group derivation keys off this date; call
// sites must never hardcode their own anchor.
var anchorDate = time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC)

// Period is the derived pay period for a chosen pay date. A zero Period
// (Valid == false) means the input did not parse; callers must not load
// employees or save drafts against it.
type Period struct {
	Group   PayrollGroup
	PayDate time.Time
	Start   time.Time
	End     time.Time
	Valid   bool
}

// Calculate derives {group, start, end} from a pay date. Pure and total.
// All arithmetic happens on naive calendar dates pinned to UTC midnight, so
// the result is identical regardless of the caller's timezone.
func Calculate(payDate time.Time) Period {
	d := normalize(payDate)

	end := d.AddDate(0, 0, -payDateToPeriodEndDays)
	start := end.AddDate(0, 0, -(periodLengthDays - 1))

	return Period{
		Group:   groupFor(d),
		PayDate: d,
		Start:   start,
		End:     end,
		Valid:   true,
	}
}

// Parse derives the period from a YYYY-MM-DD string. A malformed input
// returns the invalid zero Period alongside the parse error.
func Parse(payDate string) (Period, error) {
	t, err := time.Parse(DateLayout, payDate)
	if err != nil {
		return Period{}, err
	}
	return Calculate(t), nil
}

// groupFor alternates the cohort every 7 days relative to the anchor.
// Floor division keeps the alternation correct for dates before the anchor.
func groupFor(payDate time.Time) PayrollGroup {
	days := int(payDate.Sub(anchorDate).Hours() / 24)
	weeks := floorDiv(days, 7)
	if ((weeks % 2) + 2) % 2 == 0 {
		return GroupA
	}
	return GroupB
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
