package event

import (
	"github.com/aetherialcal/aethercal/internal/calendar"
)

const (
	// maxUnboundedOccurrences caps a series with no end date.
	maxUnboundedOccurrences = 20
	// maxIterations is the hard safety ceiling regardless of end date.
	maxIterations = 100
)

// Rule describes how a recurring series steps forward from its seed.
type Rule struct {
	Type     string
	Interval int
	// End bounds the series inclusively; nil means unbounded (capped at
	// maxUnboundedOccurrences).
	End *calendar.Date
}

// ExpandRecurrence generates the occurrence dates strictly after seed,
// stepping on the fictional calendar itself: daily and weekly advance the
// linear day number, monthly and yearly advance the triple with the day
// clamped to the target month's length. Every occurrence is computed from the
// seed, never from the previous occurrence, so a clamp in a short month does
// not stick: a series on the 44th returns to the 44th in the next month long
// enough to hold it. An invalid seed yields no occurrences.
func ExpandRecurrence(def *calendar.Definition, seed calendar.Date, rule Rule) []calendar.Date {
	interval := rule.Interval
	if interval < 1 {
		interval = 1
	}
	if def.CheckDate(seed) != nil {
		return nil
	}

	occurrences := make([]calendar.Date, 0)

	for iteration := 1; iteration <= maxIterations; iteration++ {
		next, ok := occurrence(def, seed, rule.Type, interval*iteration)
		if !ok {
			break
		}

		if rule.End != nil && next.Compare(*rule.End) > 0 {
			break
		}

		occurrences = append(occurrences, next)

		if rule.End == nil && len(occurrences) >= maxUnboundedOccurrences {
			break
		}
	}

	return occurrences
}

// occurrence computes the date that sits offset steps past the seed, where a
// step is a day, week, month or year depending on the recurrence type.
func occurrence(def *calendar.Definition, seed calendar.Date, recurringType string, offset int) (calendar.Date, bool) {
	switch recurringType {
	case RecurDaily:
		return addLinearDays(def, seed, offset)
	case RecurWeekly:
		return addLinearDays(def, seed, 7*offset)
	case RecurMonthly:
		return addMonths(def, seed, offset)
	case RecurYearly:
		return clampDay(def, calendar.Date{Year: seed.Year + offset, Month: seed.Month, Day: seed.Day})
	default:
		return calendar.Date{}, false
	}
}

func addLinearDays(def *calendar.Definition, seed calendar.Date, days int) (calendar.Date, bool) {
	linear, err := def.ToLinearDay(seed)
	if err != nil {
		return calendar.Date{}, false
	}
	next, err := def.FromLinearDay(linear + days)
	if err != nil {
		return calendar.Date{}, false
	}
	return next, true
}

func addMonths(def *calendar.Definition, seed calendar.Date, months int) (calendar.Date, bool) {
	monthCount := len(def.Months)
	total := seed.Month + months
	next := calendar.Date{
		Year:  seed.Year + total/monthCount,
		Month: total % monthCount,
		Day:   seed.Day,
	}
	return clampDay(def, next)
}

// clampDay pins the day to the target month's length, so "the 44th of every
// month" lands on the last day of any shorter month instead of spilling over.
func clampDay(def *calendar.Definition, d calendar.Date) (calendar.Date, bool) {
	days, err := def.DaysInMonth(d.Year, d.Month)
	if err != nil {
		return calendar.Date{}, false
	}
	if d.Day > days {
		d.Day = days
	}
	return d, true
}
