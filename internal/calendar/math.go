package calendar

// MoonPhase is the phase of one moon on one day. Phase counts days into the
// cycle; renderers derive the illumination fraction as Phase/Cycle.
type MoonPhase struct {
	Name  string `json:"name"`
	Phase int    `json:"phase"`
	Cycle int    `json:"cycle"`
}

// DaysInMonth returns the length of the given month.
//
// The year parameter is part of the contract so that definitions with
// per-year variation remain expressible; the Aetherial calendar ignores it.
func (def *Definition) DaysInMonth(year, month int) (int, error) {
	if month < 0 || month >= len(def.Months) {
		return 0, ErrMonthOutOfRange
	}
	return def.Months[month].Days, nil
}

// YearLength returns the total number of days in the given year.
func (def *Definition) YearLength(year int) int {
	total := 0
	for _, month := range def.Months {
		total += month.Days
	}
	return total
}

// ToLinearDay converts a date to its linear day number: the count of days
// since year 0, month 0, day 1. It rejects dates that are out of range for
// the definition rather than wrapping them.
func (def *Definition) ToLinearDay(d Date) (int, error) {
	if err := def.CheckDate(d); err != nil {
		return 0, err
	}

	total := 0
	for year := 0; year < d.Year; year++ {
		total += def.YearLength(year)
	}
	for month := 0; month < d.Month; month++ {
		total += def.Months[month].Days
	}
	return total + d.Day - 1, nil
}

// FromLinearDay converts a linear day number back into a date.
// It is the exact inverse of [Definition.ToLinearDay] for valid dates.
func (def *Definition) FromLinearDay(linear int) (Date, error) {
	if linear < 0 {
		return Date{}, ErrYearOutOfRange
	}

	year := 0
	remaining := linear
	for remaining >= def.YearLength(year) {
		remaining -= def.YearLength(year)
		year++
	}

	month := 0
	for remaining >= def.Months[month].Days {
		remaining -= def.Months[month].Days
		month++
	}

	return Date{Year: year, Month: month, Day: remaining + 1}, nil
}

// WeekdayIndex returns the weekday of a date as an index into Weekdays.
func (def *Definition) WeekdayIndex(d Date) (int, error) {
	linear, err := def.ToLinearDay(d)
	if err != nil {
		return 0, err
	}
	return (linear + def.FirstDay) % def.WeekLen, nil
}

// MoonPhases returns the phase of every moon on the given date.
// Phases always fall in [0, cycle).
func (def *Definition) MoonPhases(d Date) ([]MoonPhase, error) {
	linear, err := def.ToLinearDay(d)
	if err != nil {
		return nil, err
	}

	phases := make([]MoonPhase, 0, len(def.Moons))
	for _, moon := range def.Moons {
		phases = append(phases, MoonPhase{
			Name:  moon.Name,
			Phase: (linear + moon.Shift) % moon.Cycle,
			Cycle: moon.Cycle,
		})
	}
	return phases, nil
}

// WeekGrid lays out a month as week rows of exactly WeekLen cells.
// Real days appear as their 1-based number; leading and trailing blanks are 0.
func (def *Definition) WeekGrid(year, month int) ([][]int, error) {
	days, err := def.DaysInMonth(year, month)
	if err != nil {
		return nil, err
	}
	firstWeekday, err := def.WeekdayIndex(Date{Year: year, Month: month, Day: 1})
	if err != nil {
		return nil, err
	}

	weeks := make([][]int, 0, days/def.WeekLen+2)
	currentWeek := make([]int, firstWeekday, def.WeekLen)

	for day := 1; day <= days; day++ {
		currentWeek = append(currentWeek, day)
		if len(currentWeek) == def.WeekLen {
			weeks = append(weeks, currentWeek)
			currentWeek = make([]int, 0, def.WeekLen)
		}
	}

	if len(currentWeek) > 0 {
		for len(currentWeek) < def.WeekLen {
			currentWeek = append(currentWeek, 0)
		}
		weeks = append(weeks, currentWeek)
	}

	return weeks, nil
}
