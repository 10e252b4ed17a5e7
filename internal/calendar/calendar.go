/*
Package calendar implements the fictional-calendar date engine.

A [Definition] describes an invented calendar — arbitrary month lengths, an
arbitrary week length, and any number of independently cycling moons. All date
arithmetic runs through the linear day number: the count of days since year 0,
month 0, day 1 of the definition's epoch. Every function here is pure; the
definition is loaded once and shared read-only by every campaign.
*/
package calendar

import "errors"

var (
	// ErrMonthOutOfRange reports a month index outside [0, month count).
	ErrMonthOutOfRange = errors.New("calendar: month index out of range")
	// ErrDayOutOfRange reports a day outside [1, month length].
	ErrDayOutOfRange = errors.New("calendar: day out of range for month")
	// ErrYearOutOfRange reports a negative (pre-epoch) year.
	ErrYearOutOfRange = errors.New("calendar: year precedes the epoch")
	// ErrInvalidDefinition reports a definition violating its invariants.
	ErrInvalidDefinition = errors.New("calendar: invalid definition")
)

// Month is a named month with a fixed day count.
type Month struct {
	Name string
	Days int
}

// Moon is a celestial body cycling independently of months and weeks.
type Moon struct {
	Name string
	// Cycle is the number of days in one full cycle.
	Cycle int
	// Shift offsets the phase so that linear day 0 need not be a new moon.
	Shift int
}

// Definition is the immutable description of a fictional calendar.
type Definition struct {
	Months   []Month
	WeekLen  int
	Weekdays []string
	Moons    []Moon
	// DisplayYear is the in-world year campaigns open on by default.
	DisplayYear int
	// FirstDay is the weekday index linear day 0 falls on.
	FirstDay int
}

// Date is a (year, month, day) triple under a Definition: year counts from the
// epoch, month is a 0-based index, day is 1-based.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Compare orders two dates chronologically: -1 when d is earlier than other,
// 0 when equal, +1 when later. For dates valid under the same definition this
// agrees with comparing linear day numbers.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(d.Month - other.Month)
	default:
		return sign(d.Day - other.Day)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// Validate checks the definition's structural invariants: at least one month,
// every month length >= 1, week length >= 1, every moon cycle >= 1.
func (def *Definition) Validate() error {
	if len(def.Months) == 0 || def.WeekLen < 1 || len(def.Weekdays) != def.WeekLen {
		return ErrInvalidDefinition
	}
	for _, month := range def.Months {
		if month.Days < 1 {
			return ErrInvalidDefinition
		}
	}
	for _, moon := range def.Moons {
		if moon.Cycle < 1 {
			return ErrInvalidDefinition
		}
	}
	return nil
}

// CheckDate verifies that d is representable under the definition.
// Out-of-range months are usage errors and are never wrapped silently.
func (def *Definition) CheckDate(d Date) error {
	if d.Year < 0 {
		return ErrYearOutOfRange
	}
	if d.Month < 0 || d.Month >= len(def.Months) {
		return ErrMonthOutOfRange
	}
	days, err := def.DaysInMonth(d.Year, d.Month)
	if err != nil {
		return err
	}
	if d.Day < 1 || d.Day > days {
		return ErrDayOutOfRange
	}
	return nil
}

// Default returns the Aetherial calendar: twelve 44-day months, an 8-day week,
// and three moons. This is the definition every campaign shares.
func Default() *Definition {
	return &Definition{
		Months: []Month{
			{Name: "Auro'ithil", Days: 44},
			{Name: "Man'alasse", Days: 44},
			{Name: "Thael'orne", Days: 44},
			{Name: "Pel'anor", Days: 44},
			{Name: "Drac'uial", Days: 44},
			{Name: "Val'kaurn", Days: 44},
			{Name: "Shad'morn", Days: 44},
			{Name: "Ley'thurin", Days: 44},
			{Name: "Nex'illien", Days: 44},
			{Name: "Tun'giliath", Days: 44},
			{Name: "Mor'galad", Days: 44},
			{Name: "Cir'annen", Days: 44},
		},
		WeekLen: 8,
		Weekdays: []string{
			"Auro'dae", "Sol'dae", "Wis'dae", "Man'dae",
			"Drak'dae", "Um'dae", "Ley'dae", "Nex'dae",
		},
		Moons: []Moon{
			{Name: "Lumenis (Der Große Weiße Mond)", Cycle: 12, Shift: 0},
			{Name: "Umbrath (Der Schattenmond)", Cycle: 6, Shift: 0},
			{Name: "Manith (Der Kleine Arkane Mond)", Cycle: 48, Shift: 0},
		},
		DisplayYear: 1048,
		FirstDay:    0,
	}
}

// ConfigPayload is the wire representation served to clients, kept compatible
// with the shape the calendar frontend has always consumed.
type ConfigPayload struct {
	YearLen   int            `json:"year_len"`
	NMonths   int            `json:"n_months"`
	Months    []string       `json:"months"`
	MonthLen  map[string]int `json:"month_len"`
	WeekLen   int            `json:"week_len"`
	Weekdays  []string       `json:"weekdays"`
	NMoons    int            `json:"n_moons"`
	Moons     []string       `json:"moons"`
	LunarCyc  map[string]int `json:"lunar_cyc"`
	LunarShf  map[string]int `json:"lunar_shf"`
	Year      int            `json:"year"`
	FirstDay  int            `json:"first_day"`
}

// Payload renders the definition as its client wire shape.
func (def *Definition) Payload() ConfigPayload {
	payload := ConfigPayload{
		YearLen:  def.YearLength(0),
		NMonths:  len(def.Months),
		Months:   make([]string, 0, len(def.Months)),
		MonthLen: make(map[string]int, len(def.Months)),
		WeekLen:  def.WeekLen,
		Weekdays: def.Weekdays,
		NMoons:   len(def.Moons),
		Moons:    make([]string, 0, len(def.Moons)),
		LunarCyc: make(map[string]int, len(def.Moons)),
		LunarShf: make(map[string]int, len(def.Moons)),
		Year:     def.DisplayYear,
		FirstDay: def.FirstDay,
	}
	for _, month := range def.Months {
		payload.Months = append(payload.Months, month.Name)
		payload.MonthLen[month.Name] = month.Days
	}
	for _, moon := range def.Moons {
		payload.Moons = append(payload.Moons, moon.Name)
		payload.LunarCyc[moon.Name] = moon.Cycle
		payload.LunarShf[moon.Name] = moon.Shift
	}
	return payload
}
