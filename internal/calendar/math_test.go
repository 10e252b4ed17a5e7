package calendar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aetherialcal/aethercal/internal/calendar"
)

/*
TestToLinearDay_KnownOffsets pins the linear day numbers of the Aetherial
calendar: 12 months of 44 days, so month starts are multiples of 44 and year
starts are multiples of 528.
*/
func TestToLinearDay_KnownOffsets(t *testing.T) {
	def := calendar.Default()

	tests := []struct {
		name string
		date calendar.Date
		want int
	}{
		{"epoch", calendar.Date{Year: 0, Month: 0, Day: 1}, 0},
		{"second_day", calendar.Date{Year: 0, Month: 0, Day: 2}, 1},
		{"second_month", calendar.Date{Year: 0, Month: 1, Day: 1}, 44},
		{"last_month", calendar.Date{Year: 0, Month: 11, Day: 44}, 527},
		{"second_year", calendar.Date{Year: 1, Month: 0, Day: 1}, 528},
		{"display_year", calendar.Date{Year: 1048, Month: 0, Day: 1}, 1048 * 528},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			linear, err := def.ToLinearDay(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, linear)
		})
	}
}

/*
TestToLinearDay_RejectsOutOfRange verifies that invalid triples are rejected,
never silently wrapped into a neighboring month.
*/
func TestToLinearDay_RejectsOutOfRange(t *testing.T) {
	def := calendar.Default()

	tests := []struct {
		name    string
		date    calendar.Date
		wantErr error
	}{
		{"negative_year", calendar.Date{Year: -1, Month: 0, Day: 1}, calendar.ErrYearOutOfRange},
		{"month_too_high", calendar.Date{Year: 1, Month: 12, Day: 1}, calendar.ErrMonthOutOfRange},
		{"negative_month", calendar.Date{Year: 1, Month: -1, Day: 1}, calendar.ErrMonthOutOfRange},
		{"day_zero", calendar.Date{Year: 1, Month: 0, Day: 0}, calendar.ErrDayOutOfRange},
		{"day_past_month_end", calendar.Date{Year: 1, Month: 0, Day: 45}, calendar.ErrDayOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := def.ToLinearDay(tt.date)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

/*
TestLinearDay_RoundTrip walks several years of consecutive dates and checks
FromLinearDay(ToLinearDay(d)) == d, and that the linear numbers are strictly
increasing (chronological monotonicity).
*/
func TestLinearDay_RoundTrip(t *testing.T) {
	def := calendar.Default()

	previous := -1
	for year := 0; year < 3; year++ {
		for month := 0; month < 12; month++ {
			days, err := def.DaysInMonth(year, month)
			require.NoError(t, err)

			for day := 1; day <= days; day++ {
				date := calendar.Date{Year: year, Month: month, Day: day}

				linear, err := def.ToLinearDay(date)
				require.NoError(t, err)
				assert.Equal(t, previous+1, linear, "linear days must be consecutive at %+v", date)
				previous = linear

				roundTripped, err := def.FromLinearDay(linear)
				require.NoError(t, err)
				assert.Equal(t, date, roundTripped)
			}
		}
	}
}

/*
TestWeekdayIndex_Periodicity verifies the weekday cycles with period WeekLen
when stepping one day at a time, and starts at FirstDay on linear day 0.
*/
func TestWeekdayIndex_Periodicity(t *testing.T) {
	def := calendar.Default()

	for linear := 0; linear < def.YearLength(0)*2; linear++ {
		date, err := def.FromLinearDay(linear)
		require.NoError(t, err)

		weekday, err := def.WeekdayIndex(date)
		require.NoError(t, err)
		assert.Equal(t, (linear+def.FirstDay)%def.WeekLen, weekday)
		assert.GreaterOrEqual(t, weekday, 0)
		assert.Less(t, weekday, def.WeekLen)
	}
}

/*
TestMoonPhases_Bounds checks every moon phase stays in [0, cycle) across two
full years, and that each moon actually cycles with its own period.
*/
func TestMoonPhases_Bounds(t *testing.T) {
	def := calendar.Default()

	for linear := 0; linear < def.YearLength(0)*2; linear++ {
		date, err := def.FromLinearDay(linear)
		require.NoError(t, err)

		phases, err := def.MoonPhases(date)
		require.NoError(t, err)
		require.Len(t, phases, len(def.Moons))

		for i, phase := range phases {
			moon := def.Moons[i]
			assert.Equal(t, (linear+moon.Shift)%moon.Cycle, phase.Phase)
			assert.GreaterOrEqual(t, phase.Phase, 0)
			assert.Less(t, phase.Phase, phase.Cycle)
		}
	}
}

/*
TestWeekGrid_Completeness verifies the grid contains every real day exactly
once in ascending order, padded with the 0 sentinel to full week rows.
*/
func TestWeekGrid_Completeness(t *testing.T) {
	def := calendar.Default()

	for year := 0; year < 2; year++ {
		for month := 0; month < 12; month++ {
			grid, err := def.WeekGrid(year, month)
			require.NoError(t, err)

			days, err := def.DaysInMonth(year, month)
			require.NoError(t, err)

			firstWeekday, err := def.WeekdayIndex(calendar.Date{Year: year, Month: month, Day: 1})
			require.NoError(t, err)

			seen := make([]int, 0, days)
			for rowIndex, week := range grid {
				require.Len(t, week, def.WeekLen, "every row must be a full week")
				for cellIndex, cell := range week {
					if cell == 0 {
						// Blanks may only lead the first row or trail the last.
						leading := rowIndex == 0 && cellIndex < firstWeekday
						trailing := rowIndex == len(grid)-1
						assert.True(t, leading || trailing, "unexpected blank at row %d cell %d", rowIndex, cellIndex)
						continue
					}
					seen = append(seen, cell)
				}
			}

			require.Len(t, seen, days)
			for i, day := range seen {
				assert.Equal(t, i+1, day, "days must appear in ascending order")
			}
		}
	}
}

func TestWeekGrid_RejectsBadMonth(t *testing.T) {
	def := calendar.Default()

	_, err := def.WeekGrid(1, 12)
	assert.ErrorIs(t, err, calendar.ErrMonthOutOfRange)
}

func TestDateCompare(t *testing.T) {
	earlier := calendar.Date{Year: 1048, Month: 0, Day: 5}
	later := calendar.Date{Year: 1048, Month: 0, Day: 10}

	assert.Equal(t, -1, earlier.Compare(later))
	assert.Equal(t, 1, later.Compare(earlier))
	assert.Equal(t, 0, earlier.Compare(earlier))

	assert.Equal(t, -1, calendar.Date{Year: 1047, Month: 11, Day: 44}.Compare(earlier))
	assert.Equal(t, -1, earlier.Compare(calendar.Date{Year: 1048, Month: 1, Day: 1}))
}

func TestDefinitionValidate(t *testing.T) {
	def := calendar.Default()
	require.NoError(t, def.Validate())

	broken := *def
	broken.Months = append([]calendar.Month{}, def.Months...)
	broken.Months[3] = calendar.Month{Name: "Pel'anor", Days: 0}
	assert.ErrorIs(t, broken.Validate(), calendar.ErrInvalidDefinition)

	zeroCycle := *def
	zeroCycle.Moons = []calendar.Moon{{Name: "Lumenis", Cycle: 0}}
	assert.ErrorIs(t, zeroCycle.Validate(), calendar.ErrInvalidDefinition)
}
