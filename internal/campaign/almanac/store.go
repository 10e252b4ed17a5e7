package almanac

import (
	"context"

	"github.com/aetherialcal/aethercal/internal/calendar"
)

type Repository interface {
	CreateHoliday(context context.Context, holiday *Holiday) error
	ListHolidays(context context.Context, sessionID string) ([]*Holiday, error)
	DeleteHoliday(context context.Context, sessionID string, id int64) error

	// SetWeather upserts the day's condition.
	SetWeather(context context.Context, weather *Weather) error
	ListWeatherForMonth(context context.Context, sessionID string, year, month int) ([]*Weather, error)
	// ClearWeather removes a day's condition; clearing a clear day is a no-op.
	ClearWeather(context context.Context, sessionID string, date calendar.Date) error
}
