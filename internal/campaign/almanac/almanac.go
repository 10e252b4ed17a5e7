// Package almanac manages the flavor layer of a campaign's calendar:
// recurring holidays and per-day weather.
package almanac

import "time"

// HolidayKind classifies how widely a holiday is observed.
type HolidayKind string

const (
	HolidayRegional HolidayKind = "regional"
	HolidayWorldly  HolidayKind = "worldly"
	HolidayMagical  HolidayKind = "magical"
)

// Holiday is a festival recurring on the same month and day every year.
type Holiday struct {
	ID          int64       `json:"id"`
	SessionID   string      `json:"session_id"`
	Name        string      `json:"name"`
	Month       int         `json:"month"`
	Day         int         `json:"day"`
	Kind        HolidayKind `json:"type"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Conditions a day's weather can take, as the client renders them.
var Conditions = []string{
	"thunderstorm", "rain", "snow", "cloudy",
	"partly_cloudy", "sunny", "fog", "wind",
}

// Weather is the condition on one campaign day. At most one row exists per
// (session, year, month, day); setting again overwrites.
type Weather struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Day       int       `json:"day"`
	Condition string    `json:"condition"`
	CreatedAt time.Time `json:"created_at"`
}
