package schema

// WeatherTable represents the 'weather' table (one condition per campaign day).
// Unique on (session_id, year, month, day).
type WeatherTable struct {
	Table     string
	ID        string
	SessionID string
	Year      string
	Month     string
	Day       string
	Condition string
	CreatedAt string
}

// Weather is the schema definition for weather
var Weather = WeatherTable{
	Table:     "weather",
	ID:        "id",
	SessionID: "session_id",
	Year:      "year",
	Month:     "month",
	Day:       "day",
	Condition: "condition",
	CreatedAt: "created_at",
}

func (t WeatherTable) Columns() []string {
	return []string{t.ID, t.SessionID, t.Year, t.Month, t.Day, t.Condition, t.CreatedAt}
}
