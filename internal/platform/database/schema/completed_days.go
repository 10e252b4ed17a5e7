package schema

// CompletedDaysTable represents the 'completed_days' table.
// Unique on (session_id, year, month, day).
type CompletedDaysTable struct {
	Table       string
	ID          string
	SessionID   string
	Year        string
	Month       string
	Day         string
	CompletedAt string
}

// CompletedDays is the schema definition for completed_days
var CompletedDays = CompletedDaysTable{
	Table:       "completed_days",
	ID:          "id",
	SessionID:   "session_id",
	Year:        "year",
	Month:       "month",
	Day:         "day",
	CompletedAt: "completed_at",
}

func (t CompletedDaysTable) Columns() []string {
	return []string{t.ID, t.SessionID, t.Year, t.Month, t.Day, t.CompletedAt}
}
