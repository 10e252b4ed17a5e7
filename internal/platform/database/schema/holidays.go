package schema

// HolidaysTable represents the 'holidays' table (yearly recurring festivals).
type HolidaysTable struct {
	Table       string
	ID          string
	SessionID   string
	Name        string
	Month       string
	Day         string
	Kind        string
	Description string
	CreatedAt   string
}

// Holidays is the schema definition for holidays
var Holidays = HolidaysTable{
	Table:       "holidays",
	ID:          "id",
	SessionID:   "session_id",
	Name:        "name",
	Month:       "month",
	Day:         "day",
	Kind:        "kind",
	Description: "description",
	CreatedAt:   "created_at",
}

func (t HolidaysTable) Columns() []string {
	return []string{t.ID, t.SessionID, t.Name, t.Month, t.Day, t.Kind, t.Description, t.CreatedAt}
}
