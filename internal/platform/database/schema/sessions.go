package schema

// SessionsTable represents the 'sessions' table (one row per campaign).
type SessionsTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	StartYear   string
	StartMonth  string
	CreatedAt   string
}

// Sessions is the schema definition for sessions
var Sessions = SessionsTable{
	Table:       "sessions",
	ID:          "id",
	Name:        "name",
	Description: "description",
	StartYear:   "start_year",
	StartMonth:  "start_month",
	CreatedAt:   "created_at",
}

func (t SessionsTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.StartYear, t.StartMonth, t.CreatedAt}
}
