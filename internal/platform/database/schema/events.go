package schema

// EventsTable represents the 'events' table.
type EventsTable struct {
	Table             string
	ID                string
	SessionID         string
	Year              string
	Month             string
	Day               string
	Title             string
	Description       string
	Kind              string
	Confirmed         string
	IsRecurring       string
	RecurringType     string
	RecurringInterval string
	RecurringEndYear  string
	RecurringEndMonth string
	RecurringEndDay   string
	RecurringParentID string
	CategoryID        string
	CreatedAt         string
}

// Events is the schema definition for events
var Events = EventsTable{
	Table:             "events",
	ID:                "id",
	SessionID:         "session_id",
	Year:              "year",
	Month:             "month",
	Day:               "day",
	Title:             "title",
	Description:       "description",
	Kind:              "kind",
	Confirmed:         "confirmed",
	IsRecurring:       "is_recurring",
	RecurringType:     "recurring_type",
	RecurringInterval: "recurring_interval",
	RecurringEndYear:  "recurring_end_year",
	RecurringEndMonth: "recurring_end_month",
	RecurringEndDay:   "recurring_end_day",
	RecurringParentID: "recurring_parent_id",
	CategoryID:        "category_id",
	CreatedAt:         "created_at",
}

func (t EventsTable) Columns() []string {
	return []string{
		t.ID, t.SessionID, t.Year, t.Month, t.Day, t.Title, t.Description,
		t.Kind, t.Confirmed, t.IsRecurring, t.RecurringType, t.RecurringInterval,
		t.RecurringEndYear, t.RecurringEndMonth, t.RecurringEndDay,
		t.RecurringParentID, t.CategoryID, t.CreatedAt,
	}
}
