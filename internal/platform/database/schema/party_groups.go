package schema

// PartyGroupsTable represents the 'party_groups' table (marker tokens on the grid).
type PartyGroupsTable struct {
	Table        string
	ID           string
	SessionID    string
	Name         string
	Color        string
	CurrentYear  string
	CurrentMonth string
	CurrentDay   string
	CreatedAt    string
}

// PartyGroups is the schema definition for party_groups
var PartyGroups = PartyGroupsTable{
	Table:        "party_groups",
	ID:           "id",
	SessionID:    "session_id",
	Name:         "name",
	Color:        "color",
	CurrentYear:  "current_year",
	CurrentMonth: "current_month",
	CurrentDay:   "current_day",
	CreatedAt:    "created_at",
}

func (t PartyGroupsTable) Columns() []string {
	return []string{t.ID, t.SessionID, t.Name, t.Color, t.CurrentYear, t.CurrentMonth, t.CurrentDay, t.CreatedAt}
}
