package schema

// CategoriesTable represents the 'categories' table.
// Unique on (session_id, name).
type CategoriesTable struct {
	Table     string
	ID        string
	SessionID string
	Name      string
	Color     string
	Emoji     string
	CreatedAt string
}

// Categories is the schema definition for categories
var Categories = CategoriesTable{
	Table:     "categories",
	ID:        "id",
	SessionID: "session_id",
	Name:      "name",
	Color:     "color",
	Emoji:     "emoji",
	CreatedAt: "created_at",
}

func (t CategoriesTable) Columns() []string {
	return []string{t.ID, t.SessionID, t.Name, t.Color, t.Emoji, t.CreatedAt}
}
