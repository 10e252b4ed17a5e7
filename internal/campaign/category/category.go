// Package category manages event categories: per-campaign labels with a color
// and an emoji. Events reference categories softly; deleting one only orphans
// the reference.
package category

import "time"

// Defaults applied when the client omits them.
const (
	DefaultColor = "#3498db"
	DefaultEmoji = "📅"
)

// Category is one label. Names are unique within a campaign.
type Category struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}
