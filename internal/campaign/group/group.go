// Package group manages party markers: named tokens placed on a campaign day
// and dragged around as the party travels.
package group

import (
	"time"

	"github.com/aetherialcal/aethercal/internal/calendar"
)

// DefaultColor is applied when the client does not pick one.
const DefaultColor = "#ff6b6b"

// PartyGroup is one marker token. A new group starts on the campaign's start
// date and moves only through position updates.
type PartyGroup struct {
	ID           int64     `json:"id"`
	SessionID    string    `json:"session_id"`
	Name         string    `json:"name"`
	Color        string    `json:"color"`
	CurrentYear  int       `json:"current_year"`
	CurrentMonth int       `json:"current_month"`
	CurrentDay   int       `json:"current_day"`
	CreatedAt    time.Time `json:"created_at"`
}

// Position returns the marker's current calendar date.
func (g *PartyGroup) Position() calendar.Date {
	return calendar.Date{Year: g.CurrentYear, Month: g.CurrentMonth, Day: g.CurrentDay}
}
