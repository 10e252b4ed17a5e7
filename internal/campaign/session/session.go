// Package session manages campaigns, the root aggregate of the calendar.
//
// A campaign owns every event, party group, completed day, category, holiday
// and weather row scoped to it; deleting one removes all of them atomically.
package session

import "time"

// Session is one campaign. Its ID is a URL-safe slug, either supplied by the
// client or derived from the name, and doubles as the broadcast room name.
type Session struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartYear   int       `json:"start_year"`
	StartMonth  int       `json:"start_month"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExistsResult is the public existence-check response, deliberately limited to
// what an unauthenticated join screen needs.
type ExistsResult struct {
	Exists bool   `json:"exists"`
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
}

// DeleteResult reports the outcome of a campaign deletion.
type DeleteResult struct {
	SessionID string `json:"session_id"`
	Deleted   bool   `json:"deleted"`
}
