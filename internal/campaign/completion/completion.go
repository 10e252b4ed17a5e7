// Package completion tracks which narrative days a campaign has played
// through. The latest completed day steers newly joining clients to the month
// where the story left off.
package completion

import (
	"time"

	"github.com/aetherialcal/aethercal/internal/calendar"
)

// CompletedDay marks one campaign day as played. At most one row exists per
// (session, year, month, day); marking and unmarking are both idempotent.
type CompletedDay struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	Day         int       `json:"day"`
	CompletedAt time.Time `json:"completed_at"`
}

// Date returns the marker's calendar date triple.
func (c *CompletedDay) Date() calendar.Date {
	return calendar.Date{Year: c.Year, Month: c.Month, Day: c.Day}
}
