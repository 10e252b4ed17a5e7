// Package event manages calendar events and notes, including recurrence
// series expansion and keyword search.
package event

import (
	"time"

	"github.com/aetherialcal/aethercal/internal/calendar"
)

// Kind distinguishes an event from a note. It is an explicit column; the wire
// field stays "type" for the calendar client.
type Kind string

const (
	KindEvent Kind = "event"
	KindNote  Kind = "note"
)

// Recurrence step types.
const (
	RecurDaily   = "daily"
	RecurWeekly  = "weekly"
	RecurMonthly = "monthly"
	RecurYearly  = "yearly"
)

// Event is one entry on a campaign's calendar. A recurring seed carries the
// rule fields; generated occurrences additionally reference the seed through
// RecurringParentID, which never changes after creation.
type Event struct {
	ID          int64  `json:"id"`
	SessionID   string `json:"session_id"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Kind        Kind   `json:"type"`
	Confirmed   bool   `json:"confirmed"`

	IsRecurring       bool           `json:"is_recurring"`
	RecurringType     *string        `json:"recurring_type,omitempty"`
	RecurringInterval int            `json:"recurring_interval"`
	RecurringEnd      *calendar.Date `json:"recurring_end,omitempty"`
	RecurringParentID *int64         `json:"recurring_parent_id,omitempty"`

	CategoryID *int64       `json:"category_id,omitempty"`
	Category   *CategoryRef `json:"category,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// CategoryRef is the joined category summary attached to search results.
type CategoryRef struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Emoji string `json:"emoji"`
}

// Date returns the event's calendar date triple.
func (e *Event) Date() calendar.Date {
	return calendar.Date{Year: e.Year, Month: e.Month, Day: e.Day}
}

// SetDate overwrites the event's date fields in place.
func (e *Event) SetDate(d calendar.Date) {
	e.Year, e.Month, e.Day = d.Year, d.Month, d.Day
}

// CreateResult is returned by Create and carried in the event-added broadcast:
// the seed plus every generated series member.
type CreateResult struct {
	Event           *Event   `json:"event"`
	RecurringEvents []*Event `json:"recurring_events"`
}

// DeleteResult reports how many rows a deletion removed. A single delete is
// always 1; a series delete counts the seed plus all members.
type DeleteResult struct {
	EventID      int64 `json:"event_id"`
	DeletedCount int64 `json:"deleted_count"`
}

// MoveResult is carried in the event-moved broadcast, with both dates so
// receivers can update whichever month view they have open.
type MoveResult struct {
	EventID int64         `json:"event_id"`
	Event   *Event        `json:"event"`
	OldDate calendar.Date `json:"old_date"`
	NewDate calendar.Date `json:"new_date"`
}

// SearchResult wraps keyword-search matches.
type SearchResult struct {
	Query   string   `json:"query"`
	Total   int      `json:"total"`
	Results []*Event `json:"results"`
}
