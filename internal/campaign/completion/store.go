package completion

import (
	"context"

	"github.com/aetherialcal/aethercal/internal/calendar"
)

type Repository interface {
	// Mark inserts the marker if absent; re-marking is a no-op.
	Mark(context context.Context, marker *CompletedDay) error
	// Unmark removes the marker; unmarking an unmarked day is a no-op.
	Unmark(context context.Context, sessionID string, date calendar.Date) error
	ListForMonth(context context.Context, sessionID string, year, month int) ([]*CompletedDay, error)
	// ListAll returns every marker for a campaign in chronological order.
	ListAll(context context.Context, sessionID string) ([]*CompletedDay, error)
	// Latest returns the chronologically last marker, or nil when none exist.
	Latest(context context.Context, sessionID string) (*CompletedDay, error)
}
