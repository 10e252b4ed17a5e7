package event

import (
	"context"

	"github.com/aetherialcal/aethercal/internal/calendar"
)

// SearchFilter narrows keyword search to a year and/or month.
type SearchFilter struct {
	Year  *int
	Month *int
}

type Repository interface {
	GetByID(context context.Context, sessionID string, id int64) (*Event, error)
	ListForMonth(context context.Context, sessionID string, year, month int) ([]*Event, error)
	// CreateWithSeries persists the seed and its generated members in one
	// transaction. Members receive the seed's ID as their parent reference.
	CreateWithSeries(context context.Context, seed *Event, members []*Event) error
	DeleteOne(context context.Context, sessionID string, id int64) (int64, error)
	// DeleteSeries removes the root and every row referencing it, returning
	// the number of rows removed.
	DeleteSeries(context context.Context, sessionID string, rootID int64) (int64, error)
	UpdateDate(context context.Context, sessionID string, id int64, date calendar.Date) (*Event, error)
	UpdateConfirmation(context context.Context, sessionID string, id int64, confirmed bool) (*Event, error)
	// Search matches the already-lowercased pattern as a substring of title or
	// description, newest first. Rows carry the joined category summary.
	Search(context context.Context, sessionID, pattern string, filter SearchFilter) ([]*Event, error)
}
