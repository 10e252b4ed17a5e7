package group

import (
	"context"

	"github.com/aetherialcal/aethercal/internal/calendar"
)

type Repository interface {
	// Create inserts the group positioned on its campaign's start date and
	// fills in the generated fields. A missing campaign is NotFound.
	Create(context context.Context, group *PartyGroup) error
	List(context context.Context, sessionID string) ([]*PartyGroup, error)
	UpdatePosition(context context.Context, sessionID string, id int64, date calendar.Date) (*PartyGroup, error)
	Delete(context context.Context, sessionID string, id int64) error
}
