package session

import "context"

type Repository interface {
	Create(context context.Context, session *Session) error
	GetByID(context context.Context, id string) (*Session, error)
	List(context context.Context) ([]*Session, error)
	// Delete removes the campaign and everything it owns in one transaction.
	Delete(context context.Context, id string) error
}
