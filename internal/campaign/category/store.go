package category

import "context"

type Repository interface {
	// Create inserts the category; a duplicate name within the campaign is a
	// Conflict.
	Create(context context.Context, category *Category) error
	List(context context.Context, sessionID string) ([]*Category, error)
	// Delete removes the category only; referencing events keep their
	// now-dangling category_id and reads resolve it with a LEFT JOIN.
	Delete(context context.Context, sessionID string, id int64) error
}
