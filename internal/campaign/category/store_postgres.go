package category

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aetherialcal/aethercal/internal/platform/database/schema"
	"github.com/aetherialcal/aethercal/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	c := schema.Categories
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s, %s`,
		c.Table, c.SessionID, c.Name, c.Color, c.Emoji, c.ID, c.CreatedAt)

	err := repository.db.QueryRow(context, query,
		category.SessionID, category.Name, category.Color, category.Emoji,
	).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_category")
	}
	return nil
}

func (repository *PostgresRepository) List(context context.Context, sessionID string) ([]*Category, error) {
	c := schema.Categories
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		c.ID, c.SessionID, c.Name, c.Color, c.Emoji, c.CreatedAt,
		c.Table, c.SessionID, c.Name)

	rows, err := repository.db.Query(context, query, sessionID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(&category.ID, &category.SessionID, &category.Name, &category.Color, &category.Emoji, &category.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (repository *PostgresRepository) Delete(context context.Context, sessionID string, id int64) error {
	c := schema.Categories
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, c.Table, c.ID, c.SessionID)

	tag, err := repository.db.Exec(context, query, id, sessionID)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_category")
	}
	return nil
}
