package group

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aetherialcal/aethercal/internal/calendar"
	"github.com/aetherialcal/aethercal/internal/platform/database/schema"
	"github.com/aetherialcal/aethercal/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create seeds the marker's position from the campaign's start date in the
// same statement, so a group always appears where the story begins.
func (repository *PostgresRepository) Create(context context.Context, group *PartyGroup) error {
	g, s := schema.PartyGroups, schema.Sessions
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		SELECT s.%s, $2, $3, s.%s, s.%s, 1 FROM %s s WHERE s.%s = $1
		RETURNING %s, %s, %s, %s, %s`,
		g.Table, g.SessionID, g.Name, g.Color, g.CurrentYear, g.CurrentMonth, g.CurrentDay,
		s.ID, s.StartYear, s.StartMonth, s.Table, s.ID,
		g.ID, g.CurrentYear, g.CurrentMonth, g.CurrentDay, g.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, group.SessionID, group.Name, group.Color).Scan(
		&group.ID, &group.CurrentYear, &group.CurrentMonth, &group.CurrentDay, &group.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_party_group")
	}
	return nil
}

func (repository *PostgresRepository) List(context context.Context, sessionID string) ([]*PartyGroup, error) {
	g := schema.PartyGroups
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		g.ID, g.SessionID, g.Name, g.Color, g.CurrentYear, g.CurrentMonth, g.CurrentDay, g.CreatedAt,
		g.Table, g.SessionID, g.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, sessionID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_party_groups")
	}
	defer rows.Close()

	groups := make([]*PartyGroup, 0)
	for rows.Next() {
		group := &PartyGroup{}
		err := rows.Scan(&group.ID, &group.SessionID, &group.Name, &group.Color,
			&group.CurrentYear, &group.CurrentMonth, &group.CurrentDay, &group.CreatedAt)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_party_group")
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

func (repository *PostgresRepository) UpdatePosition(context context.Context, sessionID string, id int64, date calendar.Date) (*PartyGroup, error) {
	g := schema.PartyGroups
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = $3 WHERE %s = $4 AND %s = $5
		RETURNING %s, %s, %s, %s, %s, %s, %s, %s`,
		g.Table, g.CurrentYear, g.CurrentMonth, g.CurrentDay, g.ID, g.SessionID,
		g.ID, g.SessionID, g.Name, g.Color, g.CurrentYear, g.CurrentMonth, g.CurrentDay, g.CreatedAt,
	)

	group := &PartyGroup{}
	err := repository.db.QueryRow(context, query, date.Year, date.Month, date.Day, id, sessionID).Scan(
		&group.ID, &group.SessionID, &group.Name, &group.Color,
		&group.CurrentYear, &group.CurrentMonth, &group.CurrentDay, &group.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "update_party_position")
	}
	return group, nil
}

func (repository *PostgresRepository) Delete(context context.Context, sessionID string, id int64) error {
	g := schema.PartyGroups
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, g.Table, g.ID, g.SessionID)

	tag, err := repository.db.Exec(context, query, id, sessionID)
	if err != nil {
		return dberr.Wrap(err, "delete_party_group")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_party_group")
	}
	return nil
}
