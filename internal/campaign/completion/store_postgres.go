package completion

import (
	"context"
	"errors"
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

func (repository *PostgresRepository) Mark(context context.Context, marker *CompletedDay) error {
	s := schema.CompletedDays
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s, %s, %s, %s) DO NOTHING
		RETURNING %s, %s`,
		s.Table, s.SessionID, s.Year, s.Month, s.Day,
		s.SessionID, s.Year, s.Month, s.Day,
		s.ID, s.CompletedAt,
	)

	err := repository.db.QueryRow(context, query,
		marker.SessionID, marker.Year, marker.Month, marker.Day,
	).Scan(&marker.ID, &marker.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Already marked; fetch the existing row so the caller sees it.
		return repository.fill(context, marker)
	}
	if err != nil {
		return dberr.Wrap(err, "mark_day_completed")
	}
	return nil
}

func (repository *PostgresRepository) fill(context context.Context, marker *CompletedDay) error {
	s := schema.CompletedDays
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3 AND %s = $4`,
		s.ID, s.CompletedAt, s.Table, s.SessionID, s.Year, s.Month, s.Day)

	err := repository.db.QueryRow(context, query,
		marker.SessionID, marker.Year, marker.Month, marker.Day,
	).Scan(&marker.ID, &marker.CompletedAt)
	if err != nil {
		return dberr.Wrap(err, "get_completed_day")
	}
	return nil
}

func (repository *PostgresRepository) Unmark(context context.Context, sessionID string, date calendar.Date) error {
	s := schema.CompletedDays
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3 AND %s = $4`,
		s.Table, s.SessionID, s.Year, s.Month, s.Day)

	// Zero rows affected is fine: unmarking an unmarked day is a no-op.
	if _, err := repository.db.Exec(context, query, sessionID, date.Year, date.Month, date.Day); err != nil {
		return dberr.Wrap(err, "unmark_day_completed")
	}
	return nil
}

func (repository *PostgresRepository) ListForMonth(context context.Context, sessionID string, year, month int) ([]*CompletedDay, error) {
	s := schema.CompletedDays
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = $3 ORDER BY %s ASC`,
		s.ID, s.SessionID, s.Year, s.Month, s.Day, s.CompletedAt, s.Table,
		s.SessionID, s.Year, s.Month, s.Day)

	return repository.query(context, query, sessionID, year, month)
}

func (repository *PostgresRepository) ListAll(context context.Context, sessionID string) ([]*CompletedDay, error) {
	s := schema.CompletedDays
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s
		WHERE %s = $1 ORDER BY %s ASC, %s ASC, %s ASC`,
		s.ID, s.SessionID, s.Year, s.Month, s.Day, s.CompletedAt, s.Table,
		s.SessionID, s.Year, s.Month, s.Day)

	return repository.query(context, query, sessionID)
}

func (repository *PostgresRepository) Latest(context context.Context, sessionID string) (*CompletedDay, error) {
	s := schema.CompletedDays
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s
		WHERE %s = $1 ORDER BY %s DESC, %s DESC, %s DESC LIMIT 1`,
		s.ID, s.SessionID, s.Year, s.Month, s.Day, s.CompletedAt, s.Table,
		s.SessionID, s.Year, s.Month, s.Day)

	marker := &CompletedDay{}
	err := repository.db.QueryRow(context, query, sessionID).Scan(
		&marker.ID, &marker.SessionID, &marker.Year, &marker.Month, &marker.Day, &marker.CompletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "latest_completed_day")
	}
	return marker, nil
}

func (repository *PostgresRepository) query(context context.Context, query string, args ...any) ([]*CompletedDay, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_completed_days")
	}
	defer rows.Close()

	markers := make([]*CompletedDay, 0)
	for rows.Next() {
		marker := &CompletedDay{}
		if err := rows.Scan(&marker.ID, &marker.SessionID, &marker.Year, &marker.Month, &marker.Day, &marker.CompletedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_completed_day")
		}
		markers = append(markers, marker)
	}
	return markers, rows.Err()
}
