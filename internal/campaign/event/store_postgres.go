package event

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aetherialcal/aethercal/internal/calendar"
	"github.com/aetherialcal/aethercal/internal/platform/database/schema"
	"github.com/aetherialcal/aethercal/internal/platform/dberr"
)

// querier is the slice of *pgxpool.Pool the repository uses. Tests substitute
// a failing implementation to drive the transaction error paths.
type querier interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db querier
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// eventColumns is the canonical select list, matching scanEvent's field order.
func eventColumns(prefix string) string {
	e := schema.Events
	columns := []string{
		e.ID, e.SessionID, e.Year, e.Month, e.Day, e.Title, e.Description,
		e.Kind, e.Confirmed, e.IsRecurring, e.RecurringType, e.RecurringInterval,
		e.RecurringEndYear, e.RecurringEndMonth, e.RecurringEndDay,
		e.RecurringParentID, e.CategoryID, e.CreatedAt,
	}
	if prefix != "" {
		for i, column := range columns {
			columns[i] = prefix + "." + column
		}
	}
	return strings.Join(columns, ", ")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner, extra ...any) (*Event, error) {
	e := &Event{}
	var endYear, endMonth, endDay *int

	dest := []any{
		&e.ID, &e.SessionID, &e.Year, &e.Month, &e.Day, &e.Title, &e.Description,
		&e.Kind, &e.Confirmed, &e.IsRecurring, &e.RecurringType, &e.RecurringInterval,
		&endYear, &endMonth, &endDay,
		&e.RecurringParentID, &e.CategoryID, &e.CreatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if endYear != nil && endMonth != nil && endDay != nil {
		e.RecurringEnd = &calendar.Date{Year: *endYear, Month: *endMonth, Day: *endDay}
	}
	return e, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, sessionID string, id int64) (*Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		eventColumns(""), schema.Events.Table, schema.Events.ID, schema.Events.SessionID)

	found, err := scanEvent(repository.db.QueryRow(context, query, id, sessionID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_event")
	}
	return found, nil
}

func (repository *PostgresRepository) ListForMonth(context context.Context, sessionID string, year, month int) ([]*Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3 ORDER BY %s ASC, %s ASC`,
		eventColumns(""), schema.Events.Table,
		schema.Events.SessionID, schema.Events.Year, schema.Events.Month,
		schema.Events.Day, schema.Events.CreatedAt)

	rows, err := repository.db.Query(context, query, sessionID, year, month)
	if err != nil {
		return nil, dberr.Wrap(err, "list_events_for_month")
	}
	defer rows.Close()

	events := make([]*Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_event")
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (repository *PostgresRepository) CreateWithSeries(context context.Context, seed *Event, members []*Event) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_event")
	}
	defer func() { _ = transaction.Rollback(context) }()

	if err := insertEvent(context, transaction, seed); err != nil {
		return dberr.Wrap(err, "insert_event")
	}

	for _, member := range members {
		parentID := seed.ID
		member.RecurringParentID = &parentID
		if err := insertEvent(context, transaction, member); err != nil {
			return dberr.Wrap(err, "insert_series_member")
		}
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_create_event")
	}
	return nil
}

func insertEvent(context context.Context, transaction pgx.Tx, e *Event) error {
	s := schema.Events
	query := fmt.Sprintf(`INSERT INTO %s
		(%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING %s, %s`,
		s.Table,
		s.SessionID, s.Year, s.Month, s.Day, s.Title, s.Description,
		s.Kind, s.Confirmed, s.IsRecurring, s.RecurringType, s.RecurringInterval,
		s.RecurringEndYear, s.RecurringEndMonth, s.RecurringEndDay,
		s.RecurringParentID, s.CategoryID,
		s.ID, s.CreatedAt,
	)

	var endYear, endMonth, endDay *int
	if e.RecurringEnd != nil {
		endYear, endMonth, endDay = &e.RecurringEnd.Year, &e.RecurringEnd.Month, &e.RecurringEnd.Day
	}

	return transaction.QueryRow(context, query,
		e.SessionID, e.Year, e.Month, e.Day, e.Title, e.Description,
		e.Kind, e.Confirmed, e.IsRecurring, e.RecurringType, e.RecurringInterval,
		endYear, endMonth, endDay,
		e.RecurringParentID, e.CategoryID,
	).Scan(&e.ID, &e.CreatedAt)
}

func (repository *PostgresRepository) DeleteOne(context context.Context, sessionID string, id int64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Events.Table, schema.Events.ID, schema.Events.SessionID)

	tag, err := repository.db.Exec(context, query, id, sessionID)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_event")
	}
	if tag.RowsAffected() == 0 {
		return 0, dberr.ErrNotFound
	}
	return tag.RowsAffected(), nil
}

func (repository *PostgresRepository) DeleteSeries(context context.Context, sessionID string, rootID int64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND (%s = $2 OR %s = $2)`,
		schema.Events.Table, schema.Events.SessionID,
		schema.Events.ID, schema.Events.RecurringParentID)

	tag, err := repository.db.Exec(context, query, sessionID, rootID)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_event_series")
	}
	if tag.RowsAffected() == 0 {
		return 0, dberr.ErrNotFound
	}
	return tag.RowsAffected(), nil
}

func (repository *PostgresRepository) UpdateDate(context context.Context, sessionID string, id int64, date calendar.Date) (*Event, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = $3 WHERE %s = $4 AND %s = $5 RETURNING %s`,
		schema.Events.Table,
		schema.Events.Year, schema.Events.Month, schema.Events.Day,
		schema.Events.ID, schema.Events.SessionID,
		eventColumns(""),
	)

	updated, err := scanEvent(repository.db.QueryRow(context, query, date.Year, date.Month, date.Day, id, sessionID))
	if err != nil {
		return nil, dberr.Wrap(err, "move_event")
	}
	return updated, nil
}

func (repository *PostgresRepository) UpdateConfirmation(context context.Context, sessionID string, id int64, confirmed bool) (*Event, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2 AND %s = $3 RETURNING %s`,
		schema.Events.Table, schema.Events.Confirmed,
		schema.Events.ID, schema.Events.SessionID,
		eventColumns(""),
	)

	updated, err := scanEvent(repository.db.QueryRow(context, query, confirmed, id, sessionID))
	if err != nil {
		return nil, dberr.Wrap(err, "update_event_confirmation")
	}
	return updated, nil
}

func (repository *PostgresRepository) Search(context context.Context, sessionID, pattern string, filter SearchFilter) ([]*Event, error) {
	e, c := schema.Events, schema.Categories

	var builder strings.Builder
	fmt.Fprintf(&builder, `SELECT %s, c.%s, c.%s, c.%s FROM %s e
		LEFT JOIN %s c ON e.%s = c.%s
		WHERE e.%s = $1 AND (LOWER(e.%s) LIKE $2 OR LOWER(e.%s) LIKE $2)`,
		eventColumns("e"), c.Name, c.Color, c.Emoji, e.Table,
		c.Table, e.CategoryID, c.ID,
		e.SessionID, e.Title, e.Description)

	args := []any{sessionID, "%" + pattern + "%"}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		fmt.Fprintf(&builder, " AND e.%s = $%d", e.Year, len(args))
	}
	if filter.Month != nil {
		args = append(args, *filter.Month)
		fmt.Fprintf(&builder, " AND e.%s = $%d", e.Month, len(args))
	}
	fmt.Fprintf(&builder, " ORDER BY e.%s DESC, e.%s DESC, e.%s DESC, e.%s DESC",
		e.Year, e.Month, e.Day, e.CreatedAt)

	rows, err := repository.db.Query(context, builder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "search_events")
	}
	defer rows.Close()

	matches := make([]*Event, 0)
	for rows.Next() {
		var categoryName, categoryColor, categoryEmoji *string
		match, err := scanEvent(rows, &categoryName, &categoryColor, &categoryEmoji)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_search_match")
		}
		if categoryName != nil {
			match.Category = &CategoryRef{
				Name:  *categoryName,
				Color: derefOr(categoryColor, ""),
				Emoji: derefOr(categoryEmoji, ""),
			}
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
