package session

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aetherialcal/aethercal/internal/platform/database/schema"
	"github.com/aetherialcal/aethercal/internal/platform/dberr"
)

// querier is the slice of *pgxpool.Pool the repository uses. Tests substitute
// a failing implementation to drive the transaction error paths.
type querier interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db querier
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, session *Session) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5) RETURNING %s`,
		schema.Sessions.Table,
		schema.Sessions.ID, schema.Sessions.Name, schema.Sessions.Description,
		schema.Sessions.StartYear, schema.Sessions.StartMonth,
		schema.Sessions.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		session.ID, session.Name, session.Description, session.StartYear, session.StartMonth,
	).Scan(&session.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_session")
	}
	return nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Session, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.Sessions.ID, schema.Sessions.Name, schema.Sessions.Description,
		schema.Sessions.StartYear, schema.Sessions.StartMonth, schema.Sessions.CreatedAt,
		schema.Sessions.Table, schema.Sessions.ID,
	)

	found := &Session{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&found.ID, &found.Name, &found.Description,
		&found.StartYear, &found.StartMonth, &found.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_session")
	}
	return found, nil
}

func (repository *PostgresRepository) List(context context.Context) ([]*Session, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s ORDER BY %s DESC`,
		schema.Sessions.ID, schema.Sessions.Name, schema.Sessions.Description,
		schema.Sessions.StartYear, schema.Sessions.StartMonth, schema.Sessions.CreatedAt,
		schema.Sessions.Table, schema.Sessions.CreatedAt,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_sessions")
	}
	defer rows.Close()

	sessions := make([]*Session, 0)
	for rows.Next() {
		s := &Session{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.StartYear, &s.StartMonth, &s.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_session")
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Delete removes the campaign row and every owned row in one transaction.
// Children first: events self-reference through recurring_parent_id, so they
// go before anything that could constrain them.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_session")
	}
	defer func() { _ = transaction.Rollback(context) }()

	ownedTables := []string{
		schema.Events.Table,
		schema.PartyGroups.Table,
		schema.CompletedDays.Table,
		schema.Categories.Table,
		schema.Holidays.Table,
		schema.Weather.Table,
	}
	for _, table := range ownedTables {
		query := fmt.Sprintf(`DELETE FROM %s WHERE session_id = $1`, table)
		if _, err := transaction.Exec(context, query, id); err != nil {
			return dberr.Wrap(err, "delete_session_"+table)
		}
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Sessions.Table, schema.Sessions.ID)
	tag, err := transaction.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_session")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_session")
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_delete_session")
	}
	return nil
}
