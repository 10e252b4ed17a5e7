package session

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aetherialcal/aethercal/internal/platform/apperr"
)

// flakyTx fails the nth delete statement and records the transaction outcome.
// The embedded pgx.Tx covers the interface; only the methods Delete touches
// are overridden.
type flakyTx struct {
	pgx.Tx
	failOn         int
	deletes        int
	missingSession bool
	committed      bool
	rolledBack     bool
}

// Delete issues one statement per owned table and a final one for the session
// row; the session row is the last statement in the transaction.
const deleteStatements = 7

func (tx *flakyTx) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	tx.deletes++
	if tx.deletes == tx.failOn {
		return pgconn.CommandTag{}, errors.New("connection reset by peer")
	}
	if tx.missingSession && tx.deletes == deleteStatements {
		return pgconn.NewCommandTag("DELETE 0"), nil
	}
	return pgconn.NewCommandTag("DELETE 1"), nil
}

func (tx *flakyTx) Commit(_ context.Context) error {
	tx.committed = true
	return nil
}

func (tx *flakyTx) Rollback(_ context.Context) error {
	tx.rolledBack = true
	return nil
}

type stubDB struct {
	tx *flakyTx
}

func (db *stubDB) Begin(_ context.Context) (pgx.Tx, error) { return db.tx, nil }

func (db *stubDB) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	panic("unexpected Query outside the transaction")
}

func (db *stubDB) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	panic("unexpected QueryRow outside the transaction")
}

func TestDelete_RollsBackWhenOwnedTableDeleteFails(t *testing.T) {
	// Fails mid-cascade, after some owned tables have been cleared.
	tx := &flakyTx{failOn: 3}
	repository := &PostgresRepository{db: &stubDB{tx: tx}}

	err := repository.Delete(context.Background(), "camp")

	require.Error(t, err)
	assert.True(t, tx.rolledBack, "a failed cascade must roll back")
	assert.False(t, tx.committed, "a failed cascade must never commit")
	assert.Equal(t, 3, tx.deletes, "no statements after the failure")
}

func TestDelete_MissingSessionRollsBack(t *testing.T) {
	tx := &flakyTx{missingSession: true}
	repository := &PostgresRepository{db: &stubDB{tx: tx}}

	err := repository.Delete(context.Background(), "nope")

	require.Error(t, err)
	require.NotNil(t, apperr.As(err))
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	assert.False(t, tx.committed, "clearing owned rows of a missing campaign must not commit")
	assert.True(t, tx.rolledBack)
}

func TestDelete_CommitsWholeCascade(t *testing.T) {
	tx := &flakyTx{}
	repository := &PostgresRepository{db: &stubDB{tx: tx}}

	err := repository.Delete(context.Background(), "camp")

	require.NoError(t, err)
	assert.True(t, tx.committed)
	assert.Equal(t, deleteStatements, tx.deletes)
}
