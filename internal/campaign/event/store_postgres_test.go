package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRow satisfies pgx.Row for the RETURNING id, created_at scan.
type stubRow struct {
	err error
	id  int64
}

func (row stubRow) Scan(dest ...any) error {
	if row.err != nil {
		return row.err
	}
	*(dest[0].(*int64)) = row.id
	*(dest[1].(*time.Time)) = time.Now().UTC()
	return nil
}

// flakyTx fails the nth insert it sees and records the transaction outcome.
// The embedded pgx.Tx covers the interface; only the methods the repository
// touches are overridden.
type flakyTx struct {
	pgx.Tx
	failOn     int
	inserts    int
	committed  bool
	rolledBack bool
}

func (tx *flakyTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	tx.inserts++
	if tx.inserts == tx.failOn {
		return stubRow{err: errors.New("connection reset by peer")}
	}
	return stubRow{id: int64(tx.inserts)}
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

func (db *stubDB) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	panic("unexpected Exec outside the transaction")
}

func (db *stubDB) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	panic("unexpected Query outside the transaction")
}

func (db *stubDB) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	panic("unexpected QueryRow outside the transaction")
}

func seriesFixture(count int) (*Event, []*Event) {
	seed := &Event{SessionID: "camp", Year: 1048, Month: 0, Day: 1, Title: "Council", Kind: KindEvent, IsRecurring: true}
	members := make([]*Event, 0, count)
	for i := 0; i < count; i++ {
		members = append(members, &Event{
			SessionID: "camp", Year: 1048, Month: 0, Day: 2 + i,
			Title: "Council", Kind: KindEvent, IsRecurring: true,
		})
	}
	return seed, members
}

func TestCreateWithSeries_RollsBackWhenMemberInsertFails(t *testing.T) {
	// Seed inserts fine, first member inserts fine, second member fails.
	tx := &flakyTx{failOn: 3}
	repository := &PostgresRepository{db: &stubDB{tx: tx}}
	seed, members := seriesFixture(3)

	err := repository.CreateWithSeries(context.Background(), seed, members)

	require.Error(t, err)
	assert.True(t, tx.rolledBack, "a failed batch must roll back")
	assert.False(t, tx.committed, "a failed batch must never commit")
	assert.Equal(t, 3, tx.inserts, "no inserts after the failure")
}

func TestCreateWithSeries_RollsBackWhenSeedInsertFails(t *testing.T) {
	tx := &flakyTx{failOn: 1}
	repository := &PostgresRepository{db: &stubDB{tx: tx}}
	seed, members := seriesFixture(2)

	err := repository.CreateWithSeries(context.Background(), seed, members)

	require.Error(t, err)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestCreateWithSeries_CommitsAndLinksMembersToSeed(t *testing.T) {
	tx := &flakyTx{}
	repository := &PostgresRepository{db: &stubDB{tx: tx}}
	seed, members := seriesFixture(2)

	err := repository.CreateWithSeries(context.Background(), seed, members)

	require.NoError(t, err)
	assert.True(t, tx.committed)
	require.NotZero(t, seed.ID)
	for _, member := range members {
		require.NotNil(t, member.RecurringParentID)
		assert.Equal(t, seed.ID, *member.RecurringParentID)
	}
}
