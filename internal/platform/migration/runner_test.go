// Copyright (c) 2026 Aethercal. All rights reserved.

package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToPgx5DSN(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"postgres scheme", "postgres://u:p@localhost:5432/db", "pgx5://u:p@localhost:5432/db"},
		{"postgresql scheme", "postgresql://u:p@localhost:5432/db", "pgx5://u:p@localhost:5432/db"},
		{"already pgx5", "pgx5://u:p@localhost:5432/db", "pgx5://u:p@localhost:5432/db"},
		{"unknown scheme untouched", "mysql://u:p@localhost/db", "mysql://u:p@localhost/db"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, convertToPgx5DSN(test.in))
		})
	}
}

// The series-member self-reference must not cascade: removing just the seed
// detaches the members instead of deleting them. Whole-series removal is an
// explicit statement in the event store.
func TestInitMigration_SeriesParentDetachesOnDelete(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("..", "..", "..", "data", "migrations", "0001_init.up.sql"))
	require.NoError(t, err)

	schema := string(content)
	assert.Regexp(t, `recurring_parent_id\s+BIGINT\s+REFERENCES events \(id\) ON DELETE SET NULL`, schema)
	assert.NotRegexp(t, `recurring_parent_id\s+BIGINT\s+REFERENCES events \(id\) ON DELETE CASCADE`, schema)
}
