package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesSchema(t *testing.T) {
	db, err := InitDB(":memory:", "", "")
	require.NoError(t, err, "InitDB should not return an error")
	defer db.Close()

	for _, table := range []string{"matches", "score_log", "standings", "tournaments"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "querying for %s table should not produce an error", table)
		assert.Equal(t, table, name)
	}
}

func TestInitDB_IsIdempotent(t *testing.T) {
	path := t.TempDir() + "/courtside.db"

	db, err := InitDB(path, "", "")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = InitDB(path, "", "")
	require.NoError(t, err, "migrating an up-to-date database should be a no-op")
	defer db.Close()

	_, err = db.Exec(`INSERT INTO standings (player) VALUES ('ada')`)
	assert.NoError(t, err)
}
