package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	q := "SELECT a FROM t WHERE b = ? AND c = ?"
	assert.Equal(t, q, Rebind(DialectSQLite, q))
	assert.Equal(t, "SELECT a FROM t WHERE b = $1 AND c = $2", Rebind(DialectPostgres, q))
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect(" SQLite ")
	require.NoError(t, err)
	assert.Equal(t, DialectSQLite, d)

	d, err = ParseDialect("postgres")
	require.NoError(t, err)
	assert.Equal(t, DialectPostgres, d)

	_, err = ParseDialect("mysql")
	assert.Error(t, err)
}

func TestOpenSQLiteMemory(t *testing.T) {
	conn, err := Open(DialectSQLite, ":memory:")
	require.NoError(t, err)
	defer conn.Close()

	var one int
	require.NoError(t, conn.QueryRow("SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t,
		"data/app.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		sqliteDSN("data/app.db"))
	assert.Equal(t,
		"file:app.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		sqliteDSN("file:app.db?mode=rwc"))
}

func TestOpenSQLiteFileAppliesPragmasToEveryConnection(t *testing.T) {
	conn, err := Open(DialectSQLite, filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, 1, conn.Stats().MaxOpenConnections)

	// Without idle connections every Conn below is a fresh driver connection.
	conn.SetMaxIdleConns(0)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		c, err := conn.Conn(ctx)
		require.NoError(t, err)

		var fk, timeout int
		require.NoError(t, c.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk))
		require.NoError(t, c.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout))
		require.NoError(t, c.Close())

		assert.Equal(t, 1, fk, "connection %d", i)
		assert.Equal(t, 5000, timeout, "connection %d", i)
	}
}

func TestOpenSQLiteEnforcesForeignKeys(t *testing.T) {
	conn, err := Open(DialectSQLite, filepath.Join(t.TempDir(), "fk.db"))
	require.NoError(t, err)
	defer conn.Close()
	conn.SetMaxIdleConns(0)

	_, err = conn.Exec(`CREATE TABLE parent (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
	_, err = conn.Exec(`CREATE TABLE child (parent_id INTEGER NOT NULL REFERENCES parent(id))`)
	require.NoError(t, err)

	_, err = conn.Exec(`INSERT INTO child (parent_id) VALUES (42)`)
	assert.Error(t, err)
}
