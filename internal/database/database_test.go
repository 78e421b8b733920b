package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New("mysql", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite", sqliteDSN(":memory:"))
	assert.Equal(t, "file:x.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite", sqliteDSN("file:x.db?mode=rwc"))
}

func TestMigrate_CreatesSchemaAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := New(SQLite, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db), "second run must be a no-op")

	now := time.Now().UTC()
	_, err = db.ExecContext(ctx, `INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		"u1", "A", "a@x.com", "hash", now)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		"u2", "B", "a@x.com", "hash", now)
	assert.Error(t, err, "email must be unique")

	_, err = db.ExecContext(ctx, `INSERT INTO ideas (id, owner_id, title, created_at) VALUES (?, ?, ?, ?)`,
		"i1", "nobody", "T", now)
	assert.Error(t, err, "owner must reference an existing user")

	_, err = db.ExecContext(ctx, `INSERT INTO ideas (id, owner_id, title, created_at) VALUES (?, ?, ?, ?)`,
		"i1", "u1", "T", now)
	require.NoError(t, err)

	var status string
	require.NoError(t, db.GetContext(ctx, &status, `SELECT status FROM ideas WHERE id = ?`, "i1"))
	assert.Equal(t, "draft", status)

	var created time.Time
	require.NoError(t, db.GetContext(ctx, &created, `SELECT created_at FROM ideas WHERE id = ?`, "i1"))
	assert.True(t, created.Equal(now))
}
