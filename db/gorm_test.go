package db

import (
	"path/filepath"
	"testing"

	"musicapp/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements("CREATE TABLE a (id INT);\n\n  CREATE INDEX i ON a(id);  \n;")
	assert.Equal(t, []string{"CREATE TABLE a (id INT)", "CREATE INDEX i ON a(id)"}, stmts)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file::memory:?_foreign_keys=on&_busy_timeout=5000", sqliteDSN(":memory:"))
	assert.Equal(t, "music_app.db?_foreign_keys=on&_busy_timeout=5000", sqliteDSN("music_app.db"))
}

func TestOpen_CreatesSchemaAndIsIdempotent(t *testing.T) {
	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "nested", "catalog.db"),
	}

	for i := 0; i < 2; i++ {
		gdb, err := Open(cfg)
		require.NoError(t, err, "open #%d", i)

		var tables []string
		require.NoError(t, gdb.Raw(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name",
		).Scan(&tables).Error)
		assert.Equal(t, []string{"albums", "artists", "playlist_tracks", "playlists", "tracks", "users"}, tables)

		var fk int
		require.NoError(t, gdb.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
		assert.Equal(t, 1, fk, "foreign keys must be enforced")

		require.NoError(t, Close(gdb))
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}
