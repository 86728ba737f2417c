package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrateSQLite(t *testing.T) {
	db, err := ConnectDB(DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db, zap.NewNop()))
	// second run is a no-op
	require.NoError(t, Migrate(db, zap.NewNop()))

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM migrations"))
	assert.Equal(t, 3, count)

	_, err = db.Exec(`INSERT INTO favorites (id, user_id, crop, kind, source, record_json, created_at, updated_at)
		VALUES ('abc', 1, 'Rice', 'saved', 'soil', '{}', 'now', 'now')`)
	assert.NoError(t, err)
}

func TestGetMigrationsUnknownDriver(t *testing.T) {
	_, err := getMigrations("oracle")
	assert.Error(t, err)
}
