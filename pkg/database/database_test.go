package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
)

type widget struct {
	ID   uint
	Name string
}

func TestOpenSQLiteMigrateAndPing(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, DSN: "file:database_test?mode=memory&cache=shared"})
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, Migrate(db, &widget{}))
	assert.True(t, db.Migrator().HasTable(&widget{}))
	assert.NoError(t, Ping(context.Background(), db))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "oracle", DSN: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}
