package database

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The sqlite path hands gorm a DriverName of "sqlite", which only the
// modernc driver's init registers. Without it Connect fails on the
// default local DSN.
func TestSqliteDriverRegistered(t *testing.T) {
	assert.Contains(t, sql.Drivers(), "sqlite")
}

func TestConnect_SqliteInMemory(t *testing.T) {
	db, err := Connect("file::memory:?cache=shared")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
}
