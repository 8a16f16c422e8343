package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "sqlite", Dialector("sqlite://file::memory:").Name())
	assert.Equal(t, "sqlite", Dialector("file:shop.db").Name())
	assert.Equal(t, "postgres", Dialector("postgres://u:p@localhost:5432/shop").Name())
}

func TestOpen_EmptyDSN(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), "")
	require.Error(t, err)
}

func TestOpen_SQLiteAndReporting(t *testing.T) {
	t.Parallel()

	gdb, err := Open(context.Background(), "sqlite://file:dbtest?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })

	rdb, err := Reporting(gdb)
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", rdb.DriverName())

	var one int
	require.NoError(t, rdb.Get(&one, "SELECT 1"))
	assert.Equal(t, 1, one)
}
