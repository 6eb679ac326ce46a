package heap

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_AddTable(t *testing.T) {
	t.Parallel()

	var (
		catalog = NewCatalog(testLogger)
		dir     = t.TempDir()
	)

	users, err := catalog.AddTable("users", filepath.Join(dir, "users.dat"), testDesc)
	require.NoError(t, err)
	assert.Equal(t, "users", users.Name)
	assert.Equal(t, TableID(1), users.File.TableID())

	orders, err := catalog.AddTable("orders", filepath.Join(dir, "orders.dat"), testDesc)
	require.NoError(t, err)
	assert.Equal(t, TableID(2), orders.File.TableID())

	t.Run("empty name", func(t *testing.T) {
		_, err := catalog.AddTable("", filepath.Join(dir, "x.dat"), testDesc)
		require.ErrorIs(t, err, ErrInvalidTable)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := catalog.AddTable("users", filepath.Join(dir, "other.dat"), testDesc)
		require.ErrorIs(t, err, ErrTableExists)
	})

	t.Run("invalid schema does not use up an ID", func(t *testing.T) {
		_, err := catalog.AddTable("broken", filepath.Join(dir, "broken.dat"), nil)
		require.ErrorIs(t, err, ErrInvalidSchema)

		items, err := catalog.AddTable("items", filepath.Join(dir, "items.dat"), testDesc)
		require.NoError(t, err)
		assert.Equal(t, TableID(3), items.File.TableID())
	})

	assert.Equal(t, []string{"items", "orders", "users"}, catalog.TableNames())

	aFile, err := catalog.File(TableID(2))
	require.NoError(t, err)
	assert.Same(t, orders.File, aFile)

	_, err = catalog.File(TableID(100))
	require.ErrorIs(t, err, ErrUnknownTable)

	aTable, ok := catalog.Table("users")
	require.True(t, ok)
	assert.Same(t, users, aTable)

	_, ok = catalog.Table("missing")
	assert.False(t, ok)
}

func TestCatalog_RemoveTable(t *testing.T) {
	t.Parallel()

	var (
		catalog = NewCatalog(testLogger)
		dir     = t.TempDir()
	)

	users, err := catalog.AddTable("users", filepath.Join(dir, "users.dat"), testDesc)
	require.NoError(t, err)
	_, err = catalog.AddTable("orders", filepath.Join(dir, "orders.dat"), testDesc)
	require.NoError(t, err)

	require.NoError(t, catalog.RemoveTable("users"))
	require.ErrorIs(t, catalog.RemoveTable("users"), ErrUnknownTable)

	_, err = catalog.File(users.File.TableID())
	require.ErrorIs(t, err, ErrUnknownTable)
	assert.Equal(t, []string{"orders"}, catalog.TableNames())
	assert.Equal(t, []string{"orders"}, catalog.TablesWithSchema(testDesc))

	// IDs are never reused
	again, err := catalog.AddTable("users", filepath.Join(dir, "users.dat"), testDesc)
	require.NoError(t, err)
	assert.Equal(t, TableID(3), again.File.TableID())
}

func TestCatalog_TablesWithSchema(t *testing.T) {
	t.Parallel()

	var (
		catalog  = NewCatalog(testLogger)
		dir      = t.TempDir()
		kvDesc   = MustNewTupleDesc([]FieldType{Int4, Varchar}, []string{"key", "value"})
		pairDesc = MustNewTupleDesc([]FieldType{Int4, Varchar}, nil)
		flipDesc = MustNewTupleDesc([]FieldType{Varchar, Int4}, nil)
	)

	for i, desc := range []*TupleDesc{kvDesc, testDesc, pairDesc, flipDesc, kvDesc} {
		name := fmt.Sprintf("table_%d", i)
		_, err := catalog.AddTable(name, filepath.Join(dir, name), desc)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"table_0", "table_2", "table_4"}, catalog.TablesWithSchema(kvDesc))
	assert.Equal(t, []string{"table_1"}, catalog.TablesWithSchema(testDesc))
	assert.Equal(t, []string{"table_3"}, catalog.TablesWithSchema(flipDesc))
	assert.Empty(t, catalog.TablesWithSchema(MustNewTupleDesc([]FieldType{Boolean}, nil)))
}

func TestCatalog_Concurrent(t *testing.T) {
	t.Parallel()

	var (
		catalog = NewCatalog(testLogger)
		dir     = t.TempDir()
		wg      sync.WaitGroup
		ids     sync.Map
	)

	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("table_%d", i)
			aTable, err := catalog.AddTable(name, filepath.Join(dir, name), testDesc)
			if !assert.NoError(t, err) {
				return
			}
			_, loaded := ids.LoadOrStore(aTable.File.TableID(), name)
			assert.False(t, loaded, "table ID issued twice")
		}()
	}

	wg.Wait()

	assert.Len(t, catalog.TableNames(), 50)
	assert.Len(t, catalog.TablesWithSchema(testDesc), 50)
}
