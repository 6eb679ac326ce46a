package heap

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

type Table struct {
	Name string
	File *HeapFile
}

// Catalog registers tables and hands out sequential table IDs, so page IDs
// of different tables never collide. It is safe for concurrent use.
type Catalog struct {
	mu          sync.RWMutex
	nextTableID TableID
	byID        map[TableID]*Table
	byName      map[string]*Table
	bySchema    map[uint64][]*Table // TupleDesc hash -> tables
	logger      *zap.Logger
}

func NewCatalog(logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		nextTableID: 1,
		byID:        make(map[TableID]*Table),
		byName:      make(map[string]*Table),
		bySchema:    make(map[uint64][]*Table),
		logger:      logger,
	}
}

// AddTable opens a heap file for the path under a newly issued table ID.
func (c *Catalog) AddTable(name, path string, desc *TupleDesc, opts ...HeapFileOption) (*Table, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidTable)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byName[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrTableExists, name)
	}

	tableID := c.nextTableID
	opts = append(opts[:len(opts):len(opts)], WithTableID(tableID))
	aFile, err := NewHeapFile(c.logger, path, desc, opts...)
	if err != nil {
		return nil, err
	}
	c.nextTableID += 1

	aTable := &Table{Name: name, File: aFile}
	c.byID[tableID] = aTable
	c.byName[name] = aTable
	schemaKey := desc.Hash()
	c.bySchema[schemaKey] = append(c.bySchema[schemaKey], aTable)

	c.logger.Info("added table",
		zap.String("name", name),
		zap.Uint32("table_id", uint32(tableID)),
		zap.String("path", aFile.Path()),
		zap.Stringer("schema", desc),
	)

	return aTable, nil
}

func (c *Catalog) RemoveTable(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	aTable, ok := c.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}

	delete(c.byName, name)
	delete(c.byID, aTable.File.TableID())

	schemaKey := aTable.File.TupleDesc().Hash()
	tables := c.bySchema[schemaKey]
	for i, other := range tables {
		if other == aTable {
			tables = append(tables[:i], tables[i+1:]...)
			break
		}
	}
	if len(tables) == 0 {
		delete(c.bySchema, schemaKey)
	} else {
		c.bySchema[schemaKey] = tables
	}

	c.logger.Info("removed table", zap.String("name", name))

	return nil
}

func (c *Catalog) File(tableID TableID) (*HeapFile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	aTable, ok := c.byID[tableID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTable, tableID)
	}
	return aTable.File, nil
}

func (c *Catalog) Table(name string) (*Table, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	aTable, ok := c.byName[name]
	return aTable, ok
}

// TablesWithSchema returns the names of tables whose tuple descriptor is
// structurally equal to desc, sorted by name.
func (c *Catalog) TablesWithSchema(desc *TupleDesc) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var names []string
	for _, aTable := range c.bySchema[desc.Hash()] {
		if aTable.File.TupleDesc().Equal(desc) {
			names = append(names, aTable.Name)
		}
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) TableNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
