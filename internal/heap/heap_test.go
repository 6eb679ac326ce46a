package heap

import (
	"math/rand/v2"
	"os"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RichardKnop/heapstore/internal/pkg/logging"
)

//go:generate mockery --name=PageAccessor --structname=MockPageAccessor --inpackage --case=snake --testonly

var (
	gen = newDataGen(uint64(time.Now().Unix()))

	testDesc = MustNewTupleDesc(
		[]FieldType{Int8, Varchar, Int4, Boolean, Real, Double},
		[]string{"id", "email", "age", "verified", "score", "balance"},
	)
	testTupleSize = 8 + (4 + MaxVarcharLength) + 4 + 1 + 4 + 8

	testLogger *zap.Logger
)

func init() {
	var err error
	testLogger, err = logging.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		panic(err)
	}
}

var allFieldTypes = []FieldType{Boolean, Int4, Int8, Real, Double, Varchar}

type dataGen struct {
	*gofakeit.Faker
}

func newDataGen(seed uint64) *dataGen {
	return &dataGen{
		Faker: gofakeit.NewFaker(rand.NewPCG(seed, seed), true),
	}
}

func (g *dataGen) Value(aType FieldType) any {
	switch aType {
	case Boolean:
		return g.Bool()
	case Int4:
		return g.Int32()
	case Int8:
		return g.Int64()
	case Real:
		return g.Float32()
	case Double:
		return g.Float64()
	case Varchar:
		email := g.Email()
		if len(email) > MaxVarcharLength {
			email = email[:MaxVarcharLength]
		}
		return email
	}
	panic("unknown field type")
}

func (g *dataGen) Tuple(desc *TupleDesc) *Tuple {
	values := make([]any, 0, desc.NumFields())
	for _, anItem := range desc.Items() {
		values = append(values, g.Value(anItem.Type))
	}
	aTuple, err := NewTuple(desc, values...)
	if err != nil {
		panic(err)
	}
	return aTuple
}

func (g *dataGen) Tuples(desc *TupleDesc, number int) []*Tuple {
	tuples := make([]*Tuple, 0, number)
	for range number {
		tuples = append(tuples, g.Tuple(desc))
	}
	return tuples
}

// FieldTypes returns between 1 and max random field types.
func (g *dataGen) FieldTypes(max int) []FieldType {
	types := make([]FieldType, g.IntRange(1, max))
	for i := range types {
		types[i] = allFieldTypes[g.IntRange(0, len(allFieldTypes)-1)]
	}
	return types
}

// newTestHeapFile writes a heap file with the given number of tuples on each
// page and returns the file together with the tuples in page order.
func newTestHeapFile(t *testing.T, desc *TupleDesc, tuplesPerPage ...int) (*HeapFile, []*Tuple) {
	t.Helper()

	dbFile, err := os.CreateTemp(t.TempDir(), "testdb")
	require.NoError(t, err)
	defer dbFile.Close()

	aFile, err := NewHeapFile(testLogger, dbFile.Name(), desc)
	require.NoError(t, err)

	var tuples []*Tuple
	for pageNo, numTuples := range tuplesPerPage {
		aPage := NewEmptyHeapPage(PageID{TableID: aFile.TableID(), PageNo: pageNo}, desc)
		for _, aTuple := range gen.Tuples(desc, numTuples) {
			require.NoError(t, aPage.AddTuple(aTuple))
			tuples = append(tuples, aTuple)
		}
		buf, err := aPage.Marshal()
		require.NoError(t, err)
		_, err = dbFile.WriteAt(buf, int64(pageNo)*PageSize)
		require.NoError(t, err)
	}

	return aFile, tuples
}

// newTestPages builds in memory pages without touching disk, for use with mocks.
func newTestPages(tableID TableID, desc *TupleDesc, tuplesPerPage ...int) ([]*HeapPage, []*Tuple) {
	var (
		pages  = make([]*HeapPage, 0, len(tuplesPerPage))
		tuples []*Tuple
	)
	for pageNo, numTuples := range tuplesPerPage {
		aPage := NewEmptyHeapPage(PageID{TableID: tableID, PageNo: pageNo}, desc)
		for _, aTuple := range gen.Tuples(desc, numTuples) {
			if err := aPage.AddTuple(aTuple); err != nil {
				panic(err)
			}
			tuples = append(tuples, aTuple)
		}
		pages = append(pages, aPage)
	}
	return pages, tuples
}

// newSizedFile creates a file of the given length filled with zero bytes.
func newSizedFile(t *testing.T, size int64) string {
	t.Helper()

	dbFile, err := os.CreateTemp(t.TempDir(), "testdb")
	require.NoError(t, err)
	defer dbFile.Close()

	require.NoError(t, dbFile.Truncate(size))

	return dbFile.Name()
}

func tupleValues(tuples []*Tuple) [][]any {
	values := make([][]any, 0, len(tuples))
	for _, aTuple := range tuples {
		values = append(values, aTuple.Values)
	}
	return values
}

func resetMock(aMock *mock.Mock) {
	aMock.ExpectedCalls = nil
	aMock.Calls = nil
}
