package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	"github.com/RichardKnop/heapstore/internal/heap"
	"github.com/RichardKnop/heapstore/internal/pkg/logging"
)

const defaultSchema = "int8:id,varchar:email,int4:age,boolean:verified,real:score,double:balance"

var (
	filePath  = flag.String("file", "users.dat", "path of the heap file to create")
	schema    = flag.String("schema", defaultSchema, "tuple schema, for example int8:id,varchar:email")
	numTuples = flag.Int("tuples", 100, "number of tuples to generate")
	seed      = flag.Uint64("seed", 0, "random seed, 0 uses the current time")
)

func main() {
	flag.Parse()

	logger, err := logging.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		panic(err)
	}
	defer logger.Sync() // flushes buffer, if any

	desc, err := heap.ParseTupleDesc(*schema)
	if err != nil {
		panic(err)
	}
	if heap.HeapPageSlots(desc) == 0 {
		logger.Fatal("tuples do not fit on a page",
			zap.Stringer("schema", desc),
			zap.Int("tuple_size", desc.Size()),
			zap.Int("page_size", heap.PageSize),
		)
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	faker := gofakeit.New(*seed)

	dbFile, err := os.OpenFile(*filePath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		panic(err)
	}
	defer dbFile.Close()

	var (
		pageNo = 0
		aPage  = heap.NewEmptyHeapPage(heap.PageID{PageNo: pageNo}, desc)
	)
	flush := func() {
		buf, err := aPage.Marshal()
		if err != nil {
			panic(err)
		}
		if _, err := dbFile.WriteAt(buf, aPage.ID().Offset()); err != nil {
			panic(err)
		}
		logger.Debug("wrote page", zap.Int("page_no", pageNo), zap.Int("tuples", aPage.NumTuples()))
	}

	for range *numTuples {
		aTuple, err := heap.NewTuple(desc, randomValues(faker, desc)...)
		if err != nil {
			panic(err)
		}
		if aPage.NumEmptySlots() == 0 {
			flush()
			pageNo += 1
			aPage = heap.NewEmptyHeapPage(heap.PageID{PageNo: pageNo}, desc)
		}
		if err := aPage.AddTuple(aTuple); err != nil {
			panic(err)
		}
	}
	numPages := 0
	if aPage.NumTuples() > 0 {
		flush()
		numPages = pageNo + 1
	}

	logger.Info("generated heap file",
		zap.String("path", *filePath),
		zap.Stringer("schema", desc),
		zap.Int("tuples", *numTuples),
		zap.Int("pages", numPages),
		zap.Uint64("seed", *seed),
	)
}

func randomValues(faker *gofakeit.Faker, desc *heap.TupleDesc) []any {
	values := make([]any, 0, desc.NumFields())
	for _, anItem := range desc.Items() {
		switch anItem.Type {
		case heap.Boolean:
			values = append(values, faker.Bool())
		case heap.Int4:
			values = append(values, int32(faker.IntRange(0, 100)))
		case heap.Int8:
			values = append(values, faker.Int64())
		case heap.Real:
			values = append(values, faker.Float32Range(0, 100))
		case heap.Double:
			values = append(values, faker.Price(0, 10000))
		case heap.Varchar:
			values = append(values, truncate(faker.Email(), heap.MaxVarcharLength))
		default:
			panic(fmt.Sprintf("unsupported field type %s", anItem.Type))
		}
	}
	return values
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
