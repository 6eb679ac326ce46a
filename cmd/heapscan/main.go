package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/RichardKnop/heapstore/internal/heap"
	"github.com/RichardKnop/heapstore/internal/pkg/logging"
	"github.com/RichardKnop/heapstore/internal/pkg/util"
)

var (
	filePath  = flag.String("file", "", "path to the heap file to scan")
	schema    = flag.String("schema", "", "tuple schema, for example int8:id,varchar:email")
	cacheSize = flag.Int("cache", heap.DefaultMaxCachedPages, "maximum number of cached pages")
	prefetch  = flag.Bool("prefetch", false, "read all pages into the cache before scanning")
	format    = flag.String("format", "table", "output format, table or tsv")
)

func main() {
	flag.Parse()

	if *filePath == "" || *schema == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logging.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		panic(err)
	}
	defer logger.Sync() // flushes buffer, if any

	if err := run(ctx, logger); err != nil {
		logger.Error("scan failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *zap.Logger) error {
	desc, err := heap.ParseTupleDesc(*schema)
	if err != nil {
		return err
	}

	catalog := heap.NewCatalog(logger)
	tableName := strings.TrimSuffix(filepath.Base(*filePath), filepath.Ext(*filePath))
	aTable, err := catalog.AddTable(tableName, *filePath, desc)
	if err != nil {
		return err
	}

	pool := heap.NewBufferPool(logger, catalog, heap.WithMaxCachedPages(*cacheSize))
	tid := heap.TransactionID(1)

	if *prefetch {
		numPages, err := aTable.File.NumPages()
		if err != nil {
			return err
		}
		pids := make([]heap.PageID, 0, numPages)
		for pageNo := range numPages {
			pids = append(pids, heap.PageID{TableID: aTable.File.TableID(), PageNo: pageNo})
		}
		loaded, err := pool.Prefetch(ctx, tid, pids)
		if err != nil {
			return err
		}
		logger.Debug("prefetched table", zap.String("table", aTable.Name), zap.Int("pages", loaded))
	}

	aScan := aTable.File.Scan(tid, pool)
	if err := aScan.Open(ctx); err != nil {
		return err
	}
	defer aScan.Close()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	printRow := func(aTuple *heap.Tuple) {
		fmt.Fprintln(out, aTuple.String())
	}
	switch *format {
	case "table":
		aWriter := util.NewTableWriter(out, desc)
		aWriter.Header()
		defer aWriter.End()
		printRow = aWriter.Row
	case "tsv":
		names := make([]string, 0, desc.NumFields())
		for _, anItem := range desc.Items() {
			names = append(names, anItem.String())
		}
		fmt.Fprintln(out, strings.Join(names, "\t"))
	default:
		return fmt.Errorf("unknown output format %q", *format)
	}

	count := 0
	for {
		ok, err := aScan.HasNext(ctx)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		aTuple, err := aScan.Next(ctx)
		if err != nil {
			return err
		}
		printRow(aTuple)
		count += 1
	}

	stats := pool.Stats()
	logger.Info("scan finished",
		zap.String("table", aTable.Name),
		zap.Int("tuples", count),
		zap.Uint64("cache_hits", stats.Hits),
		zap.Uint64("cache_misses", stats.Misses),
	)

	return nil
}
