package heap

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type scanState int

const (
	scanClosed scanState = iota
	scanOpen
	scanExhausted
)

func (s scanState) String() string {
	switch s {
	case scanClosed:
		return "closed"
	case scanOpen:
		return "open"
	case scanExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Scan iterates over all tuples of a heap file in page order. Pages are
// fetched through a PageAccessor with the scan's transaction ID and
// ReadWrite permission. A Scan is not safe for concurrent use.
//
//	closed --Open--> open --last tuple consumed--> exhausted
//	open/exhausted --Rewind--> open (page 0)
//	any --Close--> closed
type Scan struct {
	file     *HeapFile
	tid      TransactionID
	accessor PageAccessor

	pageNo int
	cursor TupleIterator
	state  scanState
}

func newScan(aFile *HeapFile, tid TransactionID, accessor PageAccessor) *Scan {
	if accessor == nil {
		accessor = directAccessor{reader: aFile}
	}
	return &Scan{
		file:     aFile,
		tid:      tid,
		accessor: accessor,
		state:    scanClosed,
	}
}

// Open positions the scan before the first tuple of page 0. Opening an
// already open scan starts it over. On error the scan keeps its previous state.
func (s *Scan) Open(ctx context.Context) error {
	numPages, err := s.file.NumPages()
	if err != nil {
		return err
	}

	if numPages == 0 {
		s.pageNo = 0
		s.cursor = nil
		s.state = scanExhausted
		return nil
	}

	cursor, err := s.fetch(ctx, 0)
	if err != nil {
		return err
	}

	s.pageNo = 0
	s.cursor = cursor
	s.state = scanOpen

	return nil
}

// HasNext reports whether Next would return a tuple. It may fetch following
// pages to skip over empty ones.
func (s *Scan) HasNext(ctx context.Context) (bool, error) {
	if s.state == scanClosed {
		return false, ErrScanNotOpen
	}
	return s.advance(ctx)
}

func (s *Scan) Next(ctx context.Context) (*Tuple, error) {
	if s.state == scanClosed {
		return nil, ErrScanNotOpen
	}

	ok, err := s.advance(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoMoreElements
	}

	return s.cursor.Next()
}

// Rewind starts the scan over from the first tuple of page 0.
func (s *Scan) Rewind(ctx context.Context) error {
	if s.state == scanClosed {
		return ErrScanNotOpen
	}
	return s.Open(ctx)
}

// Close invalidates the scan, closing a closed scan is a no-op.
func (s *Scan) Close() error {
	s.pageNo = 0
	s.cursor = nil
	s.state = scanClosed
	return nil
}

func (s *Scan) IsOpen() bool {
	return s.state != scanClosed
}

// PageNo returns the page the scan is currently positioned on.
func (s *Scan) PageNo() int {
	return s.pageNo
}

// advance makes sure the cursor points at a page with a remaining tuple,
// moving forward one page at a time.
func (s *Scan) advance(ctx context.Context) (bool, error) {
	for s.state == scanOpen {
		if s.cursor.HasNext() {
			return true, nil
		}

		numPages, err := s.file.NumPages()
		if err != nil {
			return false, err
		}
		if s.pageNo+1 >= numPages {
			s.state = scanExhausted
			break
		}

		cursor, err := s.fetch(ctx, s.pageNo+1)
		if err != nil {
			return false, err
		}
		s.pageNo += 1
		s.cursor = cursor

		s.file.logger.Debug("scan moved to next page",
			zap.Uint32("table_id", uint32(s.file.tableID)),
			zap.Int("page_no", s.pageNo),
			zap.Uint64("tx_id", uint64(s.tid)),
		)
	}

	return false, nil
}

func (s *Scan) fetch(ctx context.Context, pageNo int) (TupleIterator, error) {
	pid := PageID{TableID: s.file.tableID, PageNo: pageNo}
	aPage, err := s.accessor.GetPage(ctx, s.tid, pid, ReadWrite)
	if err != nil {
		return nil, fmt.Errorf("error fetching page %s: %w", pid, err)
	}
	return aPage.Iterator(), nil
}

// directAccessor reads pages straight from the file, for scans that run
// without a page cache.
type directAccessor struct {
	reader PageReader
}

func (a directAccessor) GetPage(ctx context.Context, _ TransactionID, pid PageID, _ Permission) (Page, error) {
	return a.reader.ReadPage(ctx, pid)
}
