package heap

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// HeapFile stores an unordered collection of tuples in a file made of
// PageSize pages. Page n lives at byte offset n*PageSize.
//
// A HeapFile keeps no open file handle: every ReadPage opens and closes
// the file, so concurrent reads are safe.
type HeapFile struct {
	path    string
	desc    *TupleDesc
	tableID TableID
	decoder PageDecoder
	logger  *zap.Logger
}

type HeapFileOption func(*HeapFile)

// WithTableID overrides the table ID derived from the file path,
// the Catalog uses it to hand out registry issued IDs.
func WithTableID(tableID TableID) HeapFileOption {
	return func(f *HeapFile) {
		f.tableID = tableID
	}
}

func WithPageDecoder(decoder PageDecoder) HeapFileOption {
	return func(f *HeapFile) {
		if decoder != nil {
			f.decoder = decoder
		}
	}
}

func NewHeapFile(logger *zap.Logger, path string, desc *TupleDesc, opts ...HeapFileOption) (*HeapFile, error) {
	if desc == nil {
		return nil, fmt.Errorf("%w: nil tuple descriptor", ErrInvalidSchema)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %q: %w", path, err)
	}

	aFile := &HeapFile{
		path:    absPath,
		desc:    desc,
		tableID: TableIDFromPath(absPath),
		decoder: DecodeHeapPage,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(aFile)
	}

	return aFile, nil
}

// TableIDFromPath derives a table ID from the absolute path of a file.
// Distinct paths may collide, register tables in a Catalog when that matters.
func TableIDFromPath(absPath string) TableID {
	h := fnv.New32a()
	h.Write([]byte(filepath.Clean(absPath)))
	return TableID(h.Sum32())
}

func (f *HeapFile) TableID() TableID {
	return f.tableID
}

func (f *HeapFile) TupleDesc() *TupleDesc {
	return f.desc
}

func (f *HeapFile) Path() string {
	return f.path
}

// NumPages returns ceil(file size / PageSize) for the current file size.
func (f *HeapFile) NumPages() (int, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		return 0, fmt.Errorf("%w: stat %s: %w", ErrIOFailure, f.path, err)
	}
	return int((info.Size() + PageSize - 1) / PageSize), nil
}

// ReadPage reads exactly PageSize bytes of the page from disk and decodes them.
func (f *HeapFile) ReadPage(ctx context.Context, pid PageID) (Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if pid.TableID != f.tableID {
		return nil, fmt.Errorf("%w: page %s requested from table %d", ErrUnknownTable, pid, f.tableID)
	}

	numPages, err := f.NumPages()
	if err != nil {
		return nil, err
	}
	if pid.PageNo < 0 || pid.PageNo >= numPages {
		return nil, fmt.Errorf("%w: page %d, number of pages: %d", ErrPageOutOfRange, pid.PageNo, numPages)
	}

	buf, err := f.readPageData(pid)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("read page",
		zap.Uint32("table_id", uint32(pid.TableID)),
		zap.Int("page_no", pid.PageNo),
	)

	aPage, err := f.decoder(pid, f.desc, buf)
	if err != nil {
		return nil, fmt.Errorf("error decoding page %s: %w", pid, err)
	}
	return aPage, nil
}

func (f *HeapFile) readPageData(pid PageID) ([]byte, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrIOFailure, f.path, err)
	}
	defer file.Close()

	buf := make([]byte, PageSize)
	n, err := file.ReadAt(buf, pid.Offset())
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w: page %d has %d of %d bytes", ErrIOFailure, ErrTruncatedPage, pid.PageNo, n, PageSize)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read page %d: %w", ErrIOFailure, pid.PageNo, err)
	}

	return buf, nil
}

// WritePage is not supported, pages are persisted by the layer that owns page caching.
func (f *HeapFile) WritePage(ctx context.Context, aPage Page) error {
	return fmt.Errorf("%w: write page to table %d", ErrUnsupported, f.tableID)
}

// InsertTuple is not supported, mutations go through the page cache and locking layer.
func (f *HeapFile) InsertTuple(ctx context.Context, tid TransactionID, aTuple *Tuple) ([]Page, error) {
	return nil, fmt.Errorf("%w: insert tuple into table %d", ErrUnsupported, f.tableID)
}

// DeleteTuple is not supported, mutations go through the page cache and locking layer.
func (f *HeapFile) DeleteTuple(ctx context.Context, tid TransactionID, aTuple *Tuple) (Page, error) {
	return nil, fmt.Errorf("%w: delete tuple from table %d", ErrUnsupported, f.tableID)
}

// Scan returns a closed scan over every tuple in the file, Open must be
// called before iterating.
func (f *HeapFile) Scan(tid TransactionID, accessor PageAccessor) *Scan {
	return newScan(f, tid, accessor)
}
