package heap

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/RichardKnop/heapstore/pkg/lrucache"
)

const (
	DefaultMaxCachedPages = 50
	prefetchConcurrency   = 4
)

// FileProvider resolves a table ID to its heap file, Catalog implements it.
type FileProvider interface {
	File(TableID) (*HeapFile, error)
}

var (
	_ PageAccessor = (*BufferPool)(nil)
	_ FileProvider = (*Catalog)(nil)
	_ PageReader   = (*HeapFile)(nil)
)

type PoolStats struct {
	Hits   uint64
	Misses uint64
	Cached int
}

// BufferPool is a PageAccessor keeping recently used pages in an LRU cache.
// Permissions are accepted but not enforced, page locking is not done here.
type BufferPool struct {
	files  FileProvider
	pages  *lrucache.Cache[PageID, Page]
	hits   atomic.Uint64
	misses atomic.Uint64
	logger *zap.Logger
}

type bufferPoolConfig struct {
	maxCachedPages int
}

type BufferPoolOption func(*bufferPoolConfig)

func WithMaxCachedPages(maxPages int) BufferPoolOption {
	return func(c *bufferPoolConfig) {
		if maxPages > 0 {
			c.maxCachedPages = maxPages
		}
	}
}

func NewBufferPool(logger *zap.Logger, files FileProvider, opts ...BufferPoolOption) *BufferPool {
	if logger == nil {
		logger = zap.NewNop()
	}

	config := bufferPoolConfig{maxCachedPages: DefaultMaxCachedPages}
	for _, opt := range opts {
		opt(&config)
	}

	return &BufferPool{
		files: files,
		pages: lrucache.New[PageID, Page](config.maxCachedPages, func(pid PageID, _ Page) {
			logger.Debug("evicted page", zap.Stringer("page_id", pid))
		}),
		logger: logger,
	}
}

func (p *BufferPool) GetPage(ctx context.Context, tid TransactionID, pid PageID, perm Permission) (Page, error) {
	if aPage, ok := p.pages.Get(pid); ok {
		p.hits.Add(1)
		p.logger.Debug("page cache hit",
			zap.Stringer("page_id", pid),
			zap.Uint64("tx_id", uint64(tid)),
			zap.Stringer("perm", perm),
		)
		return aPage, nil
	}

	p.misses.Add(1)
	p.logger.Debug("page cache miss",
		zap.Stringer("page_id", pid),
		zap.Uint64("tx_id", uint64(tid)),
		zap.Stringer("perm", perm),
	)

	return p.load(ctx, pid)
}

// Prefetch loads the pages that are not cached yet, reading up to
// prefetchConcurrency pages in parallel. It returns how many pages were read.
func (p *BufferPool) Prefetch(ctx context.Context, tid TransactionID, pids []PageID) (int, error) {
	var (
		g, gctx = errgroup.WithContext(ctx)
		loaded  atomic.Int64
	)
	g.SetLimit(prefetchConcurrency)

	for _, pid := range pids {
		if _, ok := p.pages.Peek(pid); ok {
			continue
		}
		g.Go(func() error {
			if _, err := p.load(gctx, pid); err != nil {
				return err
			}
			loaded.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(loaded.Load()), err
	}

	p.logger.Debug("prefetched pages",
		zap.Int("requested", len(pids)),
		zap.Int64("loaded", loaded.Load()),
		zap.Uint64("tx_id", uint64(tid)),
	)

	return int(loaded.Load()), nil
}

func (p *BufferPool) load(ctx context.Context, pid PageID) (Page, error) {
	aFile, err := p.files.File(pid.TableID)
	if err != nil {
		return nil, err
	}

	aPage, err := aFile.ReadPage(ctx, pid)
	if err != nil {
		return nil, err
	}

	p.pages.Put(pid, aPage)

	return aPage, nil
}

// Discard drops a cached page so the next access reads it from disk again.
func (p *BufferPool) Discard(pid PageID) bool {
	return p.pages.Remove(pid)
}

// DiscardTable drops every cached page of the table.
func (p *BufferPool) DiscardTable(tableID TableID) int {
	return p.pages.RemoveFunc(func(pid PageID) bool {
		return pid.TableID == tableID
	})
}

func (p *BufferPool) Stats() PoolStats {
	return PoolStats{
		Hits:   p.hits.Load(),
		Misses: p.misses.Load(),
		Cached: p.pages.Len(),
	}
}
