package heap

import (
	"context"
)

type TransactionID uint64

// Permission is the access intent passed along with every page fetch.
type Permission int

const (
	ReadOnly Permission = iota + 1
	ReadWrite
)

func (p Permission) String() string {
	switch p {
	case ReadOnly:
		return "read_only"
	case ReadWrite:
		return "read_write"
	default:
		return "unknown"
	}
}

// PageAccessor hands out pages on behalf of a transaction, it is where
// caching and page locking live.
type PageAccessor interface {
	GetPage(ctx context.Context, tid TransactionID, pid PageID, perm Permission) (Page, error)
}

// PageReader reads a page straight from storage.
type PageReader interface {
	ReadPage(ctx context.Context, pid PageID) (Page, error)
}
