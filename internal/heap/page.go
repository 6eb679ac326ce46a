package heap

import (
	"fmt"
)

const (
	PageSize = 4096 // 4 kilobytes
)

type TableID uint32

// PageID identifies a page by its table and its page number within the table's file.
type PageID struct {
	TableID TableID
	PageNo  int
}

func (pid PageID) Offset() int64 {
	return int64(pid.PageNo) * PageSize
}

func (pid PageID) String() string {
	return fmt.Sprintf("%d:%d", pid.TableID, pid.PageNo)
}

// Page is a decoded page. The layout of tuples inside a page belongs to
// the page implementation, the heap file only hands it raw bytes.
type Page interface {
	ID() PageID
	NumTuples() int
	Iterator() TupleIterator
}

// TupleIterator walks over the tuples stored on a single page.
type TupleIterator interface {
	HasNext() bool
	Next() (*Tuple, error)
}

// PageDecoder turns PageSize raw bytes read from a table file into a Page.
type PageDecoder func(pid PageID, desc *TupleDesc, buf []byte) (Page, error)
