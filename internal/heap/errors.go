package heap

import (
	"errors"
)

var (
	ErrInvalidSchema  = errors.New("invalid schema")
	ErrNoSuchField    = errors.New("no such field")
	ErrInvalidTuple   = errors.New("invalid tuple")
	ErrPageOutOfRange = errors.New("page out of range")
	ErrIOFailure      = errors.New("io failure")
	ErrTruncatedPage  = errors.New("truncated page")
	ErrUnknownTable   = errors.New("unknown table")
	ErrTableExists    = errors.New("table already exists")
	ErrInvalidTable   = errors.New("invalid table name")
	ErrScanNotOpen    = errors.New("scan not open")
	ErrNoMoreElements = errors.New("no more elements")
	ErrUnsupported    = errors.New("unsupported operation")
)
