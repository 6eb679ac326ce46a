package heap

import (
	"errors"
	"fmt"

	"github.com/RichardKnop/heapstore/pkg/bitwise"
)

var ErrPageFull = errors.New("page full")

// HeapPage is the default page layout: a slot bitmap header followed by
// fixed size tuple slots.
//
//	+------------------------+--------+--------+-----+--------+---------+
//	| header (numSlots bits) | slot 0 | slot 1 | ... | slot n | padding |
//	+------------------------+--------+--------+-----+--------+---------+
//
// Every tuple takes Desc.Size() bytes plus one header bit, hence
// numSlots = floor(PageSize*8 / (tupleSize*8 + 1)).
type HeapPage struct {
	id       PageID
	desc     *TupleDesc
	numSlots int
	header   bitwise.Bitmap
	slots    []*Tuple
}

// HeapPageSlots returns how many tuples of the given shape fit on one page,
// zero when a single tuple and its header bit exceed PageSize.
func HeapPageSlots(desc *TupleDesc) int {
	return (PageSize * 8) / (desc.Size()*8 + 1)
}

func NewEmptyHeapPage(pid PageID, desc *TupleDesc) *HeapPage {
	numSlots := HeapPageSlots(desc)
	return &HeapPage{
		id:       pid,
		desc:     desc,
		numSlots: numSlots,
		header:   make(bitwise.Bitmap, bitwise.BytesFor(numSlots)),
		slots:    make([]*Tuple, numSlots),
	}
}

// DecodeHeapPage is the PageDecoder for HeapPage formatted files.
func DecodeHeapPage(pid PageID, desc *TupleDesc, buf []byte) (Page, error) {
	aPage, err := UnmarshalHeapPage(pid, desc, buf)
	if err != nil {
		return nil, err
	}
	return aPage, nil
}

func UnmarshalHeapPage(pid PageID, desc *TupleDesc, buf []byte) (*HeapPage, error) {
	if len(buf) != PageSize {
		return nil, fmt.Errorf("%w: page %s has %d bytes, expected %d", ErrTruncatedPage, pid, len(buf), PageSize)
	}

	aPage := NewEmptyHeapPage(pid, desc)
	headerSize := len(aPage.header)
	copy(aPage.header, buf[:headerSize])

	tupleSize := desc.Size()
	for slot := 0; slot < aPage.numSlots; slot++ {
		if !aPage.header.IsSet(slot) {
			continue
		}
		offset := headerSize + slot*tupleSize
		aTuple, err := UnmarshalTuple(desc, buf[offset:offset+tupleSize])
		if err != nil {
			return nil, fmt.Errorf("error unmarshaling page %s slot %d: %w", pid, slot, err)
		}
		aTuple.RecordID = &RecordID{PageID: pid, Slot: slot}
		aPage.slots[slot] = aTuple
	}

	return aPage, nil
}

func (p *HeapPage) ID() PageID {
	return p.id
}

func (p *HeapPage) NumSlots() int {
	return p.numSlots
}

func (p *HeapPage) NumTuples() int {
	return p.header.Count(p.numSlots)
}

func (p *HeapPage) NumEmptySlots() int {
	return p.numSlots - p.NumTuples()
}

// AddTuple stores the tuple in the first free slot and sets its RecordID.
func (p *HeapPage) AddTuple(aTuple *Tuple) error {
	if !p.desc.Equal(aTuple.Desc) {
		return fmt.Errorf("%w: tuple shape %s does not match page shape %s", ErrInvalidTuple, aTuple.Desc, p.desc)
	}
	for slot := 0; slot < p.numSlots; slot++ {
		if p.header.IsSet(slot) {
			continue
		}
		p.header.Set(slot)
		p.slots[slot] = aTuple
		aTuple.RecordID = &RecordID{PageID: p.id, Slot: slot}
		return nil
	}
	return fmt.Errorf("%w: page %s has no empty slots", ErrPageFull, p.id)
}

func (p *HeapPage) Marshal() ([]byte, error) {
	buf := make([]byte, PageSize)
	headerSize := copy(buf, p.header)

	tupleSize := p.desc.Size()
	for slot, aTuple := range p.slots {
		if aTuple == nil {
			continue
		}
		offset := headerSize + slot*tupleSize
		if err := aTuple.Marshal(buf[offset : offset+tupleSize]); err != nil {
			return nil, fmt.Errorf("error marshaling page %s slot %d: %w", p.id, slot, err)
		}
	}

	return buf, nil
}

// Iterator returns tuples in slot order.
func (p *HeapPage) Iterator() TupleIterator {
	tuples := make([]*Tuple, 0, len(p.slots))
	for _, aTuple := range p.slots {
		if aTuple != nil {
			tuples = append(tuples, aTuple)
		}
	}
	return &sliceIterator{tuples: tuples}
}

type sliceIterator struct {
	tuples []*Tuple
	idx    int
}

func (it *sliceIterator) HasNext() bool {
	return it.idx < len(it.tuples)
}

func (it *sliceIterator) Next() (*Tuple, error) {
	if !it.HasNext() {
		return nil, ErrNoMoreElements
	}
	aTuple := it.tuples[it.idx]
	it.idx += 1
	return aTuple, nil
}
