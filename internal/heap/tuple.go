package heap

import (
	"fmt"
	"strings"
)

// RecordID locates a stored tuple.
type RecordID struct {
	PageID PageID
	Slot   int
}

type Tuple struct {
	Desc   *TupleDesc
	Values []any
	// RecordID is nil for tuples that were never stored on a page
	RecordID *RecordID
}

// NewTuple creates a tuple after checking the values against the descriptor.
func NewTuple(desc *TupleDesc, values ...any) (*Tuple, error) {
	if desc == nil {
		return nil, fmt.Errorf("%w: nil tuple descriptor", ErrInvalidSchema)
	}
	if len(values) != desc.NumFields() {
		return nil, fmt.Errorf("%w: got %d values for %d fields", ErrInvalidTuple, len(values), desc.NumFields())
	}
	for i, value := range values {
		if err := checkValue(desc.items[i].Type, value); err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
	}
	return &Tuple{
		Desc:   desc,
		Values: values,
	}, nil
}

func checkValue(aType FieldType, value any) error {
	var ok bool
	switch aType {
	case Boolean:
		_, ok = value.(bool)
	case Int4:
		_, ok = value.(int32)
	case Int8:
		_, ok = value.(int64)
	case Real:
		_, ok = value.(float32)
	case Double:
		_, ok = value.(float64)
	case Varchar:
		var s string
		s, ok = value.(string)
		if ok && len(s) > MaxVarcharLength {
			return fmt.Errorf("%w: varchar of %d bytes exceeds %d", ErrInvalidTuple, len(s), MaxVarcharLength)
		}
	}
	if !ok {
		return fmt.Errorf("%w: value of type %T does not match %s", ErrInvalidTuple, value, aType)
	}
	return nil
}

// GetValue returns the value of the first field with the given name.
func (t *Tuple) GetValue(name string) (any, error) {
	idx, err := t.Desc.IndexOf(name)
	if err != nil {
		return nil, err
	}
	return t.Values[idx], nil
}

// Marshal writes the tuple into buf which must hold at least Desc.Size() bytes.
func (t *Tuple) Marshal(buf []byte) error {
	if len(buf) < t.Desc.Size() {
		return fmt.Errorf("buffer of %d bytes too small for tuple of %d bytes", len(buf), t.Desc.Size())
	}
	if len(t.Values) != t.Desc.NumFields() {
		return fmt.Errorf("%w: got %d values for %d fields", ErrInvalidTuple, len(t.Values), t.Desc.NumFields())
	}

	offset := 0
	for i, anItem := range t.Desc.items {
		if err := marshalField(buf[offset:], anItem.Type, t.Values[i]); err != nil {
			return fmt.Errorf("field %d: %w", i, err)
		}
		offset += anItem.Type.Len()
	}
	return nil
}

// UnmarshalTuple decodes one tuple of the given shape from the start of buf.
func UnmarshalTuple(desc *TupleDesc, buf []byte) (*Tuple, error) {
	if len(buf) < desc.Size() {
		return nil, fmt.Errorf("buffer of %d bytes too small for tuple of %d bytes", len(buf), desc.Size())
	}

	aTuple := &Tuple{
		Desc:   desc,
		Values: make([]any, 0, desc.NumFields()),
	}
	offset := 0
	for i, anItem := range desc.items {
		value, err := unmarshalField(buf[offset:], anItem.Type)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		aTuple.Values = append(aTuple.Values, value)
		offset += anItem.Type.Len()
	}
	return aTuple, nil
}

func (t *Tuple) String() string {
	parts := make([]string, 0, len(t.Values))
	for _, value := range t.Values {
		parts = append(parts, fmt.Sprint(value))
	}
	return strings.Join(parts, "\t")
}
