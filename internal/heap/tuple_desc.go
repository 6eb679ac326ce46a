package heap

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"
)

// FieldItem is a single typed, optionally named field of a TupleDesc.
// An empty Name means the field is anonymous.
type FieldItem struct {
	Type FieldType
	Name string
}

func (i FieldItem) String() string {
	return fmt.Sprintf("%s(%s)", i.Type, i.Name)
}

// TupleDesc describes the shape of a tuple: an ordered, fixed length list
// of field types with optional names. A TupleDesc is immutable.
type TupleDesc struct {
	items []FieldItem
	size  int
}

// NewTupleDesc creates a descriptor from field types and optional names.
// A nil names slice makes every field anonymous, otherwise it must have
// the same length as types and empty strings mark anonymous fields.
func NewTupleDesc(types []FieldType, names []string) (*TupleDesc, error) {
	if len(types) == 0 {
		return nil, fmt.Errorf("%w: at least one field type is required", ErrInvalidSchema)
	}
	if names != nil && len(names) != len(types) {
		return nil, fmt.Errorf("%w: got %d names for %d types", ErrInvalidSchema, len(names), len(types))
	}

	td := &TupleDesc{
		items: make([]FieldItem, 0, len(types)),
	}
	for i, aType := range types {
		if !aType.IsValid() {
			return nil, fmt.Errorf("%w: field %d has unknown type %d", ErrInvalidSchema, i, int(aType))
		}
		anItem := FieldItem{Type: aType}
		if names != nil {
			anItem.Name = names[i]
		}
		td.items = append(td.items, anItem)
		td.size += aType.Len()
	}

	return td, nil
}

// MustNewTupleDesc is like NewTupleDesc but panics on error.
func MustNewTupleDesc(types []FieldType, names []string) *TupleDesc {
	td, err := NewTupleDesc(types, names)
	if err != nil {
		panic(err)
	}
	return td
}

// ParseTupleDesc parses a comma separated schema such as
// "int8:id,varchar:email,double". A field without a name is anonymous.
func ParseTupleDesc(schema string) (*TupleDesc, error) {
	var (
		types []FieldType
		names []string
	)
	for _, field := range strings.Split(schema, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			return nil, fmt.Errorf("%w: empty field in schema %q", ErrInvalidSchema, schema)
		}
		typeName, name, _ := strings.Cut(field, ":")
		aType, err := ParseFieldType(strings.ToLower(strings.TrimSpace(typeName)))
		if err != nil {
			return nil, err
		}
		types = append(types, aType)
		names = append(names, strings.TrimSpace(name))
	}
	return NewTupleDesc(types, names)
}

// Merge returns a new descriptor with the fields of a followed by the fields of b.
// A nil descriptor contributes no fields.
func Merge(a, b *TupleDesc) *TupleDesc {
	merged := &TupleDesc{
		items: make([]FieldItem, 0, a.NumFields()+b.NumFields()),
		size:  a.Size() + b.Size(),
	}
	if a != nil {
		merged.items = append(merged.items, a.items...)
	}
	if b != nil {
		merged.items = append(merged.items, b.items...)
	}
	return merged
}

func (td *TupleDesc) NumFields() int {
	if td == nil {
		return 0
	}
	return len(td.items)
}

// Size returns the number of bytes a tuple of this shape occupies.
func (td *TupleDesc) Size() int {
	if td == nil {
		return 0
	}
	return td.size
}

func (td *TupleDesc) FieldName(i int) (string, error) {
	if i < 0 || i >= len(td.items) {
		return "", fmt.Errorf("%w: index %d, number of fields: %d", ErrNoSuchField, i, len(td.items))
	}
	return td.items[i].Name, nil
}

func (td *TupleDesc) FieldType(i int) (FieldType, error) {
	if i < 0 || i >= len(td.items) {
		return 0, fmt.Errorf("%w: index %d, number of fields: %d", ErrNoSuchField, i, len(td.items))
	}
	return td.items[i].Type, nil
}

// IndexOf returns the index of the first field with exactly the given name.
// Anonymous fields never match.
func (td *TupleDesc) IndexOf(name string) (int, error) {
	if name != "" {
		for i, anItem := range td.items {
			if anItem.Name == name {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrNoSuchField, name)
}

// Items returns a copy of the field items.
func (td *TupleDesc) Items() []FieldItem {
	items := make([]FieldItem, len(td.items))
	copy(items, td.items)
	return items
}

// Equal reports structural equality: same number of fields, same size and
// the same type at every position. Field names are ignored.
func (td *TupleDesc) Equal(other *TupleDesc) bool {
	if td == other {
		return true
	}
	if td == nil || other == nil {
		return false
	}
	if td.size != other.size || len(td.items) != len(other.items) {
		return false
	}
	for i := range td.items {
		if td.items[i].Type != other.items[i].Type {
			return false
		}
	}
	return true
}

// Hash combines exactly the properties compared by Equal, so structurally
// equal descriptors always hash to the same value.
func (td *TupleDesc) Hash() uint64 {
	h := fnv.New64a()

	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(td.NumFields()))
	h.Write(buf)
	binary.LittleEndian.PutUint64(buf, uint64(td.Size()))
	h.Write(buf)
	if td == nil {
		return h.Sum64()
	}
	for _, anItem := range td.items {
		binary.LittleEndian.PutUint64(buf, uint64(anItem.Type))
		h.Write(buf)
	}

	return h.Sum64()
}

func (td *TupleDesc) String() string {
	parts := make([]string, 0, len(td.items))
	for _, anItem := range td.items {
		parts = append(parts, anItem.String())
	}
	return strings.Join(parts, ",")
}
