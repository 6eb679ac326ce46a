package heap

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Fields are encoded little endian at fixed width, varchars as a uint32
// length prefix followed by MaxVarcharLength zero padded bytes.

func marshalField(buf []byte, aType FieldType, value any) error {
	if len(buf) < aType.Len() {
		return fmt.Errorf("buffer of %d bytes too small for %s field", len(buf), aType)
	}

	switch aType {
	case Boolean:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: could not cast %T to bool", ErrInvalidTuple, value)
		}
		buf[0] = 0
		if b {
			buf[0] = 1
		}
	case Int4:
		n, ok := value.(int32)
		if !ok {
			return fmt.Errorf("%w: could not cast %T to int32", ErrInvalidTuple, value)
		}
		binary.LittleEndian.PutUint32(buf, uint32(n))
	case Int8:
		n, ok := value.(int64)
		if !ok {
			return fmt.Errorf("%w: could not cast %T to int64", ErrInvalidTuple, value)
		}
		binary.LittleEndian.PutUint64(buf, uint64(n))
	case Real:
		f, ok := value.(float32)
		if !ok {
			return fmt.Errorf("%w: could not cast %T to float32", ErrInvalidTuple, value)
		}
		binary.LittleEndian.PutUint32(buf, math.Float32bits(f))
	case Double:
		f, ok := value.(float64)
		if !ok {
			return fmt.Errorf("%w: could not cast %T to float64", ErrInvalidTuple, value)
		}
		binary.LittleEndian.PutUint64(buf, math.Float64bits(f))
	case Varchar:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: could not cast %T to string", ErrInvalidTuple, value)
		}
		if len(s) > MaxVarcharLength {
			return fmt.Errorf("%w: varchar of %d bytes exceeds %d", ErrInvalidTuple, len(s), MaxVarcharLength)
		}
		binary.LittleEndian.PutUint32(buf, uint32(len(s)))
		n := copy(buf[varcharLengthPrefixSize:], s)
		clear(buf[varcharLengthPrefixSize+n : aType.Len()])
	default:
		return fmt.Errorf("%w: unknown field type %d", ErrInvalidSchema, int(aType))
	}

	return nil
}

func unmarshalField(buf []byte, aType FieldType) (any, error) {
	if len(buf) < aType.Len() {
		return nil, fmt.Errorf("buffer of %d bytes too small for %s field", len(buf), aType)
	}

	switch aType {
	case Boolean:
		return buf[0] == 1, nil
	case Int4:
		return int32(binary.LittleEndian.Uint32(buf)), nil
	case Int8:
		return int64(binary.LittleEndian.Uint64(buf)), nil
	case Real:
		return math.Float32frombits(binary.LittleEndian.Uint32(buf)), nil
	case Double:
		return math.Float64frombits(binary.LittleEndian.Uint64(buf)), nil
	case Varchar:
		length := binary.LittleEndian.Uint32(buf)
		if length > MaxVarcharLength {
			return nil, fmt.Errorf("%w: varchar length prefix %d exceeds %d", ErrInvalidTuple, length, MaxVarcharLength)
		}
		return string(buf[varcharLengthPrefixSize : varcharLengthPrefixSize+length]), nil
	}

	return nil, fmt.Errorf("%w: unknown field type %d", ErrInvalidSchema, int(aType))
}
