package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldType_Len(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, Boolean.Len())
	assert.Equal(t, 4, Int4.Len())
	assert.Equal(t, 8, Int8.Len())
	assert.Equal(t, 4, Real.Len())
	assert.Equal(t, 8, Double.Len())
	assert.Equal(t, 4+MaxVarcharLength, Varchar.Len())
	assert.Equal(t, 0, FieldType(0).Len())
	assert.False(t, FieldType(99).IsValid())
}

func TestParseFieldType(t *testing.T) {
	t.Parallel()

	for _, aType := range allFieldTypes {
		parsed, err := ParseFieldType(aType.String())
		require.NoError(t, err)
		assert.Equal(t, aType, parsed)
	}

	parsed, err := ParseFieldType("string")
	require.NoError(t, err)
	assert.Equal(t, Varchar, parsed)

	_, err = ParseFieldType("blob")
	require.ErrorIs(t, err, ErrInvalidSchema)
}
