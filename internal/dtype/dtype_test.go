package dtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveProperties(t *testing.T) {
	tests := []struct {
		dt   DType
		name string
		size int
		kind Kind
	}{
		{dt: Int8, name: "int8", size: 1, kind: KindInt},
		{dt: Int32, name: "int32", size: 4, kind: KindInt},
		{dt: Int64, name: "int64", size: 8, kind: KindInt},
		{dt: Uint8, name: "uint8", size: 1, kind: KindUint},
		{dt: Float32, name: "float32", size: 4, kind: KindFloat},
		{dt: Float64, name: "float64", size: 8, kind: KindFloat},
		{dt: Bool, name: "bool", size: 1, kind: KindBool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.dt.Name())
			assert.Equal(t, tt.size, tt.dt.Size())
			assert.Equal(t, tt.kind, tt.dt.Kind())
			assert.True(t, tt.dt.Equal(tt.dt))
		})
	}
}

func TestPrimitiveEqualIsIdentity(t *testing.T) {
	assert.False(t, Int8.Equal(Uint8), "same width, different tags")
	assert.False(t, Int32.Equal(Int64))
	assert.False(t, Float64.Equal(Int64))
}

func TestFromName(t *testing.T) {
	dt, err := FromName("float64")
	require.NoError(t, err)
	assert.True(t, dt.Equal(Float64))

	_, err = FromName("complex128")
	assert.Error(t, err)
}

func TestNewCategorical(t *testing.T) {
	ct, err := NewCategorical([]string{"a", "b", "c"}, Int32, false)
	require.NoError(t, err)
	assert.Equal(t, "category[3]", ct.Name())
	assert.Equal(t, 4, ct.Size())
	assert.Equal(t, []string{"a", "b", "c"}, ct.Categories())
	assert.False(t, ct.Ordered())
	assert.True(t, ct.Codes().Equal(Int32))
}

func TestNewCategoricalRejectsUnsignedCodes(t *testing.T) {
	_, err := NewCategorical([]string{"a"}, Uint8, false)
	assert.Error(t, err)

	_, err = NewCategorical([]string{"a"}, Float64, false)
	assert.Error(t, err)
}

func TestCategoricalEqual(t *testing.T) {
	a, err := NewCategorical([]string{"x", "y"}, Int32, true)
	require.NoError(t, err)
	b, err := NewCategorical([]string{"x", "y"}, Int32, true)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	differentCats, err := NewCategorical([]string{"x", "z"}, Int32, true)
	require.NoError(t, err)
	assert.False(t, a.Equal(differentCats))

	unordered, err := NewCategorical([]string{"x", "y"}, Int32, false)
	require.NoError(t, err)
	assert.False(t, a.Equal(unordered))

	assert.False(t, a.Equal(Int32))
}

func TestClassifiers(t *testing.T) {
	ct, err := NewCategorical([]string{"a"}, Int32, false)
	require.NoError(t, err)

	assert.True(t, IsNumeric(Int64))
	assert.True(t, IsNumeric(Uint8))
	assert.True(t, IsNumeric(Float32))
	assert.False(t, IsNumeric(Bool))

	assert.True(t, IsFloating(Float64))
	assert.False(t, IsFloating(Int64))

	assert.True(t, IsCategorical(ct))
	assert.False(t, IsCategorical(Int32))
}

func TestCategoricalCopiesCategoryList(t *testing.T) {
	cats := []string{"a", "b"}
	ct, err := NewCategorical(cats, Int32, false)
	require.NoError(t, err)

	cats[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, ct.Categories())
}
