package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "without column",
			err:      New(KindCapacity, "Append", "insufficient space in buffer"),
			expected: "Append operation failed: insufficient space in buffer",
		},
		{
			name:     "with column",
			err:      NewColumn(KindNameConflict, "AddColumn", "price", "duplicated column name"),
			expected: "AddColumn operation failed on column 'price': duplicated column name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestSentinelMatching(t *testing.T) {
	err := Newf(KindSizeMismatch, "AddColumn", "column size %d does not match row count %d", 3, 5)

	assert.ErrorIs(t, err, ErrSizeMismatch)
	assert.NotErrorIs(t, err, ErrCapacity)
	assert.NotErrorIs(t, err, stderrors.New("other"))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("parse failure")
	err := Wrap(KindType, "New", cause)

	require.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrType)
	assert.Equal(t, "parse failure", err.Message)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindIndex, KindOf(New(KindIndex, "At", "out of range")))
	assert.Equal(t, KindLayout, KindOf(fmt.Errorf("outer: %w", New(KindLayout, "FromBytes", "remainder"))))
	assert.Equal(t, KindUnknown, KindOf(stderrors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "capacity", KindCapacity.String())
	assert.Equal(t, "column mismatch", KindColumnMismatch.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
