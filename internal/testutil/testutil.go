// Package testutil provides shared testing helpers: allocator setup and
// standard test columns and tables used across the package test suites.
package testutil

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prajaktapitale29/pygdf/internal/dataframe"
	"github.com/prajaktapitale29/pygdf/internal/series"
)

const defaultRowCount = 8

// TestMemoryContext provides a memory allocator with cleanup.
type TestMemoryContext struct {
	Allocator memory.Allocator
	cleanup   func()
}

// Release performs cleanup of the memory context.
func (tmc *TestMemoryContext) Release() {
	if tmc.cleanup != nil {
		tmc.cleanup()
	}
}

// SetupMemoryTest creates a memory allocator for tests. Release with
// defer.
func SetupMemoryTest(tb testing.TB) *TestMemoryContext {
	tb.Helper()
	return &TestMemoryContext{
		Allocator: memory.NewGoAllocator(),
		cleanup:   func() {},
	}
}

// TestDataFrameOption configures test DataFrame creation.
type TestDataFrameOption func(*testDataFrameConfig)

type testDataFrameConfig struct {
	includeNulls    bool
	rowCount        int
	withCategorical bool
}

// WithNulls adds a masked float64 "score" column with every third row
// null.
func WithNulls() TestDataFrameOption {
	return func(cfg *testDataFrameConfig) {
		cfg.includeNulls = true
	}
}

// WithRowCount sets the number of rows in test data.
func WithRowCount(count int) TestDataFrameOption {
	return func(cfg *testDataFrameConfig) {
		cfg.rowCount = count
	}
}

// WithCategorical adds a categorical "grade" column.
func WithCategorical() TestDataFrameOption {
	return func(cfg *testDataFrameConfig) {
		cfg.withCategorical = true
	}
}

// CreateTestDataFrame creates a standard numeric test table.
//
// Default columns:
//   - id (int32): 0..n-1
//   - weight (float64): id * 0.5
//   - count (int64): id % 4
func CreateTestDataFrame(tb testing.TB, allocator memory.Allocator, opts ...TestDataFrameOption) *dataframe.DataFrame {
	tb.Helper()

	cfg := &testDataFrameConfig{rowCount: defaultRowCount}
	for _, opt := range opts {
		opt(cfg)
	}

	n := cfg.rowCount
	ids := make([]int32, n)
	weights := make([]float64, n)
	counts := make([]int64, n)
	for i := range n {
		ids[i] = int32(i)
		weights[i] = float64(i) * 0.5
		counts[i] = int64(i % 4)
	}

	df := dataframe.New(allocator)
	require.NoError(tb, df.AddColumn("id", ids))
	require.NoError(tb, df.AddColumn("weight", weights))
	require.NoError(tb, df.AddColumn("count", counts))

	if cfg.includeNulls {
		scores := make([]float64, n)
		valid := make([]bool, n)
		for i := range n {
			scores[i] = float64(i) * 10
			valid[i] = i%3 != 0
		}
		col, err := series.FromSliceWithValidity(scores, valid, allocator)
		require.NoError(tb, err)
		require.NoError(tb, df.AddColumn("score", col))
	}

	if cfg.withCategorical {
		codes := make([]int32, n)
		for i := range n {
			codes[i] = int32(i % 3)
		}
		col, err := series.FromCategorical(codes, []string{"low", "mid", "high"}, true, allocator)
		require.NoError(tb, err)
		require.NoError(tb, df.AddColumn("grade", col))
	}

	return df
}

// AssertSeriesValues compares a Series row by row against expected host
// values, with nil marking a null row.
func AssertSeriesValues(t *testing.T, col *series.Series, expected []any) {
	t.Helper()

	require.NotNil(t, col, "series should not be nil")
	require.Equal(t, len(expected), col.Len(), "series length should match")
	for i, want := range expected {
		got, err := col.At(i)
		require.NoError(t, err, "reading row %d", i)
		assert.Equal(t, want, got, "row %d should match", i)
	}
}

// AssertDataFrameHasColumns verifies the table has exactly the expected
// column names in order.
func AssertDataFrameHasColumns(t *testing.T, df *dataframe.DataFrame, expectedColumns []string) {
	t.Helper()

	require.NotNil(t, df, "DataFrame should not be nil")
	assert.Equal(t, expectedColumns, df.Columns(), "column order should match")
}
