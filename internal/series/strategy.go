package series

import (
	"fmt"

	"github.com/prajaktapitale29/pygdf/internal/compute"
	"github.com/prajaktapitale29/pygdf/internal/dtype"
	"github.com/prajaktapitale29/pygdf/internal/errors"
)

// strategy is the dtype-specific behavior a Series delegates to:
// stringification, ordered and unordered comparison, and the categorical
// accessor. Implementations are pure and never mutate the Series.
type strategy interface {
	elementToString(v any) string
	unorderedCompare(op compute.Op, lhs, rhs *Series) (*Series, error)
	orderedCompare(op compute.Op, lhs, rhs *Series) (*Series, error)
	cat(s *Series) (*CatAccessor, error)
}

// numericalStrategy compares by value and prints scalars directly.
type numericalStrategy struct {
	dt dtype.DType
}

func (numericalStrategy) elementToString(v any) string {
	return fmt.Sprintf("%v", v)
}

func (numericalStrategy) unorderedCompare(op compute.Op, lhs, rhs *Series) (*Series, error) {
	return lhs.compareOp(op, rhs)
}

func (numericalStrategy) orderedCompare(op compute.Op, lhs, rhs *Series) (*Series, error) {
	return lhs.compareOp(op, rhs)
}

func (numericalStrategy) cat(*Series) (*CatAccessor, error) {
	return nil, errors.New(errors.KindType, "Cat", "not a categorical series")
}

// categoricalStrategy compares by category-code identity. Ordered
// comparison is only defined when the dtype's categories are ordered.
type categoricalStrategy struct {
	ct *dtype.Categorical
}

func (c categoricalStrategy) elementToString(v any) string {
	code := int(scalarToFloat(v))
	cats := c.ct.Categories()
	if code < 0 || code >= len(cats) {
		return fmt.Sprintf("<invalid code %d>", code)
	}
	return cats[code]
}

func (c categoricalStrategy) unorderedCompare(op compute.Op, lhs, rhs *Series) (*Series, error) {
	if err := c.sentrySameCategories(rhs); err != nil {
		return nil, err
	}
	return lhs.compareOp(op, rhs)
}

func (c categoricalStrategy) orderedCompare(op compute.Op, lhs, rhs *Series) (*Series, error) {
	if !c.ct.Ordered() {
		return nil, errors.New(errors.KindType, "Compare", "unordered categoricals cannot be compared by order")
	}
	if err := c.sentrySameCategories(rhs); err != nil {
		return nil, err
	}
	return lhs.compareOp(op, rhs)
}

func (c categoricalStrategy) cat(s *Series) (*CatAccessor, error) {
	return &CatAccessor{s: s, ct: c.ct}, nil
}

func (c categoricalStrategy) sentrySameCategories(rhs *Series) error {
	if !c.ct.Equal(rhs.dt) {
		return errors.New(errors.KindType, "Compare", "categoricals with different categories cannot be compared")
	}
	return nil
}

// CatAccessor exposes the categorical view of a Series.
type CatAccessor struct {
	s  *Series
	ct *dtype.Categorical
}

// Categories returns the category list.
func (a *CatAccessor) Categories() []string { return a.ct.Categories() }

// Ordered reports whether the categories are ordered.
func (a *CatAccessor) Ordered() bool { return a.ct.Ordered() }

// Codes returns the underlying code column as a plain numerical Series
// sharing the same data and mask buffers.
func (a *CatAccessor) Codes() (*Series, error) {
	f := a.s.fields()
	f.dt = a.ct.Codes()
	f.impl = numericalStrategy{dt: f.dt}
	return construct(f, a.s.mem)
}

func scalarToFloat(v any) float64 {
	switch x := v.(type) {
	case int8:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint8:
		return float64(x)
	case float32:
		return float64(x)
	case float64:
		return x
	case bool:
		if x {
			return 1
		}
		return 0
	default:
		return 0
	}
}
