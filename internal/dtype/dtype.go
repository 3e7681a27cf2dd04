// Package dtype defines the type tags carried by buffers and series.
//
// A DType describes the physical element layout of a column: primitive
// numeric and boolean tags plus the categorical extension type, which
// wraps an integer code dtype and a category list.
package dtype

import (
	"fmt"
	"strings"
)

// Kind classifies a dtype into its numeric family.
type Kind uint8

const (
	// KindInt covers signed integer dtypes.
	KindInt Kind = iota
	// KindUint covers unsigned integer dtypes.
	KindUint
	// KindFloat covers floating-point dtypes.
	KindFloat
	// KindBool covers the boolean dtype.
	KindBool
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// DType identifies the element type of a Buffer or Series.
type DType interface {
	// Name returns the canonical dtype name (e.g. "int64").
	Name() string
	// Size returns the element width in bytes.
	Size() int
	// Kind returns the numeric family of the dtype.
	Kind() Kind
	// Equal reports whether two dtypes describe the same element type.
	Equal(other DType) bool
}

// Primitive is a fixed-width scalar dtype.
type Primitive struct {
	name string
	size int
	kind Kind
}

// Primitive dtype tags. These are the only primitive instances; dtype
// equality for primitives is pointer identity.
var (
	Int8    = &Primitive{name: "int8", size: 1, kind: KindInt}
	Int32   = &Primitive{name: "int32", size: 4, kind: KindInt}
	Int64   = &Primitive{name: "int64", size: 8, kind: KindInt}
	Uint8   = &Primitive{name: "uint8", size: 1, kind: KindUint}
	Float32 = &Primitive{name: "float32", size: 4, kind: KindFloat}
	Float64 = &Primitive{name: "float64", size: 8, kind: KindFloat}
	Bool    = &Primitive{name: "bool", size: 1, kind: KindBool}
)

// Mask is the dtype of null-mask buffers: one byte holds eight validity bits.
var Mask = Uint8

// MaskBitsize is the number of validity bits packed into one mask element.
const MaskBitsize = 8

// Name returns the canonical dtype name.
func (p *Primitive) Name() string { return p.name }

// Size returns the element width in bytes.
func (p *Primitive) Size() int { return p.size }

// Kind returns the numeric family.
func (p *Primitive) Kind() Kind { return p.kind }

// Equal reports dtype identity.
func (p *Primitive) Equal(other DType) bool {
	o, ok := other.(*Primitive)
	return ok && o == p
}

// String implements fmt.Stringer.
func (p *Primitive) String() string { return p.name }

// IsNumeric reports whether dt is an integer, unsigned or floating dtype.
func IsNumeric(dt DType) bool {
	switch dt.Kind() {
	case KindInt, KindUint, KindFloat:
		return true
	default:
		return false
	}
}

// IsFloating reports whether dt is a floating-point dtype.
func IsFloating(dt DType) bool { return dt.Kind() == KindFloat }

// Categorical is the extension dtype for category-coded columns. The
// physical elements are integer codes into the category list; code -1
// marks a null row on ingestion.
type Categorical struct {
	codes      DType
	categories []string
	ordered    bool
}

// NewCategorical builds a categorical dtype over the given category list.
// codes must be a signed integer dtype.
func NewCategorical(categories []string, codes DType, ordered bool) (*Categorical, error) {
	if codes.Kind() != KindInt {
		return nil, fmt.Errorf("categorical codes must be a signed integer dtype, got %s", codes.Name())
	}
	cats := make([]string, len(categories))
	copy(cats, categories)
	return &Categorical{codes: codes, categories: cats, ordered: ordered}, nil
}

// Name returns a descriptive name including the category count.
func (c *Categorical) Name() string {
	return fmt.Sprintf("category[%d]", len(c.categories))
}

// Size returns the width of one code element.
func (c *Categorical) Size() int { return c.codes.Size() }

// Kind returns the family of the code dtype.
func (c *Categorical) Kind() Kind { return c.codes.Kind() }

// Codes returns the physical code dtype.
func (c *Categorical) Codes() DType { return c.codes }

// Categories returns the category list. The returned slice is shared and
// must not be mutated.
func (c *Categorical) Categories() []string { return c.categories }

// Ordered reports whether the categories carry a meaningful order.
func (c *Categorical) Ordered() bool { return c.ordered }

// Equal reports whether other is a categorical dtype with the same code
// dtype, category list and ordering.
func (c *Categorical) Equal(other DType) bool {
	o, ok := other.(*Categorical)
	if !ok || !c.codes.Equal(o.codes) || c.ordered != o.ordered {
		return false
	}
	if len(c.categories) != len(o.categories) {
		return false
	}
	for i, cat := range c.categories {
		if o.categories[i] != cat {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer.
func (c *Categorical) String() string {
	return fmt.Sprintf("category[%s; ordered=%t]", strings.Join(c.categories, ", "), c.ordered)
}

// IsCategorical reports whether dt is the categorical extension dtype.
func IsCategorical(dt DType) bool {
	_, ok := dt.(*Categorical)
	return ok
}

// Normalize maps a dtype to its canonical tag. Primitive tags pass through
// as-is; the categorical extension type is never normalized away.
func Normalize(dt DType) (DType, error) {
	switch dt.(type) {
	case *Primitive, *Categorical:
		return dt, nil
	default:
		return nil, fmt.Errorf("unknown dtype %T", dt)
	}
}

// FromName resolves a primitive dtype by its canonical name.
func FromName(name string) (DType, error) {
	switch name {
	case "int8":
		return Int8, nil
	case "int32":
		return Int32, nil
	case "int64":
		return Int64, nil
	case "uint8":
		return Uint8, nil
	case "float32":
		return Float32, nil
	case "float64":
		return Float64, nil
	case "bool":
		return Bool, nil
	default:
		return nil, fmt.Errorf("unknown dtype name %q", name)
	}
}
