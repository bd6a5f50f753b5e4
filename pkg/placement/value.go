package placement

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/multibody-modeling/mbm-go/pkg/feature"
)

// Value errors.
var (
	ErrInvalidValue = errors.New("invalid placement value")
	ErrValueArity   = errors.New("wrong number of placement components")
)

// Value is a concrete placement for one feature.
type Value interface {
	// PlacementType returns the placement type this value satisfies.
	PlacementType() feature.PlacementType

	// Components flattens the value into numbers, in declaration order.
	Components() []float64

	String() string
}

// Bool is a boolean placement.
type Bool bool

// Int is an integer placement.
type Int int64

// Real is a scalar placement.
type Real float64

// Vec3 is a bare three-component vector.
type Vec3 [3]float64

// Station is a point location, measured from the parent frame's origin.
type Station Vec3

// Direction is a unit vector.
type Direction Vec3

// Orientation is a rotation matrix stored by rows.
type Orientation [3][3]float64

// Frame is an orientation together with an origin.
type Frame struct {
	Orientation Orientation
	Origin      Station
}

// Identity returns the identity orientation.
func Identity() Orientation {
	return Orientation{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// GroundFrame returns the frame with identity orientation at the origin.
func GroundFrame() Frame {
	return Frame{Orientation: Identity()}
}

// NewDirection normalizes v into a Direction. The zero vector has no
// direction.
func NewDirection(v Vec3) (Direction, error) {
	n := v.Norm()
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return Direction{}, fmt.Errorf("%w: direction %v has no length", ErrInvalidValue, v)
	}
	return Direction{v[0] / n, v[1] / n, v[2] / n}, nil
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func (Bool) PlacementType() feature.PlacementType        { return feature.PlacementBool }
func (Int) PlacementType() feature.PlacementType         { return feature.PlacementInt }
func (Real) PlacementType() feature.PlacementType        { return feature.PlacementReal }
func (Vec3) PlacementType() feature.PlacementType        { return feature.PlacementVec3 }
func (Station) PlacementType() feature.PlacementType     { return feature.PlacementStation }
func (Direction) PlacementType() feature.PlacementType   { return feature.PlacementDirection }
func (Orientation) PlacementType() feature.PlacementType { return feature.PlacementOrientation }
func (Frame) PlacementType() feature.PlacementType       { return feature.PlacementFrame }

func (v Bool) Components() []float64 {
	if v {
		return []float64{1}
	}
	return []float64{0}
}
func (v Int) Components() []float64       { return []float64{float64(v)} }
func (v Real) Components() []float64      { return []float64{float64(v)} }
func (v Vec3) Components() []float64      { return []float64{v[0], v[1], v[2]} }
func (v Station) Components() []float64   { return Vec3(v).Components() }
func (v Direction) Components() []float64 { return Vec3(v).Components() }

func (v Orientation) Components() []float64 {
	out := make([]float64, 0, 9)
	for _, row := range v {
		out = append(out, row[:]...)
	}
	return out
}

func (v Frame) Components() []float64 {
	return append(v.Orientation.Components(), v.Origin.Components()...)
}

func (v Bool) String() string      { return strconv.FormatBool(bool(v)) }
func (v Int) String() string       { return strconv.FormatInt(int64(v), 10) }
func (v Real) String() string      { return formatFloat(float64(v)) }
func (v Vec3) String() string      { return formatComponents(v.Components()) }
func (v Station) String() string   { return Vec3(v).String() }
func (v Direction) String() string { return Vec3(v).String() }

func (v Orientation) String() string {
	rows := make([]string, 3)
	for i, row := range v {
		rows[i] = formatComponents(row[:])
	}
	return "[" + strings.Join(rows, " ") + "]"
}

func (v Frame) String() string {
	return fmt.Sprintf("{R=%s p=%s}", v.Orientation, v.Origin)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatComponents(c []float64) string {
	parts := make([]string, len(c))
	for i, f := range c {
		parts[i] = formatFloat(f)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Arity returns the number of components a value of type pt flattens to, or
// 0 for PlacementInvalid.
func Arity(pt feature.PlacementType) int {
	switch pt {
	case feature.PlacementBool, feature.PlacementInt, feature.PlacementReal:
		return 1
	case feature.PlacementVec3, feature.PlacementStation, feature.PlacementDirection:
		return 3
	case feature.PlacementOrientation:
		return 9
	case feature.PlacementFrame:
		return 12
	default:
		return 0
	}
}

// FromComponents rebuilds a value of type pt from its flattened components.
// It is the inverse of Value.Components.
func FromComponents(pt feature.PlacementType, c []float64) (Value, error) {
	n := Arity(pt)
	if n == 0 {
		return nil, fmt.Errorf("%w: %s takes no value", ErrInvalidValue, pt)
	}
	if len(c) != n {
		return nil, fmt.Errorf("%w: %s needs %d, got %d", ErrValueArity, pt, n, len(c))
	}

	switch pt {
	case feature.PlacementBool:
		switch c[0] {
		case 0:
			return Bool(false), nil
		case 1:
			return Bool(true), nil
		}
		return nil, fmt.Errorf("%w: bool component %v", ErrInvalidValue, c[0])
	case feature.PlacementInt:
		if c[0] != math.Trunc(c[0]) {
			return nil, fmt.Errorf("%w: %v is not an integer", ErrInvalidValue, c[0])
		}
		return Int(c[0]), nil
	case feature.PlacementReal:
		return Real(c[0]), nil
	case feature.PlacementVec3:
		return Vec3{c[0], c[1], c[2]}, nil
	case feature.PlacementStation:
		return Station{c[0], c[1], c[2]}, nil
	case feature.PlacementDirection:
		return NewDirection(Vec3{c[0], c[1], c[2]})
	case feature.PlacementOrientation:
		return orientationFrom(c), nil
	default:
		return Frame{
			Orientation: orientationFrom(c[:9]),
			Origin:      Station{c[9], c[10], c[11]},
		}, nil
	}
}

func orientationFrom(c []float64) Orientation {
	var o Orientation
	for i := range o {
		copy(o[i][:], c[i*3:i*3+3])
	}
	return o
}

// Parse reads a value of type pt from text. Scalars are written as a single
// literal; vectors and matrices as whitespace- or comma-separated numbers in
// component order.
func Parse(pt feature.PlacementType, s string) (Value, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '(' || r == ')' || r == '[' || r == ']'
	})

	if pt == feature.PlacementBool && len(fields) == 1 {
		b, err := strconv.ParseBool(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a bool", ErrInvalidValue, s)
		}
		return Bool(b), nil
	}

	c := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, f)
		}
		c[i] = v
	}
	return FromComponents(pt, c)
}
