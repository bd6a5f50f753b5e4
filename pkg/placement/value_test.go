package placement

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multibody-modeling/mbm-go/pkg/feature"
)

func TestValuePlacementTypes(t *testing.T) {
	tests := []struct {
		value Value
		want  feature.PlacementType
		arity int
	}{
		{Bool(true), feature.PlacementBool, 1},
		{Int(3), feature.PlacementInt, 1},
		{Real(2.5), feature.PlacementReal, 1},
		{Vec3{1, 2, 3}, feature.PlacementVec3, 3},
		{Station{1, 2, 3}, feature.PlacementStation, 3},
		{Direction{0, 0, 1}, feature.PlacementDirection, 3},
		{Identity(), feature.PlacementOrientation, 9},
		{GroundFrame(), feature.PlacementFrame, 12},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.PlacementType())
			assert.Len(t, tt.value.Components(), tt.arity)
			assert.Equal(t, tt.arity, Arity(tt.want))

			back, err := FromComponents(tt.want, tt.value.Components())
			require.NoError(t, err)
			assert.Equal(t, tt.value, back)
		})
	}
}

func TestFromComponentsErrors(t *testing.T) {
	_, err := FromComponents(feature.PlacementInvalid, nil)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = FromComponents(feature.PlacementStation, []float64{1, 2})
	assert.ErrorIs(t, err, ErrValueArity)

	_, err = FromComponents(feature.PlacementBool, []float64{2})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = FromComponents(feature.PlacementInt, []float64{1.5})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = FromComponents(feature.PlacementDirection, []float64{0, 0, 0})
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestNewDirectionNormalizes(t *testing.T) {
	d, err := NewDirection(Vec3{3, 0, 4})
	require.NoError(t, err)
	assert.InDelta(t, 0.6, d[0], 1e-12)
	assert.InDelta(t, 0.8, d[2], 1e-12)
	assert.InDelta(t, 1.0, Vec3(d).Norm(), 1e-12)

	_, err = NewDirection(Vec3{math.NaN(), 0, 0})
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		pt    feature.PlacementType
		input string
		want  Value
	}{
		{"bool", feature.PlacementBool, "true", Bool(true)},
		{"bool numeric", feature.PlacementBool, "0", Bool(false)},
		{"int", feature.PlacementInt, "42", Int(42)},
		{"real", feature.PlacementReal, "1.25", Real(1.25)},
		{"station commas", feature.PlacementStation, "1, 2, 3", Station{1, 2, 3}},
		{"station parens", feature.PlacementStation, "(0 0.5 -1)", Station{0, 0.5, -1}},
		{"direction", feature.PlacementDirection, "0 2 0", Direction{0, 1, 0}},
		{"orientation", feature.PlacementOrientation, "1 0 0 0 1 0 0 0 1", Identity()},
		{"frame", feature.PlacementFrame, "1 0 0 0 1 0 0 0 1 0 0 2", Frame{Orientation: Identity(), Origin: Station{0, 0, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.pt, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(feature.PlacementReal, "heavy")
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = Parse(feature.PlacementBool, "maybe")
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = Parse(feature.PlacementStation, "1 2")
	assert.ErrorIs(t, err, ErrValueArity)
}

func TestValueStrings(t *testing.T) {
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "-7", Int(-7).String())
	assert.Equal(t, "2.5", Real(2.5).String())
	assert.Equal(t, "(1, 0, 0.5)", Station{1, 0, 0.5}.String())
	assert.Equal(t, "[(1, 0, 0) (0, 1, 0) (0, 0, 1)]", Identity().String())
	assert.Equal(t, "{R=[(1, 0, 0) (0, 1, 0) (0, 0, 1)] p=(0, 0, 0)}", GroundFrame().String())
}
