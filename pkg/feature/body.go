package feature

import "fmt"

// Body is a frame that carries mass. Every body owns a massMeasure and a
// centroidMeasure subfeature, created in that order during construction.
type Body struct{ Frame }

// RigidBody is a body whose mass properties are fixed parameters.
type RigidBody struct{ Body }

// Multibody is a body composed of other bodies and joints.
type Multibody struct{ Body }

// NewRigidBody constructs a rigid body as the root of a new tree.
func NewRigidBody(name string, opts ...Option) RigidBody {
	return RigidBody{Body{Frame{mustNew(KindRigidBody, name, opts)}}}
}

// NewMultibody constructs a multibody as the root of a new tree.
func NewMultibody(name string, opts ...Option) Multibody {
	return Multibody{Body{Frame{mustNew(KindMultibody, name, opts)}}}
}

// MassMeasure returns the body's scalar mass measure.
func (b Body) MassMeasure() (RealMeasure, error) {
	p, err := b.bodyData()
	if err != nil {
		return RealMeasure{}, err
	}
	sub, err := b.Subfeature(p.MassIndex)
	if err != nil {
		return RealMeasure{}, err
	}
	return Downcast[RealMeasure](sub)
}

// CentroidMeasure returns the body's centroid measure.
func (b Body) CentroidMeasure() (StationMeasure, error) {
	p, err := b.bodyData()
	if err != nil {
		return StationMeasure{}, err
	}
	sub, err := b.Subfeature(p.CentroidIndex)
	if err != nil {
		return StationMeasure{}, err
	}
	return Downcast[StationMeasure](sub)
}

func (b Body) bodyData() (*bodyPayload, error) {
	p, ok := b.payload.(*bodyPayload)
	if !ok {
		return nil, b.fail("body", fmt.Errorf("%w: %q carries no body data", ErrTypeMismatch, b.Path()))
	}
	return p, nil
}

// MeasureSource declares which feature is meant to drive one of a body's
// measures.
type MeasureSource struct {
	// Measure is the name of the driven measure subfeature.
	Measure string

	// Source is the name of the driving subfeature, empty when the value
	// comes from runtime state rather than a subfeature.
	Source string

	// SourceKind is the kind the driving subfeature would have.
	SourceKind Kind

	// Wired reports whether the measure is actually bound to its source.
	Wired bool
}

// MeasureSources returns the declared sources of the body's mass and
// centroid measures.
//
// No derived-value placement exists yet, so every source is reported with
// Wired false, no source subfeature is created and the measures stay
// unplaced until something binds them explicitly.
func (b Body) MeasureSources() []MeasureSource {
	switch b.kind {
	case KindRigidBody:
		return []MeasureSource{
			{Measure: MassMeasureName, Source: "mass", SourceKind: KindRealParameter},
			{Measure: CentroidMeasureName, Source: "station", SourceKind: KindStation},
		}
	case KindMultibody:
		return []MeasureSource{
			{Measure: MassMeasureName},
			{Measure: CentroidMeasureName},
		}
	default:
		return nil
	}
}
