package feature

import (
	"fmt"

	"github.com/multibody-modeling/mbm-go/pkg/log"
)

// Names of mandatory subfeatures.
const (
	MassMeasureName     = "massMeasure"
	CentroidMeasureName = "centroidMeasure"
	ReferenceFrameName  = "reference"
	MovingFrameName     = "moving"
)

// New constructs a feature of a concrete kind as the root of a new tree,
// together with the kind's mandatory subfeatures. Root names follow the same
// rules as subfeature names.
func New(kind Kind, name string, opts ...Option) (*Feature, error) {
	if kind.IsAbstract() {
		return nil, fmt.Errorf("%w: cannot construct %s %q", ErrAbstractKind, kind, name)
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	o := buildOptions(opts)
	t := newTree(o)
	f := t.alloc(kind, name, noParent, nil)
	t.Emit(log.Event{
		Category: log.CategoryConstruct,
		Path:     f.Path(),
		TypeName: f.TypeName(),
		Index:    -1,
	})
	f.initialize(o)
	return f, nil
}

func mustNew(kind Kind, name string, opts []Option) *Feature {
	f, err := New(kind, name, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// initialize creates the mandatory subfeatures of f's kind and records
// their indices.
func (f *Feature) initialize(o options) {
	switch {
	case f.kind.IsA(KindBody):
		mm := f.addMandatory(KindRealMeasure, MassMeasureName, MassMeasureName)
		cm := f.addMandatory(KindStationMeasure, CentroidMeasureName, CentroidMeasureName)
		f.payload = &bodyPayload{
			MassIndex:     mm.index,
			CentroidIndex: cm.index,
		}

	case f.kind == KindJoint:
		r := f.addMandatory(KindFrame, "R", ReferenceFrameName)
		m := f.addMandatory(KindFrame, "M", MovingFrameName)
		f.payload = &jointPayload{
			Kinematics:     o.kinematics,
			ReferenceIndex: r.index,
			MovingIndex:    m.index,
		}
	}
}

// addMandatory copies a freshly built prototype of kind into f. Failure
// here is a construction bug, not a user error.
func (f *Feature) addMandatory(kind Kind, protoName, name string) *Feature {
	proto := prototype(kind, protoName)
	sub, err := f.AddSubfeatureLike(proto, name)
	if err != nil {
		panic(fmt.Sprintf("feature: mandatory subfeature %q of %q: %v", name, f.Path(), err))
	}
	return sub
}

// prototype builds a detached feature that emits no events.
func prototype(kind Kind, name string) *Feature {
	t := newTree(options{treeID: prototypeTreeID})
	f := t.alloc(kind, name, noParent, nil)
	f.initialize(options{})
	return f
}
