package feature

import "strings"

// Kind identifies the concrete or abstract type of a feature.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindFeature
	KindFrame
	KindStation
	KindParameter
	KindRealParameter
	KindMeasure
	KindRealMeasure
	KindStationMeasure
	KindBody
	KindRigidBody
	KindMultibody
	KindJoint
)

type kindInfo struct {
	name      string
	parent    Kind
	abstract  bool
	placement PlacementType
}

var kinds = [...]kindInfo{
	KindInvalid:        {name: "Invalid", abstract: true},
	KindFeature:        {name: "Feature", abstract: true},
	KindFrame:          {name: "Frame", parent: KindFeature, placement: PlacementFrame},
	KindStation:        {name: "Station", parent: KindFeature, placement: PlacementStation},
	KindParameter:      {name: "Parameter", parent: KindFeature, abstract: true},
	KindRealParameter:  {name: "RealParameter", parent: KindParameter, placement: PlacementReal},
	KindMeasure:        {name: "Measure", parent: KindFeature, abstract: true},
	KindRealMeasure:    {name: "RealMeasure", parent: KindMeasure, placement: PlacementReal},
	KindStationMeasure: {name: "StationMeasure", parent: KindMeasure, placement: PlacementStation},
	KindBody:           {name: "Body", parent: KindFrame, abstract: true, placement: PlacementFrame},
	KindRigidBody:      {name: "RigidBody", parent: KindBody, placement: PlacementFrame},
	KindMultibody:      {name: "Multibody", parent: KindBody, placement: PlacementFrame},
	KindJoint:          {name: "Joint", parent: KindFeature, placement: PlacementInvalid},
}

func (k Kind) info() kindInfo {
	if int(k) < len(kinds) {
		return kinds[k]
	}
	return kinds[KindInvalid]
}

// String returns the kind's type name.
func (k Kind) String() string {
	return k.info().name
}

// Parent returns the kind this kind directly descends from, or KindInvalid
// for the root kind.
func (k Kind) Parent() Kind {
	return k.info().parent
}

// IsAbstract reports whether features of this exact kind cannot be
// constructed.
func (k Kind) IsAbstract() bool {
	return k.info().abstract
}

// IsA reports whether k equals target or descends from it, directly or
// indirectly.
func (k Kind) IsA(target Kind) bool {
	if target == KindInvalid {
		return false
	}
	for c := k; c != KindInvalid; c = c.Parent() {
		if c == target {
			return true
		}
	}
	return false
}

// RequiredPlacementType returns the placement type features of this kind
// require.
func (k Kind) RequiredPlacementType() PlacementType {
	return k.info().placement
}

// ParseKind converts a case-insensitive type name into a Kind.
func ParseKind(s string) (Kind, bool) {
	for i := range kinds {
		k := Kind(i)
		if k != KindInvalid && strings.EqualFold(k.String(), s) {
			return k, true
		}
	}
	return KindInvalid, false
}

// ConcreteKinds returns every constructible kind in declaration order.
func ConcreteKinds() []Kind {
	var out []Kind
	for i := range kinds {
		if k := Kind(i); !k.IsAbstract() {
			out = append(out, k)
		}
	}
	return out
}
