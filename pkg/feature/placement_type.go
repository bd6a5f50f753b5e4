package feature

// PlacementType identifies the kind of value that must be bound to a feature
// before the model can be analyzed.
type PlacementType uint8

const (
	// PlacementInvalid means the feature is a pure container and takes no
	// placement of its own.
	PlacementInvalid PlacementType = iota
	PlacementBool
	PlacementInt
	PlacementReal
	PlacementVec3
	PlacementStation
	PlacementDirection
	PlacementOrientation
	PlacementFrame
)

// String returns the placement type name.
func (p PlacementType) String() string {
	names := []string{
		"INVALID", "BOOL", "INT", "REAL", "VEC3",
		"STATION", "DIRECTION", "ORIENTATION", "FRAME",
	}
	if int(p) < len(names) {
		return names[p]
	}
	return "UNKNOWN"
}

// IsNone reports whether the placement type requires no value.
func (p PlacementType) IsNone() bool {
	return p == PlacementInvalid
}
