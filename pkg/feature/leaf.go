package feature

// Frame is an oriented coordinate frame.
type Frame struct{ *Feature }

// Station is a point location.
type Station struct{ *Feature }

// RealParameter is a free scalar input.
type RealParameter struct{ *Feature }

// RealMeasure is a computed scalar quantity.
type RealMeasure struct{ *Feature }

// StationMeasure is a computed point location.
type StationMeasure struct{ *Feature }

// NewFrame constructs a frame as the root of a new tree.
func NewFrame(name string, opts ...Option) Frame {
	return Frame{mustNew(KindFrame, name, opts)}
}

// NewStation constructs a station as the root of a new tree.
func NewStation(name string, opts ...Option) Station {
	return Station{mustNew(KindStation, name, opts)}
}

// NewRealParameter constructs a scalar parameter as the root of a new tree.
func NewRealParameter(name string, opts ...Option) RealParameter {
	return RealParameter{mustNew(KindRealParameter, name, opts)}
}

// NewRealMeasure constructs a scalar measure as the root of a new tree.
func NewRealMeasure(name string, opts ...Option) RealMeasure {
	return RealMeasure{mustNew(KindRealMeasure, name, opts)}
}

// NewStationMeasure constructs a point measure as the root of a new tree.
func NewStationMeasure(name string, opts ...Option) StationMeasure {
	return StationMeasure{mustNew(KindStationMeasure, name, opts)}
}
