package feature

import "fmt"

// View is the closed set of typed views a Feature can be narrowed to.
type View interface {
	Frame | Station | RealParameter | RealMeasure | StationMeasure |
		Body | RigidBody | Multibody | Joint
}

// Downcast narrows f to the view T. It succeeds only if f's kind is T's
// kind or descends from it, and fails with ErrTypeMismatch otherwise.
func Downcast[T View](f *Feature) (T, error) {
	var zero T
	target, wrap := viewOf[T]()
	if f == nil {
		return zero, fmt.Errorf("%w: nil feature is not %s", ErrTypeMismatch, target)
	}
	if !f.kind.IsA(target) {
		return zero, f.fail("downcast", mismatch(f, target))
	}
	return wrap(f).(T), nil
}

// Is reports whether f can be narrowed to the view T.
func Is[T View](f *Feature) bool {
	target, _ := viewOf[T]()
	return f != nil && f.kind.IsA(target)
}

// ViewKind returns the kind a view type narrows to.
func ViewKind[T View]() Kind {
	k, _ := viewOf[T]()
	return k
}

func viewOf[T View]() (Kind, func(*Feature) any) {
	var zero T
	switch any(zero).(type) {
	case Frame:
		return KindFrame, func(f *Feature) any { return Frame{f} }
	case Station:
		return KindStation, func(f *Feature) any { return Station{f} }
	case RealParameter:
		return KindRealParameter, func(f *Feature) any { return RealParameter{f} }
	case RealMeasure:
		return KindRealMeasure, func(f *Feature) any { return RealMeasure{f} }
	case StationMeasure:
		return KindStationMeasure, func(f *Feature) any { return StationMeasure{f} }
	case Body:
		return KindBody, func(f *Feature) any { return Body{Frame{f}} }
	case RigidBody:
		return KindRigidBody, func(f *Feature) any { return RigidBody{Body{Frame{f}}} }
	case Multibody:
		return KindMultibody, func(f *Feature) any { return Multibody{Body{Frame{f}}} }
	case Joint:
		return KindJoint, func(f *Feature) any { return Joint{f} }
	}
	panic(fmt.Sprintf("feature: no kind for view %T", zero))
}
