// Package kinematics enumerates the joint kinematics types a joint feature
// can be declared with.
//
// The feature model records the type at construction but does not yet
// derive any constraint between a joint's reference and moving frames from
// it.
package kinematics

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownType is returned when a joint type name cannot be parsed.
var ErrUnknownType = errors.New("unknown joint type")

// Type identifies the kinematics of a joint.
type Type uint8

const (
	// Unknown is the zero value and is never a valid declaration.
	Unknown Type = iota

	// Weld rigidly attaches the moving frame to the reference frame.
	Weld

	// Pin permits rotation about a single shared axis.
	Pin

	// Slider permits translation along a single shared axis.
	Slider

	// Universal permits rotation about two perpendicular axes.
	Universal

	// Cylinder permits rotation about and translation along one axis.
	Cylinder

	// Planar permits translation in a plane and rotation about its normal.
	Planar

	// Gimbal permits three rotations parameterized by body-fixed angles.
	Gimbal

	// Ball permits unrestricted rotation about a shared point.
	Ball

	// Cartesian permits translation along three axes without rotation.
	Cartesian

	// FreeLine permits everything except rotation about one axis.
	FreeLine

	// Free imposes no constraint between the two frames.
	Free
)

var typeNames = map[Type]string{
	Unknown:   "UNKNOWN",
	Weld:      "WELD",
	Pin:       "PIN",
	Slider:    "SLIDER",
	Universal: "UNIVERSAL",
	Cylinder:  "CYLINDER",
	Planar:    "PLANAR",
	Gimbal:    "GIMBAL",
	Ball:      "BALL",
	Cartesian: "CARTESIAN",
	FreeLine:  "FREE_LINE",
	Free:      "FREE",
}

// aliases maps alternative spellings used in model files to types.
var aliases = map[string]Type{
	"rotational":    Pin,
	"revolute":      Pin,
	"torsion":       Pin,
	"translational": Slider,
	"prismatic":     Slider,
	"sliding":       Slider,
	"u-joint":       Universal,
	"orientation":   Ball,
	"spherical":     Ball,
	"free-line":     FreeLine,
}

// String returns the type name.
func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// Mobilities returns the number of relative degrees of freedom the joint
// type leaves between its two frames.
func (t Type) Mobilities() int {
	switch t {
	case Weld:
		return 0
	case Pin, Slider:
		return 1
	case Universal, Cylinder:
		return 2
	case Planar, Gimbal, Ball, Cartesian:
		return 3
	case FreeLine:
		return 5
	case Free:
		return 6
	default:
		return -1
	}
}

// Valid reports whether t names a declared joint type.
func (t Type) Valid() bool {
	return t != Unknown && t <= Free
}

// Parse converts a case-insensitive name or alias into a Type.
func Parse(s string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if t, ok := aliases[key]; ok {
		return t, nil
	}
	key = strings.ReplaceAll(key, "-", "_")
	for t, name := range typeNames {
		if t != Unknown && strings.ToLower(name) == key {
			return t, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownType, s)
}
