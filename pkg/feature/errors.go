package feature

import (
	"errors"
	"fmt"
)

// Feature errors.
var (
	// ErrTypeMismatch is returned when a feature is narrowed to a kind it
	// does not descend from.
	ErrTypeMismatch = errors.New("feature type mismatch")

	// ErrNameCollision is returned when a subfeature name duplicates a
	// sibling's name.
	ErrNameCollision = errors.New("subfeature name collision")

	// ErrIndexOutOfRange is returned when an index refers to a subfeature
	// that was never assigned.
	ErrIndexOutOfRange = errors.New("subfeature index out of range")

	// ErrUnplacedRequiredFeature is returned by the placement subsystem when a
	// feature with a non-trivial placement requirement has no bound value.
	ErrUnplacedRequiredFeature = errors.New("required placement not bound")

	// ErrInvalidName is returned when a subfeature name is empty or contains
	// the path separator.
	ErrInvalidName = errors.New("invalid feature name")

	// ErrInvalidPrototype is returned when a nil prototype is supplied.
	ErrInvalidPrototype = errors.New("invalid prototype")

	// ErrAbstractKind is returned when construction of an abstract or unknown
	// kind is requested.
	ErrAbstractKind = errors.New("kind is abstract")
)

func mismatch(f *Feature, target Kind) error {
	return fmt.Errorf("%w: %q is %s, not %s", ErrTypeMismatch, f.Path(), f.kind, target)
}

func outOfRange(f *Feature, index int) error {
	return fmt.Errorf("%w: %q has %d subfeatures, index %d", ErrIndexOutOfRange, f.Path(), len(f.children), index)
}
