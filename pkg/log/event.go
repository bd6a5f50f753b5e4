package log

import (
	"strings"
	"time"
)

// Event represents a model definition event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// TreeID identifies the feature tree the event belongs to.
	TreeID string `cbor:"2,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// Path is the slash-separated name path of the feature concerned.
	Path string `cbor:"4,keyasint,omitempty"`

	// TypeName is the concrete kind name of the feature (e.g. "RigidBody").
	TypeName string `cbor:"5,keyasint,omitempty"`

	// Index is the feature's index in its parent, -1 for a tree root.
	Index int `cbor:"6,keyasint"`

	// SourceTreeID is the tree a clone or prototype copy was taken from.
	SourceTreeID string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (at most one of these is set).
	Bind  *BindEventData  `cbor:"8,keyasint,omitempty"`
	Error *ErrorEventData `cbor:"9,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryConstruct indicates a new tree root was constructed.
	CategoryConstruct Category = 0
	// CategoryAdd indicates a subfeature was added to a parent.
	CategoryAdd Category = 1
	// CategoryClone indicates a subtree was cloned into a new tree.
	CategoryClone Category = 2
	// CategoryBind indicates a placement value was bound to a feature.
	CategoryBind Category = 3
	// CategoryError indicates a failed operation.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryConstruct:
		return "CONSTRUCT"
	case CategoryAdd:
		return "ADD"
	case CategoryClone:
		return "CLONE"
	case CategoryBind:
		return "BIND"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory converts a case-insensitive category name into a Category.
func ParseCategory(s string) (Category, bool) {
	for c := CategoryConstruct; c <= CategoryError; c++ {
		if strings.EqualFold(c.String(), s) {
			return c, true
		}
	}
	return 0, false
}

// BindEventData captures a placement binding.
type BindEventData struct {
	// PlacementType is the name of the bound placement type.
	PlacementType string `cbor:"1,keyasint"`

	// Value is a display rendering of the bound value.
	Value string `cbor:"2,keyasint,omitempty"`
}

// ErrorEventData captures a failed operation.
type ErrorEventData struct {
	// Op is the operation that failed (e.g. "add", "bind").
	Op string `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`
}
