// Package feature implements the multibody feature composition model.
//
// # Feature Hierarchy
//
// A model is a tree of named features. Every feature has a Kind, and kinds
// form a closed hierarchy used for safe narrowing:
//
//	Feature
//	├── Frame
//	│   └── Body (abstract)
//	│       ├── RigidBody
//	│       └── Multibody
//	├── Station
//	├── Parameter (abstract)
//	│   └── RealParameter
//	├── Measure (abstract)
//	│   ├── RealMeasure
//	│   └── StationMeasure
//	└── Joint
//
// # Mandatory Subfeatures
//
// Constructors create the subfeatures a kind cannot exist without before
// returning, and record their indices:
//
//	RigidBody (bicep)
//	├── [0] massMeasure     (RealMeasure)
//	└── [1] centroidMeasure (StationMeasure)
//
//	Joint (elbow)
//	├── [0] reference (Frame)
//	└── [1] moving    (Frame)
//
// Typed accessors such as [Body.MassMeasure] and [Joint.MovingFrame] fetch by
// the recorded index and narrow with [Downcast]; they never search by name.
//
// # Storage
//
// Each tree is an arena ([Tree]) that owns every feature in it. Parents hold
// an ordered list of child IDs; an index, once assigned, never changes.
// [Feature.Clone] and [Feature.AddSubfeatureLike] copy a subtree structurally
// into new arena entries, so copies never alias their origin.
//
// # Placement
//
// Every kind declares the [PlacementType] that must eventually be bound to
// it. This package only exposes the requirement; binding values is done by
// package placement.
//
// Trees are not safe for concurrent mutation.
package feature
