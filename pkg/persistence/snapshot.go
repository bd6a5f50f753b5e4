package persistence

import (
	"errors"
	"fmt"
	"time"

	"github.com/multibody-modeling/mbm-go/pkg/feature"
	"github.com/multibody-modeling/mbm-go/pkg/kinematics"
	"github.com/multibody-modeling/mbm-go/pkg/placement"
	"github.com/multibody-modeling/mbm-go/pkg/version"
)

// Snapshot errors.
var (
	ErrCorruptSnapshot  = errors.New("corrupt snapshot")
	ErrSnapshotMismatch = errors.New("snapshot does not match constructed tree")
)

// Snapshot is the persisted form of one feature tree.
// CBOR encoding uses integer keys for compactness.
type Snapshot struct {
	// Version is the model format version the snapshot was written with.
	Version string `cbor:"1,keyasint"`

	// TreeID is the ID of the captured tree.
	TreeID string `cbor:"2,keyasint"`

	// SavedAt is when the snapshot was taken.
	SavedAt time.Time `cbor:"3,keyasint"`

	// Nodes lists every feature in pre-order. Nodes[0] is the root.
	Nodes []NodeRecord `cbor:"4,keyasint"`
}

// NodeRecord describes one feature of a snapshot.
type NodeRecord struct {
	Name     string `cbor:"1,keyasint"`
	TypeName string `cbor:"2,keyasint"`

	// Parent is the index of the parent's record, -1 for the root.
	Parent int `cbor:"3,keyasint"`

	// Joint is the kinematics type name, joints only.
	Joint string `cbor:"4,keyasint,omitempty"`

	Placement *PlacementRecord `cbor:"5,keyasint,omitempty"`
}

// PlacementRecord is a bound placement value in flattened form.
type PlacementRecord struct {
	Type       uint8     `cbor:"1,keyasint"`
	Components []float64 `cbor:"2,keyasint"`
}

// Capture records the tree rooted at root. Placements are taken from
// binder, which may be nil.
func Capture(root *feature.Feature, binder *placement.Binder) *Snapshot {
	s := &Snapshot{
		Version: version.Current,
		TreeID:  root.Tree().ID(),
		SavedAt: time.Now(),
	}

	records := make(map[*feature.Feature]int)
	root.Walk(func(f *feature.Feature) bool {
		rec := NodeRecord{
			Name:     f.Name(),
			TypeName: f.TypeName(),
			Parent:   -1,
		}
		if f != root {
			rec.Parent = records[f.Parent()]
		}
		if j, err := feature.Downcast[feature.Joint](f); err == nil {
			rec.Joint = j.Kinematics().String()
		}
		if binder != nil && binder.IsPlaced(f) {
			v, _ := binder.Placement(f)
			rec.Placement = &PlacementRecord{
				Type:       uint8(v.PlacementType()),
				Components: v.Components(),
			}
		}

		records[f] = len(s.Nodes)
		s.Nodes = append(s.Nodes, rec)
		return true
	})
	return s
}

// Restore rebuilds the tree recorded in s and a binder holding its
// placements. The restored tree keeps the recorded tree ID unless opts
// override it.
func Restore(s *Snapshot, opts ...feature.Option) (*feature.Feature, *placement.Binder, error) {
	if _, err := version.Check(s.Version); err != nil {
		return nil, nil, err
	}
	if len(s.Nodes) == 0 || s.Nodes[0].Parent != -1 {
		return nil, nil, fmt.Errorf("%w: missing root record", ErrCorruptSnapshot)
	}

	built := make([]*feature.Feature, len(s.Nodes))
	children := make([]int, len(s.Nodes))

	rootRec := s.Nodes[0]
	kind, jt, err := decodeKind(rootRec, 0)
	if err != nil {
		return nil, nil, err
	}
	opts = append([]feature.Option{feature.WithTreeID(s.TreeID), feature.WithKinematics(jt)}, opts...)
	root, err := feature.New(kind, rootRec.Name, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: record 0: %w", ErrCorruptSnapshot, err)
	}
	built[0] = root

	for i := 1; i < len(s.Nodes); i++ {
		rec := s.Nodes[i]
		if rec.Parent < 0 || rec.Parent >= i {
			return nil, nil, fmt.Errorf("%w: record %d has parent %d", ErrCorruptSnapshot, i, rec.Parent)
		}
		parent := built[rec.Parent]
		index := children[rec.Parent]
		children[rec.Parent]++

		kind, jt, err := decodeKind(rec, i)
		if err != nil {
			return nil, nil, err
		}

		if index < parent.NumSubfeatures() {
			// Created by the parent's constructor.
			sub, _ := parent.Subfeature(index)
			if sub.Name() != rec.Name || sub.Kind() != kind {
				return nil, nil, fmt.Errorf("%w: %q has %s %q at index %d, snapshot has %s %q",
					ErrSnapshotMismatch, parent.Path(), sub.Kind(), sub.Name(), index, kind, rec.Name)
			}
			built[i] = sub
			continue
		}

		proto, err := feature.New(kind, rec.Name, feature.WithKinematics(jt), feature.WithTreeID("snapshot"))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: record %d: %w", ErrCorruptSnapshot, i, err)
		}
		sub, err := parent.AddSubfeatureLike(proto, rec.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: record %d: %w", ErrCorruptSnapshot, i, err)
		}
		built[i] = sub
	}

	for i, f := range built {
		if f.NumSubfeatures() != children[i] {
			return nil, nil, fmt.Errorf("%w: %q has %d subfeatures, snapshot records %d",
				ErrSnapshotMismatch, f.Path(), f.NumSubfeatures(), children[i])
		}
	}

	binder := placement.NewBinder()
	for i, rec := range s.Nodes {
		if rec.Placement == nil {
			continue
		}
		v, err := placement.FromComponents(feature.PlacementType(rec.Placement.Type), rec.Placement.Components)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: record %d: %w", ErrCorruptSnapshot, i, err)
		}
		if err := binder.Bind(built[i], v); err != nil {
			return nil, nil, fmt.Errorf("%w: record %d: %w", ErrCorruptSnapshot, i, err)
		}
	}

	return root, binder, nil
}

func decodeKind(rec NodeRecord, i int) (feature.Kind, kinematics.Type, error) {
	kind, ok := feature.ParseKind(rec.TypeName)
	if !ok || kind.IsAbstract() {
		return feature.KindInvalid, kinematics.Unknown, fmt.Errorf("%w: record %d has type %q", ErrCorruptSnapshot, i, rec.TypeName)
	}
	if kind != feature.KindJoint || rec.Joint == kinematics.Unknown.String() {
		return kind, kinematics.Unknown, nil
	}
	jt, err := kinematics.Parse(rec.Joint)
	if err != nil {
		return kind, kinematics.Unknown, fmt.Errorf("%w: record %d: %w", ErrCorruptSnapshot, i, err)
	}
	return kind, jt, nil
}
