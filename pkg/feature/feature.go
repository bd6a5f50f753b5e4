package feature

import (
	"fmt"
	"strings"

	"github.com/multibody-modeling/mbm-go/pkg/log"
)

// PathSeparator separates feature names in a path.
const PathSeparator = "/"

// Feature is a named node of a feature tree. Features are created by the
// constructors in this package and by AddSubfeatureLike; the zero value is
// not usable.
type Feature struct {
	tree   *Tree
	id     ID
	parent ID

	// index is the position in the parent, fixed at insertion; -1 for roots.
	index int

	name string
	kind Kind

	// children holds arena IDs in insertion order.
	children []ID

	// names maps child names to indices. It only rejects collisions.
	names map[string]int

	payload payload
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return f.name
}

// Kind returns the feature kind.
func (f *Feature) Kind() Kind {
	return f.kind
}

// TypeName returns the stable name of the feature's concrete kind.
func (f *Feature) TypeName() string {
	return f.kind.String()
}

// RequiredPlacementType returns the placement type that must eventually be
// bound to this feature. PlacementInvalid means it needs none.
func (f *Feature) RequiredPlacementType() PlacementType {
	return f.kind.RequiredPlacementType()
}

// Tree returns the arena that owns the feature.
func (f *Feature) Tree() *Tree {
	return f.tree
}

// ID returns the feature's arena ID within its tree.
func (f *Feature) ID() ID {
	return f.id
}

// Index returns the feature's index in its parent, or -1 for a root.
func (f *Feature) Index() int {
	return f.index
}

// IsRoot reports whether the feature has no parent.
func (f *Feature) IsRoot() bool {
	return f.parent == noParent
}

// Parent returns the owning feature, or nil for a root.
func (f *Feature) Parent() *Feature {
	if f.IsRoot() {
		return nil
	}
	return f.tree.nodes[f.parent]
}

// Path returns the slash-separated names from the tree root to f.
func (f *Feature) Path() string {
	var names []string
	for c := f; c != nil; c = c.Parent() {
		names = append(names, c.name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, PathSeparator)
}

// String returns the feature path.
func (f *Feature) String() string {
	if f == nil {
		return "nil"
	}
	return f.Path()
}

// NumSubfeatures returns the number of direct subfeatures.
func (f *Feature) NumSubfeatures() int {
	return len(f.children)
}

// Subfeature returns the subfeature at index.
func (f *Feature) Subfeature(index int) (*Feature, error) {
	if index < 0 || index >= len(f.children) {
		return nil, f.fail("subfeature", outOfRange(f, index))
	}
	return f.tree.nodes[f.children[index]], nil
}

// Subfeatures returns the direct subfeatures in index order.
func (f *Feature) Subfeatures() []*Feature {
	out := make([]*Feature, len(f.children))
	for i, id := range f.children {
		out[i] = f.tree.nodes[id]
	}
	return out
}

// HasSubfeature reports whether a direct subfeature is named name.
func (f *Feature) HasSubfeature(name string) bool {
	_, exists := f.names[name]
	return exists
}

// AddSubfeatureLike deep-copies prototype, names the copy name and appends
// it as the next subfeature of f. The prototype may belong to any tree,
// including f's own; it is not modified.
func (f *Feature) AddSubfeatureLike(prototype *Feature, name string) (*Feature, error) {
	if prototype == nil {
		return nil, f.fail("add", fmt.Errorf("%w: nil prototype for %q", ErrInvalidPrototype, name))
	}
	if err := validateName(name); err != nil {
		return nil, f.fail("add", err)
	}
	if f.HasSubfeature(name) {
		return nil, f.fail("add", fmt.Errorf("%w: %q already has subfeature %q", ErrNameCollision, f.Path(), name))
	}

	// Snapshot before allocating so a prototype inside f's own subtree is
	// copied as it was.
	tpl := prototype.snapshot()
	sub := f.tree.materialize(tpl, f, name)

	event := log.Event{
		Category: log.CategoryAdd,
		Path:     sub.Path(),
		TypeName: sub.TypeName(),
		Index:    sub.index,
	}
	if src := prototype.tree; src != f.tree && src.id != prototypeTreeID {
		event.SourceTreeID = src.id
	}
	f.tree.Emit(event)

	return sub, nil
}

// Clone returns an independent deep copy of the subtree rooted at f as the
// root of a new tree. Unless overridden, the clone reports to f's logger.
func (f *Feature) Clone(opts ...Option) *Feature {
	o := options{logger: f.tree.logger}
	for _, opt := range opts {
		opt(&o)
	}

	t := newTree(o)
	c := t.materialize(f.snapshot(), nil, f.name)
	t.Emit(log.Event{
		Category:     log.CategoryClone,
		Path:         c.Path(),
		TypeName:     c.TypeName(),
		Index:        -1,
		SourceTreeID: f.tree.id,
	})
	return c
}

// Walk calls fn for f and then each descendant in pre-order, stopping as
// soon as fn returns false. It reports whether the walk completed.
func (f *Feature) Walk(fn func(*Feature) bool) bool {
	if !fn(f) {
		return false
	}
	for _, id := range f.children {
		if !f.tree.nodes[id].Walk(fn) {
			return false
		}
	}
	return true
}

func (f *Feature) attach(sub *Feature) {
	if f.names == nil {
		f.names = make(map[string]int)
	}
	sub.index = len(f.children)
	f.children = append(f.children, sub.id)
	f.names[sub.name] = sub.index
}

// fail records a failed operation against f and returns err unchanged.
func (f *Feature) fail(op string, err error) error {
	f.tree.Emit(log.Event{
		Category: log.CategoryError,
		Path:     f.Path(),
		TypeName: f.TypeName(),
		Index:    f.index,
		Error:    &log.ErrorEventData{Op: op, Message: err.Error()},
	})
	return err
}

func validateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	case strings.Contains(name, PathSeparator):
		return fmt.Errorf("%w: %q contains %q", ErrInvalidName, name, PathSeparator)
	case strings.HasPrefix(name, "#"):
		return fmt.Errorf("%w: %q starts with '#'", ErrInvalidName, name)
	}
	return nil
}
