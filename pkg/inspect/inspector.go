package inspect

import (
	"errors"
	"fmt"

	"github.com/multibody-modeling/mbm-go/pkg/feature"
	"github.com/multibody-modeling/mbm-go/pkg/placement"
)

// prototypeTreeID is the tree ID of the prototypes AddKind builds. ADD
// events report it as their source.
const prototypeTreeID = "inspect"

// Inspector errors.
var (
	ErrFeatureNotFound = errors.New("feature not found")
)

// Inspector provides inspection and binding capabilities for one feature
// tree.
type Inspector struct {
	root   *feature.Feature
	binder *placement.Binder
}

// NewInspector creates a new Inspector for the tree rooted at root. A nil
// binder is replaced with an empty one.
func NewInspector(root *feature.Feature, binder *placement.Binder) *Inspector {
	if binder == nil {
		binder = placement.NewBinder()
	}
	return &Inspector{root: root, binder: binder}
}

// Root returns the inspected tree root.
func (i *Inspector) Root() *feature.Feature {
	return i.root
}

// Binder returns the binder holding the tree's placements.
func (i *Inspector) Binder() *placement.Binder {
	return i.binder
}

// TreeInfo represents the complete tree structure for display.
type TreeInfo struct {
	TreeID   string
	Count    int
	Unplaced int
	Root     FeatureInfo
}

// FeatureInfo represents feature information for display.
type FeatureInfo struct {
	Path        string
	Name        string
	TypeName    string
	Index       int
	Placement   feature.PlacementType
	Value       placement.Value
	Joint       string
	Subfeatures []FeatureInfo
}

// Placed reports whether the feature's placement requirement is met.
func (fi *FeatureInfo) Placed() bool {
	return fi.Placement.IsNone() || fi.Value != nil
}

// Resolve parses path and returns the feature it names.
func (i *Inspector) Resolve(path string) (*feature.Feature, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return i.ResolvePath(p)
}

// ResolvePath returns the feature a parsed path names.
func (i *Inspector) ResolvePath(p *Path) (*feature.Feature, error) {
	if p.Root != i.root.Name() {
		return nil, fmt.Errorf("%w: %s", ErrFeatureNotFound, p.Raw)
	}

	cur := i.root
	for _, seg := range p.Segments {
		next, ok := lookup(cur, seg)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no subfeature %s", ErrFeatureNotFound, cur.Path(), seg)
		}
		cur = next
	}
	return cur, nil
}

func lookup(f *feature.Feature, seg Segment) (*feature.Feature, bool) {
	if seg.ByIndex {
		if seg.Index >= f.NumSubfeatures() {
			return nil, false
		}
		sub, err := f.Subfeature(seg.Index)
		return sub, err == nil
	}
	for _, sub := range f.Subfeatures() {
		if sub.Name() == seg.Name {
			return sub, true
		}
	}
	return nil, false
}

// InspectTree returns a complete tree of the feature structure.
func (i *Inspector) InspectTree() *TreeInfo {
	tree := &TreeInfo{
		TreeID:   i.root.Tree().ID(),
		Count:    i.root.Tree().Len(),
		Unplaced: len(i.binder.Unplaced(i.root)),
		Root:     i.inspectFeatureInternal(i.root, true),
	}
	return tree
}

// InspectFeature returns information about the feature at path, without
// its descendants.
func (i *Inspector) InspectFeature(path string) (*FeatureInfo, error) {
	f, err := i.Resolve(path)
	if err != nil {
		return nil, err
	}
	info := i.inspectFeatureInternal(f, false)
	for _, sub := range f.Subfeatures() {
		info.Subfeatures = append(info.Subfeatures, i.inspectFeatureInternal(sub, false))
	}
	return &info, nil
}

// inspectFeatureInternal extracts feature info, recursing if deep is set.
func (i *Inspector) inspectFeatureInternal(f *feature.Feature, deep bool) FeatureInfo {
	info := FeatureInfo{
		Path:      f.Path(),
		Name:      f.Name(),
		TypeName:  f.TypeName(),
		Index:     f.Index(),
		Placement: f.RequiredPlacementType(),
	}
	if i.binder.IsPlaced(f) {
		info.Value, _ = i.binder.Placement(f)
	}
	if j, err := feature.Downcast[feature.Joint](f); err == nil {
		info.Joint = j.Kinematics().String()
	}

	if deep {
		for _, sub := range f.Subfeatures() {
			info.Subfeatures = append(info.Subfeatures, i.inspectFeatureInternal(sub, true))
		}
	}
	return info
}

// Bind parses text as a value of the placement type the feature at path
// requires, and binds it.
func (i *Inspector) Bind(path, text string) (placement.Value, error) {
	f, err := i.Resolve(path)
	if err != nil {
		return nil, err
	}
	pt := f.RequiredPlacementType()
	if pt.IsNone() {
		return nil, fmt.Errorf("%w: %s", placement.ErrNotPlaceable, f.Path())
	}

	v, err := placement.Parse(pt, text)
	if err != nil {
		return nil, err
	}
	if err := i.binder.Bind(f, v); err != nil {
		return nil, err
	}
	return v, nil
}

// AddLike copies the feature at protoPath below the feature at parentPath
// under name.
func (i *Inspector) AddLike(parentPath, protoPath, name string) (*feature.Feature, error) {
	parent, err := i.Resolve(parentPath)
	if err != nil {
		return nil, err
	}
	proto, err := i.Resolve(protoPath)
	if err != nil {
		return nil, err
	}
	return parent.AddSubfeatureLike(proto, name)
}

// AddKind adds a new feature of the named kind below the feature at
// parentPath. Joints take their kinematics from opts.
func (i *Inspector) AddKind(parentPath, kindName, name string, opts ...feature.Option) (*feature.Feature, error) {
	parent, err := i.Resolve(parentPath)
	if err != nil {
		return nil, err
	}
	kind, ok := feature.ParseKind(kindName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown kind %q", feature.ErrAbstractKind, kindName)
	}
	proto, err := feature.New(kind, name, append(opts, feature.WithTreeID(prototypeTreeID))...)
	if err != nil {
		return nil, err
	}
	return parent.AddSubfeatureLike(proto, name)
}

// Check reports every unplaced required feature of the tree.
func (i *Inspector) Check() error {
	return i.binder.Check(i.root)
}
