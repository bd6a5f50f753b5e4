package modeldef

import (
	"fmt"
	"strings"

	"github.com/multibody-modeling/mbm-go/pkg/feature"
	"github.com/multibody-modeling/mbm-go/pkg/kinematics"
	"github.com/multibody-modeling/mbm-go/pkg/placement"
	"github.com/multibody-modeling/mbm-go/pkg/version"
)

// Model is a built feature tree together with the placements its
// definition supplied.
type Model struct {
	Root    *feature.Feature
	Binder  *placement.Binder
	Version version.FormatVersion
}

// Build constructs the feature tree described by def. Errors name the path
// of the offending definition entry.
func Build(def *RawModelDef, opts ...feature.Option) (*Model, error) {
	v, err := version.Check(def.Version)
	if err != nil {
		return nil, err
	}
	manifest, err := version.LoadCurrentManifest()
	if err != nil {
		return nil, err
	}

	b := &builder{manifest: manifest}
	kind, jt, err := b.declaration(&def.Root, def.Root.Name)
	if err != nil {
		return nil, err
	}
	if def.Root.Like != "" {
		return nil, fmt.Errorf("%q: %w: root cannot use like", def.Root.Name, ErrUnexpectedKey)
	}

	root, err := feature.New(kind, def.Root.Name, append(opts, feature.WithKinematics(jt))...)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", def.Root.Name, err)
	}

	m := &Model{Root: root, Binder: placement.NewBinder(), Version: v}
	b.model = m
	if err := b.populate(root, &def.Root); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadModel loads a definition file and builds it.
func LoadModel(path string, opts ...feature.Option) (*Model, error) {
	def, err := LoadModelDef(path)
	if err != nil {
		return nil, err
	}
	return Build(def, opts...)
}

type builder struct {
	manifest *version.FormatManifest
	model    *Model
}

// declaration validates the kind and joint keys of a declaring entry.
func (b *builder) declaration(d *RawFeatureDef, path string) (feature.Kind, kinematics.Type, error) {
	kind, ok := feature.ParseKind(d.Kind)
	if !ok || kind.IsAbstract() || !b.manifest.HasKind(kind.String()) {
		return feature.KindInvalid, kinematics.Unknown, fmt.Errorf("%q: %w: %q", path, ErrUnknownKind, d.Kind)
	}

	if kind != feature.KindJoint {
		if d.Joint != "" {
			return kind, kinematics.Unknown, fmt.Errorf("%q: %w: %s cannot declare a joint type", path, ErrInvalidJoint, kind)
		}
		return kind, kinematics.Unknown, nil
	}

	jt, err := kinematics.Parse(d.Joint)
	if err != nil {
		return kind, kinematics.Unknown, fmt.Errorf("%q: %w: %w", path, ErrInvalidJoint, err)
	}
	if !b.manifest.HasJoint(jt.String()) {
		return kind, kinematics.Unknown, fmt.Errorf("%q: %w: %s", path, ErrInvalidJoint, jt)
	}
	return kind, jt, nil
}

// populate binds d's value to f and then builds d's subfeatures below f.
func (b *builder) populate(f *feature.Feature, d *RawFeatureDef) error {
	if d.Value != nil {
		v, err := toValue(f.RequiredPlacementType(), d.Value)
		if err != nil {
			return fmt.Errorf("%q: %w", f.Path(), err)
		}
		if err := b.model.Binder.Bind(f, v); err != nil {
			return fmt.Errorf("%q: %w", f.Path(), err)
		}
	}

	for i := range d.Subfeatures {
		sd := &d.Subfeatures[i]
		sub, err := b.subfeature(f, sd)
		if err != nil {
			return err
		}
		if err := b.populate(sub, sd); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) subfeature(parent *feature.Feature, d *RawFeatureDef) (*feature.Feature, error) {
	path := parent.Path() + feature.PathSeparator + d.Name
	if d.Name == "" {
		return nil, fmt.Errorf("%q: %w", parent.Path()+feature.PathSeparator, ErrMissingName)
	}

	switch {
	case d.Kind != "" && d.Like != "":
		return nil, fmt.Errorf("%q: %w: kind and like", path, ErrUnexpectedKey)

	case d.Kind != "":
		kind, jt, err := b.declaration(d, path)
		if err != nil {
			return nil, err
		}
		proto, err := feature.New(kind, d.Name, feature.WithKinematics(jt), feature.WithTreeID("modeldef"))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", path, err)
		}
		sub, err := parent.AddSubfeatureLike(proto, d.Name)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", path, err)
		}
		return sub, nil

	case d.Like != "":
		proto, err := resolve(b.model.Root, d.Like)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", path, err)
		}
		sub, err := parent.AddSubfeatureLike(proto, d.Name)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", path, err)
		}
		return sub, nil

	default:
		if d.Joint != "" {
			return nil, fmt.Errorf("%q: %w: joint without kind", path, ErrInvalidJoint)
		}
		for _, sub := range parent.Subfeatures() {
			if sub.Name() == d.Name {
				return sub, nil
			}
		}
		return nil, fmt.Errorf("%q: %w", path, ErrMissingKind)
	}
}

// resolve finds the feature at a slash-separated path whose first segment
// names root.
func resolve(root *feature.Feature, path string) (*feature.Feature, error) {
	segs := strings.Split(path, feature.PathSeparator)
	if segs[0] != root.Name() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLike, path)
	}

	cur := root
next:
	for _, seg := range segs[1:] {
		for _, sub := range cur.Subfeatures() {
			if sub.Name() == seg {
				cur = sub
				continue next
			}
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownLike, path)
	}
	return cur, nil
}

// toValue converts a decoded YAML value into a placement of type pt.
func toValue(pt feature.PlacementType, raw any) (placement.Value, error) {
	if pt.IsNone() {
		return nil, placement.ErrNotPlaceable
	}
	if b, ok := raw.(bool); ok {
		if pt != feature.PlacementBool {
			return nil, fmt.Errorf("%w: bool given for %s", ErrInvalidValue, pt)
		}
		return placement.Bool(b), nil
	}
	if s, ok := raw.(string); ok {
		return placement.Parse(pt, s)
	}

	var c []float64
	if err := flatten(raw, &c); err != nil {
		return nil, err
	}
	return placement.FromComponents(pt, c)
}

func flatten(raw any, out *[]float64) error {
	switch v := raw.(type) {
	case int:
		*out = append(*out, float64(v))
	case int64:
		*out = append(*out, float64(v))
	case uint64:
		*out = append(*out, float64(v))
	case float64:
		*out = append(*out, v)
	case []any:
		for _, e := range v {
			if err := flatten(e, out); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: unexpected %T", ErrInvalidValue, raw)
	}
	return nil
}
