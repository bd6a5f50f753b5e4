package placement

import (
	"errors"
	"fmt"
	"sync"

	"github.com/multibody-modeling/mbm-go/pkg/feature"
	"github.com/multibody-modeling/mbm-go/pkg/log"
)

// ErrNotPlaceable is returned when a value is bound to a feature that
// requires no placement.
var ErrNotPlaceable = errors.New("feature takes no placement")

// Binder records placement values for the features of one or more trees.
// It is safe for concurrent use.
type Binder struct {
	mu     sync.RWMutex
	values map[*feature.Feature]Value
}

// NewBinder creates an empty binder.
func NewBinder() *Binder {
	return &Binder{
		values: make(map[*feature.Feature]Value),
	}
}

// Bind records v as the placement of f, replacing any earlier value. The
// value's type must equal the feature's required placement type.
func (b *Binder) Bind(f *feature.Feature, v Value) error {
	if f == nil {
		return fmt.Errorf("%w: nil feature", ErrNotPlaceable)
	}
	if v == nil {
		return b.fail(f, fmt.Errorf("%w: nil value for %q", ErrInvalidValue, f.Path()))
	}

	want := f.RequiredPlacementType()
	if want.IsNone() {
		return b.fail(f, fmt.Errorf("%w: %q is a %s", ErrNotPlaceable, f.Path(), f.TypeName()))
	}
	if got := v.PlacementType(); got != want {
		return b.fail(f, fmt.Errorf("%w: %q requires %s, got %s", feature.ErrTypeMismatch, f.Path(), want, got))
	}

	b.mu.Lock()
	b.values[f] = v
	b.mu.Unlock()

	f.Tree().Emit(log.Event{
		Category: log.CategoryBind,
		Path:     f.Path(),
		TypeName: f.TypeName(),
		Index:    f.Index(),
		Bind: &log.BindEventData{
			PlacementType: want.String(),
			Value:         v.String(),
		},
	})
	return nil
}

// Unbind removes the placement of f, if any.
func (b *Binder) Unbind(f *feature.Feature) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.values, f)
}

// Placement returns the value bound to f. A feature that requires no
// placement yields (nil, nil); a feature with an unmet requirement yields
// ErrUnplacedRequiredFeature.
func (b *Binder) Placement(f *feature.Feature) (Value, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil feature", ErrNotPlaceable)
	}

	b.mu.RLock()
	v, ok := b.values[f]
	b.mu.RUnlock()

	if ok {
		return v, nil
	}
	if f.RequiredPlacementType().IsNone() {
		return nil, nil
	}
	return nil, unplaced(f)
}

// IsPlaced reports whether f has a bound value.
func (b *Binder) IsPlaced(f *feature.Feature) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.values[f]
	return ok
}

// Len returns the number of bound features.
func (b *Binder) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.values)
}

// Unplaced returns every feature under root, in pre-order, whose required
// placement has no bound value.
func (b *Binder) Unplaced(root *feature.Feature) []*feature.Feature {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []*feature.Feature
	root.Walk(func(f *feature.Feature) bool {
		if f.RequiredPlacementType().IsNone() {
			return true
		}
		if _, ok := b.values[f]; !ok {
			out = append(out, f)
		}
		return true
	})
	return out
}

// Check returns nil if every feature under root with a placement
// requirement is bound. Otherwise it returns one ErrUnplacedRequiredFeature
// per missing feature, joined.
func (b *Binder) Check(root *feature.Feature) error {
	var errs []error
	for _, f := range b.Unplaced(root) {
		errs = append(errs, unplaced(f))
	}
	return errors.Join(errs...)
}

func (b *Binder) fail(f *feature.Feature, err error) error {
	f.Tree().Emit(log.Event{
		Category: log.CategoryError,
		Path:     f.Path(),
		TypeName: f.TypeName(),
		Index:    f.Index(),
		Error:    &log.ErrorEventData{Op: "bind", Message: err.Error()},
	})
	return err
}

func unplaced(f *feature.Feature) error {
	return fmt.Errorf("%w: %q requires %s", feature.ErrUnplacedRequiredFeature, f.Path(), f.RequiredPlacementType())
}
