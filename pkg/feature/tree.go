package feature

import (
	"time"

	"github.com/google/uuid"

	"github.com/multibody-modeling/mbm-go/pkg/kinematics"
	"github.com/multibody-modeling/mbm-go/pkg/log"
)

// ID addresses a feature within its tree's arena.
type ID uint32

// noParent marks a tree root.
const noParent ID = ^ID(0)

// prototypeTreeID identifies the throwaway trees mandatory subfeatures are
// copied from.
const prototypeTreeID = "prototype"

// Tree is the arena that owns every feature of one model tree. The first
// entry is always the root.
type Tree struct {
	id     string
	nodes  []*Feature
	logger log.Logger
}

// ID returns the tree identifier.
func (t *Tree) ID() string {
	return t.id
}

// Root returns the root feature of the tree.
func (t *Tree) Root() *Feature {
	return t.nodes[0]
}

// Len returns the number of features owned by the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Logger returns the event logger the tree reports to.
func (t *Tree) Logger() log.Logger {
	return t.logger
}

// Emit stamps an event with the tree ID and current time and sends it to the
// tree's logger.
func (t *Tree) Emit(event log.Event) {
	event.TreeID = t.id
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	t.logger.Log(event)
}

// Option configures construction of a new tree.
type Option func(*options)

type options struct {
	logger     log.Logger
	treeID     string
	kinematics kinematics.Type
}

// WithLogger sends the tree's model events to logger.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTreeID sets the tree identifier instead of generating a random UUID.
func WithTreeID(id string) Option {
	return func(o *options) {
		o.treeID = id
	}
}

// WithKinematics sets the kinematics type recorded by a joint built with New.
func WithKinematics(t kinematics.Type) Option {
	return func(o *options) {
		o.kinematics = t
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newTree(o options) *Tree {
	t := &Tree{
		id:     o.treeID,
		logger: o.logger,
	}
	if t.id == "" {
		t.id = uuid.NewString()
	}
	if t.logger == nil {
		t.logger = log.NoopLogger{}
	}
	return t
}

func (t *Tree) alloc(kind Kind, name string, parent ID, p payload) *Feature {
	f := &Feature{
		tree:    t,
		id:      ID(len(t.nodes)),
		parent:  parent,
		index:   -1,
		name:    name,
		kind:    kind,
		payload: p,
	}
	t.nodes = append(t.nodes, f)
	return f
}

// template is a detached structural copy of a subtree.
type template struct {
	kind     Kind
	name     string
	payload  payload
	children []*template
}

func (f *Feature) snapshot() *template {
	tpl := &template{
		kind:    f.kind,
		name:    f.name,
		payload: copyPayload(f.payload),
	}
	for _, id := range f.children {
		tpl.children = append(tpl.children, f.tree.nodes[id].snapshot())
	}
	return tpl
}

// materialize allocates new arena entries for tpl below parent (nil for a
// root) and returns the entry created for tpl itself.
func (t *Tree) materialize(tpl *template, parent *Feature, name string) *Feature {
	pid := noParent
	if parent != nil {
		pid = parent.id
	}
	f := t.alloc(tpl.kind, name, pid, tpl.payload)
	if parent != nil {
		parent.attach(f)
	}
	for _, c := range tpl.children {
		t.materialize(c, f, c.name)
	}
	return f
}
