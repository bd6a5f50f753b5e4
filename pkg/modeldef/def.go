// Package modeldef loads YAML model definitions and builds feature trees
// from them.
package modeldef

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition errors.
var (
	ErrMissingName   = errors.New("feature definition missing name")
	ErrUnknownKind   = errors.New("unknown feature kind")
	ErrUnknownLike   = errors.New("like refers to an unknown feature")
	ErrMissingKind   = errors.New("feature definition missing kind")
	ErrInvalidJoint  = errors.New("invalid joint declaration")
	ErrInvalidValue  = errors.New("invalid placement value")
	ErrUnexpectedKey = errors.New("conflicting definition keys")
)

// RawModelDef represents a model definition loaded from YAML.
type RawModelDef struct {
	Version     string        `yaml:"version"`
	Description string        `yaml:"description,omitempty"`
	Root        RawFeatureDef `yaml:"root"`
}

// RawFeatureDef represents one feature of a model definition.
//
// An entry with a kind declares a new feature. An entry with like copies an
// already built feature of the same model, addressed by path from the root.
// An entry with neither refers to an existing subfeature, typically a
// mandatory one, to give it a value or further subfeatures.
type RawFeatureDef struct {
	Name        string          `yaml:"name"`
	Kind        string          `yaml:"kind,omitempty"`
	Like        string          `yaml:"like,omitempty"`
	Joint       string          `yaml:"joint,omitempty"` // kinematics type, joints only
	Value       any             `yaml:"value,omitempty"` // scalar, bool or list of numbers
	Description string          `yaml:"description,omitempty"`
	Subfeatures []RawFeatureDef `yaml:"subfeatures,omitempty"`
}

// ParseModelDef parses a model definition from YAML bytes.
func ParseModelDef(data []byte) (*RawModelDef, error) {
	var def RawModelDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing model def: %w", err)
	}
	if def.Root.Name == "" {
		return nil, fmt.Errorf("root: %w", ErrMissingName)
	}
	if def.Root.Kind == "" {
		return nil, fmt.Errorf("root: %w", ErrMissingKind)
	}
	return &def, nil
}

// LoadModelDef loads and parses a model definition from a file.
func LoadModelDef(path string) (*RawModelDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseModelDef(data)
}

// Marshal renders the definition back to YAML.
func (d *RawModelDef) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}
