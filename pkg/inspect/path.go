// Package inspect provides feature tree inspection utilities.
//
// The inspect package offers a unified interface for:
//   - Parsing path expressions (e.g., "arm/bicep/massMeasure" or "arm/#2/#0")
//   - Resolving paths to features of a tree
//   - Binding placement values from text
//   - Formatting output for display
package inspect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/multibody-modeling/mbm-go/pkg/feature"
)

// Path errors.
var (
	ErrEmptyPath     = errors.New("empty path")
	ErrInvalidPath   = errors.New("invalid path format")
	ErrInvalidNumber = errors.New("invalid numeric value in path")
)

// indexPrefix marks a path segment that addresses a subfeature by index.
const indexPrefix = "#"

// Segment is one step of a path.
type Segment struct {
	// Name is the subfeature name (when ByIndex is false).
	Name string

	// Index is the subfeature index (when ByIndex is true).
	Index int

	// ByIndex indicates the segment addresses a subfeature by position.
	ByIndex bool
}

// String returns the segment as written in a path.
func (s Segment) String() string {
	if s.ByIndex {
		return indexPrefix + strconv.Itoa(s.Index)
	}
	return s.Name
}

// Path represents a parsed inspection path.
// Format: root[/segment...] where each segment is a name or #index.
type Path struct {
	// Root is the name of the tree root the path starts at.
	Root string

	// Segments are the steps below the root.
	Segments []Segment

	// Raw stores the original input string.
	Raw string
}

// ParsePath parses a path string into a Path struct.
//
// Supported formats:
//   - "arm" - the root itself
//   - "arm/bicep/massMeasure" - subfeatures by name
//   - "arm/#2/#0" - subfeatures by index
//
// Names and indices can be mixed.
func ParsePath(input string) (*Path, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyPath
	}

	// Check for invalid patterns
	if strings.HasPrefix(input, feature.PathSeparator) ||
		strings.HasSuffix(input, feature.PathSeparator) ||
		strings.Contains(input, feature.PathSeparator+feature.PathSeparator) {
		return nil, ErrInvalidPath
	}

	parts := strings.Split(input, feature.PathSeparator)
	if strings.HasPrefix(parts[0], indexPrefix) {
		return nil, fmt.Errorf("%w: path must start with the root name", ErrInvalidPath)
	}

	p := &Path{Root: parts[0], Raw: input}
	for _, part := range parts[1:] {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, err
		}
		p.Segments = append(p.Segments, seg)
	}
	return p, nil
}

// String returns the path as a string.
func (p *Path) String() string {
	var sb strings.Builder
	sb.WriteString(p.Root)
	for _, seg := range p.Segments {
		sb.WriteString(feature.PathSeparator)
		sb.WriteString(seg.String())
	}
	return sb.String()
}

// Parent returns the path without its last segment, or nil for a root
// path.
func (p *Path) Parent() *Path {
	if len(p.Segments) == 0 {
		return nil
	}
	parent := &Path{Root: p.Root, Segments: p.Segments[:len(p.Segments)-1]}
	parent.Raw = parent.String()
	return parent
}

func parseSegment(s string) (Segment, error) {
	if !strings.HasPrefix(s, indexPrefix) {
		return Segment{Name: s}, nil
	}
	n, err := strconv.Atoi(s[len(indexPrefix):])
	if err != nil || n < 0 {
		return Segment{}, fmt.Errorf("%w: %s", ErrInvalidNumber, s)
	}
	return Segment{Index: n, ByIndex: true}, nil
}
