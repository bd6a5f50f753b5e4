package version

import (
	"embed"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed formats/*.yaml
var formatFS embed.FS

// FormatManifest describes what a model format version can express.
type FormatManifest struct {
	Version     string              `yaml:"version"`
	Description string              `yaml:"description"`
	Kinds       map[string]KindSpec `yaml:"kinds"`
	Joints      []string            `yaml:"joints"`
}

// KindSpec describes a feature kind within a format version.
type KindSpec struct {
	Placement string   `yaml:"placement"`
	Mandatory []string `yaml:"mandatory"`
}

// ---------------------------------------------------------------------------
// Cache
// ---------------------------------------------------------------------------

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]*FormatManifest)
)

// LoadManifest loads a format manifest by version string (e.g. "1.0").
func LoadManifest(ver string) (*FormatManifest, error) {
	cacheMu.RLock()
	if m, ok := cache[ver]; ok {
		cacheMu.RUnlock()
		return m, nil
	}
	cacheMu.RUnlock()

	data, err := formatFS.ReadFile("formats/" + ver + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("format version %q not found: %w", ver, err)
	}

	var m FormatManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing format %q: %w", ver, err)
	}

	cacheMu.Lock()
	cache[ver] = &m
	cacheMu.Unlock()

	return &m, nil
}

// LoadCurrentManifest loads the manifest for the current format version.
func LoadCurrentManifest() (*FormatManifest, error) {
	return LoadManifest(Current)
}

// AvailableFormats returns the version strings of all embedded manifests.
func AvailableFormats() ([]string, error) {
	entries, err := formatFS.ReadDir("formats")
	if err != nil {
		return nil, fmt.Errorf("reading formats directory: %w", err)
	}

	var versions []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") {
			versions = append(versions, strings.TrimSuffix(name, ".yaml"))
		}
	}
	sort.Strings(versions)
	return versions, nil
}

// HasKind reports whether the format can express features of the named kind.
func (m *FormatManifest) HasKind(name string) bool {
	_, ok := m.Kinds[name]
	return ok
}

// HasJoint reports whether the format can express the named joint type.
func (m *FormatManifest) HasJoint(name string) bool {
	return slices.Contains(m.Joints, name)
}

// KindNames returns the names of all kinds in the format, sorted.
func (m *FormatManifest) KindNames() []string {
	out := make([]string, 0, len(m.Kinds))
	for name := range m.Kinds {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
