// Package version provides model format version parsing, comparison and the
// embedded format manifests.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Current is the model format version written by this library.
const Current = "1.0"

// ErrIncompatible is returned when a file's format version has a different
// major version than Current.
var ErrIncompatible = errors.New("incompatible format version")

// FormatVersion represents a parsed "major.minor" format version.
type FormatVersion struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string.
func Parse(s string) (FormatVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return FormatVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return FormatVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return FormatVersion{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return FormatVersion{Major: uint16(major), Minor: uint16(minor)}, nil
}

// String returns the version as "major.minor".
func (v FormatVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if the other version has the same major version.
func (v FormatVersion) Compatible(other FormatVersion) bool {
	return v.Major == other.Major
}

// Newer reports whether v is a later version than other.
func (v FormatVersion) Newer(other FormatVersion) bool {
	if v.Major != other.Major {
		return v.Major > other.Major
	}
	return v.Minor > other.Minor
}

// Check parses s and verifies it can be read by this library. An empty
// string is treated as Current.
func Check(s string) (FormatVersion, error) {
	current, _ := Parse(Current)
	if s == "" {
		return current, nil
	}

	v, err := Parse(s)
	if err != nil {
		return FormatVersion{}, err
	}
	if !current.Compatible(v) {
		return FormatVersion{}, fmt.Errorf("%w: %s (reader supports %d.x)", ErrIncompatible, v, current.Major)
	}
	return v, nil
}
