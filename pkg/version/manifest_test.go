package version

import (
	"testing"

	"github.com/multibody-modeling/mbm-go/pkg/feature"
	"github.com/multibody-modeling/mbm-go/pkg/kinematics"
)

func TestLoadCurrentManifest(t *testing.T) {
	m, err := LoadCurrentManifest()
	if err != nil {
		t.Fatalf("LoadCurrentManifest() error = %v", err)
	}
	if m.Version != Current {
		t.Errorf("Version = %q, want %q", m.Version, Current)
	}

	again, err := LoadManifest(Current)
	if err != nil {
		t.Fatal(err)
	}
	if again != m {
		t.Error("LoadManifest did not return the cached manifest")
	}
}

func TestLoadManifestUnknown(t *testing.T) {
	if _, err := LoadManifest("9.9"); err == nil {
		t.Error("LoadManifest(9.9) should fail")
	}
}

func TestAvailableFormats(t *testing.T) {
	versions, err := AvailableFormats()
	if err != nil {
		t.Fatal(err)
	}
	if len(versions) == 0 || versions[len(versions)-1] != Current {
		t.Errorf("AvailableFormats() = %v, want last %s", versions, Current)
	}
}

// The current manifest must describe exactly the kinds the feature package
// can construct.
func TestManifestMatchesFeatureKinds(t *testing.T) {
	m, err := LoadCurrentManifest()
	if err != nil {
		t.Fatal(err)
	}

	concrete := feature.ConcreteKinds()
	if len(m.Kinds) != len(concrete) {
		t.Errorf("manifest has %d kinds, feature package has %d", len(m.Kinds), len(concrete))
	}

	for _, k := range concrete {
		spec, ok := m.Kinds[k.String()]
		if !ok {
			t.Errorf("manifest is missing kind %s", k)
			continue
		}
		if spec.Placement != k.RequiredPlacementType().String() {
			t.Errorf("%s placement = %s, want %s", k, spec.Placement, k.RequiredPlacementType())
		}

		f, err := feature.New(k, "x", feature.WithKinematics(kinematics.Pin))
		if err != nil {
			t.Fatalf("New(%s) error = %v", k, err)
		}
		names := make([]string, 0, f.NumSubfeatures())
		for _, sub := range f.Subfeatures() {
			names = append(names, sub.Name())
		}
		if len(names) != len(spec.Mandatory) {
			t.Errorf("%s mandatory = %v, manifest says %v", k, names, spec.Mandatory)
			continue
		}
		for i := range names {
			if names[i] != spec.Mandatory[i] {
				t.Errorf("%s mandatory[%d] = %s, manifest says %s", k, i, names[i], spec.Mandatory[i])
			}
		}
	}
}

func TestManifestJoints(t *testing.T) {
	m, err := LoadCurrentManifest()
	if err != nil {
		t.Fatal(err)
	}
	for jt := kinematics.Weld; jt <= kinematics.Free; jt++ {
		if !m.HasJoint(jt.String()) {
			t.Errorf("manifest is missing joint %s", jt)
		}
	}
	if m.HasJoint(kinematics.Unknown.String()) {
		t.Error("manifest lists UNKNOWN")
	}
	if !m.HasKind("RigidBody") || m.HasKind("Body") {
		t.Error("HasKind mismatch")
	}
	if names := m.KindNames(); names[0] != "Frame" {
		t.Errorf("KindNames()[0] = %s", names[0])
	}
}
