package feature

import (
	"testing"

	"github.com/multibody-modeling/mbm-go/pkg/kinematics"
)

func TestJointScenario(t *testing.T) {
	elbow := NewJoint("elbow", kinematics.Pin)

	if elbow.TypeName() != "Joint" {
		t.Errorf("TypeName() = %s, want Joint", elbow.TypeName())
	}
	if elbow.RequiredPlacementType() != PlacementInvalid {
		t.Errorf("RequiredPlacementType() = %s, want INVALID", elbow.RequiredPlacementType())
	}
	if elbow.Kinematics() != kinematics.Pin {
		t.Errorf("Kinematics() = %s, want PIN", elbow.Kinematics())
	}
	if got := subfeatureNames(elbow.Feature); len(got) != 2 || got[0] != "reference" || got[1] != "moving" {
		t.Fatalf("subfeatures = %v, want [reference moving]", got)
	}

	ref, err := elbow.ReferenceFrame()
	if err != nil {
		t.Fatalf("ReferenceFrame() error = %v", err)
	}
	mov, err := elbow.MovingFrame()
	if err != nil {
		t.Fatalf("MovingFrame() error = %v", err)
	}

	if ref.Feature == mov.Feature {
		t.Error("reference and moving frames are the same feature")
	}
	if ref.Kind() != KindFrame || mov.Kind() != KindFrame {
		t.Errorf("frame kinds = %s, %s", ref.Kind(), mov.Kind())
	}
	if ref.Index() != 0 || mov.Index() != 1 {
		t.Errorf("indices = %d, %d, want 0, 1", ref.Index(), mov.Index())
	}
	if ref.RequiredPlacementType() != PlacementFrame {
		t.Errorf("subframe placement = %s, want FRAME", ref.RequiredPlacementType())
	}
}

func TestJointViaNew(t *testing.T) {
	f, err := New(KindJoint, "knee", WithKinematics(kinematics.Universal))
	if err != nil {
		t.Fatal(err)
	}
	j, err := Downcast[Joint](f)
	if err != nil {
		t.Fatal(err)
	}
	if j.Kinematics() != kinematics.Universal {
		t.Errorf("Kinematics() = %s, want UNIVERSAL", j.Kinematics())
	}
}

func TestJointCloneKeepsKinematics(t *testing.T) {
	hip := NewJoint("hip", kinematics.Ball)
	c, err := Downcast[Joint](hip.Clone())
	if err != nil {
		t.Fatal(err)
	}
	if c.Kinematics() != kinematics.Ball {
		t.Errorf("clone Kinematics() = %s, want BALL", c.Kinematics())
	}
	mov, err := c.MovingFrame()
	if err != nil {
		t.Fatal(err)
	}
	if mov.Tree() != c.Tree() {
		t.Error("clone's moving frame belongs to another tree")
	}
}

func TestJointAddedToMultibody(t *testing.T) {
	arm := NewMultibody("arm")
	jf, err := arm.AddSubfeatureLike(NewJoint("proto", kinematics.Slider).Feature, "elbow")
	if err != nil {
		t.Fatal(err)
	}
	elbow, err := Downcast[Joint](jf)
	if err != nil {
		t.Fatal(err)
	}
	mov, err := elbow.MovingFrame()
	if err != nil {
		t.Fatal(err)
	}
	if mov.Path() != "arm/elbow/moving" {
		t.Errorf("moving path = %s", mov.Path())
	}
	if elbow.Kinematics() != kinematics.Slider {
		t.Errorf("Kinematics() = %s", elbow.Kinematics())
	}
}
