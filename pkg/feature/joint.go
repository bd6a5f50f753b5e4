package feature

import (
	"fmt"

	"github.com/multibody-modeling/mbm-go/pkg/kinematics"
)

// Joint connects two frames. It owns a reference and a moving subframe,
// created in that order during construction, and is never placed itself.
type Joint struct{ *Feature }

// NewJoint constructs a joint of the given kinematics type as the root of a
// new tree.
func NewJoint(name string, jt kinematics.Type, opts ...Option) Joint {
	opts = append(opts, WithKinematics(jt))
	return Joint{mustNew(KindJoint, name, opts)}
}

// Kinematics returns the kinematics type the joint was declared with.
func (j Joint) Kinematics() kinematics.Type {
	p, err := j.jointData()
	if err != nil {
		return kinematics.Unknown
	}
	return p.Kinematics
}

// ReferenceFrame returns the frame the joint is measured from.
func (j Joint) ReferenceFrame() (Frame, error) {
	p, err := j.jointData()
	if err != nil {
		return Frame{}, err
	}
	return j.frameAt(p.ReferenceIndex)
}

// MovingFrame returns the frame that moves relative to the reference frame.
func (j Joint) MovingFrame() (Frame, error) {
	p, err := j.jointData()
	if err != nil {
		return Frame{}, err
	}
	return j.frameAt(p.MovingIndex)
}

func (j Joint) frameAt(index int) (Frame, error) {
	sub, err := j.Subfeature(index)
	if err != nil {
		return Frame{}, err
	}
	return Downcast[Frame](sub)
}

func (j Joint) jointData() (*jointPayload, error) {
	p, ok := j.payload.(*jointPayload)
	if !ok {
		return nil, j.fail("joint", fmt.Errorf("%w: %q carries no joint data", ErrTypeMismatch, j.Path()))
	}
	return p, nil
}
