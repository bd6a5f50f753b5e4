package feature

import (
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/multibody-modeling/mbm-go/pkg/kinematics"
)

// payload is kind-specific data carried by a feature.
type payload interface {
	isPayload()
}

// bodyPayload records the indices of a body's mandatory measures.
type bodyPayload struct {
	MassIndex     int
	CentroidIndex int
}

func (*bodyPayload) isPayload() {}

// jointPayload records a joint's kinematics and the indices of its frames.
type jointPayload struct {
	Kinematics     kinematics.Type
	ReferenceIndex int
	MovingIndex    int
}

func (*jointPayload) isPayload() {}

func copyPayload(p payload) payload {
	var dst payload
	switch p.(type) {
	case nil:
		return nil
	case *bodyPayload:
		dst = &bodyPayload{}
	case *jointPayload:
		dst = &jointPayload{}
	default:
		panic(fmt.Sprintf("feature: unknown payload %T", p))
	}
	if err := copier.CopyWithOption(dst, p, copier.Option{DeepCopy: true}); err != nil {
		panic(fmt.Sprintf("feature: copy payload: %v", err))
	}
	return dst
}
