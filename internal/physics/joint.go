package physics

import "github.com/stepwise/physbridge/internal/mathx"

// JointDesc describes a joint. Closed set, like ShapeDesc.
type JointDesc interface {
	isJointDesc()
}

// FixedJointDesc locks two bodies together rigidly.
type FixedJointDesc struct{}

func (FixedJointDesc) isJointDesc() {}

// JointServer creates joints and binds bodies to them.
type JointServer interface {
	// CreateJoint creates a joint. initialPose anchors the joint in world
	// space; body offsets are computed against it when bodies are
	// inserted. The joint becomes active once two bodies are bound.
	CreateJoint(desc JointDesc, initialPose mathx.Isometry) JointHandle

	// InsertRigidBody binds a body to the joint. A joint accepts at most
	// two bodies; further insertions are ignored and logged by the
	// backend.
	InsertRigidBody(joint JointTag, body BodyTag)

	// RemoveRigidBody unbinds a body from the joint, deactivating it.
	RemoveRigidBody(joint JointTag, body BodyTag)
}
