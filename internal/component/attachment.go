package component

import "github.com/stepwise/physbridge/internal/mathx"

// Attachment resolves an entity's world pose during sub-stepping. A rigid
// body or an area attached under a moving parent (a kinematic body, say)
// must follow it every sub-step, not once per frame; the attachment system
// recomputes WorldPose from the parent chain each pass.
//
// Requires a Parent component on the same entity.
type Attachment struct {
	// WorldPose caches the last resolved world transform. Overwritten
	// every resolution pass.
	WorldPose mathx.Isometry
}

func NewAttachment() *Attachment {
	return &Attachment{WorldPose: mathx.IsometryIdentity()}
}
