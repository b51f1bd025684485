package component

import "github.com/stepwise/physbridge/internal/mathx"

// Transform positions an entity. For an entity without a Parent it is the
// world pose; with a Parent it is local to the parent and the world pose is
// resolved by the attachment system.
type Transform struct {
	Local mathx.Isometry
}

func NewTransform() *Transform {
	return &Transform{Local: mathx.IsometryIdentity()}
}
