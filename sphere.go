package glide

import (
	"github.com/akmonengine/glide/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// CheckSphere is the coarse sphere query: a capsule with no height.
func (w *World) CheckSphere(center mgl64.Vec3, radius float64) (Contact, bool) {
	if !(radius > 0) {
		return Contact{}, false
	}
	return w.ClosestPenetration(actor.NewSphere(center, radius))
}
