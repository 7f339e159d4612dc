package glide

import (
	"math"

	"github.com/akmonengine/glide/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ProbeGround looks straight down from position for the highest collider top
// at or below it, within maxDistance. The agent stands over a collider when
// its footprint, widened by the capsule radius, overlaps the collider's X/Z extent.
// It returns false when the agent is airborne beyond maxDistance.
func (w *World) ProbeGround(position mgl64.Vec3, maxDistance float64) (float64, bool) {
	if math.IsNaN(maxDistance) || maxDistance < 0 {
		return 0, false
	}

	r := w.agent.Radius
	column := actor.AABB{
		Min: mgl64.Vec3{position.X() - r, position.Y() - maxDistance, position.Z() - r},
		Max: mgl64.Vec3{position.X() + r, position.Y(), position.Z() + r},
	}

	ground := math.Inf(-1)
	found := false
	w.registry.each(column, func(_ Handle, c Collider) {
		if !column.OverlapsXZ(c.Bounds) {
			return
		}
		top := c.Bounds.Max.Y()
		if top > position.Y() || position.Y()-top > maxDistance {
			return
		}
		if top > ground {
			ground = top
			found = true
		}
	})

	return ground, found
}
