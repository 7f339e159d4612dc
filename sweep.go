package glide

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SweepResult is the furthest safe point along a displacement
type SweepResult struct {
	Position mgl64.Vec3
	T        float64    // fraction of the displacement achieved, in [0, 1]
	Hit      bool       // false when nothing was on the path
	Normal   mgl64.Vec3 // contact normal of the first obstacle, when Hit
	Collider Handle
}

// Sweep moves the agent capsule from start along displacement in fixed-length
// sub-steps, so a fast agent cannot skip over a wall thinner than its motion.
// On the first sub-step that touches a collider, the result backs off to the
// previous sub-step, which did not.
func (w *World) Sweep(start, displacement mgl64.Vec3) SweepResult {
	length := displacement.Len()
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return SweepResult{Position: start, T: 1}
	}

	steps := int(math.Ceil(length / w.settings.SweepStep))
	capsule := w.capsuleAt(start)

	// One broadphase query for the whole path
	path := capsule.AABB().Union(capsule.Translate(displacement).AABB())
	candidates := w.candidates(path, nil)
	if len(candidates) == 0 {
		return SweepResult{Position: start.Add(displacement), T: 1}
	}

	for step := 0; step <= steps; step++ {
		offset := displacement.Mul(float64(step) / float64(steps))
		contact, ok := w.deepest(capsule.Translate(offset), candidates)
		if !ok {
			continue
		}

		t := math.Max(0, float64(step-1)/float64(steps))
		return SweepResult{
			Position: start.Add(displacement.Mul(t)),
			T:        t,
			Hit:      true,
			Normal:   contact.Normal,
			Collider: contact.Collider,
		}
	}

	return SweepResult{Position: start.Add(displacement), T: 1}
}
