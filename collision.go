package glide

import (
	"math"

	"github.com/akmonengine/glide/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// degenerateDistance is the capsule-to-box distance under which the sampled
// centerline point counts as touching or inside the box: the direction between
// the two closest points is then meaningless and a face normal is used.
const degenerateDistance = 1e-9

// Contact is the deepest penetration found by a probe
type Contact struct {
	Normal   mgl64.Vec3 // unit, pointing out of the collider
	Depth    float64
	Collider Handle
}

type candidate struct {
	handle Handle
	bounds actor.AABB
}

// ClosestPenetration probes the capsule against every collider and returns the
// deepest contact. Only one obstacle is reported: resolution is a single step
// against the worst overlap, other overlaps are left to the next iterations.
func (w *World) ClosestPenetration(capsule actor.Capsule) (Contact, bool) {
	return w.deepest(capsule, w.candidates(capsule.AABB(), nil))
}

// candidates collects the colliders that may overlap region into buf
func (w *World) candidates(region actor.AABB, buf []candidate) []candidate {
	buf = buf[:0]
	w.registry.each(region, func(h Handle, c Collider) {
		buf = append(buf, candidate{handle: h, bounds: c.Bounds})
	})
	return buf
}

func (w *World) deepest(capsule actor.Capsule, candidates []candidate) (Contact, bool) {
	var best Contact
	found := false

	for _, c := range candidates {
		contact, ok := probeBox(capsule, c.bounds, w.settings.ProbeSamples)
		if !ok {
			continue
		}
		// Strictly deeper only: equal depths keep the lower slot
		if !found || contact.Depth > best.Depth {
			best = contact
			best.Collider = c.handle
			found = true
		}
	}

	return best, found
}

// probeBox measures the sampled distance between the capsule segment and box.
// The segment is discretized into samples points; the closest point on the box
// is the per-axis clamp of each sample.
func probeBox(capsule actor.Capsule, box actor.AABB, samples int) (Contact, bool) {
	minDistance := math.Inf(1)
	var capsulePoint, boxPoint mgl64.Vec3

	inside := false
	var insideFace actor.Face
	insideFaceDistance := math.Inf(1)

	for i := 0; i < samples; i++ {
		p := capsule.Sample(i, samples)
		q := box.ClosestPoint(p)
		d := p.Sub(q).Len()

		if d < minDistance {
			minDistance = d
			capsulePoint = p
			boxPoint = q
		}

		if d < degenerateDistance {
			face, faceDistance := box.NearestFace(p)
			if faceDistance < insideFaceDistance {
				inside = true
				insideFace = face
				insideFaceDistance = faceDistance
			}
		}
	}

	if !(minDistance < capsule.Radius) {
		return Contact{}, false
	}

	if !inside {
		return Contact{
			Normal: capsulePoint.Sub(boxPoint).Mul(1 / minDistance),
			Depth:  capsule.Radius - minDistance,
		}, true
	}

	// The centerline reaches into the box: push along the nearest face, far
	// enough for the whole capsule to clear that face.
	axis := insideFace.Axis()
	low, high := capsule.Extent(axis)
	var depth float64
	if insideFace.Positive() {
		depth = box.Max[axis] - low + capsule.Radius
	} else {
		depth = high - box.Min[axis] + capsule.Radius
	}

	return Contact{Normal: insideFace.Normal(), Depth: depth}, true
}
