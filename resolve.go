package glide

import "github.com/go-gl/mathgl/mgl64"

// ResolvePenetration pushes the agent standing at position out of the deepest
// collider it overlaps. It is a single step: with several overlaps only the
// worst is corrected, the next calls handle the rest.
// The push is slightly longer than the penetration so the next probe at the
// corrected position reports nothing despite rounding.
func (w *World) ResolvePenetration(position mgl64.Vec3) mgl64.Vec3 {
	corrected, _, _ := w.resolve(position)
	return corrected
}

func (w *World) resolve(position mgl64.Vec3) (mgl64.Vec3, Contact, bool) {
	contact, ok := w.ClosestPenetration(w.capsuleAt(position))
	if !ok {
		return position, Contact{}, false
	}

	corrected := position.Add(contact.Normal.Mul(contact.Depth * w.settings.Overcorrection))

	// Never trade the overlap for a deeper one
	if after, ok := w.ClosestPenetration(w.capsuleAt(corrected)); ok && after.Depth > contact.Depth {
		return position, contact, true
	}

	return corrected, contact, true
}
