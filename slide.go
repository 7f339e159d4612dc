package glide

import "github.com/go-gl/mathgl/mgl64"

// SlideResult details a MoveWithSliding call
type SlideResult struct {
	Position mgl64.Vec3
	Sweeps   int      // sweeps run, at most Settings.MaxBounces
	Contacts []Handle // colliders hit or depenetrated from, in order, may repeat
}

// MoveWithSliding moves the agent from start by displacement and returns where
// it ends up. Blocked motion slides along the obstacle: the part of the motion
// driving into the surface is dropped, the part parallel to it is kept.
func (w *World) MoveWithSliding(start, displacement mgl64.Vec3) mgl64.Vec3 {
	return w.Slide(start, displacement).Position
}

// Slide is MoveWithSliding, reporting the sweeps and contacts along the way.
// The number of sweeps is bounded by Settings.MaxBounces whatever the geometry.
func (w *World) Slide(start, displacement mgl64.Vec3) SlideResult {
	var result SlideResult

	current, contact, hit := w.resolve(start)
	if hit {
		result.Contacts = append(result.Contacts, contact.Collider)
	}
	remaining := displacement

	for bounce := 0; bounce < w.settings.MaxBounces; bounce++ {
		if remaining.LenSqr() < w.settings.SlideEpsilon {
			break
		}

		sweep := w.Sweep(current, remaining)
		result.Sweeps++
		current = sweep.Position
		if sweep.T >= 1 || !sweep.Hit {
			break
		}
		result.Contacts = append(result.Contacts, sweep.Collider)

		// The backed-off position may still graze the obstacle
		current, contact, hit = w.resolve(current)
		if hit {
			result.Contacts = append(result.Contacts, contact.Collider)
		}

		remainingLength := remaining.Len() * (1 - sweep.T)

		// Project onto the hit plane
		remaining = remaining.Sub(sweep.Normal.Mul(remaining.Dot(sweep.Normal)))
		projected := remaining.Len()
		if projected < degenerateDistance {
			break
		}

		// Damped so float drift cannot re-trigger the same hit forever
		remaining = remaining.Mul(remainingLength * w.settings.SlideDamping / projected)
	}

	result.Position = current
	return result
}
