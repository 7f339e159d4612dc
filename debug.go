package glide

import "github.com/go-gl/mathgl/mgl64"

// Segment is a line to draw, in world space
type Segment struct {
	A, B mgl64.Vec3
}

// Wireframe returns the 12 edges of every registered collider, for debug drawing
func (w *World) Wireframe() []Segment {
	colliders := w.registry.List()
	segments := make([]Segment, 0, len(colliders)*12)

	for _, c := range colliders {
		corners := c.Bounds.Corners()
		for i, corner := range corners {
			for axis := 0; axis < 3; axis++ {
				bit := 1 << axis
				if i&bit != 0 {
					continue
				}
				segments = append(segments, Segment{A: corner, B: corners[i|bit]})
			}
		}
	}

	return segments
}
