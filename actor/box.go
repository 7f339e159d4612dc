package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is the oriented bounding volume of a world object, defined by its
// half-extents (half-width, half-height, half-depth) in local space.
// Obstacles are axis-aligned, so a rotated box registers as the AABB
// enclosing it.
type Box struct {
	HalfExtents mgl64.Vec3
}

// Bounds computes the world-space AABB enclosing the box at the given transform
func (b Box) Bounds(transform Transform) AABB {
	rotation := transform.Rotation
	if rotation.Len() == 0 {
		rotation = mgl64.QuatIdent()
	}

	local := NewAABBFromCenter(mgl64.Vec3{}, b.HalfExtents).Corners()

	// Transform the first corner to seed min/max
	worldCorner := rotation.Rotate(local[0]).Add(transform.Position)
	min := worldCorner
	max := worldCorner

	for i := 1; i < 8; i++ {
		worldCorner = rotation.Rotate(local[i]).Add(transform.Position)

		min[0] = math.Min(min[0], worldCorner[0])
		min[1] = math.Min(min[1], worldCorner[1])
		min[2] = math.Min(min[2], worldCorner[2])

		max[0] = math.Max(max[0], worldCorner[0])
		max[1] = math.Max(max[1], worldCorner[1])
		max[2] = math.Max(max[2], worldCorner[2])
	}

	return AABB{Min: min, Max: max}
}
