package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewAABB builds a box from two opposite corners, in any order
func NewAABB(a, b mgl64.Vec3) AABB {
	return AABB{
		Min: mgl64.Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])},
		Max: mgl64.Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])},
	}
}

// NewAABBFromCenter builds a box from its center and half-extents
func NewAABBFromCenter(center, halfExtents mgl64.Vec3) AABB {
	return NewAABB(center.Sub(halfExtents), center.Add(halfExtents))
}

// IsFinite reports whether every coordinate is a finite number
func (a AABB) IsFinite() bool {
	for i := 0; i < 3; i++ {
		if math.IsNaN(a.Min[i]) || math.IsInf(a.Min[i], 0) || math.IsNaN(a.Max[i]) || math.IsInf(a.Max[i], 0) {
			return false
		}
	}
	return true
}

// IsOrdered reports whether Min <= Max on every axis
func (a AABB) IsOrdered() bool {
	return a.Min[0] <= a.Max[0] && a.Min[1] <= a.Max[1] && a.Min[2] <= a.Max[2]
}

func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a AABB) Size() mgl64.Vec3 {
	return a.Max.Sub(a.Min)
}

// Expand grows the box by margin on every side
func (a AABB) Expand(margin float64) AABB {
	m := mgl64.Vec3{margin, margin, margin}
	return AABB{Min: a.Min.Sub(m), Max: a.Max.Add(m)}
}

// Union returns the smallest box enclosing both
func (a AABB) Union(other AABB) AABB {
	return AABB{
		Min: mgl64.Vec3{math.Min(a.Min[0], other.Min[0]), math.Min(a.Min[1], other.Min[1]), math.Min(a.Min[2], other.Min[2])},
		Max: mgl64.Vec3{math.Max(a.Max[0], other.Max[0]), math.Max(a.Max[1], other.Max[1]), math.Max(a.Max[2], other.Max[2])},
	}
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs overlap
func (a AABB) Overlaps(other AABB) bool {
	// AABBs overlap if they overlap on all three axes
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// OverlapsXZ checks the horizontal footprints only
func (a AABB) OverlapsXZ(other AABB) bool {
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// ClosestPoint clamps point into the box, axis by axis
func (a AABB) ClosestPoint(point mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		mgl64.Clamp(point[0], a.Min[0], a.Max[0]),
		mgl64.Clamp(point[1], a.Min[1], a.Max[1]),
		mgl64.Clamp(point[2], a.Min[2], a.Max[2]),
	}
}

// Face identifies one of the six faces of a box
type Face int

const (
	FacePosX Face = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

var faceNormals = [6]mgl64.Vec3{
	{1, 0, 0},
	{-1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},
}

// Normal returns the outward unit normal of the face
func (f Face) Normal() mgl64.Vec3 {
	return faceNormals[f]
}

// Axis returns 0, 1 or 2 for X, Y or Z
func (f Face) Axis() int {
	return int(f) / 2
}

// Positive reports whether the face normal points along +Axis
func (f Face) Positive() bool {
	return f%2 == 0
}

// NearestFace returns the face whose plane is closest to point, and that distance.
// Distances are measured along the face normal; the point is expected to lie inside
// or on the box. Ties keep the first face in +X, -X, +Y, -Y, +Z, -Z order.
func (a AABB) NearestFace(point mgl64.Vec3) (Face, float64) {
	best := FacePosX
	bestDist := math.Inf(1)
	for f := FacePosX; f <= FaceNegZ; f++ {
		axis := f.Axis()
		var d float64
		if f.Positive() {
			d = a.Max[axis] - point[axis]
		} else {
			d = point[axis] - a.Min[axis]
		}
		if d < bestDist {
			best = f
			bestDist = d
		}
	}
	return best, bestDist
}

// Corners returns the 8 corners, bit i of the index selecting Max on axis i
func (a AABB) Corners() [8]mgl64.Vec3 {
	var corners [8]mgl64.Vec3
	for i := range corners {
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				corners[i][axis] = a.Max[axis]
			} else {
				corners[i][axis] = a.Min[axis]
			}
		}
	}
	return corners
}
