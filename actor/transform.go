package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform places a world object: a position and an orientation
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
	}
}

// NewTransformYaw creates a transform rotated around the up axis, angle in degrees
func NewTransformYaw(position mgl64.Vec3, yawDegrees float64) Transform {
	return Transform{
		Position: position,
		Rotation: mgl64.QuatRotate(mgl64.DegToRad(yawDegrees), Up),
	}
}
