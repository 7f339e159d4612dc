package actor

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world up axis
var Up = mgl64.Vec3{0, 1, 0}

var ErrInvalidAgent = errors.New("invalid agent configuration")

// AgentConfig describes the capsule of a moving agent
type AgentConfig struct {
	Radius     float64 `yaml:"radius"`
	Height     float64 `yaml:"height"`      // total height, feet to head
	StepHeight float64 `yaml:"step_height"` // highest ledge the controller climbs without jumping
}

// Validate rejects configurations that would produce a degenerate capsule:
// the cylindrical section must have a positive length (Height > 2*Radius).
func (c AgentConfig) Validate() error {
	for _, v := range []float64{c.Radius, c.Height, c.StepHeight} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value in %+v", ErrInvalidAgent, c)
		}
	}
	if c.Radius <= 0 {
		return fmt.Errorf("%w: radius %v must be positive", ErrInvalidAgent, c.Radius)
	}
	if c.Height <= 2*c.Radius {
		return fmt.Errorf("%w: height %v must exceed twice the radius %v", ErrInvalidAgent, c.Height, c.Radius)
	}
	if c.StepHeight < 0 {
		return fmt.Errorf("%w: step height %v must not be negative", ErrInvalidAgent, c.StepHeight)
	}
	return nil
}

// Capsule is a segment swept by a sphere. It is built per query, never stored.
type Capsule struct {
	Bottom mgl64.Vec3
	Top    mgl64.Vec3
	Radius float64
}

// NewCapsule builds the agent capsule standing at position (the feet)
func NewCapsule(position mgl64.Vec3, config AgentConfig) Capsule {
	return Capsule{
		Bottom: position.Add(Up.Mul(config.Radius)),
		Top:    position.Add(Up.Mul(config.Height - config.Radius)),
		Radius: config.Radius,
	}
}

// NewSphere builds a capsule with a zero-length segment
func NewSphere(center mgl64.Vec3, radius float64) Capsule {
	return Capsule{Bottom: center, Top: center, Radius: radius}
}

// Translate returns the capsule moved by offset
func (c Capsule) Translate(offset mgl64.Vec3) Capsule {
	return Capsule{Bottom: c.Bottom.Add(offset), Top: c.Top.Add(offset), Radius: c.Radius}
}

// Sample returns the i-th of n evenly spaced points on the central segment,
// endpoints included. A single sample sits at the midpoint.
func (c Capsule) Sample(i, n int) mgl64.Vec3 {
	if n <= 1 {
		return c.Bottom.Add(c.Top).Mul(0.5)
	}
	t := float64(i) / float64(n-1)
	return c.Bottom.Add(c.Top.Sub(c.Bottom).Mul(t))
}

// AABB returns the bounds of the whole capsule, spheres included
func (c Capsule) AABB() AABB {
	return NewAABB(c.Bottom, c.Top).Expand(c.Radius)
}

// Extent returns the lowest and highest segment coordinate along axis
func (c Capsule) Extent(axis int) (float64, float64) {
	return math.Min(c.Bottom[axis], c.Top[axis]), math.Max(c.Bottom[axis], c.Top[axis])
}
