package glide

import (
	"github.com/akmonengine/glide/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	DEFAULT_GRAVITY          = 20.0
	DEFAULT_JUMP_SPEED       = 6.0
	DEFAULT_GROUND_TOLERANCE = 0.08
)

// groundSkin keeps snapped feet a hair above the surface they rest on
const groundSkin = 1e-3

// ControllerSettings tunes the movement controller
type ControllerSettings struct {
	Gravity         float64 `yaml:"gravity"`          // downward acceleration, positive
	JumpSpeed       float64 `yaml:"jump_speed"`       // vertical speed given by a jump
	GroundTolerance float64 `yaml:"ground_tolerance"` // how far below the feet ground still counts
}

func DefaultControllerSettings() ControllerSettings {
	return ControllerSettings{
		Gravity:         DEFAULT_GRAVITY,
		JumpSpeed:       DEFAULT_JUMP_SPEED,
		GroundTolerance: DEFAULT_GROUND_TOLERANCE,
	}
}

// Controller moves one agent through a World: gravity, jumps, wall sliding,
// step climbing and grounding. Position is the agent's feet.
type Controller struct {
	World    *World
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Settings ControllerSettings

	Events Events

	grounded bool
	groundY  float64
	contacts []Handle
}

func NewController(world *World, position mgl64.Vec3, settings ControllerSettings) *Controller {
	return &Controller{
		World:    world,
		Position: position,
		Settings: settings,
		Events:   NewEvents(),
	}
}

// Grounded reports whether the agent stood on something after the last update
func (c *Controller) Grounded() bool {
	return c.grounded
}

// GroundY is the height of the surface under the agent, valid when Grounded
func (c *Controller) GroundY() float64 {
	return c.groundY
}

// Update advances the agent by dt seconds. wishVelocity is the horizontal
// speed requested by input (its Y is ignored); jump only applies on ground.
func (c *Controller) Update(dt float64, wishVelocity mgl64.Vec3, jump bool) {
	if dt <= 0 {
		return
	}

	switch {
	case c.grounded && jump:
		c.Velocity[1] = c.Settings.JumpSpeed
	case c.grounded && c.Velocity.Y() <= 0:
		c.Velocity[1] = 0
	default:
		c.Velocity[1] -= c.Settings.Gravity * dt
	}
	c.Velocity[0] = wishVelocity.X()
	c.Velocity[2] = wishVelocity.Z()

	motion := c.Velocity.Mul(dt)
	moved := c.Move(motion)

	// Head bump: upward motion blocked by a ceiling
	if motion.Y() > 0 && moved.Y() < motion.Y()*0.5 {
		c.Velocity[1] = 0
	}

	c.refreshGround()

	c.Events.recordContacts(c.contacts)
	c.Events.recordGrounded(c.grounded, c.groundY)
	c.Events.flush()
	c.contacts = c.contacts[:0]
}

// Move slides the agent by motion and returns the displacement achieved.
// A grounded agent blocked horizontally tries to climb a step no higher
// than the agent's StepHeight.
func (c *Controller) Move(motion mgl64.Vec3) mgl64.Vec3 {
	start := c.Position

	slide := c.World.Slide(start, motion)
	c.contacts = append(c.contacts, slide.Contacts...)
	end := slide.Position

	horizontal := mgl64.Vec3{motion.X(), 0, motion.Z()}
	if c.grounded && c.World.agent.StepHeight > 0 && horizontal.LenSqr() > c.World.settings.SlideEpsilon {
		progress := horizontalProgress(start, end, horizontal)
		if progress < horizontal.Len()*c.World.settings.SlideDamping {
			if stepped, ok := c.tryStep(start, horizontal); ok && horizontalProgress(start, stepped, horizontal) > progress {
				end = stepped
			}
		}
	}

	c.Position = end
	return end.Sub(start)
}

// tryStep moves up by the step height, across, then back down onto the ground
// found there, when that ground is within the step height of the feet.
func (c *Controller) tryStep(start, horizontal mgl64.Vec3) (mgl64.Vec3, bool) {
	stepHeight := c.World.agent.StepHeight

	raised := c.World.Slide(start, actor.Up.Mul(stepHeight))
	across := c.World.Slide(raised.Position, horizontal)

	lowest := start.Y() - c.Settings.GroundTolerance
	ground, ok := c.World.ProbeGround(across.Position, across.Position.Y()-lowest)
	if !ok {
		return start, false
	}
	if rise := ground - start.Y(); rise > stepHeight {
		return start, false
	}

	landed := mgl64.Vec3{across.Position.X(), ground + groundSkin, across.Position.Z()}
	if _, blocked := c.World.ClosestPenetration(c.World.capsuleAt(landed)); blocked {
		return start, false
	}

	c.contacts = append(c.contacts, raised.Contacts...)
	c.contacts = append(c.contacts, across.Contacts...)
	return landed, true
}

// refreshGround probes below the feet and snaps a grounded agent onto its floor
func (c *Controller) refreshGround() {
	ground, ok := c.World.ProbeGround(c.Position, c.Settings.GroundTolerance)
	if !ok || c.Velocity.Y() > 0 {
		c.grounded = false
		return
	}

	c.grounded = true
	c.groundY = ground
	c.Velocity[1] = 0

	snapped := mgl64.Vec3{c.Position.X(), ground + groundSkin, c.Position.Z()}
	if snapped.Y() != c.Position.Y() {
		if _, blocked := c.World.ClosestPenetration(c.World.capsuleAt(snapped)); !blocked {
			c.Position = snapped
		}
	}
}

// horizontalProgress is how far the agent went along the requested direction
func horizontalProgress(start, end, horizontal mgl64.Vec3) float64 {
	l := horizontal.Len()
	if l == 0 {
		return 0
	}
	delta := end.Sub(start)
	delta[1] = 0
	return delta.Dot(horizontal) / l
}
