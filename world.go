package glide

import (
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/glide/actor"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

const (
	DEFAULT_PROBE_SAMPLES  = 6
	DEFAULT_SWEEP_STEP     = 0.05
	DEFAULT_MAX_BOUNCES    = 3
	DEFAULT_SLIDE_EPSILON  = 1e-4
	DEFAULT_SLIDE_DAMPING  = 0.98
	DEFAULT_OVERCORRECTION = 1.01
	DEFAULT_GRID_CELL_SIZE = 2.0
	DEFAULT_GRID_CELLS     = 4096
)

var ErrInvalidSettings = errors.New("invalid engine settings")

// Settings holds the engine tunables. Smaller sweep steps and more probe
// samples trade CPU for precision.
type Settings struct {
	ProbeSamples   int     `yaml:"probe_samples"`  // points sampled along the capsule segment
	SweepStep      float64 `yaml:"sweep_step"`     // world units between two sweep sub-steps
	MaxBounces     int     `yaml:"max_bounces"`    // sweeps per slide
	SlideEpsilon   float64 `yaml:"slide_epsilon"`  // squared length under which a slide stops
	SlideDamping   float64 `yaml:"slide_damping"`  // remaining length kept after each bounce
	Overcorrection float64 `yaml:"overcorrection"` // depenetration scale, > 1 so the next probe is clean
	GridCellSize   float64 `yaml:"grid_cell_size"`
	GridCells      int     `yaml:"grid_cells"`
}

func DefaultSettings() Settings {
	return Settings{
		ProbeSamples:   DEFAULT_PROBE_SAMPLES,
		SweepStep:      DEFAULT_SWEEP_STEP,
		MaxBounces:     DEFAULT_MAX_BOUNCES,
		SlideEpsilon:   DEFAULT_SLIDE_EPSILON,
		SlideDamping:   DEFAULT_SLIDE_DAMPING,
		Overcorrection: DEFAULT_OVERCORRECTION,
		GridCellSize:   DEFAULT_GRID_CELL_SIZE,
		GridCells:      DEFAULT_GRID_CELLS,
	}
}

func (s Settings) Validate() error {
	switch {
	case s.ProbeSamples < 1:
		return fmt.Errorf("%w: probe_samples %d < 1", ErrInvalidSettings, s.ProbeSamples)
	case !(s.SweepStep > 0) || math.IsInf(s.SweepStep, 0):
		return fmt.Errorf("%w: sweep_step %v must be positive", ErrInvalidSettings, s.SweepStep)
	case s.MaxBounces < 1:
		return fmt.Errorf("%w: max_bounces %d < 1", ErrInvalidSettings, s.MaxBounces)
	case !(s.SlideEpsilon > 0):
		return fmt.Errorf("%w: slide_epsilon %v must be positive", ErrInvalidSettings, s.SlideEpsilon)
	case !(s.SlideDamping > 0 && s.SlideDamping <= 1):
		return fmt.Errorf("%w: slide_damping %v outside (0, 1]", ErrInvalidSettings, s.SlideDamping)
	case !(s.Overcorrection >= 1) || math.IsInf(s.Overcorrection, 0):
		return fmt.Errorf("%w: overcorrection %v < 1", ErrInvalidSettings, s.Overcorrection)
	case !(s.GridCellSize > 0) || math.IsInf(s.GridCellSize, 0):
		return fmt.Errorf("%w: grid_cell_size %v must be positive", ErrInvalidSettings, s.GridCellSize)
	case s.GridCells < 1:
		return fmt.Errorf("%w: grid_cells %d < 1", ErrInvalidSettings, s.GridCells)
	}
	return nil
}

// Mover is the movement contract the game's movement controller depends on
type Mover interface {
	ResolvePenetration(position mgl64.Vec3) mgl64.Vec3
	MoveWithSliding(start, displacement mgl64.Vec3) mgl64.Vec3
	ProbeGround(position mgl64.Vec3, maxDistance float64) (float64, bool)
}

var _ Mover = (*World)(nil)

// World is the collision engine of one agent kind: the static colliders,
// the agent capsule configuration and the engine settings.
// A World is single-threaded: registry mutations and movement queries must
// not run concurrently.
type World struct {
	registry *Registry
	agent    actor.AgentConfig
	settings Settings
	logger   *zap.Logger
}

// NewWorld creates an empty world. A nil logger discards logs.
func NewWorld(settings Settings, agent actor.AgentConfig, logger *zap.Logger) (*World, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := agent.Validate(); err != nil {
		return nil, err
	}

	return &World{
		registry: NewRegistry(settings.GridCellSize, settings.GridCells, logger),
		agent:    agent,
		settings: settings,
		logger:   logger,
	}, nil
}

func (w *World) Settings() Settings {
	return w.settings
}

func (w *World) Agent() actor.AgentConfig {
	return w.agent
}

// SetAgent replaces the agent capsule (crouch, for instance).
// An invalid configuration is rejected and the current one kept.
func (w *World) SetAgent(agent actor.AgentConfig) error {
	if err := agent.Validate(); err != nil {
		w.logger.Warn("agent configuration rejected", zap.Error(err))
		return err
	}
	w.agent = agent
	return nil
}

func (w *World) SetStepHeight(stepHeight float64) error {
	agent := w.agent
	agent.StepHeight = stepHeight
	return w.SetAgent(agent)
}

// Registry exposes the collider set
func (w *World) Registry() *Registry {
	return w.registry
}

// Add registers a collider from explicit bounds
func (w *World) Add(bounds actor.AABB, owner OwnerID) (Handle, error) {
	return w.registry.Add(Collider{Bounds: bounds, Owner: owner})
}

// AddBox registers the bounding box of a world object
func (w *World) AddBox(box actor.Box, transform actor.Transform, owner OwnerID) (Handle, error) {
	return w.registry.Add(Collider{Bounds: box.Bounds(transform), Owner: owner})
}

// Remove unregisters a collider; stale handles are ignored
func (w *World) Remove(h Handle) {
	w.registry.Remove(h)
}

func (w *World) RemoveAllForOwner(owner OwnerID) int {
	return w.registry.RemoveAllForOwner(owner)
}

func (w *World) Clear() {
	w.registry.Clear()
}

// Colliders lists every registered collider, for debug display
func (w *World) Colliders() []Collider {
	return w.registry.List()
}

// capsuleAt builds the agent capsule with its feet at position
func (w *World) capsuleAt(position mgl64.Vec3) actor.Capsule {
	return actor.NewCapsule(position, w.agent)
}
