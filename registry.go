package glide

import (
	"errors"
	"fmt"

	"github.com/akmonengine/glide/actor"
	"go.uber.org/zap"
)

var ErrInvalidBounds = errors.New("invalid collider bounds")

// OwnerID is an opaque, non-owning reference to the world object a collider
// was created for. NoOwner marks level geometry nobody bulk-removes.
type OwnerID uint64

const NoOwner OwnerID = 0

// Collider is a static axis-aligned obstacle
type Collider struct {
	Bounds actor.AABB
	Owner  OwnerID
}

// Handle refers to a registered collider. Handles of removed colliders go
// stale: their slot may be reused, but with a new generation.
// The zero Handle never refers to a collider.
type Handle struct {
	index      uint32
	generation uint32
}

func (h Handle) IsZero() bool {
	return h.generation == 0
}

func (h Handle) String() string {
	return fmt.Sprintf("%d:%d", h.index, h.generation)
}

type slot struct {
	collider   Collider
	generation uint32
	alive      bool
}

// Registry owns the static colliders. It is not safe for concurrent use:
// mutate it between movement queries, from the thread that runs them.
type Registry struct {
	slots  []slot
	free   []uint32
	owners map[OwnerID]map[Handle]struct{}
	live   int
	grid   *SpatialGrid
	logger *zap.Logger
}

// NewRegistry creates an empty registry bucketing colliders in a grid of
// numCells cells of cellSize world units
func NewRegistry(cellSize float64, numCells int, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		owners: make(map[OwnerID]map[Handle]struct{}),
		grid:   NewSpatialGrid(cellSize, numCells),
		logger: logger,
	}
}

// Add registers a collider. Inverted bounds are reordered per axis;
// non-finite bounds are rejected.
func (r *Registry) Add(c Collider) (Handle, error) {
	if !c.Bounds.IsFinite() {
		return Handle{}, fmt.Errorf("%w: %v", ErrInvalidBounds, c.Bounds)
	}
	if !c.Bounds.IsOrdered() {
		r.logger.Debug("reordering inverted collider bounds",
			zap.Float64s("min", c.Bounds.Min[:]), zap.Float64s("max", c.Bounds.Max[:]))
		c.Bounds = actor.NewAABB(c.Bounds.Min, c.Bounds.Max)
	}

	var index uint32
	if n := len(r.free); n > 0 {
		index = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		index = uint32(len(r.slots))
		r.slots = append(r.slots, slot{})
	}

	s := &r.slots[index]
	s.generation++
	s.collider = c
	s.alive = true
	h := Handle{index: index, generation: s.generation}

	r.grid.Insert(int(index), c.Bounds)
	if c.Owner != NoOwner {
		set, ok := r.owners[c.Owner]
		if !ok {
			set = make(map[Handle]struct{})
			r.owners[c.Owner] = set
		}
		set[h] = struct{}{}
	}
	r.live++

	r.logger.Debug("collider added", zap.Stringer("handle", h), zap.Uint64("owner", uint64(c.Owner)))
	return h, nil
}

// Remove unregisters a collider. Removing a stale handle is a no-op.
func (r *Registry) Remove(h Handle) {
	s, ok := r.lookup(h)
	if !ok {
		return
	}

	r.grid.Remove(int(h.index), s.collider.Bounds)
	if set, ok := r.owners[s.collider.Owner]; ok {
		delete(set, h)
		if len(set) == 0 {
			delete(r.owners, s.collider.Owner)
		}
	}

	s.alive = false
	s.collider = Collider{}
	r.free = append(r.free, h.index)
	r.live--

	r.logger.Debug("collider removed", zap.Stringer("handle", h))
}

// RemoveAllForOwner unregisters every collider tagged with owner and returns how many
func (r *Registry) RemoveAllForOwner(owner OwnerID) int {
	if owner == NoOwner {
		return 0
	}
	set := r.owners[owner]
	handles := make([]Handle, 0, len(set))
	for h := range set {
		handles = append(handles, h)
	}
	for _, h := range handles {
		r.Remove(h)
	}
	return len(handles)
}

// Clear unregisters every collider. Outstanding handles all go stale.
func (r *Registry) Clear() {
	for i := range r.slots {
		if r.slots[i].alive {
			r.slots[i].alive = false
			r.slots[i].collider = Collider{}
			r.free = append(r.free, uint32(i))
		}
	}
	clear(r.owners)
	r.grid.Clear()
	r.live = 0

	r.logger.Debug("colliders cleared")
}

// Get returns the collider behind a live handle
func (r *Registry) Get(h Handle) (Collider, bool) {
	s, ok := r.lookup(h)
	if !ok {
		return Collider{}, false
	}
	return s.collider, true
}

// List returns a copy of every registered collider, in no particular order
func (r *Registry) List() []Collider {
	colliders := make([]Collider, 0, r.live)
	for i := range r.slots {
		if r.slots[i].alive {
			colliders = append(colliders, r.slots[i].collider)
		}
	}
	return colliders
}

func (r *Registry) Len() int {
	return r.live
}

func (r *Registry) lookup(h Handle) (*slot, bool) {
	if h.IsZero() || int(h.index) >= len(r.slots) {
		return nil, false
	}
	s := &r.slots[h.index]
	if !s.alive || s.generation != h.generation {
		return nil, false
	}
	return s, true
}

// each visits the live colliders that may overlap region, in ascending slot order
func (r *Registry) each(region actor.AABB, fn func(h Handle, c Collider)) {
	if r.live == 0 {
		return
	}

	candidates, ok := r.grid.Query(region)
	if !ok {
		for i := range r.slots {
			if r.slots[i].alive {
				fn(Handle{index: uint32(i), generation: r.slots[i].generation}, r.slots[i].collider)
			}
		}
		return
	}

	for _, i := range candidates {
		s := &r.slots[i]
		if s.alive {
			fn(Handle{index: uint32(i), generation: s.generation}, s.collider)
		}
	}
}
