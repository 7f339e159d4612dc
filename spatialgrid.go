package glide

import (
	"math"
	"slices"
	"sort"

	"github.com/akmonengine/glide/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ============================================================================
// Types
// ============================================================================

// CellKey - coordinates of a cell in 3D space
type CellKey struct {
	X, Y, Z int
}

// Cell - slot indices of the colliders overlapping the cell
type Cell struct {
	slots []int
}

// maxCellsPerEntry bounds how many cells a single collider or query may span.
// Larger colliders (level floors) live in the oversized list, larger queries
// fall back to a full scan.
const maxCellsPerEntry = 512

// SpatialGrid - uniform hashed grid over static colliders
type SpatialGrid struct {
	cellSize  float64
	cells     []Cell
	cellMask  int
	oversized []int
	scratch   []int
}

// ============================================================================
// Constructor
// ============================================================================

// NewSpatialGrid - creates a grid; numCells is rounded up to a power of two
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].slots = make([]int, 0, 4)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

// nextPowerOfTwo - rounds up to the next power of two
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert - registers a slot in every cell its box occupies
func (sg *SpatialGrid) Insert(slot int, box actor.AABB) {
	minCell, maxCell, ok := sg.cellRange(box)
	if !ok {
		sg.oversized = append(sg.oversized, slot)
		return
	}

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := sg.hashCell(CellKey{x, y, z})
				sg.cells[cellIdx].slots = append(sg.cells[cellIdx].slots, slot)
			}
		}
	}
}

// Remove - forgets a slot; box must be the one it was inserted with
func (sg *SpatialGrid) Remove(slot int, box actor.AABB) {
	minCell, maxCell, ok := sg.cellRange(box)
	if !ok {
		sg.oversized = removeSlot(sg.oversized, slot)
		return
	}

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := sg.hashCell(CellKey{x, y, z})
				sg.cells[cellIdx].slots = removeSlot(sg.cells[cellIdx].slots, slot)
			}
		}
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].slots = sg.cells[i].slots[:0]
	}
	sg.oversized = sg.oversized[:0]
}

// Query - candidate slots whose cells intersect box, sorted and deduplicated.
// Hash collisions may add false positives, callers run the exact test.
// ok is false when the query is too large (or not finite) to walk the grid;
// the caller must then scan every collider.
// The returned slice is reused by the next call.
func (sg *SpatialGrid) Query(box actor.AABB) ([]int, bool) {
	minCell, maxCell, ok := sg.cellRange(box)
	if !ok {
		return nil, false
	}

	candidates := append(sg.scratch[:0], sg.oversized...)
	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := sg.hashCell(CellKey{x, y, z})
				candidates = append(candidates, sg.cells[cellIdx].slots...)
			}
		}
	}

	// Deterministic order: the probe keeps the first of equally deep contacts
	sort.Ints(candidates)
	candidates = slices.Compact(candidates)
	sg.scratch = candidates

	return candidates, true
}

// cellRange - cell bounds of box, false when it spans too many cells
func (sg *SpatialGrid) cellRange(box actor.AABB) (CellKey, CellKey, bool) {
	if !box.IsFinite() {
		return CellKey{}, CellKey{}, false
	}

	span := 1.0
	for axis := 0; axis < 3; axis++ {
		span *= math.Floor(box.Max[axis]/sg.cellSize) - math.Floor(box.Min[axis]/sg.cellSize) + 1
	}
	if span > maxCellsPerEntry {
		return CellKey{}, CellKey{}, false
	}

	return sg.worldToCell(box.Min), sg.worldToCell(box.Max), true
}

// worldToCell - converts a world position to cell coordinates
func (sg *SpatialGrid) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
		Z: int(math.Floor(pos.Z() / sg.cellSize)),
	}
}

// hashCell - hashes a cell to an index in the array
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & sg.cellMask
}

func removeSlot(slots []int, slot int) []int {
	for i, s := range slots {
		if s == slot {
			return append(slots[:i], slots[i+1:]...)
		}
	}
	return slots
}
