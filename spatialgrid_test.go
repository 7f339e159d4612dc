package glide

import (
	"math"
	"slices"
	"testing"

	"github.com/akmonengine/glide/actor"
	"github.com/go-gl/mathgl/mgl64"
)

func TestWorldToCell(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)

	tests := []struct {
		name     string
		position mgl64.Vec3
		expected CellKey
	}{
		{"origin", mgl64.Vec3{0, 0, 0}, CellKey{0, 0, 0}},
		{"positive", mgl64.Vec3{1.5, 2.3, 3.7}, CellKey{1, 2, 3}},
		{"negative", mgl64.Vec3{-1.5, -2.3, -3.7}, CellKey{-2, -3, -4}},
		{"fractional", mgl64.Vec3{0.5, 0.5, 0.5}, CellKey{0, 0, 0}},
		{"large", mgl64.Vec3{100.7, -200.3, 50.1}, CellKey{100, -201, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := grid.worldToCell(tt.position)
			if result != tt.expected {
				t.Errorf("worldToCell(%v) = %v, want %v", tt.position, result, tt.expected)
			}
		})
	}
}

func TestHashCell(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16) // 16 cells, mask = 15

	tests := []struct {
		name     string
		key      CellKey
		expected int
	}{
		{"origin", CellKey{0, 0, 0}, 0},
		{"simple", CellKey{1, 2, 3}, 0},
		{"negative", CellKey{-1, -2, -3}, 13},
		{"large", CellKey{100, 200, 300}, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := grid.hashCell(tt.key)
			if result < 0 || result >= len(grid.cells) {
				t.Errorf("hashCell(%v) = %d, out of range [0, %d)", tt.key, result, len(grid.cells))
			}
			if result != tt.expected {
				t.Errorf("hashCell(%v) = %d, want %d", tt.key, result, tt.expected)
			}
		})
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		in, expected int
	}{
		{-3, 1}, {0, 1}, {1, 1}, {2, 2}, {3, 4}, {16, 16}, {17, 32}, {4000, 4096},
	}

	for _, tt := range tests {
		if got := nextPowerOfTwo(tt.in); got != tt.expected {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", tt.in, got, tt.expected)
		}
	}
}

// =============================================================================
// Insert / Remove / Query Tests
// =============================================================================

func TestInsertThenQuery(t *testing.T) {
	grid := NewSpatialGrid(1.0, 64)
	box := actor.AABB{Min: mgl64.Vec3{1.1, 2.1, 3.1}, Max: mgl64.Vec3{1.9, 2.9, 3.9}}

	grid.Insert(0, box)

	candidates, ok := grid.Query(box)
	if !ok {
		t.Fatal("small query should walk the grid")
	}
	if !slices.Contains(candidates, 0) {
		t.Errorf("Query = %v, want slot 0", candidates)
	}
}

func TestQuery_SortedAndDeduplicated(t *testing.T) {
	grid := NewSpatialGrid(1.0, 256)

	// Both span several cells, so each appears several times before compaction
	grid.Insert(3, actor.AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{2.5, 0.5, 0.5}})
	grid.Insert(1, actor.AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{0.5, 2.5, 0.5}})

	candidates, ok := grid.Query(actor.AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{2.5, 2.5, 0.5}})
	if !ok {
		t.Fatal("query should walk the grid")
	}
	if !slices.Equal(candidates, []int{1, 3}) {
		t.Errorf("Query = %v, want [1 3]", candidates)
	}
}

func TestRemove(t *testing.T) {
	grid := NewSpatialGrid(1.0, 64)
	box := actor.AABB{Min: mgl64.Vec3{-0.5, -0.5, -0.5}, Max: mgl64.Vec3{1.5, 0.5, 0.5}}

	grid.Insert(4, box)
	grid.Insert(5, box)
	grid.Remove(4, box)

	candidates, _ := grid.Query(box)
	if slices.Contains(candidates, 4) {
		t.Errorf("removed slot still returned: %v", candidates)
	}
	if !slices.Contains(candidates, 5) {
		t.Errorf("slot 5 missing: %v", candidates)
	}
}

func TestClear(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)
	grid.Insert(0, actor.AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}})
	grid.Insert(1, actor.AABB{Min: mgl64.Vec3{-500, -1, -500}, Max: mgl64.Vec3{500, 0, 500}})

	grid.Clear()

	for i, cell := range grid.cells {
		if len(cell.slots) != 0 {
			t.Errorf("cell %d still holds %v", i, cell.slots)
		}
	}
	if len(grid.oversized) != 0 {
		t.Errorf("oversized list not cleared: %v", grid.oversized)
	}
}

func TestLargeColliderGoesOversized(t *testing.T) {
	grid := NewSpatialGrid(1.0, 64)
	floor := actor.AABB{Min: mgl64.Vec3{-100, -1, -100}, Max: mgl64.Vec3{100, 0, 100}}

	grid.Insert(9, floor)
	if !slices.Contains(grid.oversized, 9) {
		t.Fatalf("floor should be kept in the oversized list, got %v", grid.oversized)
	}

	// Any query sees it, wherever it is
	candidates, ok := grid.Query(actor.AABB{Min: mgl64.Vec3{42, -0.5, -17}, Max: mgl64.Vec3{43, 1, -16}})
	if !ok || !slices.Contains(candidates, 9) {
		t.Errorf("Query = %v, %v, want the oversized floor", candidates, ok)
	}

	grid.Remove(9, floor)
	if len(grid.oversized) != 0 {
		t.Errorf("oversized list = %v after Remove", grid.oversized)
	}
}

func TestQuery_FallsBack(t *testing.T) {
	grid := NewSpatialGrid(1.0, 64)

	tests := []struct {
		name string
		box  actor.AABB
	}{
		{"spans too many cells", actor.AABB{Min: mgl64.Vec3{-50, -50, -50}, Max: mgl64.Vec3{50, 50, 50}}},
		{"infinite depth", actor.AABB{Min: mgl64.Vec3{0, math.Inf(-1), 0}, Max: mgl64.Vec3{1, 1, 1}}},
		{"NaN", actor.AABB{Min: mgl64.Vec3{math.NaN(), 0, 0}, Max: mgl64.Vec3{1, 1, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := grid.Query(tt.box); ok {
				t.Error("query should ask for a full scan")
			}
		})
	}
}

func BenchmarkQuery(b *testing.B) {
	grid := NewSpatialGrid(DEFAULT_GRID_CELL_SIZE, DEFAULT_GRID_CELLS)
	for i := 0; i < 1000; i++ {
		x := float64(i%40) * 3
		z := float64(i/40) * 3
		grid.Insert(i, actor.AABB{Min: mgl64.Vec3{x, 0, z}, Max: mgl64.Vec3{x + 1, 2, z + 1}})
	}
	query := actor.AABB{Min: mgl64.Vec3{20, 0, 20}, Max: mgl64.Vec3{21, 1.8, 21}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		grid.Query(query)
	}
}
