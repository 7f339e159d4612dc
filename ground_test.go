package glide

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestProbeGround_Scenario(t *testing.T) {
	w := newTestWorld(t, testAgent)
	addBox(t, w, mgl64.Vec3{-1, 0, -1}, mgl64.Vec3{1, 1, 1})

	ground, ok := w.ProbeGround(mgl64.Vec3{0, 2, 0}, 100)
	if !ok || ground != 1.0 {
		t.Errorf("ProbeGround over the box = %v, %v, want 1.0", ground, ok)
	}

	if ground, ok := w.ProbeGround(mgl64.Vec3{5, 2, 5}, 100); ok {
		t.Errorf("ProbeGround clear of the box = %v, want none", ground)
	}
}

func TestProbeGround_FootprintWidenedByRadius(t *testing.T) {
	w := newTestWorld(t, testAgent)
	addBox(t, w, mgl64.Vec3{-1, 0, -1}, mgl64.Vec3{1, 1, 1})

	tests := []struct {
		name     string
		position mgl64.Vec3
		expected bool
	}{
		{"center past the edge, capsule over it", mgl64.Vec3{1.25, 2, 0}, true},
		{"footprint clear of the edge", mgl64.Vec3{1.35, 2, 0}, false},
		{"diagonal within the widened corner", mgl64.Vec3{-1.2, 2, 1.2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := w.ProbeGround(tt.position, 10); ok != tt.expected {
				t.Errorf("ProbeGround(%v) found = %v, want %v", tt.position, ok, tt.expected)
			}
		})
	}
}

func TestProbeGround_HighestBelowFeet(t *testing.T) {
	w := newTestWorld(t, testAgent)
	addBox(t, w, mgl64.Vec3{-10, -1, -10}, mgl64.Vec3{10, 0, 10})
	addBox(t, w, mgl64.Vec3{-1, 0, -1}, mgl64.Vec3{1, 0.5, 1})
	addBox(t, w, mgl64.Vec3{-0.5, 0, -0.5}, mgl64.Vec3{0.5, 1.25, 0.5})
	// Above the feet: a ceiling is not ground
	addBox(t, w, mgl64.Vec3{-10, 4, -10}, mgl64.Vec3{10, 5, 10})

	tests := []struct {
		name        string
		position    mgl64.Vec3
		maxDistance float64
		expected    float64
		found       bool
	}{
		{"stacked platforms keep the highest", mgl64.Vec3{0, 2, 0}, 10, 1.25, true},
		{"nothing within range", mgl64.Vec3{0, 2, 0}, 0.7, 0, false},
		{"top exactly at range", mgl64.Vec3{0, 2, 0}, 0.75, 1.25, true},
		{"feet exactly on the top face", mgl64.Vec3{0, 1.25, 0}, 0, 1.25, true},
		{"between two tops", mgl64.Vec3{0, 1, 0}, 10, 0.5, true},
		{"beside the platforms", mgl64.Vec3{5, 2, 5}, 10, 0, true},
		{"unbounded range", mgl64.Vec3{5, 3, 5}, math.Inf(1), 0, true},
		{"airborne beyond range", mgl64.Vec3{5, 3, 5}, 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ground, ok := w.ProbeGround(tt.position, tt.maxDistance)
			if ok != tt.found {
				t.Fatalf("found = %v, want %v (ground %v)", ok, tt.found, ground)
			}
			if ok && ground != tt.expected {
				t.Errorf("ground = %v, want %v", ground, tt.expected)
			}
		})
	}
}

func TestProbeGround_InvalidDistance(t *testing.T) {
	w := newTestWorld(t, testAgent)
	addBox(t, w, mgl64.Vec3{-1, 0, -1}, mgl64.Vec3{1, 1, 1})

	for _, d := range []float64{-1, math.NaN()} {
		if _, ok := w.ProbeGround(mgl64.Vec3{0, 1, 0}, d); ok {
			t.Errorf("ProbeGround with maxDistance %v should find nothing", d)
		}
	}
}

func TestProbeGround_AfterRemove(t *testing.T) {
	w := newTestWorld(t, testAgent)
	floor := addBox(t, w, mgl64.Vec3{-1, 0, -1}, mgl64.Vec3{1, 1, 1})

	w.Remove(floor)
	if _, ok := w.ProbeGround(mgl64.Vec3{0, 2, 0}, 100); ok {
		t.Error("removed collider still reported as ground")
	}
}
