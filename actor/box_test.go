package actor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBoxBoundsWithRotation(t *testing.T) {
	tests := []struct {
		name        string
		box         Box
		transform   Transform
		expectedMin mgl64.Vec3
		expectedMax mgl64.Vec3
	}{
		{
			name:        "identity",
			box:         Box{HalfExtents: mgl64.Vec3{1, 2, 3}},
			transform:   NewTransform(),
			expectedMin: mgl64.Vec3{-1, -2, -3},
			expectedMax: mgl64.Vec3{1, 2, 3},
		},
		{
			name: "rotation 90° around Z-axis",
			box:  Box{HalfExtents: mgl64.Vec3{1, 2, 3}},
			transform: Transform{
				Position: mgl64.Vec3{0, 0, 0},
				Rotation: mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{0, 0, 1}),
			},
			expectedMin: mgl64.Vec3{-2, -1, -3},
			expectedMax: mgl64.Vec3{2, 1, 3},
		},
		{
			name:        "yaw 45°",
			box:         Box{HalfExtents: mgl64.Vec3{1, 1, 1}},
			transform:   NewTransformYaw(mgl64.Vec3{0, 0, 0}, 45),
			expectedMin: mgl64.Vec3{-1.4142, -1, -1.4142},
			expectedMax: mgl64.Vec3{1.4142, 1, 1.4142},
		},
		{
			name:        "yaw 90° with offset position",
			box:         Box{HalfExtents: mgl64.Vec3{2, 0.5, 1}},
			transform:   NewTransformYaw(mgl64.Vec3{5, 10, -3}, 90),
			expectedMin: mgl64.Vec3{4, 9.5, -5},
			expectedMax: mgl64.Vec3{6, 10.5, -1},
		},
		{
			name:        "zero quaternion is identity",
			box:         Box{HalfExtents: mgl64.Vec3{1, 1, 1}},
			transform:   Transform{Position: mgl64.Vec3{1, 0, 0}},
			expectedMin: mgl64.Vec3{0, -1, -1},
			expectedMax: mgl64.Vec3{2, 1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aabb := tt.box.Bounds(tt.transform)

			if !vec3Equal(aabb.Min, tt.expectedMin, 1e-3) {
				t.Errorf("Min = %v, want %v (tolerance 1e-3)", aabb.Min, tt.expectedMin)
			}
			if !vec3Equal(aabb.Max, tt.expectedMax, 1e-3) {
				t.Errorf("Max = %v, want %v (tolerance 1e-3)", aabb.Max, tt.expectedMax)
			}
			if !aabb.IsOrdered() {
				t.Errorf("bounds %v are not ordered", aabb)
			}
		})
	}
}
