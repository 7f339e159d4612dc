// Package scene loads level geometry for the collision engine from YAML.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/akmonengine/glide"
	"github.com/akmonengine/glide/actor"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Scene is a static level: explicit bounds, oriented boxes and a spawn point
type Scene struct {
	Spawn     mgl64.Vec3     `yaml:"spawn"`
	Colliders []ColliderSpec `yaml:"colliders"`
	Boxes     []BoxSpec      `yaml:"boxes"`
}

// ColliderSpec is an axis-aligned collider given by its corners
type ColliderSpec struct {
	Min   mgl64.Vec3 `yaml:"min"`
	Max   mgl64.Vec3 `yaml:"max"`
	Owner uint64     `yaml:"owner"`
}

// BoxSpec is a world object whose bounding box becomes a collider
type BoxSpec struct {
	Center      mgl64.Vec3 `yaml:"center"`
	HalfExtents mgl64.Vec3 `yaml:"half_extents"`
	Yaw         float64    `yaml:"yaw"` // degrees around the up axis
	Owner       uint64     `yaml:"owner"`
}

// Load decodes a scene
func Load(r io.Reader) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	return &s, nil
}

// LoadFile decodes the scene file at path
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scene: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Populate registers every collider of the scene in w
func (s *Scene) Populate(w *glide.World) error {
	for i, c := range s.Colliders {
		if _, err := w.Add(actor.AABB{Min: c.Min, Max: c.Max}, glide.OwnerID(c.Owner)); err != nil {
			return fmt.Errorf("collider %d: %w", i, err)
		}
	}

	for i, b := range s.Boxes {
		box := actor.Box{HalfExtents: b.HalfExtents}
		transform := actor.NewTransformYaw(b.Center, b.Yaw)
		if _, err := w.AddBox(box, transform, glide.OwnerID(b.Owner)); err != nil {
			return fmt.Errorf("box %d: %w", i, err)
		}
	}

	return nil
}
