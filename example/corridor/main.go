package main

import (
	"fmt"

	"github.com/akmonengine/glide"
	"github.com/akmonengine/glide/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	ownerLevel glide.OwnerID = iota + 1
	ownerCrate
)

// SetupScene builds a corridor: a floor, two walls, a step and a crate
func SetupScene() (*glide.World, *glide.Controller) {
	world, err := glide.NewWorld(glide.DefaultSettings(), actor.AgentConfig{
		Radius:     0.3,
		Height:     1.8,
		StepHeight: 0.35,
	}, nil)
	if err != nil {
		panic(err)
	}

	// Floor (top at y=0) and walls along X
	world.Add(actor.AABB{Min: mgl64.Vec3{-2, -1, -2}, Max: mgl64.Vec3{20, 0, 2}}, ownerLevel)
	world.Add(actor.AABB{Min: mgl64.Vec3{-2, 0, -3}, Max: mgl64.Vec3{20, 3, -2}}, ownerLevel)
	world.Add(actor.AABB{Min: mgl64.Vec3{-2, 0, 2}, Max: mgl64.Vec3{20, 3, 3}}, ownerLevel)

	// A 0.25 high step at x=5
	world.Add(actor.AABB{Min: mgl64.Vec3{5, 0, -2}, Max: mgl64.Vec3{20, 0.25, 2}}, ownerLevel)

	// A crate rotated by 30 degrees, registered through its bounding box
	world.AddBox(actor.Box{HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}},
		actor.NewTransformYaw(mgl64.Vec3{10, 0.75, 1.2}, 30), ownerCrate)

	ctrl := glide.NewController(world, mgl64.Vec3{0, 0, 0}, glide.DefaultControllerSettings())
	ctrl.Events.Subscribe(glide.CONTACT_ENTER, func(e glide.Event) {
		fmt.Printf("  contact enter %v\n", e.(glide.ContactEnterEvent).Collider)
	})
	ctrl.Events.Subscribe(glide.ON_GROUNDED, func(e glide.Event) {
		fmt.Printf("  grounded at y=%.3f\n", e.(glide.GroundedEvent).GroundY)
	})
	ctrl.Events.Subscribe(glide.ON_AIRBORNE, func(glide.Event) {
		fmt.Println("  airborne")
	})

	return world, ctrl
}

func main() {
	world, ctrl := SetupScene()
	fmt.Printf("%d colliders, %d debug segments\n", len(world.Colliders()), len(world.Wireframe()))

	const dt float64 = 1.0 / 60.0
	// Walk along the corridor, drifting into the right wall
	wish := mgl64.Vec3{4, 0, 1}

	for step := 0; step < 300; step++ {
		ctrl.Update(dt, wish, step == 150)
		if step%30 == 0 {
			fmt.Printf("step %3d: position %.3f grounded=%v\n", step, ctrl.Position, ctrl.Grounded())
		}
	}

	// Removing the crate frees the path
	fmt.Printf("removed %d crate colliders\n", world.RemoveAllForOwner(ownerCrate))
}
