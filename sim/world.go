// Package sim is a small 2.5D host simulation for the locomotion
// controller: a wall plan of vertical surfaces held as static chipmunk
// shapes in the horizontal plane, a flat floor, and dynamic bodies with
// a manually integrated vertical axis. It exists for the demo, the
// scenario harness, and integration tests; the controller itself only
// ever sees the locomotion.Body and locomotion.Caster interfaces.
package sim

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/daRealZoinks/Project-Skyscraper/prefabs"
)

const (
	collisionTypeWall cp.CollisionType = iota + 1
	collisionTypeTrigger
)

// World owns the chipmunk space holding the wall plan and steps every
// body with a fixed timestep. Single threaded.
type World struct {
	space   *cp.Space
	floor   float64
	gravity mgl64.Vec3
	bodies  []*Body
}

// NewWorld builds the wall plan from a world spec. A zero gravity spec
// falls back to standard gravity.
func NewWorld(spec prefabs.WorldSpec) *World {
	space := cp.NewSpace()
	space.Iterations = 10

	w := &World{
		space:   space,
		floor:   spec.FloorHeight,
		gravity: mgl64.Vec3{spec.Gravity.X, spec.Gravity.Y, spec.Gravity.Z},
	}
	if w.gravity.Len() == 0 {
		w.gravity = mgl64.Vec3{0, -9.81, 0}
	}
	for _, wall := range spec.Walls {
		w.addWall(wall)
	}
	return w
}

func (w *World) addWall(spec prefabs.WallSpec) {
	a := cp.Vector{X: spec.X1, Y: spec.Z1}
	b := cp.Vector{X: spec.X2, Y: spec.Z2}
	thickness := spec.Thickness
	if thickness <= 0 {
		thickness = 0.1
	}
	shape := cp.NewSegment(w.space.StaticBody, a, b, thickness)
	shape.SetFriction(0.8)
	if spec.Trigger {
		shape.SetSensor(true)
		shape.SetCollisionType(collisionTypeTrigger)
	} else {
		shape.SetCollisionType(collisionTypeWall)
	}
	w.space.AddShape(shape)
}

// Space returns the underlying chipmunk space.
func (w *World) Space() *cp.Space { return w.space }

// Gravity returns the ambient gravity vector.
func (w *World) Gravity() mgl64.Vec3 { return w.gravity }

// Floor returns the ground height.
func (w *World) Floor() float64 { return w.floor }

// Raycaster returns a probe capability over the wall plan.
func (w *World) Raycaster() Raycaster { return Raycaster{space: w.space} }

// AddBody spawns a dynamic body from a player spec.
func (w *World) AddBody(spec prefabs.PlayerSpec) *Body {
	b := newBody(w, spec)
	w.bodies = append(w.bodies, b)
	return b
}

// Step advances every body by dt. Contact begin/stay/end callbacks fire
// at the end of each body's step, strictly before the next controller
// step reads the flags.
func (w *World) Step(dt float64) {
	for _, b := range w.bodies {
		b.step(dt)
	}
}
