package sim

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/daRealZoinks/Project-Skyscraper/common"
	"github.com/daRealZoinks/Project-Skyscraper/prefabs"
)

// ContactSink receives contact lifecycle callbacks. The locomotion
// controller satisfies this interface directly.
type ContactSink interface {
	OnContactBegin(normals []mgl64.Vec3)
	OnContactStay(normals []mgl64.Vec3)
	OnContactEnd()
}

// Body is a dynamic yaw-only body: horizontal collisions resolve
// against the wall plan, the vertical axis integrates against the flat
// floor. Position is the feet point. Forces are acceleration mode and
// accumulate until the next step; impulses change velocity immediately.
type Body struct {
	world *World

	pos    mgl64.Vec3
	vel    mgl64.Vec3
	yaw    float64
	radius float64
	height float64

	force mgl64.Vec3
	sink  ContactSink

	// previous-step contact presence, per group, for begin/stay/end
	// edges. Floor and walls are separate contact areas so that leaving
	// the ground is reported even while a wall contact persists.
	touchingGround bool
	touchingWalls  bool
}

func newBody(w *World, spec prefabs.PlayerSpec) *Body {
	radius := spec.Collider.Radius
	if radius <= 0 {
		radius = 0.5
	}
	height := spec.Collider.Height
	if height <= 0 {
		height = 2
	}
	return &Body{
		world:  w,
		pos:    mgl64.Vec3{spec.Spawn.X, spec.Spawn.Y, spec.Spawn.Z},
		yaw:    spec.Spawn.Yaw,
		radius: radius,
		height: height,
	}
}

// SetContactSink registers the receiver for contact events.
func (b *Body) SetContactSink(sink ContactSink) { b.sink = sink }

func (b *Body) Position() mgl64.Vec3 { return b.pos }

// Center is the middle of the collision volume; wall probes start here.
func (b *Body) Center() mgl64.Vec3 {
	return b.pos.Add(common.Up.Mul(b.height / 2))
}

func (b *Body) Velocity() mgl64.Vec3     { return b.vel }
func (b *Body) SetVelocity(v mgl64.Vec3) { b.vel = v }

func (b *Body) AddForce(f mgl64.Vec3) {
	b.force = b.force.Add(f)
}

func (b *Body) AddImpulse(j mgl64.Vec3) {
	b.vel = b.vel.Add(j)
}

func (b *Body) Yaw() float64       { return b.yaw }
func (b *Body) SetYaw(yaw float64) { b.yaw = yaw }

// step integrates one fixed timestep: ambient gravity plus accumulated
// forces, then ground and wall resolution, then contact dispatch.
func (b *Body) step(dt float64) {
	b.vel = b.vel.Add(b.world.gravity.Mul(dt)).Add(b.force.Mul(dt))
	b.force = mgl64.Vec3{}
	b.pos = b.pos.Add(b.vel.Mul(dt))

	onGround := false
	if b.pos.Y() <= b.world.floor {
		b.pos = mgl64.Vec3{b.pos.X(), b.world.floor, b.pos.Z()}
		if b.vel.Y() < 0 {
			b.vel = mgl64.Vec3{b.vel.X(), 0, b.vel.Z()}
		}
		onGround = true
	}
	walls := b.resolveWalls()
	b.dispatchContacts(onGround, walls)
}

// resolveWalls pushes the body out of any solid wall it overlaps and
// kills the velocity component into the wall. Sensor shapes never
// collide.
func (b *Body) resolveWalls() []mgl64.Vec3 {
	var normals []mgl64.Vec3
	p := cp.Vector{X: b.pos.X(), Y: b.pos.Z()}
	b.world.space.EachShape(func(shape *cp.Shape) {
		if shape.Sensor() {
			return
		}
		info := shape.PointQuery(p)
		if info.Distance >= b.radius {
			return
		}
		n := mgl64.Vec3{info.Gradient.X, 0, info.Gradient.Y}
		if n.Len() == 0 {
			return
		}
		b.pos = b.pos.Add(n.Mul(b.radius - info.Distance))
		if into := b.vel.Dot(n); into < 0 {
			b.vel = b.vel.Sub(n.Mul(into))
		}
		normals = append(normals, n)
	})
	return normals
}

// dispatchContacts reports begin/stay/end edges for the floor and the
// wall plan as two independent contact areas. The ground edge goes
// first so landing is classified before any wall contact of the same
// step.
func (b *Body) dispatchContacts(onGround bool, walls []mgl64.Vec3) {
	if b.sink != nil {
		switch {
		case onGround && !b.touchingGround:
			b.sink.OnContactBegin([]mgl64.Vec3{common.Up})
		case onGround:
			b.sink.OnContactStay([]mgl64.Vec3{common.Up})
		case b.touchingGround:
			b.sink.OnContactEnd()
		}
		switch {
		case len(walls) > 0 && !b.touchingWalls:
			b.sink.OnContactBegin(walls)
		case len(walls) > 0:
			b.sink.OnContactStay(walls)
		case b.touchingWalls:
			b.sink.OnContactEnd()
		}
	}
	b.touchingGround = onGround
	b.touchingWalls = len(walls) > 0
}
