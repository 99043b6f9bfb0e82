// Package locomotion converts movement intent and jump requests into
// forces on a dynamic rigid body: grounded steering, scaled gravity,
// wall detection, wall running, and wall jumping. The host simulation
// is abstracted behind the Body and Caster interfaces so the controller
// runs against any rigid-body backend, including fakes in tests.
package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/daRealZoinks/Project-Skyscraper/common"
)

// Contact normals steeper than this up-component count as ground.
const groundNormalY = 0.5

// Body is the dynamic rigid body the controller drives. Forces are
// acceleration-mode (mass independent, integrated over the fixed step);
// impulses are instantaneous velocity changes.
type Body interface {
	Position() mgl64.Vec3
	// Center is the world-space center of the collision shape; wall
	// probes originate here.
	Center() mgl64.Vec3
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	AddForce(f mgl64.Vec3)
	AddImpulse(j mgl64.Vec3)
	Yaw() float64
	SetYaw(yaw float64)
}

// Caster is the raycast capability the controller needs from its host.
type Caster interface {
	Cast(origin, dir mgl64.Vec3, maxDist float64) (Hit, bool)
}

// FacingSource supplies an ambient yaw, typically from a camera. Pitch
// and roll are not consumed.
type FacingSource interface {
	Yaw() float64
}

// Controller runs once per fixed simulation step. It is single
// threaded: the physics tick delivers contact events first, then calls
// Step, so contact effects are visible within the same tick.
type Controller struct {
	body   Body
	caster Caster
	facing FacingSource

	tuning  Tuning
	gravity mgl64.Vec3

	state  State
	events EventQueue
}

// Option configures optional controller collaborators.
type Option func(*Controller)

// WithGravity overrides the ambient gravity vector (default 0,-9.81,0).
func WithGravity(g mgl64.Vec3) Option {
	return func(c *Controller) { c.gravity = g }
}

// WithFacingSource attaches a yaw source applied every step. Without
// one the facing update is skipped.
func WithFacingSource(f FacingSource) Option {
	return func(c *Controller) { c.facing = f }
}

// NewController validates the tuning and builds a controller in the
// spawn state: airborne, no walls.
func NewController(body Body, caster Caster, tuning Tuning, opts ...Option) (*Controller, error) {
	if err := tuning.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		body:    body,
		caster:  caster,
		tuning:  tuning,
		gravity: mgl64.Vec3{0, -9.81, 0},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// State returns a snapshot of the locomotion flags.
func (c *Controller) State() State { return c.state }

// Tuning returns the active parameter set.
func (c *Controller) Tuning() Tuning { return c.tuning }

// SetTuning swaps the parameter set, rejecting invalid values. Used by
// hot reload; takes effect from the next step.
func (c *Controller) SetTuning(t Tuning) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.tuning = t
	return nil
}

// Events returns the outbound notification queue.
func (c *Controller) Events() *EventQueue { return &c.events }

// Step runs the per-tick control logic: steering toward the
// intent-scaled target speed, extra gravity while airborne, the facing
// update, then the wall probes. Intent components are nominally in
// [-1,1] but are not clamped; out-of-range values scale linearly into
// force magnitude.
func (c *Controller) Step(intent mgl64.Vec2) {
	c.applySteering(intent)
	c.applyGravity()
	c.updateFacing()
	c.updateWallRun()
}

func (c *Controller) updateFacing() {
	if c.facing == nil {
		return
	}
	c.body.SetYaw(c.facing.Yaw())
}

// OnContactBegin classifies a new contact's normals. An up-facing
// normal grounds the body and, on the airborne-to-grounded transition,
// emits a single landed event.
func (c *Controller) OnContactBegin(normals []mgl64.Vec3) {
	if !anyGroundNormal(normals) {
		return
	}
	was := c.state.grounded
	c.state.grounded = true
	c.state.wallRunLeft = false
	c.state.wallRunRight = false
	if !was {
		c.events.Push(Event{Kind: EventLanded})
	}
}

// OnContactStay re-asserts grounding from a persisting contact and
// cancels any wall run; landing always wins over wall running.
func (c *Controller) OnContactStay(normals []mgl64.Vec3) {
	if !anyGroundNormal(normals) {
		return
	}
	c.state.grounded = true
	c.state.wallRunLeft = false
	c.state.wallRunRight = false
}

// OnContactEnd clears grounding unconditionally. Only a single contact
// area is modeled, so any ending contact drops grounded even if
// another surface is still touching.
func (c *Controller) OnContactEnd() {
	c.state.grounded = false
}

func anyGroundNormal(normals []mgl64.Vec3) bool {
	for _, n := range normals {
		if n.Y() > groundNormalY {
			return true
		}
	}
	return false
}

func (c *Controller) forward() mgl64.Vec3 {
	return common.YawForward(c.body.Yaw())
}

func (c *Controller) right() mgl64.Vec3 {
	return common.YawRight(c.body.Yaw())
}
