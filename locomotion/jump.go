package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/daRealZoinks/Project-Skyscraper/common"
)

// jumpTarget is the three-way dispatch for a jump request.
type jumpTarget int

const (
	jumpGrounded jumpTarget = iota
	jumpWall
	jumpNone
)

// Jump handles a single external jump request against the current
// state: a standing jump when grounded, a wall jump when airborne with
// wall contact, otherwise a silent no-op (there is no double jump).
func (c *Controller) Jump() {
	switch c.jumpTargetState() {
	case jumpGrounded:
		c.standingJump()
	case jumpWall:
		c.wallJump()
	case jumpNone:
	}
}

func (c *Controller) jumpTargetState() jumpTarget {
	if c.state.grounded {
		return jumpGrounded
	}
	if c.state.wallRight || c.state.wallLeft {
		return jumpWall
	}
	return jumpNone
}

// standingJump overwrites the vertical velocity with the launch speed
// for JumpHeight under scaled gravity; horizontal velocity is
// untouched.
func (c *Controller) standingJump() {
	v := c.body.Velocity()
	c.body.SetVelocity(mgl64.Vec3{v.X(), 0, v.Z()})

	speed := math.Sqrt(c.tuning.JumpHeight * 2 * math.Abs(c.gravity.Y()) * c.tuning.GravityScale)
	c.body.AddImpulse(common.Up.Mul(speed))
	c.events.Push(Event{Kind: EventJumped})
}

// wallJump combines the push off the wall, the upward launch, and a
// forward kick into one velocity change. The right wall wins if both
// sides somehow report contact. Wall state is cleared immediately; the
// jump carries the body away from the wall.
func (c *Controller) wallJump() {
	normal := c.state.lastLeftHit.Normal
	if c.state.wallRight {
		normal = c.state.lastRightHit.Normal
	}

	up := math.Sqrt(2 * math.Abs(c.gravity.Y()) * c.tuning.GravityScale * c.tuning.WallJumpHeight)
	impulse := normal.Mul(c.tuning.WallJumpSideForce).
		Add(common.Up.Mul(up)).
		Add(c.forward().Mul(c.tuning.WallJumpForwardForce))

	v := c.body.Velocity()
	c.body.SetVelocity(mgl64.Vec3{v.X(), 0, v.Z()})
	c.body.AddImpulse(impulse)

	c.state.wallRight = false
	c.state.wallLeft = false
	c.state.wallRunRight = false
	c.state.wallRunLeft = false
}
