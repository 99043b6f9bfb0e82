package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/daRealZoinks/Project-Skyscraper/common"
)

// applySteering pushes the horizontal velocity toward the intent-scaled
// target speed. The force is the gap between the desired direction and
// a speed-saturating image of the current velocity, so acceleration
// fades out as the body approaches TopSpeed instead of piling up.
func (c *Controller) applySteering(intent mgl64.Vec2) {
	inputDir := c.right().Mul(intent.X()).Add(c.forward().Mul(intent.Y()))

	horizontal := common.Horizontal(c.body.Velocity())
	var clampedCurrent mgl64.Vec3
	if speed := horizontal.Len(); speed > 0 {
		// direction of travel, magnitude saturating at 1 at TopSpeed
		clampedCurrent = horizontal.Mul(common.Clamp(speed/c.tuning.TopSpeed, 0, 1) / speed)
	}

	force := inputDir.Sub(clampedCurrent)
	moving := intent.X() != 0 || intent.Y() != 0
	if moving {
		force = force.Mul(c.tuning.Acceleration)
	} else {
		force = force.Mul(c.tuning.Deceleration)
	}
	if !c.state.grounded {
		if moving {
			force = force.Mul(c.tuning.AirControl)
		} else {
			force = force.Mul(c.tuning.AirBrake)
		}
	}
	c.body.AddForce(force)
}

// applyGravity adds the extra fall acceleration while airborne. The
// host already applies ambient gravity, so only the (scale-1) remainder
// is added here; grounded bodies get nothing.
func (c *Controller) applyGravity() {
	if c.state.grounded {
		return
	}
	c.body.AddForce(c.gravity.Mul(c.tuning.GravityScale - 1))
}
