package locomotion

import "github.com/daRealZoinks/Project-Skyscraper/common"

type wallSide int

const (
	sideRight wallSide = iota
	sideLeft
)

// updateWallRun probes for adjacent walls and keeps the body pressed
// against any it is touching. Probes only run while airborne, and a
// side with an active wall run is skipped so its boost never repeats.
func (c *Controller) updateWallRun() {
	if c.state.grounded {
		c.state.wallLeft = false
		c.state.wallRight = false
		return
	}

	if !c.state.wallRunRight {
		c.probeWall(sideRight)
	}
	if !c.state.wallRunLeft {
		c.probeWall(sideLeft)
	}

	// inward pull: one unit of acceleration into the wall, every step
	// the flag holds
	if c.state.wallRight {
		c.body.AddForce(c.state.lastRightHit.Normal.Mul(-1))
	}
	if c.state.wallLeft {
		c.body.AddForce(c.state.lastLeftHit.Normal.Mul(-1))
	}
}

func (c *Controller) probeWall(side wallSide) {
	dir := c.right()
	flag, last := &c.state.wallRight, &c.state.lastRightHit
	if side == sideLeft {
		dir = dir.Mul(-1)
		flag, last = &c.state.wallLeft, &c.state.lastLeftHit
	}

	hit, ok := c.caster.Cast(c.body.Center(), dir, c.tuning.WallCheckDistance)
	if !ok || hit.Trigger {
		*flag = false
		*last = Hit{}
		return
	}

	was := *flag
	*flag = true
	*last = hit
	if !was {
		c.beginWallRun(side, hit)
	}
}

// beginWallRun grants the one-shot boost impulse along the wall and
// claims the wall-run flag for this side, releasing the other. The
// boost direction is the surface normal rotated about the body's up
// axis so it runs forward along the wall, mirrored per side.
func (c *Controller) beginWallRun(side wallSide, hit Hit) {
	var along = common.Up.Cross(hit.Normal)
	if side == sideLeft {
		along = hit.Normal.Cross(common.Up)
	}
	c.body.AddImpulse(along.Mul(c.tuning.WallRunInitialImpulse))

	if side == sideRight {
		c.state.wallRunLeft = false
		c.state.wallRunRight = true
	} else {
		c.state.wallRunRight = false
		c.state.wallRunLeft = true
	}
}
