package locomotion

import "github.com/go-gl/mathgl/mgl64"

// Hit describes a surface struck by a wall probe.
type Hit struct {
	Normal   mgl64.Vec3
	Distance float64
	// Trigger marks non-solid volumes. Probes that strike triggers
	// count as misses.
	Trigger bool
}

// State is the mutable locomotion record. It is owned by a single
// Controller: contact callbacks and the per-step update are its only
// writers, everything outside the package reads it through the
// accessors below.
type State struct {
	grounded bool

	wallLeft  bool
	wallRight bool

	wallRunLeft  bool
	wallRunRight bool

	// lastLeftHit/lastRightHit are only meaningful while the matching
	// wall flag is true; they go stale between steps otherwise.
	lastLeftHit  Hit
	lastRightHit Hit
}

// Grounded reports whether an active contact normal points up.
func (s State) Grounded() bool { return s.grounded }

// WallLeft reports whether the left probe currently sees a solid wall.
func (s State) WallLeft() bool { return s.wallLeft }

// WallRight reports whether the right probe currently sees a solid wall.
func (s State) WallRight() bool { return s.wallRight }

// WallRunLeft reports an active left-side wall run.
func (s State) WallRunLeft() bool { return s.wallRunLeft }

// WallRunRight reports an active right-side wall run.
func (s State) WallRunRight() bool { return s.wallRunRight }
