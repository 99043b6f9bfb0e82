package sim

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/daRealZoinks/Project-Skyscraper/locomotion"
)

// Raycaster implements locomotion.Caster with segment queries against
// the wall plan. Rays are flattened into the horizontal plane; hit
// normals come back with a zero vertical component because every wall
// is vertical.
type Raycaster struct {
	space *cp.Space
}

// Cast probes from origin along dir for at most maxDist, keeping the
// nearest hit. Sensor shapes are visited too and report Trigger=true;
// classifying them is left to the caller.
func (r Raycaster) Cast(origin, dir mgl64.Vec3, maxDist float64) (locomotion.Hit, bool) {
	flat := cp.Vector{X: dir.X(), Y: dir.Z()}
	length := flat.Length()
	if length == 0 || maxDist <= 0 {
		return locomotion.Hit{}, false
	}

	start := cp.Vector{X: origin.X(), Y: origin.Z()}
	end := start.Add(flat.Mult(maxDist / length))

	var (
		found     bool
		nearest   locomotion.Hit
		bestAlpha float64
	)
	r.space.SegmentQuery(start, end, 0, cp.SHAPE_FILTER_ALL,
		func(shape *cp.Shape, point, normal cp.Vector, alpha float64, data interface{}) {
			if found && alpha >= bestAlpha {
				return
			}
			found = true
			bestAlpha = alpha
			nearest = locomotion.Hit{
				Normal:   mgl64.Vec3{normal.X, 0, normal.Y},
				Distance: point.Sub(start).Length(),
				Trigger:  shape.Sensor(),
			}
		}, nil)
	return nearest, found
}
