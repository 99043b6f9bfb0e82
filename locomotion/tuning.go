package locomotion

import "fmt"

// Tuning holds the immutable movement parameters for a controller. All
// values are plain scalars so a whole block can live in a yaml prefab.
type Tuning struct {
	Acceleration          float64 `yaml:"acceleration"`
	Deceleration          float64 `yaml:"deceleration"`
	TopSpeed              float64 `yaml:"top_speed"`
	AirControl            float64 `yaml:"air_control"`
	AirBrake              float64 `yaml:"air_brake"`
	JumpHeight            float64 `yaml:"jump_height"`
	GravityScale          float64 `yaml:"gravity_scale"`
	WallRunInitialImpulse float64 `yaml:"wall_run_initial_impulse"`
	WallCheckDistance     float64 `yaml:"wall_check_distance"`
	WallJumpHeight        float64 `yaml:"wall_jump_height"`
	WallJumpSideForce     float64 `yaml:"wall_jump_side_force"`
	WallJumpForwardForce  float64 `yaml:"wall_jump_forward_force"`
}

// DefaultTuning returns a playable parameter set.
func DefaultTuning() Tuning {
	return Tuning{
		Acceleration:          50,
		Deceleration:          30,
		TopSpeed:              12,
		AirControl:            0.4,
		AirBrake:              0.2,
		JumpHeight:            2,
		GravityScale:          1.5,
		WallRunInitialImpulse: 6,
		WallCheckDistance:     1,
		WallJumpHeight:        1.5,
		WallJumpSideForce:     4,
		WallJumpForwardForce:  1,
	}
}

// Validate rejects parameter sets the steering math cannot work with.
// TopSpeed must be positive because current speed is normalized against
// it; every other parameter only has to be non-negative.
func (t Tuning) Validate() error {
	if t.TopSpeed <= 0 {
		return fmt.Errorf("locomotion: top_speed must be > 0, got %v", t.TopSpeed)
	}
	named := []struct {
		name  string
		value float64
	}{
		{"acceleration", t.Acceleration},
		{"deceleration", t.Deceleration},
		{"air_control", t.AirControl},
		{"air_brake", t.AirBrake},
		{"jump_height", t.JumpHeight},
		{"gravity_scale", t.GravityScale},
		{"wall_run_initial_impulse", t.WallRunInitialImpulse},
		{"wall_check_distance", t.WallCheckDistance},
		{"wall_jump_height", t.WallJumpHeight},
		{"wall_jump_side_force", t.WallJumpSideForce},
		{"wall_jump_forward_force", t.WallJumpForwardForce},
	}
	for _, p := range named {
		if p.value < 0 {
			return fmt.Errorf("locomotion: %s must be >= 0, got %v", p.name, p.value)
		}
	}
	return nil
}
