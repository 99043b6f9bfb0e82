package locomotion

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type fakeBody struct {
	pos    mgl64.Vec3
	center mgl64.Vec3
	vel    mgl64.Vec3
	yaw    float64

	forces   []mgl64.Vec3
	impulses []mgl64.Vec3
}

func (b *fakeBody) Position() mgl64.Vec3 { return b.pos }
func (b *fakeBody) Center() mgl64.Vec3   { return b.center }
func (b *fakeBody) Velocity() mgl64.Vec3 { return b.vel }
func (b *fakeBody) SetVelocity(v mgl64.Vec3) {
	b.vel = v
}
func (b *fakeBody) AddForce(f mgl64.Vec3) {
	b.forces = append(b.forces, f)
}
func (b *fakeBody) AddImpulse(j mgl64.Vec3) {
	b.impulses = append(b.impulses, j)
	b.vel = b.vel.Add(j)
}
func (b *fakeBody) Yaw() float64       { return b.yaw }
func (b *fakeBody) SetYaw(yaw float64) { b.yaw = yaw }

func (b *fakeBody) totalForce() mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, f := range b.forces {
		sum = sum.Add(f)
	}
	return sum
}

// fakeCaster answers probes by the sign of the ray's X direction; tests
// run at yaw 0 where the right probe points +X and the left probe -X.
type fakeCaster struct {
	right *Hit
	left  *Hit
}

func (c *fakeCaster) Cast(origin, dir mgl64.Vec3, maxDist float64) (Hit, bool) {
	var hit *Hit
	if dir.X() > 0 {
		hit = c.right
	} else {
		hit = c.left
	}
	if hit == nil {
		return Hit{}, false
	}
	return *hit, true
}

func newTestController(t *testing.T, body *fakeBody, caster Caster, opts ...Option) *Controller {
	t.Helper()
	if caster == nil {
		caster = &fakeCaster{}
	}
	c, err := NewController(body, caster, DefaultTuning(), opts...)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c
}

func vecNear(a, b mgl64.Vec3, eps float64) bool {
	return math.Abs(a.X()-b.X()) < eps && math.Abs(a.Y()-b.Y()) < eps && math.Abs(a.Z()-b.Z()) < eps
}

func ground(c *Controller) {
	c.OnContactBegin([]mgl64.Vec3{{0, 1, 0}})
}

func TestNewControllerRejectsBadTuning(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"zero_top_speed", func(tn *Tuning) { tn.TopSpeed = 0 }},
		{"negative_top_speed", func(tn *Tuning) { tn.TopSpeed = -1 }},
		{"negative_acceleration", func(tn *Tuning) { tn.Acceleration = -0.1 }},
		{"negative_wall_check", func(tn *Tuning) { tn.WallCheckDistance = -2 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tn := DefaultTuning()
			tc.mutate(&tn)
			if _, err := NewController(&fakeBody{}, &fakeCaster{}, tn); err == nil {
				t.Fatalf("expected tuning validation error")
			}
		})
	}
}

func TestContactClassification(t *testing.T) {
	t.Run("landed_event_fires_once", func(t *testing.T) {
		c := newTestController(t, &fakeBody{}, nil)
		c.OnContactBegin([]mgl64.Vec3{{0, 1, 0}})
		c.OnContactBegin([]mgl64.Vec3{{0, 1, 0}})
		events := c.Events().Drain()
		if len(events) != 1 || events[0].Kind != EventLanded {
			t.Fatalf("expected exactly one landed event, got %v", events)
		}
		if !c.State().Grounded() {
			t.Fatalf("expected grounded after ground-normal contact")
		}
	})

	t.Run("shallow_normals_do_not_ground", func(t *testing.T) {
		c := newTestController(t, &fakeBody{}, nil)
		c.OnContactBegin([]mgl64.Vec3{{1, 0, 0}, {0, 0.5, 0.87}})
		if c.State().Grounded() {
			t.Fatalf("up-component 0.5 must not count as ground")
		}
		if events := c.Events().Drain(); len(events) != 0 {
			t.Fatalf("no events expected, got %v", events)
		}
	})

	t.Run("contact_end_clears_grounded_unconditionally", func(t *testing.T) {
		c := newTestController(t, &fakeBody{}, nil)
		ground(c)
		c.OnContactEnd()
		if c.State().Grounded() {
			t.Fatalf("expected airborne after contact end")
		}
	})

	t.Run("persist_cancels_wall_run", func(t *testing.T) {
		body := &fakeBody{}
		caster := &fakeCaster{right: &Hit{Normal: mgl64.Vec3{-1, 0, 0}, Distance: 0.5}}
		c := newTestController(t, body, caster)
		c.Step(mgl64.Vec2{})
		if !c.State().WallRunRight() {
			t.Fatalf("expected right wall run after probe hit")
		}
		c.OnContactStay([]mgl64.Vec3{{0, 1, 0}})
		st := c.State()
		if st.WallRunLeft() || st.WallRunRight() {
			t.Fatalf("grounded persist must clear both wall-run flags")
		}
		if !st.Grounded() {
			t.Fatalf("expected grounded after persist")
		}
	})
}

func TestFacingUpdate(t *testing.T) {
	body := &fakeBody{}
	src := staticYaw(math.Pi / 2)
	c := newTestController(t, body, nil, WithFacingSource(src))
	c.Step(mgl64.Vec2{})
	if math.Abs(body.yaw-math.Pi/2) > 1e-12 {
		t.Fatalf("expected yaw %v, got %v", math.Pi/2, body.yaw)
	}
}

func TestFacingUpdateSkippedWithoutSource(t *testing.T) {
	body := &fakeBody{yaw: 1.25}
	c := newTestController(t, body, nil)
	c.Step(mgl64.Vec2{})
	if body.yaw != 1.25 {
		t.Fatalf("yaw must be untouched without a facing source, got %v", body.yaw)
	}
}

type staticYaw float64

func (s staticYaw) Yaw() float64 { return float64(s) }

func TestSetTuningValidates(t *testing.T) {
	c := newTestController(t, &fakeBody{}, nil)
	bad := DefaultTuning()
	bad.TopSpeed = 0
	if err := c.SetTuning(bad); err == nil {
		t.Fatalf("expected error for invalid tuning")
	}
	good := DefaultTuning()
	good.TopSpeed = 20
	if err := c.SetTuning(good); err != nil {
		t.Fatalf("SetTuning: %v", err)
	}
	if c.Tuning().TopSpeed != 20 {
		t.Fatalf("tuning swap not applied")
	}
}
