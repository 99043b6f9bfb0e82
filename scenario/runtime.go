// Package scenario runs tengo-scripted locomotion scenarios headless:
// a script drives intent, yaw, and jump requests over a fixed number of
// simulation ticks and checks the resulting movement. Used for tuning
// experiments and regression scripts.
package scenario

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/daRealZoinks/Project-Skyscraper/common"
	"github.com/daRealZoinks/Project-Skyscraper/locomotion"
	"github.com/daRealZoinks/Project-Skyscraper/prefabs"
	"github.com/daRealZoinks/Project-Skyscraper/sim"
)

// StepRate is the fixed simulation rate scenarios run at.
const StepRate = 60.0

// Script contract: globals `name` and `ticks`, plus three functions
// `setup(engine, state)`, `tick(engine, state, n)`, and
// `check(engine, state)`. Each phase re-runs the compiled script, so
// script-level variables reset; `state` is the same mutable map across
// every phase and is where accumulators belong.
const lifecycleDispatchScript = `
if __phase == "setup" {
	setup(__engine, __state)
} else if __phase == "tick" {
	tick(__engine, __state, __tick)
} else if __phase == "check" {
	check(__engine, __state)
}
`

// Result summarizes one scenario run.
type Result struct {
	Name   string
	Ticks  int
	Failed bool
	Reason string
}

// Runtime owns one compiled scenario script and the world it drives.
type Runtime struct {
	name     string
	ticks    int
	compiled *tengo.Compiled
	// stateData persists across phase runs; scripts receive it as the
	// `state` argument of every hook.
	stateData *tengo.Map

	world      *sim.World
	body       *sim.Body
	controller *locomotion.Controller

	intent     mgl64.Vec2
	yaw        float64
	jumpQueued bool

	landed int
	jumped int

	failed bool
	reason string
}

// Yaw implements locomotion.FacingSource; scripts steer it.
func (r *Runtime) Yaw() float64 { return r.yaw }

// New loads a scenario script and builds the world it runs in.
func New(scriptName string, player prefabs.PlayerSpec, worldSpec prefabs.WorldSpec) (*Runtime, error) {
	src, err := prefabs.LoadScript(scriptName)
	if err != nil {
		return nil, fmt.Errorf("scenario: load %s: %w", scriptName, err)
	}

	script := tengo.NewScript(append(src, []byte("\n"+lifecycleDispatchScript)...))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__tick", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scenario: compile %s: %w", scriptName, err)
	}

	r := &Runtime{
		name:      strings.TrimSuffix(scriptName, ".tengo"),
		ticks:     1,
		compiled:  compiled,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
		yaw:       player.Spawn.Yaw,
	}

	r.world = sim.NewWorld(worldSpec)
	r.body = r.world.AddBody(player)
	r.controller, err = locomotion.NewController(
		r.body,
		r.world.Raycaster(),
		player.Tuning,
		locomotion.WithGravity(r.world.Gravity()),
		locomotion.WithFacingSource(r),
	)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	r.body.SetContactSink(r.controller)

	if err := r.runPhase("noop", 0); err != nil {
		return nil, fmt.Errorf("scenario: init %s: %w", scriptName, err)
	}
	if compiled.IsDefined("name") {
		if s := strings.TrimSpace(compiled.Get("name").String()); s != "" {
			r.name = s
		}
	}
	if compiled.IsDefined("ticks") {
		if n := compiled.Get("ticks").Int(); n > 0 {
			r.ticks = n
		}
	}
	return r, nil
}

// Run executes setup, all ticks, then check, and reports the outcome.
func (r *Runtime) Run() (Result, error) {
	if err := r.runPhase("setup", 0); err != nil {
		return Result{}, fmt.Errorf("scenario: setup: %w", err)
	}

	dt := 1.0 / StepRate
	for n := 0; n < r.ticks && !r.failed; n++ {
		if err := r.runPhase("tick", n); err != nil {
			return Result{}, fmt.Errorf("scenario: tick %d: %w", n, err)
		}
		if r.jumpQueued {
			r.controller.Jump()
			r.jumpQueued = false
		}
		r.controller.Step(r.intent)
		r.world.Step(dt)
		r.drainEvents()
	}

	if !r.failed {
		if err := r.runPhase("check", r.ticks); err != nil {
			return Result{}, fmt.Errorf("scenario: check: %w", err)
		}
	}

	return Result{Name: r.name, Ticks: r.ticks, Failed: r.failed, Reason: r.reason}, nil
}

func (r *Runtime) drainEvents() {
	for _, evt := range r.controller.Events().Drain() {
		switch evt.Kind {
		case locomotion.EventLanded:
			r.landed++
		case locomotion.EventJumped:
			r.jumped++
		}
	}
}

func (r *Runtime) runPhase(phase string, tick int) error {
	if err := r.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := r.compiled.Set("__engine", r.buildEngine()); err != nil {
		return err
	}
	if err := r.compiled.Set("__state", r.stateData); err != nil {
		return err
	}
	if err := r.compiled.Set("__tick", tick); err != nil {
		return err
	}
	return r.compiled.Run()
}

func (r *Runtime) buildEngine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["set_intent"] = &tengo.UserFunction{Name: "set_intent", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, okX := tengo.ToFloat64(args[0])
		y, okY := tengo.ToFloat64(args[1])
		if !okX || !okY {
			return tengo.FalseValue, nil
		}
		r.intent = mgl64.Vec2{x, y}
		return tengo.TrueValue, nil
	}}

	values["set_yaw"] = &tengo.UserFunction{Name: "set_yaw", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		yaw, ok := tengo.ToFloat64(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		r.yaw = yaw
		return tengo.TrueValue, nil
	}}

	values["jump"] = &tengo.UserFunction{Name: "jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		r.jumpQueued = true
		return tengo.TrueValue, nil
	}}

	values["fail"] = &tengo.UserFunction{Name: "fail", Value: func(args ...tengo.Object) (tengo.Object, error) {
		r.failed = true
		if len(args) > 0 {
			msg, _ := tengo.ToString(args[0])
			if r.reason != "" {
				r.reason += "; "
			}
			r.reason += msg
		}
		return tengo.TrueValue, nil
	}}

	flags := map[string]func() bool{
		"grounded":       func() bool { return r.controller.State().Grounded() },
		"wall_left":      func() bool { return r.controller.State().WallLeft() },
		"wall_right":     func() bool { return r.controller.State().WallRight() },
		"wall_run_left":  func() bool { return r.controller.State().WallRunLeft() },
		"wall_run_right": func() bool { return r.controller.State().WallRunRight() },
	}
	for name, read := range flags {
		read := read
		values[name] = &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			if read() {
				return tengo.TrueValue, nil
			}
			return tengo.FalseValue, nil
		}}
	}

	vectors := map[string]func() mgl64.Vec3{
		"position": r.body.Position,
		"velocity": r.body.Velocity,
	}
	for name, read := range vectors {
		read := read
		values[name] = &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			v := read()
			return &tengo.Array{Value: []tengo.Object{
				&tengo.Float{Value: v.X()},
				&tengo.Float{Value: v.Y()},
				&tengo.Float{Value: v.Z()},
			}}, nil
		}}
	}

	values["speed"] = &tengo.UserFunction{Name: "speed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: common.Horizontal(r.body.Velocity()).Len()}, nil
	}}

	counts := map[string]func() int{
		"landed_count": func() int { return r.landed },
		"jumped_count": func() int { return r.jumped },
	}
	for name, read := range counts {
		read := read
		values[name] = &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			return &tengo.Int{Value: int64(read())}, nil
		}}
	}

	return &tengo.ImmutableMap{Value: values}
}
