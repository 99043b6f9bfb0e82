// Terminal demo for the locomotion controller. Renders the wall plan
// top-down, drives a runner with WASD, and hot-reloads tuning from
// prefabs/player.yaml while running.
//
// Controls: WASD move, Q/E turn, space jump, Esc quit.
package main

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/daRealZoinks/Project-Skyscraper/common"
	"github.com/daRealZoinks/Project-Skyscraper/locomotion"
	"github.com/daRealZoinks/Project-Skyscraper/prefabs"
	"github.com/daRealZoinks/Project-Skyscraper/scenario"
	"github.com/daRealZoinks/Project-Skyscraper/sim"
)

// Terminals deliver key repeats, not key-up events, so a direction key
// counts as held for this long after its last press.
const keyHold = 150 * time.Millisecond

type app struct {
	screen tcell.Screen

	world      *sim.World
	body       *sim.Body
	controller *locomotion.Controller
	worldSpec  prefabs.WorldSpec

	yaw       float64
	lastPress map[rune]time.Time
	status    string
}

func (a *app) Yaw() float64 { return a.yaw }

func newApp() (*app, error) {
	player, err := prefabs.LoadPlayerSpec("player.yaml")
	if err != nil {
		return nil, fmt.Errorf("load player prefab: %w", err)
	}
	worldSpec, err := prefabs.LoadWorldSpec("world.yaml")
	if err != nil {
		return nil, fmt.Errorf("load world prefab: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	a := &app{
		screen:    screen,
		worldSpec: worldSpec,
		yaw:       player.Spawn.Yaw,
		lastPress: make(map[rune]time.Time),
	}
	a.world = sim.NewWorld(worldSpec)
	a.body = a.world.AddBody(player)
	a.controller, err = locomotion.NewController(
		a.body,
		a.world.Raycaster(),
		player.Tuning,
		locomotion.WithGravity(a.world.Gravity()),
		locomotion.WithFacingSource(a),
	)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	a.body.SetContactSink(a.controller)
	return a, nil
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		r := ev.Rune()
		switch r {
		case 'w', 'a', 's', 'd':
			a.lastPress[r] = time.Now()
		case 'q':
			a.yaw -= math.Pi / 16
		case 'e':
			a.yaw += math.Pi / 16
		case ' ':
			a.controller.Jump()
		}
	}
	return true
}

func (a *app) intent() mgl64.Vec2 {
	now := time.Now()
	held := func(r rune) bool {
		t, ok := a.lastPress[r]
		return ok && now.Sub(t) < keyHold
	}
	var in mgl64.Vec2
	if held('w') {
		in[1]++
	}
	if held('s') {
		in[1]--
	}
	if held('d') {
		in[0]++
	}
	if held('a') {
		in[0]--
	}
	return in
}

func (a *app) tick(dt float64) {
	a.controller.Step(a.intent())
	a.world.Step(dt)
	for _, evt := range a.controller.Events().Drain() {
		a.status = string(evt.Kind)
	}
}

// reloadTuning re-reads player.yaml and swaps the tuning in place;
// position and velocity are untouched.
func (a *app) reloadTuning() {
	player, err := prefabs.LoadPlayerSpec("player.yaml")
	if err != nil {
		a.status = fmt.Sprintf("reload failed: %v", err)
		return
	}
	if err := a.controller.SetTuning(player.Tuning); err != nil {
		a.status = fmt.Sprintf("reload rejected: %v", err)
		return
	}
	a.status = "tuning reloaded"
}

func (a *app) draw() {
	a.screen.Clear()
	w, h := a.screen.Size()
	if h < 4 {
		a.screen.Show()
		return
	}

	// Fit the wall plan into the space above the HUD. X maps to columns,
	// Z to rows; terminal cells are ~2x taller than wide.
	minX, minZ, maxX, maxZ := planBounds(a.worldSpec)
	plotW, plotH := w, h-2
	sx := float64(plotW-1) / math.Max(maxX-minX, 1)
	sz := float64(plotH-1) / math.Max(maxZ-minZ, 1)
	scale := math.Min(sx/2, sz)
	cell := func(x, z float64) (int, int) {
		return int((x - minX) * scale * 2), int((z - minZ) * scale)
	}

	wallStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	triggerStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	for _, wall := range a.worldSpec.Walls {
		style := wallStyle
		if wall.Trigger {
			style = triggerStyle
		}
		drawSegment(a.screen, style, cell, wall)
	}

	pos := a.body.Position()
	px, pz := cell(pos.X(), pos.Z())
	playerStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	if !a.controller.State().Grounded() {
		playerStyle = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	}
	a.screen.SetContent(px, pz, '@', nil, playerStyle)
	fx, fz := cell(pos.X()+math.Sin(a.yaw), pos.Z()+math.Cos(a.yaw))
	if fx != px || fz != pz {
		a.screen.SetContent(fx, fz, '*', nil, playerStyle)
	}

	a.drawHUD(w, h)
	a.screen.Show()
}

func (a *app) drawHUD(w, h int) {
	st := a.controller.State()
	flags := []string{}
	if st.Grounded() {
		flags = append(flags, "GND")
	}
	if st.WallLeft() {
		flags = append(flags, "WL")
	}
	if st.WallRight() {
		flags = append(flags, "WR")
	}
	if st.WallRunLeft() {
		flags = append(flags, "RUN-L")
	}
	if st.WallRunRight() {
		flags = append(flags, "RUN-R")
	}
	pos := a.body.Position()
	line := fmt.Sprintf("y=%5.2f speed=%5.2f [%s] %s",
		pos.Y(), common.Horizontal(a.body.Velocity()).Len(), strings.Join(flags, " "), a.status)
	putString(a.screen, 0, h-2, tcell.StyleDefault, line)
	putString(a.screen, 0, h-1, tcell.StyleDefault.Foreground(tcell.ColorGray),
		"WASD move  Q/E turn  space jump  esc quit")
}

func planBounds(spec prefabs.WorldSpec) (minX, minZ, maxX, maxZ float64) {
	minX, minZ = math.Inf(1), math.Inf(1)
	maxX, maxZ = math.Inf(-1), math.Inf(-1)
	for _, wall := range spec.Walls {
		minX = math.Min(minX, math.Min(wall.X1, wall.X2))
		maxX = math.Max(maxX, math.Max(wall.X1, wall.X2))
		minZ = math.Min(minZ, math.Min(wall.Z1, wall.Z2))
		maxZ = math.Max(maxZ, math.Max(wall.Z1, wall.Z2))
	}
	if math.IsInf(minX, 1) {
		return 0, 0, 1, 1
	}
	return minX, minZ, maxX, maxZ
}

func drawSegment(screen tcell.Screen, style tcell.Style, cell func(float64, float64) (int, int), wall prefabs.WallSpec) {
	steps := int(math.Hypot(wall.X2-wall.X1, wall.Z2-wall.Z1) * 4)
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x, z := cell(common.Lerp(wall.X1, wall.X2, t), common.Lerp(wall.Z1, wall.Z2, t))
		screen.SetContent(x, z, '#', nil, style)
	}
}

func putString(screen tcell.Screen, x, y int, style tcell.Style, s string) {
	for i, r := range s {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func (a *app) run() {
	ticker := time.NewTicker(time.Second / scenario.StepRate)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			events <- a.screen.PollEvent()
		}
	}()

	watcher, err := prefabs.NewWatcher("prefabs")
	if err != nil {
		// No disk prefabs dir; embedded defaults only, no hot reload.
		watcher = nil
	} else {
		defer watcher.Close()
	}
	var reload <-chan string
	if watcher != nil {
		reload = watcher.Events
	}

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}
		case <-reload:
			a.reloadTuning()
		case <-ticker.C:
			a.tick(1.0 / scenario.StepRate)
			a.draw()
		}
	}
}

func main() {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "skyscraper: %v\n", err)
		os.Exit(1)
	}
	defer a.screen.Fini()

	a.run()
}
