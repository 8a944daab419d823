package nexus

import (
	"fmt"
	"image/color"
	"math"

	"github.com/plus3/arcade/draw"
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/sim"
)

var (
	backdrop     = draw.Hex("#0a0a0f")
	gridColor    = draw.Fade(draw.Hex("#00d4aa"), 0.1)
	accent       = draw.Hex("#00d4aa")
	wallColor    = draw.Hex("#636e72")
	barrierColor = draw.Hex("#a29bfe")
	shine        = draw.Fade(draw.Hex("#ffffff"), 0.1)
	white        = draw.Hex("#ffffff")
	barBack      = color.RGBA{A: 0x80}
	panel        = color.RGBA{A: 0xb3}
	textColor    = draw.Hex("#00ff41")
)

const (
	gridSize = 50
	mapSize  = 150
)

// WorldRenderSystem draws the grid, scenery, items, enemies, projectiles and
// the player in world coordinates.
type WorldRenderSystem struct {
	Scenery ecs.Query[struct {
		*sim.Position
		*Scenery
	}]
	Items ecs.Query[struct {
		*sim.Position
		*Item
	}]
	Enemies ecs.Query[struct {
		*sim.Position
		*Enemy
	}]
	Projectiles ecs.Query[struct {
		*sim.Position
		*Projectile
	}]
	State  ecs.Singleton[State]
	Camera ecs.Singleton[Camera]
	Screen ecs.Singleton[Screen]
	Canvas ecs.Singleton[sim.Canvas]
}

func (s *WorldRenderSystem) Execute(frame *ecs.UpdateFrame) {
	state, camera, screen, canvas := s.State.Get(), s.Camera.Get(), s.Screen.Get(), s.Canvas.Get()
	if state == nil || camera == nil || screen == nil || canvas == nil || screen.Surface == nil || canvas.Surface == nil {
		return
	}
	w, h := screen.Surface.Size()
	screen.Surface.FillRect(0, 0, w, h, backdrop)
	world := canvas.Surface

	startX := math.Floor(camera.X/gridSize) * gridSize
	startY := math.Floor(camera.Y/gridSize) * gridSize
	endX, endY := startX+w+gridSize, startY+h+gridSize
	for x := startX; x < endX; x += gridSize {
		world.Line(x, startY, x, endY, 1, gridColor)
	}
	for y := startY; y < endY; y += gridSize {
		world.Line(startX, y, endX, y, 1, gridColor)
	}

	for sc := range s.Scenery.Values() {
		fill := wallColor
		if sc.Kind == Barrier {
			fill = barrierColor
		}
		world.FillRect(sc.Position.X, sc.Position.Y, sc.W, sc.H, fill)
		world.FillRect(sc.Position.X, sc.Position.Y, sc.W, 4, shine)
	}

	for it := range s.Items.Values() {
		r := it.Radius * (1 + 0.2*math.Sin(it.Pulse*5))
		world.FillCircle(it.Position.X, it.Position.Y, r, it.Kind.color())
	}

	for e := range s.Enemies.Values() {
		world.FillCircle(e.Position.X, e.Position.Y, e.Radius, e.Color)
		if e.Health >= e.MaxHealth || e.MaxHealth <= 0 {
			continue
		}
		barW := e.Radius * 2
		barX, barY := e.Position.X-barW/2, e.Position.Y-e.Radius-10
		world.FillRect(barX, barY, barW, 4, barBack)
		world.FillRect(barX, barY, max(0, e.Health/e.MaxHealth)*barW, 4, hurtColor)
	}

	for p := range s.Projectiles.Values() {
		world.FillCircle(p.Position.X, p.Position.Y, p.Radius, shotColor)
	}
}

// PlayerRenderSystem draws the player on top of particles.
type PlayerRenderSystem struct {
	Players ecs.Query[playerView]
	State   ecs.Singleton[State]
	Canvas  ecs.Singleton[sim.Canvas]
}

func (s *PlayerRenderSystem) Execute(frame *ecs.UpdateFrame) {
	state, canvas := s.State.Get(), s.Canvas.Get()
	if state == nil || canvas == nil || canvas.Surface == nil {
		return
	}
	world := canvas.Surface

	for p := range s.Players.Values() {
		alpha := 1.0
		if p.Invulnerable > 0 {
			alpha = 0.5 + 0.5*math.Sin(state.SessionTime*20)
		}
		x, y := p.Position.X, p.Position.Y
		world.FillRect(x-playerSize/2, y-playerSize/2, playerSize, playerSize, draw.Fade(p.Class.stats().color, alpha))
		world.FillRect(x-8, y-8, 4, 4, draw.Fade(white, alpha))
		world.FillRect(x+4, y-8, 4, 4, draw.Fade(white, alpha))
	}
}

// HUDRenderSystem draws bars, counters, the minimap and phase overlays in
// screen coordinates.
type HUDRenderSystem struct {
	Players ecs.Query[playerView]
	Enemies ecs.Query[struct {
		*sim.Position
		*Enemy
	}]
	State  ecs.Singleton[State]
	Screen ecs.Singleton[Screen]
}

func (s *HUDRenderSystem) Execute(frame *ecs.UpdateFrame) {
	state, screen := s.State.Get(), s.Screen.Get()
	if state == nil || screen == nil || screen.Surface == nil {
		return
	}
	surface := screen.Surface
	w, h := surface.Size()

	if state.Phase == Menu {
		s.drawMenu(surface, state, w, h)
		return
	}

	for p := range s.Players.Values() {
		bar(surface, 20, 20, 200, p.Health/p.MaxHealth, hurtColor)
		surface.Text(fmt.Sprintf("HP %d/%d", int(math.Ceil(p.Health)), int(p.MaxHealth)), 20, 34, white)
		bar(surface, 20, 52, 200, p.Energy/p.MaxEnergy, draw.Hex("#2196f3"))
		surface.Text(fmt.Sprintf("EN %d/%d", int(math.Ceil(p.Energy)), int(p.MaxEnergy)), 20, 66, white)
	}
	if state.ExperienceToNext > 0 {
		bar(surface, 20, 84, 200, float64(state.Experience)/float64(state.ExperienceToNext), barrierColor)
	}

	surface.Text(fmt.Sprintf("NEXUS LEVEL %d", state.Level), 20, 98, textColor)
	surface.Text("SCORE "+draw.Number(state.Score), 20, 114, textColor)
	surface.Text(fmt.Sprintf("WAVE %d", state.Wave), 20, 130, textColor)
	surface.Text(fmt.Sprintf("DATA %d", int(state.DataCollected)), 20, 146, textColor)
	surface.Text(formatTime(state.SessionTime), 20, 162, textColor)

	for i, id := range lastN(state.Unlocked, 3) {
		draw.CenteredText(surface, "Achievement: "+id, w/2, 20+float64(i)*16, impactColor)
	}

	s.drawMiniMap(surface, state, w)

	switch state.Phase {
	case Paused:
		surface.FillRect(0, 0, w, h, panel)
		draw.CenteredText(surface, "PAUSED", w/2, h/2-40, textColor)
		draw.CenteredText(surface, "Time "+formatTime(state.SessionTime), w/2, h/2-10, textColor)
		draw.CenteredText(surface, fmt.Sprintf("Enemies defeated %d", state.EnemiesKilled), w/2, h/2+10, textColor)
		draw.CenteredText(surface, "ESC to resume, Q for menu", w/2, h/2+40, textColor)
	case LevelUp:
		surface.FillRect(0, 0, w, h, panel)
		draw.CenteredText(surface, "LEVEL UP!", w/2, h/2-80, textColor)
		for i, u := range state.Offers {
			y := h/2 - 40 + float64(i)*40
			draw.CenteredText(surface, fmt.Sprintf("[%d] %s", i+1, u.Name), w/2, y, accent)
			draw.CenteredText(surface, u.Description, w/2, y+14, white)
		}
	case Over:
		surface.FillRect(0, 0, w, h, panel)
		draw.CenteredText(surface, "CONNECTION LOST", w/2, h/2-50, hurtColor)
		draw.CenteredText(surface, "Score "+draw.Number(state.Score), w/2, h/2-20, textColor)
		draw.CenteredText(surface, fmt.Sprintf("Level %d  Time %s  Data %d", state.Level, formatTime(state.SessionTime), int(state.DataCollected)), w/2, h/2, textColor)
		draw.CenteredText(surface, "R to restart, Q for menu", w/2, h/2+40, textColor)
	}
}

func (s *HUDRenderSystem) drawMenu(surface draw.Surface, state *State, w, h float64) {
	surface.FillRect(0, 0, w, h, backdrop)
	draw.CenteredText(surface, "SIDER NEXUS", w/2, h/2-100, accent)
	for i, c := range Classes {
		st := c.stats()
		label := fmt.Sprintf("[%d] %-8s HP %3.0f  EN %3.0f  SPD %3.0f", i+1, c, st.health, st.energy, st.speed)
		col := white
		if c == state.Class {
			col = st.color
			label = "> " + label
		}
		draw.CenteredText(surface, label, w/2, h/2-40+float64(i)*20, col)
	}
	draw.CenteredText(surface, "ENTER to start", w/2, h/2+50, textColor)
}

func (s *HUDRenderSystem) drawMiniMap(surface draw.Surface, state *State, w float64) {
	x, y := w-mapSize-20, 20.0
	surface.FillRect(x, y, mapSize, mapSize, panel)
	surface.StrokeRect(x, y, mapSize, mapSize, 2, accent)
	sx, sy := mapSize/state.WorldW, mapSize/state.WorldH

	for p := range s.Players.Values() {
		surface.FillRect(x+p.Position.X*sx-2, y+p.Position.Y*sy-2, 4, 4, accent)
	}
	for e := range s.Enemies.Values() {
		surface.FillRect(x+e.Position.X*sx-1, y+e.Position.Y*sy-1, 2, 2, hurtColor)
	}
}

func bar(surface draw.Surface, x, y, w, frac float64, c color.Color) {
	surface.FillRect(x, y, w, 10, barBack)
	surface.FillRect(x, y, w*max(0, min(frac, 1)), 10, c)
}

func formatTime(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func lastN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
