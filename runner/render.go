package runner

import (
	"fmt"
	"image/color"
	"math"

	"github.com/plus3/arcade/draw"
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/sim"
)

var (
	backdrop    = draw.Hex("#0a0a0f")
	gridColor   = draw.Fade(draw.Hex("#00d4aa"), 0.1)
	groundColor = draw.Hex("#00d4aa")
	bodyColor   = draw.Hex("#ff6b35")
	shieldColor = draw.Hex("#2196f3")
	eyeColor    = draw.Hex("#ffffff")
	blockColor  = draw.Hex("#ff4757")
	blockShine  = draw.Hex("#ff6b7a")
	coinShine   = draw.Hex("#fff59d")
	coinMark    = draw.Hex("#f57f17")
	hudColor    = draw.Hex("#00ff41")
	overlay     = color.RGBA{A: 0xb0}
)

// BackgroundRenderSystem clears the canvas and draws the scrolling grid and
// the ground line.
type BackgroundRenderSystem struct {
	State  ecs.Singleton[State]
	Canvas ecs.Singleton[sim.Canvas]
}

func (s *BackgroundRenderSystem) Execute(frame *ecs.UpdateFrame) {
	state, canvas := s.State.Get(), s.Canvas.Get()
	if state == nil || canvas == nil || canvas.Surface == nil {
		return
	}
	surface := canvas.Surface
	w, h := state.Width, state.Height

	surface.FillRect(0, 0, w, h, backdrop)
	const cell = 40
	offset := math.Mod(float64(state.Score)*0.5, cell)
	for x := -offset; x < w; x += cell {
		surface.Line(x, 0, x, h, 1, gridColor)
	}
	for y := 0.0; y < h; y += cell {
		surface.Line(0, y, w, y, 1, gridColor)
	}
	surface.FillRect(0, state.GroundY, w, 2, groundColor)
}

// EntityRenderSystem draws the player, obstacles, coins and power-ups.
type EntityRenderSystem struct {
	Players ecs.Query[struct {
		*sim.Position
		*Player
	}]
	Obstacles ecs.Query[struct {
		*sim.Position
		*Obstacle
	}]
	Coins ecs.Query[struct {
		*sim.Position
		*Coin
	}]
	PowerUps ecs.Query[struct {
		*sim.Position
		*PowerUp
	}]
	State  ecs.Singleton[State]
	Powers ecs.Singleton[Powers]
	Canvas ecs.Singleton[sim.Canvas]
}

func (s *EntityRenderSystem) Execute(frame *ecs.UpdateFrame) {
	state, powers, canvas := s.State.Get(), s.Powers.Get(), s.Canvas.Get()
	if state == nil || powers == nil || canvas == nil || canvas.Surface == nil {
		return
	}
	surface := canvas.Surface
	millis := float64(state.Ticks) * tickMillis

	for p := range s.Players.Values() {
		x, y := p.Position.X, p.Position.Y
		fill := bodyColor
		if powers.Active(Shield) {
			fill = shieldColor
		}
		surface.FillRect(x, y, p.Width, p.Height, fill)
		surface.FillRect(x+8, y+8, 4, 4, eyeColor)
		surface.FillRect(x+18, y+8, 4, 4, eyeColor)

		if powers.Active(Shield) {
			r := 30 + 5*math.Sin(millis*0.01)
			surface.StrokeCircle(x+p.Width/2, y+p.Height/2, r, 3, shieldColor)
		}
		if powers.Active(Speed) {
			for i := range 5 {
				fi := float64(i)
				surface.Line(x-20-fi*10, y+fi*8, x-10-fi*10, y+fi*8, 2, coinColor)
			}
		}
	}

	for o := range s.Obstacles.Values() {
		x, y := o.Position.X, o.Position.Y
		if o.Kind == Spike {
			// Stacked rects approximate the triangle.
			const steps = 5
			for i := range steps {
				fi := float64(i)
				inset := o.Width / 2 * (steps - fi - 1) / steps
				surface.FillRect(x+inset, y+fi*o.Height/steps, o.Width-2*inset, o.Height/steps, blockColor)
			}
			continue
		}
		surface.FillRect(x, y, o.Width, o.Height, blockColor)
		surface.FillRect(x, y, o.Width, 4, blockShine)
	}

	for c := range s.Coins.Values() {
		// Rotation shows as the coin's apparent width.
		half := 8 * math.Abs(math.Cos(c.Rotation))
		x, y := c.Position.X, c.Position.Y
		surface.FillRect(x-half, y-8, 2*half, 16, coinColor)
		surface.FillRect(x-half+2, y-6, min(4, 2*half), 12, coinShine)
		draw.CenteredText(surface, "$", x, y-8, coinMark)
	}

	for u := range s.PowerUps.Values() {
		size := 15 + 3*math.Sin(u.Pulse)
		alpha := 0.8 + 0.2*math.Sin(u.Pulse)
		x, y := u.Position.X, u.Position.Y
		surface.FillRect(x-size/2, y-size/2, size, size, draw.Fade(u.Kind.color(), alpha))
		draw.CenteredText(surface, u.Kind.symbol(), x, y-8, color.Black)
	}
}

// HUDRenderSystem draws score, level, coins, running power-ups, freshly
// unlocked achievements and the phase overlays.
type HUDRenderSystem struct {
	State  ecs.Singleton[State]
	Powers ecs.Singleton[Powers]
	Canvas ecs.Singleton[sim.Canvas]
}

func (s *HUDRenderSystem) Execute(frame *ecs.UpdateFrame) {
	state, powers, canvas := s.State.Get(), s.Powers.Get(), s.Canvas.Get()
	if state == nil || powers == nil || canvas == nil || canvas.Surface == nil {
		return
	}
	surface := canvas.Surface
	w, h := state.Width, state.Height

	surface.Text("SCORE "+draw.Number(state.Score), 10, 10, hudColor)
	surface.Text(fmt.Sprintf("LEVEL %d", state.Level), 10, 26, hudColor)
	surface.Text("COINS "+draw.Number(state.Coins), 10, 42, hudColor)
	high := "HIGH " + draw.Number(state.HighScore)
	surface.Text(high, w-10-float64(len(high))*draw.CharWidth, 10, hudColor)

	for i, kind := range powers.Names() {
		label := fmt.Sprintf("%s %.1fs", kind, powers.Remaining(kind)/1000)
		surface.Text(label, w-10-float64(len(label))*draw.CharWidth, 26+float64(i)*16, kind.color())
	}

	for i, id := range lastN(state.Unlocked, 3) {
		draw.CenteredText(surface, "Achievement: "+id, w/2, 10+float64(i)*16, coinColor)
	}

	switch state.Phase {
	case Ready:
		surface.FillRect(0, 0, w, h, overlay)
		draw.CenteredText(surface, "SIDER RUNNER", w/2, h/2-30, hudColor)
		draw.CenteredText(surface, "Press SPACE to start", w/2, h/2, hudColor)
	case Paused:
		surface.FillRect(0, 0, w, h, overlay)
		draw.CenteredText(surface, "PAUSED", w/2, h/2-10, hudColor)
		draw.CenteredText(surface, "Press ESC to resume or Q to quit", w/2, h/2+10, hudColor)
	case Over:
		surface.FillRect(0, 0, w, h, overlay)
		draw.CenteredText(surface, "GAME OVER", w/2, h/2-40, hudColor)
		draw.CenteredText(surface, fmt.Sprintf("Score %s  Level %d  Coins %d", draw.Number(state.Score), state.Level, state.Coins), w/2, h/2-10, hudColor)
		if state.Score >= state.HighScore && state.Score > 0 {
			draw.CenteredText(surface, "NEW HIGH SCORE!", w/2, h/2+10, coinColor)
		}
		draw.CenteredText(surface, "Press R to restart or Q to quit", w/2, h/2+40, hudColor)
	}
}

func lastN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
