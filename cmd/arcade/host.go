package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/arcade/draw/ebitendraw"
	debugebiten "github.com/plus3/arcade/ecs/debugui/ebiten"
)

// host adapts app to ebiten: it polls keys, mouse and touches each tick and
// hands the screen to app as a draw.Surface.
type host struct {
	app     *app
	overlay *debugebiten.Overlay
	width   int
	height  int

	keys     []ebiten.Key
	touches  []ebiten.TouchID
	touch    ebiten.TouchID
	touching bool
	surface  *ebitendraw.Surface
}

var _ ebiten.Game = (*host)(nil)

func (h *host) Update() error {
	dt := 1 / float64(ebiten.TPS())
	if h.overlay != nil {
		h.overlay.Update(dt)
	}

	if h.overlay == nil || !h.overlay.WantsKeyboard() {
		h.pollKeys(time.Now())
	}
	if h.overlay == nil || !h.overlay.WantsPointer() {
		h.pollPointer()
	}
	if h.app.Done() {
		return ebiten.Termination
	}

	h.app.Update(dt)
	return nil
}

func (h *host) pollKeys(now time.Time) {
	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
	for _, k := range h.keys {
		h.app.Key(domKey(k), true, now)
	}
	h.keys = inpututil.AppendJustReleasedKeys(h.keys[:0])
	for _, k := range h.keys {
		h.app.Key(domKey(k), false, now)
	}
}

// pollPointer forwards the mouse and the first active touch.
func (h *host) pollPointer() {
	x, y := ebiten.CursorPosition()
	h.app.PointerMove(float64(x), float64(y))
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.app.PointerButton(float64(x), float64(y), true)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		h.app.PointerButton(float64(x), float64(y), false)
	}

	if h.touching {
		if inpututil.IsTouchJustReleased(h.touch) {
			tx, ty := inpututil.TouchPositionInPreviousTick(h.touch)
			h.app.PointerButton(float64(tx), float64(ty), false)
			h.touching = false
		} else {
			tx, ty := ebiten.TouchPosition(h.touch)
			h.app.PointerMove(float64(tx), float64(ty))
		}
		return
	}
	h.touches = inpututil.AppendJustPressedTouchIDs(h.touches[:0])
	if len(h.touches) > 0 {
		h.touch, h.touching = h.touches[0], true
		tx, ty := ebiten.TouchPosition(h.touch)
		h.app.PointerButton(float64(tx), float64(ty), true)
	}
}

func (h *host) Draw(screen *ebiten.Image) {
	if h.surface == nil || h.surface.Image != screen {
		h.surface = ebitendraw.New(screen)
	}
	h.app.Draw(h.surface)
	if h.overlay != nil {
		h.overlay.Draw(screen)
	}
}

func (h *host) Layout(int, int) (int, int) {
	if h.overlay != nil {
		h.overlay.Layout(h.width, h.height)
	}
	return h.width, h.height
}
