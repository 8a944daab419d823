// Package ebiten hosts the debug overlay inside an ebiten game loop.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/ecs/debugui"
)

// Overlay owns the ImGui backend and the overlay's own ECS storage. Call
// Update from the game's Update, Draw after the game has drawn and Layout
// from the game's Layout.
type Overlay struct {
	backend   *ebitenbackend.EbitenBackend
	scheduler *ecs.Scheduler
	input     *ecs.Singleton[debugui.ImguiInputState]
}

// New creates the ebiten window through the ImGui backend and spawns one
// stats window following target.
func New(title string, width, height int, target func() *ecs.Scheduler) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	stats := debugui.NewStatsWindow("Simulation", target)
	storage, scheduler := debugui.NewStorage(stats.Render)

	return &Overlay{
		backend:   backend,
		scheduler: scheduler,
		input:     ecs.NewSingleton[debugui.ImguiInputState](storage),
	}
}

// Update builds one ImGui frame.
func (o *Overlay) Update(dt float64) {
	o.backend.BeginFrame()
	o.scheduler.Once(dt)
	o.backend.EndFrame()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(width, height int) {
	o.backend.Layout(width, height)
}

// WantsPointer reports whether ImGui used the pointer last frame.
func (o *Overlay) WantsPointer() bool {
	return o.input.Get().WantCaptureMouse
}

// WantsKeyboard reports whether ImGui used the keyboard last frame.
func (o *Overlay) WantsKeyboard() bool {
	return o.input.Get().WantCaptureKeyboard
}
