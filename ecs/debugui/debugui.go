// Package debugui draws a Dear ImGui overlay over a running game. The overlay
// lives in its own storage: ImguiItem entities hold render functions and
// ImguiSystem runs them once per frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/arcade/ecs"
)

// ImguiItem holds a Dear ImGui render function. Every ImguiItem entity is
// rendered once per overlay frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState records whether ImGui consumed the pointer or keyboard this
// frame. Hosts check it before forwarding input to the game.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem refreshes ImguiInputState and defers every item's render
// function until after the frame's systems have run.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	state := i.InputState.Get()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Values() {
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}

// RegisterComponents registers the overlay's component types.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// NewStorage returns an overlay storage with the input-state singleton and a
// scheduler running ImguiSystem. Each window is spawned as an ImguiItem.
func NewStorage(windows ...func()) (*ecs.Storage, *ecs.Scheduler) {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)

	storage := ecs.NewStorage(registry)
	storage.AddSingleton(ImguiInputState{})
	for _, w := range windows {
		storage.Spawn(ImguiItem{Render: w})
	}

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ImguiSystem{})
	return storage, scheduler
}
