// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It manages ImGui rendering and input state through ECS components and systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tilequest/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queries all ImguiItem components and defers their render functions.
// It also updates the ImguiInputState singleton with current input capture state.
// The host must wrap the app update in the backend's BeginFrame and EndFrame.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
		state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}

// Plugin installs the debug windows: performance stats with per-system
// timings, an entity browser and a component inspector for the selected entity.
type Plugin struct {
	// HistoryFrames is how many frame times the graph keeps.
	HistoryFrames int
	// EntitiesPerPage limits the entity browser table.
	EntitiesPerPage int
}

func (p Plugin) Build(app *ecs.App) {
	ecs.Register[ImguiItem](app)
	ecs.NewSingleton(app.Storage, ImguiInputState{})

	history := p.HistoryFrames
	if history <= 0 {
		history = 120
	}
	perPage := p.EntitiesPerPage
	if perPage <= 0 {
		perPage = 100
	}

	stats := NewPerformanceStats(history)
	browser := NewEntityBrowser(perPage)
	inspector := &ComponentInspector{}
	timer := NewFrameTimer()

	app.Storage.Spawn(ImguiItem{Render: func() {
		stats.Render(app.Storage, timer.GetDeltaTime(),
			app.Scheduler(ecs.Update).GetStats(),
			app.Scheduler(ecs.PostUpdate).GetStats(),
		)
	}})
	app.Storage.Spawn(ImguiItem{Render: func() {
		browser.Render(app.Storage)
	}})
	app.Storage.Spawn(ImguiItem{Render: func() {
		inspector.Render(app.Storage, browser.SelectedEntity())
	}})

	app.AddSystems(ecs.PostUpdate, &ImguiSystem{})
}
