package debugui_test

import (
	"testing"

	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/ecs/debugui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Position struct {
	X, Y int
}

type Label string

type hidden struct {
	Visible bool
	secret  int
}

func newStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[hidden](registry)
	return ecs.NewStorage(registry)
}

func TestEntityBrowserRefreshAndFilter(t *testing.T) {
	storage := newStorage()
	a := storage.Spawn(Position{X: 1}, Label("hero"))
	b := storage.Spawn(Position{X: 2})

	browser := debugui.NewEntityBrowser(10)
	browser.Refresh(storage)

	all := browser.Filter("")
	require.Len(t, all, 2)
	assert.Equal(t, a, all[0].ID)
	assert.Equal(t, b, all[1].ID)

	labelled := browser.Filter("LABEL")
	require.Len(t, labelled, 1)
	assert.Equal(t, a, labelled[0].ID)

	storage.Delete(a)
	browser.Refresh(storage)
	assert.Len(t, browser.Filter(""), 1)
}

func TestInspect(t *testing.T) {
	storage := newStorage()
	id := storage.Spawn(Position{X: 3, Y: 4}, Label("hero"), hidden{Visible: true, secret: 9})

	views := debugui.Inspect(storage, id)
	require.Len(t, views, 3)

	byType := map[string][]debugui.FieldLine{}
	for _, v := range views {
		byType[v.Type] = v.Fields
	}

	assert.Equal(t, []debugui.FieldLine{{Name: "X", Value: "3"}, {Name: "Y", Value: "4"}}, byType["debugui_test.Position"])
	assert.Equal(t, []debugui.FieldLine{{Name: "value", Value: "hero"}}, byType["debugui_test.Label"])
	assert.Equal(t, []debugui.FieldLine{{Name: "Visible", Value: "true"}}, byType["debugui_test.hidden"])

	assert.Empty(t, debugui.Inspect(storage, ecs.EntityId(999)))
}

func TestPerformanceStatsAverage(t *testing.T) {
	stats := debugui.NewPerformanceStats(4)
	stats.Record(0.010)
	stats.Record(0.030)
	assert.InDelta(t, 10.0, stats.AverageFrameTime(), 0.001)
}
