package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/tilequest/ecs"
)

// spawnGrid lays out a w×h board of labelled cells and returns their ids.
func spawnGrid(storage *ecs.Storage, w, h int) []ecs.EntityId {
	ids := make([]ecs.EntityId, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ids = append(ids, storage.Spawn(Coord{X: float32(x), Y: float32(y)}, Glyph(".")))
		}
	}
	return ids
}

func BenchmarkSpawnBoard(b *testing.B) {
	for i := 0; i < b.N; i++ {
		storage := ecs.NewStorage(newTestRegistry())
		spawnGrid(storage, 16, 16)
	}
}

func BenchmarkClearBoard(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		storage := ecs.NewStorage(newTestRegistry())
		ids := spawnGrid(storage, 16, 16)
		b.StartTimer()
		for _, id := range ids {
			storage.Delete(id)
		}
	}
}

func BenchmarkReadHeroCoord(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	spawnGrid(storage, 16, 16)
	hero := storage.Spawn(Coord{X: 3, Y: 4}, Hero{}, Hearts{Current: 1, Max: 3})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ecs.ReadComponent[Coord](storage, hero)
	}
}

// A stun is added on a bump and removed when its wiggle ends.
func BenchmarkStunCycle(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	hero := storage.Spawn(Coord{}, Hero{}, Hearts{Current: 1, Max: 3})
	stunned := reflect.TypeFor[Stunned]()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.AddComponent(hero, Stunned{})
		storage.RemoveComponent(hero, stunned)
	}
}

type stepHeroes struct {
	Heroes ecs.Query[struct {
		*Coord
		*Step
		*Hero
		Stunned *Stunned `ecs:"without"`
	}]
}

func (s *stepHeroes) Execute(frame *ecs.UpdateFrame) {
	for hero := range s.Heroes.Values() {
		hero.Coord.X += hero.Step.DX
		hero.Coord.Y += hero.Step.DY
	}
}

func BenchmarkSchedulerWalk(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	spawnGrid(storage, 32, 32)
	for i := 0; i < 64; i++ {
		storage.Spawn(Coord{}, Step{DX: 1}, Hero{})
		storage.Spawn(Coord{}, Step{DY: 1}, Hero{}, Stunned{})
	}
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&stepHeroes{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scheduler.Once(1.0 / 60)
	}
}

func BenchmarkPickupEvents(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	bank := ecs.NewEventReader[Coins](storage)
	var total Coins

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ecs.SendEvent(storage, Coins(1))
		for coins := range bank.Read() {
			total += coins
		}
		storage.UpdateEvents()
	}
	_ = total
}
