package ecs_test

import "github.com/plus3/tilequest/ecs"

// Board fixtures shared by the package tests.

// Coord is a cell position. Float fields exercise non-integer columns.
type Coord struct {
	X, Y float32
}

// Step is a per-frame move.
type Step struct {
	DX, DY float32
}

type Label string

type Hearts struct {
	Current int
	Max     int
}

// Hero and Stunned are markers.
type Hero struct{}
type Stunned struct{}

// Coins and Glyph are primitive components.
type Coins int32
type Glyph string

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	for _, register := range []func(*ecs.ComponentRegistry){
		ecs.RegisterComponent[Coord],
		ecs.RegisterComponent[Step],
		ecs.RegisterComponent[Label],
		ecs.RegisterComponent[Hearts],
		ecs.RegisterComponent[Hero],
		ecs.RegisterComponent[Stunned],
		ecs.RegisterComponent[Coins],
		ecs.RegisterComponent[Glyph],
		ecs.RegisterComponent[int],
		ecs.RegisterComponent[string],
		ecs.RegisterComponent[float64],
	} {
		register(registry)
	}
	return registry
}
