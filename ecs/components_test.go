package ecs_test

import "github.com/plus3/arcade/ecs"

type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64
}

type Health struct {
	Current, Max int
}

type Score int

type Tag string

type Counter struct {
	Value int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[Tag](registry)
	return registry
}

func newTestStorage() *ecs.Storage {
	return ecs.NewStorage(newTestRegistry())
}
