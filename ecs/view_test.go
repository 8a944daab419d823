package ecs_test

import (
	"testing"

	"github.com/plus3/arcade/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movable struct {
	*Position
	*Velocity
}

type withHealth struct {
	*Position
	Health *Health `ecs:"optional"`
}

type withId struct {
	ecs.EntityId
	*Score
}

func TestViewGet(t *testing.T) {
	storage := newTestStorage()
	view := ecs.NewView[movable](storage)

	id := storage.Spawn(Position{X: 1}, Velocity{DX: 2})
	still := storage.Spawn(Position{X: 3})

	m := view.Get(id)
	require.NotNil(t, m)
	assert.Equal(t, 1.0, m.Position.X)
	assert.Equal(t, 2.0, m.Velocity.DX)

	m.Position.X = 10
	assert.Equal(t, 10.0, ecs.ReadComponent[Position](storage, id).X)

	assert.Nil(t, view.Get(still))
	storage.Delete(id)
	assert.Nil(t, view.Get(id))
}

func TestViewOptionalFields(t *testing.T) {
	storage := newTestStorage()
	view := ecs.NewView[withHealth](storage)

	bare := storage.Spawn(Position{})
	hurt := storage.Spawn(Position{}, Health{Current: 4})

	got := view.Get(bare)
	require.NotNil(t, got)
	assert.Nil(t, got.Health)

	got = view.Get(hurt)
	require.NotNil(t, got)
	require.NotNil(t, got.Health)
	assert.Equal(t, 4, got.Health.Current)

	count := 0
	for range view.Values() {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestViewEntityIdField(t *testing.T) {
	storage := newTestStorage()
	view := ecs.NewView[withId](storage)

	a := storage.Spawn(Score(1))
	b := storage.Spawn(Score(2), Tag("x"))

	var ids []ecs.EntityId
	for id, item := range view.Iter() {
		assert.Equal(t, id, item.EntityId)
		ids = append(ids, item.EntityId)
	}
	assert.Equal(t, []ecs.EntityId{a, b}, ids)
}

func TestViewIterIsDeterministic(t *testing.T) {
	storage := newTestStorage()
	view := ecs.NewView[struct{ *Score }](storage)

	for i := 0; i < 10; i++ {
		if i%2 == 0 {
			storage.Spawn(Score(i))
		} else {
			storage.Spawn(Score(i), Tag("odd"))
		}
	}

	var scores []Score
	for v := range view.Values() {
		scores = append(scores, *v.Score)
	}
	assert.Equal(t, []Score{0, 2, 4, 6, 8, 1, 3, 5, 7, 9}, scores)
}

func TestViewIterStopsEarly(t *testing.T) {
	storage := newTestStorage()
	view := ecs.NewView[struct{ *Score }](storage)
	for i := 0; i < 5; i++ {
		storage.Spawn(Score(i))
	}

	seen := 0
	for range view.Iter() {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestViewSpawn(t *testing.T) {
	storage := newTestStorage()
	view := ecs.NewView[withHealth](storage)

	id := view.Spawn(withHealth{Position: &Position{X: 5}})
	assert.True(t, storage.Alive(id))
	assert.Equal(t, 5.0, ecs.ReadComponent[Position](storage, id).X)
	assert.Nil(t, ecs.ReadComponent[Health](storage, id))

	assert.Panics(t, func() { view.Spawn(withHealth{}) })
}

func TestViewGetRef(t *testing.T) {
	storage := newTestStorage()
	view := ecs.NewView[movable](storage)

	id := storage.Spawn(Position{}, Velocity{})
	ref := storage.CreateEntityRef(id)
	assert.NotNil(t, view.GetRef(ref))

	storage.Delete(id)
	assert.Nil(t, view.GetRef(ref))
}

func TestNewViewPanics(t *testing.T) {
	storage := newTestStorage()

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() { ecs.NewView[struct{ P Position }](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			P *Position `ecs:"maybe"`
		}](storage)
	})
}
