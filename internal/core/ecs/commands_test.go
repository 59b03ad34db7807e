package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topdown/shooter/internal/core/ecs"
)

func TestCommandsAreDeferredUntilApply(t *testing.T) {
	w := ecs.NewWorld()
	cmd := ecs.NewCommands(w)

	e := cmd.Spawn()
	ecs.Insert(cmd, e, position{X: 3})
	ecs.Insert(cmd, e, tag{})
	assert.Equal(t, 3, cmd.Len())
	assert.Equal(t, 0, ecs.NewQuery[position](w).Count(), "spawn is invisible before flush")

	require.NoError(t, w.Apply(cmd))
	assert.Equal(t, 0, cmd.Len())
	id, p, ok := ecs.NewQuery[position](w, ecs.With[tag]()).Single()
	require.True(t, ok)
	assert.Equal(t, e, id)
	assert.Equal(t, 3.0, p.X)
}

func TestCommandsRecordedDuringIteration(t *testing.T) {
	w := ecs.NewWorld()
	for i := 0; i < 3; i++ {
		spawnWith(t, w, float64(i), true, false)
	}
	cmd := ecs.NewCommands(w)
	for id := range ecs.NewQuery[position](w).Iter() {
		cmd.Despawn(id)
		cmd.Despawn(id)
	}
	assert.Equal(t, 3, ecs.NewQuery[position](w).Count())
	require.NoError(t, w.Apply(cmd), "double despawn is not an error")
	assert.Equal(t, 0, ecs.NewQuery[position](w).Count())
	assert.Equal(t, 0, w.Len())
}

func TestCommandsApplyInSubmissionOrder(t *testing.T) {
	w := ecs.NewWorld()
	cmd := ecs.NewCommands(w)
	e := cmd.Spawn()
	ecs.Insert(cmd, e, position{X: 1})
	ecs.RemoveComponent[position](cmd, e)
	ecs.Insert(cmd, e, position{X: 2})
	require.NoError(t, w.Apply(cmd))

	p, ok := ecs.Get[position](w, e)
	require.True(t, ok)
	assert.Equal(t, 2.0, p.X)
}

func TestCommandsContinuePastStaleTargets(t *testing.T) {
	w := ecs.NewWorld()
	cmd := ecs.NewCommands(w)
	e := cmd.Spawn()
	cmd.Despawn(e)
	ecs.Insert(cmd, e, tag{})
	f := cmd.Spawn()
	ecs.Insert(cmd, f, tag{})

	err := w.Apply(cmd)
	assert.ErrorIs(t, err, ecs.ErrStaleEntity)
	assert.True(t, ecs.Has[tag](w, f), "commands after a failure still apply")
	assert.False(t, w.Alive(e))
}
