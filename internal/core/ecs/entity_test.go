package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topdown/shooter/internal/core/ecs"
)

func TestEntityPoolReusesIndexWithNewGeneration(t *testing.T) {
	p := ecs.NewEntityPool()
	a := p.Create()
	require.True(t, p.Alive(a))
	assert.False(t, a.IsZero())

	require.True(t, p.Destroy(a))
	assert.False(t, p.Alive(a))
	assert.False(t, p.Destroy(a), "second destroy is a no-op")

	b := p.Create()
	assert.Equal(t, a.Index(), b.Index())
	assert.Equal(t, a.Generation()+1, b.Generation())
	assert.False(t, p.Alive(a), "stale id must stay dead after reuse")
	assert.Equal(t, 1, p.Live())
}

func TestZeroEntityIsNeverAlive(t *testing.T) {
	p := ecs.NewEntityPool()
	p.Create()
	assert.False(t, p.Alive(0))
}
