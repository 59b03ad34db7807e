package system_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topdown/shooter/internal/component"
	"github.com/topdown/shooter/internal/core/ecs"
	"github.com/topdown/shooter/internal/core/event"
	"github.com/topdown/shooter/internal/system"
)

func TestBulletHitsEnemySameTick(t *testing.T) {
	h := newHarness(t, quiet(), nil)
	h.movePlayer(200, -150)
	b := h.addBullet(0, 0, 0)
	e := h.addEnemy(0, 15, 0)

	h.tick(1)
	assert.False(t, h.w().Alive(b))
	assert.False(t, h.w().Alive(e))
	assert.Equal(t, 1, h.session().Kills)
	assert.False(t, h.session().Over)
}

func TestEnemyTakesAtMostOneBulletPerTick(t *testing.T) {
	h := newHarness(t, quiet(), nil)
	h.movePlayer(200, -150)
	first := h.addBullet(0, 0, 0)
	second := h.addBullet(5, 0, 0)
	e := h.addEnemy(0, 15, 0)

	h.tick(1)
	assert.False(t, h.w().Alive(e))
	assert.False(t, h.w().Alive(first))
	assert.True(t, h.w().Alive(second), "the enemy was already consumed")
	assert.Equal(t, 1, h.session().Kills)
}

func TestBulletHitsOnlyFirstEnemyInRange(t *testing.T) {
	h := newHarness(t, quiet(), nil)
	h.movePlayer(200, -150)
	h.addBullet(0, 0, 0)
	near := h.addEnemy(0, 15, 0)
	also := h.addEnemy(3, 12, 0)

	h.tick(1)
	assert.False(t, h.w().Alive(near))
	assert.True(t, h.w().Alive(also))
	assert.Equal(t, 0, h.bullets())
}

func TestAppearingEnemyIgnoresBullets(t *testing.T) {
	h := newHarness(t, quiet(), nil)
	h.movePlayer(200, -150)
	b := h.addBullet(0, 0, 0)
	e := h.addEnemy(0, 15, 5)

	h.tick(1)
	assert.True(t, h.w().Alive(b))
	assert.True(t, h.w().Alive(e))
	assert.Equal(t, 0, h.session().Kills)
}

func TestHitRadiusIsStrict(t *testing.T) {
	h := newHarness(t, quiet(), nil)
	h.movePlayer(0, 150)
	// after moving, the bullet sits at (0,10) and the enemy at (0,30)
	h.addBullet(0, 0, 0)
	h.addEnemy(0, 29.5, 0)
	h.tick(1)
	assert.Equal(t, 1, h.bullets())
}

func TestPlayerContactSendsGameOver(t *testing.T) {
	h := newHarness(t, quiet(), nil)
	over := event.NewReader[event.GameOver](h.runner.Events())
	h.addEnemy(0, 10, 0)

	h.tick(1)
	assert.Len(t, over.Read(), 1)
	s := h.session()
	assert.True(t, s.Over)
	assert.Equal(t, uint64(0), s.OverTick)

	h.tick(3)
	assert.Len(t, over.Read(), 3, "contact is reported every tick it lasts")
	assert.Equal(t, uint64(0), h.session().OverTick, "the first game over is the one recorded")
	assert.Equal(t, 1, ecs.NewQuery[component.PlayerShip](h.w()).Count(), "the ship is not removed")
}

func TestCollisionQueriesAreDisjoint(t *testing.T) {
	_, err := system.NewCollisionSystem(ecs.NewWorld(), quiet().Collision)
	require.NoError(t, err)
}
