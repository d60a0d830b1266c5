package world

import (
	"testing"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
)

func TestHitStopTakesLongestTrigger(t *testing.T) {
	a, b := ksuid.New(), ksuid.New()

	h := NewHitStop()
	h.Trigger(5, a, b)
	h.Trigger(3, b)
	assert.Equal(t, 5, h.Remaining())

	ticks, releases := 0, 0
	for h.Active() {
		assert.True(t, h.Frozen(a))
		if h.Update() {
			releases++
		}
		ticks++
	}
	assert.Equal(t, 5, ticks)
	assert.Equal(t, 1, releases)
	assert.False(t, h.Frozen(a))
	assert.False(t, h.Frozen(b))
}

func TestHitStopExtends(t *testing.T) {
	id := ksuid.New()

	h := NewHitStop()
	h.Trigger(3, id)
	h.Update()
	h.Trigger(4, id)
	assert.Equal(t, 4, h.Remaining())

	h.Trigger(1, id)
	assert.Equal(t, 4, h.Remaining())
}

func TestHitStopIdle(t *testing.T) {
	id := ksuid.New()

	h := NewHitStop()
	assert.False(t, h.Update())
	h.Trigger(0, id)
	assert.False(t, h.Active())
	assert.False(t, h.Frozen(id))
}
