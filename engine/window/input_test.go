package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/stretchr/testify/assert"
)

func TestButtonTransitions(t *testing.T) {
	in := NewInput()

	in.ButtonEvent(common.MouseButtonLeft, true)
	assert.True(t, in.Pressed(common.MouseButtonLeft))
	assert.True(t, in.Down(common.MouseButtonLeft))
	assert.False(t, in.Released(common.MouseButtonLeft))

	in.EndFrame()
	assert.False(t, in.Pressed(common.MouseButtonLeft))
	assert.True(t, in.Down(common.MouseButtonLeft))

	in.ButtonEvent(common.MouseButtonLeft, false)
	assert.True(t, in.Released(common.MouseButtonLeft))
	assert.False(t, in.Down(common.MouseButtonLeft))

	in.EndFrame()
	assert.False(t, in.Released(common.MouseButtonLeft))
}

func TestPressAndReleaseWithinOnePoll(t *testing.T) {
	in := NewInput()

	in.ButtonEvent(common.MouseButtonLeft, true)
	in.ButtonEvent(common.MouseButtonLeft, false)

	assert.True(t, in.Pressed(common.MouseButtonLeft))
	assert.True(t, in.Released(common.MouseButtonLeft))
	assert.False(t, in.Down(common.MouseButtonLeft))
}

func TestReleaseWithoutPressIsDropped(t *testing.T) {
	in := NewInput()

	in.ButtonEvent(common.MouseButtonRight, false)
	assert.False(t, in.Released(common.MouseButtonRight))
}

func TestKeyRepeatIsNotANewPress(t *testing.T) {
	in := NewInput()

	in.KeyEvent(common.KeyD, true)
	in.EndFrame()
	in.KeyEvent(common.KeyD, true)

	assert.False(t, in.KeyPressed(common.KeyD))
	assert.True(t, in.KeyDown(common.KeyD))
}

func TestCursorDeltaAccumulatesPerPoll(t *testing.T) {
	in := NewInput()

	in.CursorEvent(100, 100)
	dx, dy := in.CursorDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	in.CursorEvent(103, 98)
	in.CursorEvent(110, 90)
	dx, dy = in.CursorDelta()
	assert.Equal(t, float32(10), dx)
	assert.Equal(t, float32(-10), dy)

	x, y := in.Cursor()
	assert.Equal(t, float32(110), x)
	assert.Equal(t, float32(90), y)

	in.EndFrame()
	dx, dy = in.CursorDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

func TestScrollResetsEachFrame(t *testing.T) {
	in := NewInput()

	in.ScrollEvent(1)
	in.ScrollEvent(0.5)
	assert.Equal(t, float32(1.5), in.Scroll())

	in.EndFrame()
	assert.Zero(t, in.Scroll())
}
