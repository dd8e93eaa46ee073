package goal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fitcrew-hub/fitcrew-bot/internal/domain/shared"
)

func TestApplyDelta(t *testing.T) {
	t.Run("adds below target", func(t *testing.T) {
		got, err := ApplyDelta(10, 100, 30)
		assert.NoError(t, err)
		assert.Equal(t, 40.0, got)
	})

	t.Run("clamps at target", func(t *testing.T) {
		got, err := ApplyDelta(60, 100, 60)
		assert.NoError(t, err)
		assert.Equal(t, 100.0, got)
	})

	t.Run("exact target is not an overflow", func(t *testing.T) {
		got, err := ApplyDelta(40, 100, 60)
		assert.NoError(t, err)
		assert.Equal(t, 100.0, got)
	})

	t.Run("zero delta is allowed", func(t *testing.T) {
		got, err := ApplyDelta(40, 100, 0)
		assert.NoError(t, err)
		assert.Equal(t, 40.0, got)
	})

	t.Run("rejects negative delta", func(t *testing.T) {
		got, err := ApplyDelta(40, 100, -5)
		assert.ErrorIs(t, err, shared.ErrInvalidAmount)
		assert.Equal(t, 40.0, got)
	})
}

func TestFixDaily(t *testing.T) {
	t.Run("lowers and reports negative delta", func(t *testing.T) {
		adjusted, delta := FixDaily(80, 100, 50)
		assert.Equal(t, 50.0, adjusted)
		assert.Equal(t, -30.0, delta)
	})

	t.Run("raises and reports positive delta", func(t *testing.T) {
		adjusted, delta := FixDaily(20, 100, 70)
		assert.Equal(t, 70.0, adjusted)
		assert.Equal(t, 50.0, delta)
	})

	t.Run("clamps above target", func(t *testing.T) {
		adjusted, delta := FixDaily(80, 100, 250)
		assert.Equal(t, 100.0, adjusted)
		assert.Equal(t, 20.0, delta)
	})

	t.Run("zero wipes the day", func(t *testing.T) {
		adjusted, delta := FixDaily(80, 100, 0)
		assert.Equal(t, 0.0, adjusted)
		assert.Equal(t, -80.0, delta)
	})
}
