package windowstate_test

import (
	"testing"

	"github.com/ErikKalkoken/go-set"
	"github.com/stretchr/testify/assert"

	"github.com/opencode-ai/desktop/internal/windowstate"
	"github.com/opencode-ai/desktop/internal/xassert"
)

func TestStateFlags(t *testing.T) {
	t.Run("all contains every flag", func(t *testing.T) {
		got := windowstate.All().Flags()
		want := set.Of(
			windowstate.Size,
			windowstate.Position,
			windowstate.Maximized,
			windowstate.Visible,
			windowstate.Decorations,
			windowstate.Fullscreen,
		)
		xassert.EqualSet(t, want, got)
	})
	t.Run("can remove flags", func(t *testing.T) {
		x := windowstate.Size.Union(windowstate.Position, windowstate.Maximized, windowstate.Decorations, windowstate.Visible)
		got := x.Difference(windowstate.Decorations, windowstate.Visible)
		assert.Equal(t, windowstate.Size|windowstate.Position|windowstate.Maximized, got)
	})
	t.Run("removing absent flag is a no-op", func(t *testing.T) {
		x := windowstate.Size
		assert.Equal(t, windowstate.Size, x.Difference(windowstate.Fullscreen))
	})
	t.Run("has", func(t *testing.T) {
		x := windowstate.Size | windowstate.Position
		assert.True(t, x.Has(windowstate.Size))
		assert.True(t, x.Has(windowstate.Size|windowstate.Position))
		assert.False(t, x.Has(windowstate.Size|windowstate.Visible))
	})
}

func TestStateFlagsString(t *testing.T) {
	cases := []struct {
		flags windowstate.StateFlags
		want  string
	}{
		{0, "none"},
		{windowstate.Size, "size"},
		{windowstate.Size | windowstate.Maximized, "size|maximized"},
		{windowstate.All(), "size|position|maximized|visible|decorations|fullscreen"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.flags.String())
		})
	}
}
