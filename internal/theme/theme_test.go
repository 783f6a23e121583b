package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_Builtin(t *testing.T) {
	for _, name := range []string{CosmicDark, Light, TransparentDark, TransparentLight, Glass} {
		th, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, name, th.Name)
		assert.Greater(t, th.Opacity, 0.0)
	}
}

func TestLookup_Custom(t *testing.T) {
	th, err := Lookup(Custom)
	require.NoError(t, err)
	assert.Equal(t, Custom, th.Name)
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("diagonal")
	require.Error(t, err)
}

func TestGlass_HasBlurHint(t *testing.T) {
	th, err := Lookup(Glass)
	require.NoError(t, err)
	assert.True(t, th.BlurHint)
}

func TestColor_WithAlpha(t *testing.T) {
	c := Color(0xFF112233)
	half := c.WithAlpha(0.5)
	a, r, g, b := half.RGBA()
	assert.Equal(t, uint8(127), a)
	assert.Equal(t, uint8(0x11), r)
	assert.Equal(t, uint8(0x22), g)
	assert.Equal(t, uint8(0x33), b)
}

func TestColor_WithAlpha_Clamped(t *testing.T) {
	c := Color(0xFF000000)
	assert.EqualValues(t, 0, func() uint8 { a, _, _, _ := c.WithAlpha(-1).RGBA(); return a }())
	assert.EqualValues(t, 255, func() uint8 { a, _, _, _ := c.WithAlpha(2).RGBA(); return a }())
}
