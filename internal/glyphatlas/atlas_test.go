package glyphatlas

import (
	"testing"

	"github.com/golang/freetype/truetype"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

type fixedProvider struct{ font *truetype.Font }

func (p fixedProvider) Load() (*truetype.Font, error) { return p.font, nil }

func newTestAtlas(t *testing.T) *Atlas {
	t.Helper()
	f, err := truetype.Parse(goregular.TTF)
	require.NoError(t, err)
	a, err := New(fixedProvider{font: f}, nil)
	require.NoError(t, err)
	return a
}

func TestGet_CachesOnSecondLookup(t *testing.T) {
	a := newTestAtlas(t)

	_, err := a.Get('A', 16)
	require.NoError(t, err)
	require.Equal(t, 1, a.MissCount())
	require.Equal(t, 0, a.HitCount())

	_, err = a.Get('A', 16)
	require.NoError(t, err)
	require.Equal(t, 1, a.MissCount())
	require.Equal(t, 1, a.HitCount())
}

func TestGet_NearbySizesShareCacheKey(t *testing.T) {
	a := newTestAtlas(t)

	_, err := a.Get('A', 16.0)
	require.NoError(t, err)
	_, err = a.Get('A', 16.4)
	require.NoError(t, err)

	require.Equal(t, 1, a.MissCount())
	require.Equal(t, 1, a.HitCount())
}

func TestGet_DistinctSizesAreDistinctEntries(t *testing.T) {
	a := newTestAtlas(t)

	_, err := a.Get('A', 12)
	require.NoError(t, err)
	_, err = a.Get('A', 24)
	require.NoError(t, err)

	require.Equal(t, 2, a.MissCount())
	require.Equal(t, 2, a.Len())
}

func TestGet_SpaceHasNoBitmapButHasAdvance(t *testing.T) {
	a := newTestAtlas(t)

	entry, err := a.Get(' ', 16)
	require.NoError(t, err)
	require.Nil(t, entry.Bitmap)
	require.Greater(t, entry.Advance, 0)
}

func TestSetCapacity_EvictsLeastRecentlyUsed(t *testing.T) {
	a := newTestAtlas(t)
	a.SetCapacity(2)

	_, err := a.Get('A', 16)
	require.NoError(t, err)
	_, err = a.Get('B', 16)
	require.NoError(t, err)
	_, err = a.Get('C', 16)
	require.NoError(t, err)

	require.Equal(t, 2, a.Len())

	// 'A' should have been evicted; re-fetching it is a miss again.
	missesBefore := a.MissCount()
	_, err = a.Get('A', 16)
	require.NoError(t, err)
	require.Equal(t, missesBefore+1, a.MissCount())
}

func TestGet_IconGlyphsAreProceduralAndDeterministic(t *testing.T) {
	a := newTestAtlas(t)

	for _, icon := range []rune{IconClock, IconCloud, IconGauge, IconHourglass, IconQuote} {
		entry, err := a.Get(icon, 16)
		require.NoError(t, err)
		require.Equal(t, 16, entry.Width)
		require.Equal(t, 16, entry.Height)
		require.Greater(t, entry.Advance, 16)

		inked := 0
		for _, v := range entry.Bitmap {
			if v > 0 {
				inked++
			}
		}
		require.Greater(t, inked, 0, "icon %X should have visible coverage", icon)
	}

	// Same rune, fresh atlas: byte-identical bitmaps.
	b := newTestAtlas(t)
	first, err := a.Get(IconClock, 16)
	require.NoError(t, err)
	second, err := b.Get(IconClock, 16)
	require.NoError(t, err)
	require.Equal(t, first.Bitmap, second.Bitmap)
}

func TestAscent_PositiveForReasonableSize(t *testing.T) {
	a := newTestAtlas(t)
	require.Greater(t, a.Ascent(16), 0)
}
