package glyphatlas

import (
	"container/list"
	"log/slog"
	"math"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	cwfont "github.com/cosmicwidgetd/cosmicwidgetd/internal/font"
)

// DefaultCapacity holds one frame's worth of distinct glyphs comfortably.
const DefaultCapacity = 256

// GlyphEntry is a single cached rasterization.
type GlyphEntry struct {
	Advance   int
	BearingX  int
	BearingY  int
	Width     int
	Height    int
	Bitmap    []byte // grayscale coverage, row-major, Width*Height bytes
}

type glyphKey struct {
	Ch   rune
	Size int
}

type cacheItem struct {
	key   glyphKey
	entry GlyphEntry
}

// Atlas rasterizes glyphs on miss and caches them with LRU eviction keyed
// by (character, rounded integer pixel size).
type Atlas struct {
	logger   *slog.Logger
	ttfont   *truetype.Font
	faces    map[int]font.Face
	capacity int

	items    map[glyphKey]*list.Element
	lru      *list.List // front = most recently used

	hits   int
	misses int
}

// New creates an Atlas over the font returned by provider.Load().
func New(provider cwfont.Provider, logger *slog.Logger) (*Atlas, error) {
	if logger == nil {
		logger = slog.Default()
	}
	f, err := provider.Load()
	if err != nil {
		return nil, err
	}
	return &Atlas{
		logger:   logger,
		ttfont:   f,
		faces:    make(map[int]font.Face),
		capacity: DefaultCapacity,
		items:    make(map[glyphKey]*list.Element),
		lru:      list.New(),
	}, nil
}

// SetCapacity changes the LRU capacity, evicting immediately if the cache
// is currently over the new limit.
func (a *Atlas) SetCapacity(n int) {
	a.capacity = n
	for a.lru.Len() > a.capacity {
		a.evictOldest()
	}
}

// roundSize maps a fractional pixel size to the nearest integer size used
// as the cache key, maximizing reuse across widgets requesting nearly the
// same size.
func roundSize(size float64) int {
	return int(math.Round(size))
}

// Get returns the glyph entry for ch at size, rasterizing on a cache miss.
func (a *Atlas) Get(ch rune, size float64) (GlyphEntry, error) {
	key := glyphKey{Ch: ch, Size: roundSize(size)}

	if elem, ok := a.items[key]; ok {
		a.lru.MoveToFront(elem)
		a.hits++
		return elem.Value.(*cacheItem).entry, nil
	}

	a.misses++
	entry, err := a.rasterize(ch, key.Size)
	if err != nil {
		a.logger.Debug("glyph rasterization failed", "ch", ch, "size", key.Size, "error", err)
		return GlyphEntry{}, err
	}

	elem := a.lru.PushFront(&cacheItem{key: key, entry: entry})
	a.items[key] = elem
	if a.lru.Len() > a.capacity {
		a.evictOldest()
	}

	a.logger.Debug("glyph cache miss", "ch", ch, "size", key.Size)
	return entry, nil
}

func (a *Atlas) evictOldest() {
	elem := a.lru.Back()
	if elem == nil {
		return
	}
	a.lru.Remove(elem)
	delete(a.items, elem.Value.(*cacheItem).key)
}

func (a *Atlas) faceForSize(size int) font.Face {
	if f, ok := a.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(a.ttfont, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	a.faces[size] = f
	return f
}

func (a *Atlas) rasterize(ch rune, size int) (GlyphEntry, error) {
	if isIcon(ch) {
		return rasterizeIcon(ch, size), nil
	}

	face := a.faceForSize(size)

	dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), ch)
	if !ok || dr.Empty() {
		// Space and other zero-ink glyphs are valid; report a zero-size
		// bitmap with whatever advance the face reports.
		adv, _ := face.GlyphAdvance(ch)
		return GlyphEntry{Advance: adv.Round()}, nil
	}

	w, h := dr.Dx(), dr.Dy()
	bitmap := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, alpha := mask.At(maskp.X+x, maskp.Y+y).RGBA()
			bitmap[y*w+x] = byte(alpha >> 8)
		}
	}

	return GlyphEntry{
		Advance:  advance.Round(),
		BearingX: dr.Min.X,
		BearingY: dr.Min.Y,
		Width:    w,
		Height:   h,
		Bitmap:   bitmap,
	}, nil
}

// Ascent returns the face's ascent at size, used by the text shaper to
// compute a baseline from a top-left origin.
func (a *Atlas) Ascent(size float64) int {
	face := a.faceForSize(roundSize(size))
	return face.Metrics().Ascent.Round()
}

// HitCount returns the number of cache hits observed so far.
func (a *Atlas) HitCount() int { return a.hits }

// MissCount returns the number of cache misses observed so far.
func (a *Atlas) MissCount() int { return a.misses }

// Len returns the number of entries currently cached.
func (a *Atlas) Len() int { return a.lru.Len() }
