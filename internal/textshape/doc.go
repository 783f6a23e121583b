// Package textshape lays out a string as a left-to-right sequence of
// positioned glyph references. It performs no kerning, no
// complex shaping, and no bidi: each rune advances the pen by its own
// glyph's advance width.
package textshape
