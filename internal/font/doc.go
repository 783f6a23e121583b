// Package font is the FontProvider collaborator: it locates and parses a
// TrueType font usable by the glyph atlas, walking a fallback chain of
// well-known system font paths.
package font
