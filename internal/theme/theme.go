package theme

import "fmt"

// Color is a straight-alpha ARGB color packed as 0xAARRGGBB.
// Premultiplication happens only at the point the rasterizer writes pixels
// (internal/raster), so colors here stay in the more ergonomic straight form.
type Color uint32

// RGBA splits the packed color into its 0-255 channel components.
func (c Color) RGBA() (a, r, g, b uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// WithAlpha returns a copy of c with the alpha channel replaced by a
// fraction of its current value, used to apply the theme/panel opacity
// scalar on top of a color's own alpha.
func (c Color) WithAlpha(fraction float64) Color {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	a, r, g, b := c.RGBA()
	na := uint8(float64(a) * fraction)
	return Color(uint32(na)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

const (
	colorNearBlack   Color = 0xFF1A1A1E
	colorNearWhite   Color = 0xFFF5F5F7
	colorMidGray     Color = 0xFF6E6E76
	colorLightGray1  Color = 0xFFB8B8C0
	colorLightGray2  Color = 0xFFD8D8DE
	colorWhite       Color = 0xFFFFFFFF
	colorBlack       Color = 0xFF0A0A0C
	colorAccentBlue  Color = 0xFF3584E4
	colorTransparent Color = 0x00000000
	colorFaintGray   Color = 0x3AFFFFFF
)

// Theme is an immutable set of panel colors and chrome parameters.
// Changing the active theme means swapping the reference, never mutating
// the fields of one in place.
type Theme struct {
	Name          string
	Opacity       float64
	BorderWidth   float64
	CornerRadius  float64
	Background    Color
	Border        Color
	TextPrimary   Color
	TextSecondary Color
	Accent        Color
	BlurHint      bool
}

// Names of the built-in themes, as accepted by the `theme` config field.
const (
	CosmicDark       = "cosmic_dark"
	Light            = "light"
	TransparentDark  = "transparent_dark"
	TransparentLight = "transparent_light"
	Glass            = "glass"
	Custom           = "custom"
)

var builtin = map[string]Theme{
	CosmicDark: {
		Name:          CosmicDark,
		Opacity:       0.90,
		BorderWidth:   1,
		CornerRadius:  8,
		Background:    colorNearBlack,
		Border:        colorMidGray,
		TextPrimary:   colorWhite,
		TextSecondary: colorLightGray1,
		Accent:        colorAccentBlue,
	},
	Light: {
		Name:          Light,
		Opacity:       0.95,
		BorderWidth:   1,
		CornerRadius:  8,
		Background:    colorNearWhite,
		Border:        colorLightGray2,
		TextPrimary:   colorBlack,
		TextSecondary: colorMidGray,
		Accent:        colorAccentBlue,
	},
	TransparentDark: {
		Name:          TransparentDark,
		Opacity:       0.50,
		BorderWidth:   1,
		CornerRadius:  8,
		Background:    colorNearBlack,
		Border:        colorTransparent,
		TextPrimary:   colorWhite,
		TextSecondary: colorLightGray1,
		Accent:        colorAccentBlue,
	},
	TransparentLight: {
		Name:          TransparentLight,
		Opacity:       0.50,
		BorderWidth:   1,
		CornerRadius:  8,
		Background:    colorNearWhite,
		Border:        colorTransparent,
		TextPrimary:   colorBlack,
		TextSecondary: colorMidGray,
		Accent:        colorAccentBlue,
	},
	Glass: {
		Name:          Glass,
		Opacity:       0.70,
		BorderWidth:   1,
		CornerRadius:  12,
		Background:    colorNearBlack,
		Border:        colorFaintGray,
		TextPrimary:   colorWhite,
		TextSecondary: colorLightGray1,
		Accent:        colorAccentBlue,
		BlurHint:      true,
	},
}

// Lookup returns a built-in theme by name.
// "custom" resolves to the cosmic_dark values; a full custom-color config
// surface is left to a future configuration revision.
func Lookup(name string) (Theme, error) {
	if name == Custom {
		t := builtin[CosmicDark]
		t.Name = Custom
		return t, nil
	}
	t, ok := builtin[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q, must be one of %v", name, Names())
	}
	return t, nil
}

// Names returns the accepted theme name values, in table order.
func Names() []string {
	return []string{CosmicDark, Light, TransparentDark, TransparentLight, Glass, Custom}
}

// Default returns the fallback theme used when none is configured.
func Default() Theme {
	return builtin[CosmicDark]
}
