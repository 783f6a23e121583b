package font

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/golang/freetype/truetype"
)

// FallbackChain is walked in order; the first path that exists and parses
// as a valid TrueType font wins. It favors fonts that ship on most Linux
// desktops (DejaVu, Liberation, Noto) over any single distro's defaults.
var FallbackChain = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/truetype/noto/NotoSans-Regular.ttf",
	"/usr/share/fonts/noto/NotoSans-Regular.ttf",
	"/usr/share/fonts/TTF/arial.ttf",
}

// Provider produces the font handle the glyph atlas rasterizes from.
type Provider interface {
	Load() (*truetype.Font, error)
}

// SystemProvider walks any extra paths supplied at construction, then
// FallbackChain.
type SystemProvider struct {
	logger *slog.Logger
	paths  []string
}

// NewSystemProvider creates a provider that searches extraPaths (checked
// first, in order) and then FallbackChain.
func NewSystemProvider(logger *slog.Logger, extraPaths ...string) *SystemProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &SystemProvider{
		logger: logger,
		paths:  append(append([]string{}, extraPaths...), FallbackChain...),
	}
}

// Load returns the first parseable font on the fallback chain.
func (p *SystemProvider) Load() (*truetype.Font, error) {
	var lastErr error
	for _, path := range p.paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f, err := truetype.Parse(data)
		if err != nil {
			lastErr = err
			p.logger.Debug("font candidate failed to parse", "path", path, "error", err)
			continue
		}
		p.logger.Debug("loaded font", "path", path)
		return f, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("no usable font found on fallback chain: %w", lastErr)
	}
	return nil, fmt.Errorf("no usable font found on fallback chain (tried %d paths)", len(p.paths))
}
