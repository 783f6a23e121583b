package widget

import (
	"bufio"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"
)

var defaultQuotes = []string{
	"The only way to do great work is to love what you do.",
	"Simplicity is the soul of efficiency.",
	"Make it work, make it right, make it fast.",
}

type quotesWidget struct {
	BaseWidget
	logger *slog.Logger

	quotes           []string
	rotationInterval time.Duration
	random           bool

	index int
	rng   *rand.Rand
}

func newQuotes(cfg map[string]any, logger *slog.Logger) (Widget, error) {
	rotationSeconds, ok := intField(cfg, "rotation_interval", 300)
	if !ok || rotationSeconds < 1 {
		return nil, fmt.Errorf("widget[quotes]: rotation_interval must be an integer >= 1")
	}
	random, ok := boolField(cfg, "random", false)
	if !ok {
		return nil, fmt.Errorf("widget[quotes]: random must be a bool")
	}

	quotes := defaultQuotes
	if pathVal, present := cfg["quotes_file"]; present {
		path, ok := pathVal.(string)
		if !ok {
			return nil, fmt.Errorf("widget[quotes]: quotes_file must be a string")
		}
		loaded, err := loadQuotesFile(path)
		if err != nil {
			return nil, fmt.Errorf("widget[quotes]: quotes_file: %w", err)
		}
		if len(loaded) > 0 {
			quotes = loaded
		}
	}

	return &quotesWidget{
		logger:           logger,
		quotes:           quotes,
		rotationInterval: time.Duration(rotationSeconds) * time.Second,
		random:           random,
		rng:              rand.New(rand.NewSource(1)),
	}, nil
}

func loadQuotesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var quotes []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			quotes = append(quotes, line)
		}
	}
	return quotes, scanner.Err()
}

func (w *quotesWidget) Info() Info {
	return Info{
		ID:              "quotes",
		DisplayName:     "Quotes",
		PreferredHeight: 50,
		MinHeight:       20,
		Expand:          true,
		IconGlyph:       iconQuoteMarks,
	}
}

func (w *quotesWidget) Tick() {
	if w.random {
		w.index = w.rng.Intn(len(w.quotes))
	}
}

func (w *quotesWidget) Content() Content {
	if len(w.quotes) == 0 {
		return Empty()
	}
	return Text(w.quotes[w.index], Small)
}

func (w *quotesWidget) UpdateInterval() time.Duration {
	return w.rotationInterval
}

func (w *quotesWidget) IsInteractive() bool { return true }

func (w *quotesWidget) OnClick(button int, nx, ny float64) Action {
	w.advance(1)
	return Action{Kind: ActionNextItem}
}

func (w *quotesWidget) OnScroll(dir ScrollDirection, nx, ny float64) Action {
	if dir == ScrollDown {
		w.advance(1)
		return Action{Kind: ActionNextItem}
	}
	w.advance(-1)
	return Action{Kind: ActionPreviousItem}
}

func (w *quotesWidget) advance(delta int) {
	n := len(w.quotes)
	if n == 0 {
		return
	}
	w.index = ((w.index+delta)%n + n) % n
}
