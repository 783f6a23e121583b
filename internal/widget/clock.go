package widget

import (
	"fmt"
	"log/slog"
	"time"
)

type clockWidget struct {
	BaseWidget
	logger      *slog.Logger
	format      string
	showSeconds bool
	showDate    bool

	now func() time.Time

	last string
}

func newClock(cfg map[string]any, logger *slog.Logger) (Widget, error) {
	format, ok := stringField(cfg, "format", "24h")
	if !ok || !oneOf(format, "12h", "24h") {
		return nil, fmt.Errorf("widget[clock]: format must be one of \"12h\", \"24h\"")
	}
	showSeconds, ok := boolField(cfg, "show_seconds", false)
	if !ok {
		return nil, fmt.Errorf("widget[clock]: show_seconds must be a bool")
	}
	showDate, ok := boolField(cfg, "show_date", false)
	if !ok {
		return nil, fmt.Errorf("widget[clock]: show_date must be a bool")
	}

	w := &clockWidget{
		logger:      logger,
		format:      format,
		showSeconds: showSeconds,
		showDate:    showDate,
		now:         time.Now,
	}
	w.Tick()
	return w, nil
}

func (w *clockWidget) Info() Info {
	return Info{
		ID:              "clock",
		DisplayName:     "Clock",
		PreferredHeight: 40,
		MinHeight:       20,
		IconGlyph:       iconClock,
	}
}

func (w *clockWidget) Tick() {
	now := w.now()
	layout := "15:04"
	if w.format == "12h" {
		layout = "3:04 PM"
	}
	if w.showSeconds {
		if w.format == "12h" {
			layout = "3:04:05 PM"
		} else {
			layout = "15:04:05"
		}
	}
	text := now.Format(layout)
	if w.showDate {
		text = now.Format("2006-01-02") + "  " + text
	}
	w.last = text
}

func (w *clockWidget) Content() Content {
	return Text(w.last, Large)
}

func (w *clockWidget) UpdateInterval() time.Duration {
	if w.showSeconds {
		return time.Second
	}
	return time.Minute
}
