package widget

import (
	"fmt"
	"log/slog"
	"time"
)

var countdownLayouts = []string{"2006-01-02 15:04:05", "2006-01-02"}

type countdownWidget struct {
	BaseWidget
	logger *slog.Logger

	label      string
	target     time.Time
	showDays   bool
	showHours  bool
	showMins   bool
	showSecs   bool

	now func() time.Time

	last string
}

func newCountdown(cfg map[string]any, logger *slog.Logger) (Widget, error) {
	label, ok := stringField(cfg, "label", "")
	if !ok {
		return nil, fmt.Errorf("widget[countdown]: label must be a string")
	}
	targetStr, ok := stringField(cfg, "target_date", "")
	if !ok || targetStr == "" {
		return nil, fmt.Errorf("widget[countdown]: target_date is required")
	}
	target, err := parseCountdownTarget(targetStr)
	if err != nil {
		return nil, fmt.Errorf("widget[countdown]: target_date: %w", err)
	}

	showDays, ok := boolField(cfg, "show_days", true)
	if !ok {
		return nil, fmt.Errorf("widget[countdown]: show_days must be a bool")
	}
	showHours, ok := boolField(cfg, "show_hours", true)
	if !ok {
		return nil, fmt.Errorf("widget[countdown]: show_hours must be a bool")
	}
	showMins, ok := boolField(cfg, "show_minutes", true)
	if !ok {
		return nil, fmt.Errorf("widget[countdown]: show_minutes must be a bool")
	}
	showSecs, ok := boolField(cfg, "show_seconds", false)
	if !ok {
		return nil, fmt.Errorf("widget[countdown]: show_seconds must be a bool")
	}

	w := &countdownWidget{
		logger:    logger,
		label:     label,
		target:    target,
		showDays:  showDays,
		showHours: showHours,
		showMins:  showMins,
		showSecs:  showSecs,
		now:       time.Now,
	}
	w.Tick()
	return w, nil
}

func parseCountdownTarget(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range countdownLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

func (w *countdownWidget) Info() Info {
	return Info{
		ID:              "countdown",
		DisplayName:     "Countdown",
		PreferredHeight: 40,
		MinHeight:       20,
		IconGlyph:       iconHourglass,
	}
}

func (w *countdownWidget) Tick() {
	remaining := w.target.Sub(w.now())
	if remaining < 0 {
		remaining = 0
	}

	days := int(remaining / (24 * time.Hour))
	hours := int(remaining/time.Hour) % 24
	mins := int(remaining/time.Minute) % 60
	secs := int(remaining/time.Second) % 60

	var parts []string
	if w.showDays {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if w.showHours {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if w.showMins {
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}
	if w.showSecs {
		parts = append(parts, fmt.Sprintf("%ds", secs))
	}

	text := w.label
	for _, p := range parts {
		text += " " + p
	}
	w.last = text
}

func (w *countdownWidget) Content() Content {
	return Text(w.last, Medium)
}

func (w *countdownWidget) UpdateInterval() time.Duration {
	if w.showSecs {
		return time.Second
	}
	return time.Minute
}
