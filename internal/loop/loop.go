package loop

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/cosmicwidgetd/cosmicwidgetd/internal/config"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/launch"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/layout"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/pointer"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/render"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/surface"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/theme"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/watch"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/widget"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/wlwire"
)

// GuardInterval caps the time between passes when nothing else is due,
// bounding how stale protocol dispatch and reload polling can get.
const GuardInterval = 100 * time.Millisecond

// Loop owns the widget vector, the active configuration, and the
// collaborators a pass touches: protocol dispatch, the render driver, the
// pointer router, the OS launcher, and the config file watcher.
type Loop struct {
	logger *slog.Logger

	conn       *wlwire.Conn
	controller *surface.Controller
	driver     *render.Driver
	router     *pointer.Router
	launcher   *launch.Launcher
	watcher    *watch.FileWatcher
	configPath string

	cfg   *config.Config
	theme theme.Theme

	widgets      []widget.Widget
	items        []layout.Item
	widgetsByIdx map[int]widget.Widget
	lastTick     []time.Time
	lastContents []widget.Content

	shuttingDown bool
}

// New builds the initial widget vector from cfg and wires protocol
// callbacks (layer-surface configure/closed, pointer motion/button/axis)
// into the loop. The caller binds the surface (surface.Controller.Bind)
// after New returns, so these callbacks are in place before the first
// configure event can arrive.
func New(conn *wlwire.Conn, controller *surface.Controller, driver *render.Driver, launcher *launch.Launcher, watcher *watch.FileWatcher, configPath string, cfg *config.Config, logger *slog.Logger) (*Loop, error) {
	if logger == nil {
		logger = slog.Default()
	}

	th, err := theme.Lookup(cfg.Panel.Theme)
	if err != nil {
		return nil, fmt.Errorf("loop: %w", err)
	}
	widgets, items, err := buildWidgets(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("loop: %w", err)
	}

	l := &Loop{
		logger:     logger,
		conn:       conn,
		controller: controller,
		driver:     driver,
		router:     pointer.New(logger),
		launcher:   launcher,
		watcher:    watcher,
		configPath: configPath,
		cfg:        cfg,
		theme:      th,
	}
	l.installWidgets(widgets, items)

	controller.OnConfigured = func() { l.driver.SetDirty() }
	controller.OnClosed = func() { l.shuttingDown = true }

	if ptr := controller.Pointer(); ptr != nil {
		ptr.OnMotion = l.router.Motion
		ptr.OnEnter = func(x, y float64) { l.router.Motion(x, y) }
		ptr.OnLeave = l.router.Leave
		ptr.OnButton = func(button uint32, pressed bool) {
			if !pressed {
				return
			}
			l.handlePointerAction(l.router.Button(int(button)))
		}
		ptr.OnAxis = func(axis uint32, value float64) {
			if axis != wlwire.AxisVertical {
				return
			}
			l.handlePointerAction(l.router.Scroll(value))
		}
	}

	return l, nil
}

func buildWidgets(cfg *config.Config, logger *slog.Logger) ([]widget.Widget, []layout.Item, error) {
	var widgets []widget.Widget
	var items []layout.Item
	for i, wc := range cfg.Widgets {
		if !wc.IsEnabled() {
			continue
		}
		w, err := widget.New(wc.Type, wc.Config, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("widgets[%d]: %w", i, err)
		}
		idx := len(widgets)
		widgets = append(widgets, w)
		items = append(items, layout.Item{Index: idx, Info: w.Info()})
	}
	return widgets, items, nil
}

func (l *Loop) installWidgets(widgets []widget.Widget, items []layout.Item) {
	l.widgets = widgets
	l.items = items
	l.widgetsByIdx = make(map[int]widget.Widget, len(widgets))
	l.lastTick = make([]time.Time, len(widgets))
	l.lastContents = make([]widget.Content, len(widgets))
	for _, it := range items {
		l.widgetsByIdx[it.Index] = widgets[it.Index]
	}
}

// Run drives passes until ctx is canceled or the compositor closes the
// surface: dispatch protocol events, tick due widgets, poll for a config
// reload, render if dirty, then sleep until the next deadline. The final
// pass after shutdown tears the surface down before returning.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return l.shutdown()
		}
		if l.shuttingDown {
			return l.shutdown()
		}

		if err := l.conn.DispatchAll(); err != nil {
			return fmt.Errorf("loop: %w", err)
		}

		l.tickWidgets()
		l.pollReload()

		if l.driver.IsDirty() && l.controller.State() == surface.Configured {
			l.renderAndCommit()
		}

		select {
		case <-ctx.Done():
			return l.shutdown()
		case <-l.watcher.Events:
			l.reload()
		case <-time.After(l.nextWakeDelay()):
		}
	}
}

func (l *Loop) tickWidgets() {
	now := time.Now()
	for i, w := range l.widgets {
		if !l.lastTick[i].IsZero() && now.Sub(l.lastTick[i]) < w.UpdateInterval() {
			continue
		}
		w.Tick()
		l.lastTick[i] = now
		content := w.Content()
		if !reflect.DeepEqual(content, l.lastContents[i]) {
			l.lastContents[i] = content
			l.driver.SetDirty()
		}
	}
}

func (l *Loop) pollReload() {
	select {
	case <-l.watcher.Events:
		l.reload()
	default:
	}
}

func (l *Loop) reload() {
	next, err := config.LoadFile(l.configPath)
	if err != nil {
		l.logger.Warn("config reload failed, keeping previous configuration", "error", err)
		return
	}
	th, err := theme.Lookup(next.Panel.Theme)
	if err != nil {
		l.logger.Warn("config reload failed: invalid theme, keeping previous configuration", "error", err)
		return
	}
	widgets, items, err := buildWidgets(next, l.logger)
	if err != nil {
		l.logger.Warn("config reload failed: invalid widget configuration, keeping previous configuration", "error", err)
		return
	}

	kind := config.Diff(l.cfg, next)
	l.cfg = next
	l.theme = th
	l.installWidgets(widgets, items)

	if kind == config.ReloadRebuild {
		pos := config.Position(next.Panel.Position)
		if err := l.controller.Reconfigure(kind, next.Panel.Width, next.Panel.Height, pos, next.Panel.Margin); err != nil {
			l.logger.Warn("surface reconfigure failed", "error", err)
		}
	}

	l.driver.SetDirty()
	l.logger.Info("configuration reloaded")
}

func (l *Loop) renderAndCommit() {
	width, height := l.controller.Geometry()
	if width <= 0 || height <= 0 {
		return
	}

	pad := int(l.cfg.Panel.Padding + 0.5)
	rects := layout.Stack(l.items, pad, pad, width-2*pad, height-2*pad, l.cfg.Panel.Spacing)

	contents := make(map[int]widget.Content, len(l.items))
	icons := make(map[int]rune, len(l.items))
	for _, it := range l.items {
		contents[it.Index] = l.widgets[it.Index].Content()
		if it.Info.IconGlyph != 0 {
			icons[it.Index] = it.Info.IconGlyph
		}
	}

	in := render.Input{
		Width:             width,
		Height:            height,
		Theme:             l.theme,
		BackgroundOpacity: l.cfg.Panel.BackgroundOpacity,
		Padding:           l.cfg.Panel.Padding,
		Rects:             rects,
		Contents:          contents,
		Icons:             icons,
	}

	slot, err := l.driver.Render(in)
	if err != nil {
		l.logger.Warn("render failed", "error", err)
		return
	}
	if slot == nil {
		return
	}
	if err := l.controller.Commit(slot); err != nil {
		l.logger.Warn("commit failed", "error", err)
		return
	}
	l.driver.ClearDirty()
	l.router.SetFrame(rects, l.widgetsByIdx)
}

// handlePointerAction executes the OS-facing actions a click/scroll
// dispatch can return; all other variants are widget-internal
// signals the widget has already applied to its own state, so this simply
// marks the frame stale so the render driver picks up that new state.
func (l *Loop) handlePointerAction(action widget.Action) {
	if action == widget.NoAction {
		return
	}
	switch action.Kind {
	case widget.ActionOpenURL:
		l.launcher.OpenURL(action.Payload)
	case widget.ActionRunCommand:
		l.launcher.RunCommand(action.Payload)
	}
	l.driver.SetDirty()
}

func (l *Loop) nextWakeDelay() time.Duration {
	delay := GuardInterval
	now := time.Now()
	for i, w := range l.widgets {
		remaining := l.lastTick[i].Add(w.UpdateInterval()).Sub(now)
		if remaining < 0 {
			remaining = 0
		}
		if remaining < delay {
			delay = remaining
		}
	}
	return delay
}

func (l *Loop) shutdown() error {
	l.logger.Info("loop shutting down")
	return l.controller.Close()
}
