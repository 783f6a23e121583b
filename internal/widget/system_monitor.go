package widget

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"
)

type systemMonitorWidget struct {
	BaseWidget
	logger *slog.Logger

	showCPU    bool
	showMemory bool
	showDisk   bool
	interval   time.Duration

	prevIdle  uint64
	prevTotal uint64

	lines []Line
}

func newSystemMonitor(cfg map[string]any, logger *slog.Logger) (Widget, error) {
	showCPU, ok := boolField(cfg, "show_cpu", true)
	if !ok {
		return nil, fmt.Errorf("widget[system_monitor]: show_cpu must be a bool")
	}
	showMemory, ok := boolField(cfg, "show_memory", true)
	if !ok {
		return nil, fmt.Errorf("widget[system_monitor]: show_memory must be a bool")
	}
	showDisk, ok := boolField(cfg, "show_disk", false)
	if !ok {
		return nil, fmt.Errorf("widget[system_monitor]: show_disk must be a bool")
	}
	intervalSeconds, ok := intField(cfg, "update_interval", 2)
	if !ok || intervalSeconds < 1 {
		return nil, fmt.Errorf("widget[system_monitor]: update_interval must be an integer >= 1")
	}

	w := &systemMonitorWidget{
		logger:     logger,
		showCPU:    showCPU,
		showMemory: showMemory,
		showDisk:   showDisk,
		interval:   time.Duration(intervalSeconds) * time.Second,
	}
	w.Tick()
	return w, nil
}

func (w *systemMonitorWidget) Info() Info {
	return Info{
		ID:              "system_monitor",
		DisplayName:     "System",
		PreferredHeight: 60,
		MinHeight:       20,
		IconGlyph:       iconGauge,
	}
}

func (w *systemMonitorWidget) Tick() {
	var lines []Line
	if w.showCPU {
		if pct, ok := w.readCPUPercent(); ok {
			lines = append(lines, Line{Text: fmt.Sprintf("CPU %5.1f%%", pct), Size: Small})
		}
	}
	if w.showMemory {
		if pct, ok := readMemoryPercent(); ok {
			lines = append(lines, Line{Text: fmt.Sprintf("MEM %5.1f%%", pct), Size: Small})
		}
	}
	if w.showDisk {
		if pct, ok := readDiskPercent("/"); ok {
			lines = append(lines, Line{Text: fmt.Sprintf("DISK %5.1f%%", pct), Size: Small})
		}
	}
	w.lines = lines
}

func (w *systemMonitorWidget) Content() Content {
	if len(w.lines) == 0 {
		return Empty()
	}
	return MultiLine(w.lines...)
}

func (w *systemMonitorWidget) UpdateInterval() time.Duration {
	return w.interval
}

// readCPUPercent samples /proc/stat's aggregate line and derives busy
// percentage relative to the previous sample.
func (w *systemMonitorWidget) readCPUPercent() (float64, bool) {
	f, err := os.Open("/proc/stat")
	if err != nil {
		return 0, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return 0, false
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) < 5 || fields[0] != "cpu" {
		return 0, false
	}

	var total, idle uint64
	for i, field := range fields[1:] {
		v, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			continue
		}
		total += v
		if i == 3 { // idle field
			idle = v
		}
	}

	defer func() {
		w.prevIdle, w.prevTotal = idle, total
	}()

	if w.prevTotal == 0 {
		return 0, false
	}
	deltaTotal := total - w.prevTotal
	deltaIdle := idle - w.prevIdle
	if deltaTotal == 0 {
		return 0, false
	}
	return 100 * (1 - float64(deltaIdle)/float64(deltaTotal)), true
}

func readMemoryPercent() (float64, bool) {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return 0, false
	}
	defer f.Close()

	var total, available uint64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		v, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}
		switch strings.TrimSuffix(fields[0], ":") {
		case "MemTotal":
			total = v
		case "MemAvailable":
			available = v
		}
	}
	if total == 0 {
		return 0, false
	}
	return 100 * (1 - float64(available)/float64(total)), true
}

func readDiskPercent(path string) (float64, bool) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, false
	}
	total := stat.Blocks * uint64(stat.Bsize)
	free := stat.Bfree * uint64(stat.Bsize)
	if total == 0 {
		return 0, false
	}
	return 100 * (1 - float64(free)/float64(total)), true
}
