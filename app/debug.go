package app

import (
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/shirou/gopsutil/v3/process"

	"taipop/selection"
)

// DebugOverlay prints frame and process stats in the top-right corner.
// Toggled with F12.
type DebugOverlay struct {
	active bool
	store  *selection.Store

	proc       *process.Process
	lastSample time.Time
	rssMB      float64
	cpuPercent float64
}

// NewDebugOverlay creates the overlay; process stats degrade to zero when
// the process handle cannot be opened.
func NewDebugOverlay(store *selection.Store) *DebugOverlay {
	overlay := &DebugOverlay{store: store}
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err == nil {
		overlay.proc = proc
	}
	return overlay
}

// Toggle flips overlay visibility.
func (d *DebugOverlay) Toggle() {
	d.active = !d.active
}

// Active reports overlay visibility.
func (d *DebugOverlay) Active() bool {
	return d.active
}

// sample refreshes process stats at most once per second.
func (d *DebugOverlay) sample() {
	if d.proc == nil || time.Since(d.lastSample) < time.Second {
		return
	}
	d.lastSample = time.Now()

	if mem, err := d.proc.MemoryInfo(); err == nil && mem != nil {
		d.rssMB = float64(mem.RSS) / (1024 * 1024)
	}
	if pct, err := d.proc.CPUPercent(); err == nil {
		d.cpuPercent = pct
	}
}

// Draw prints the overlay when active.
func (d *DebugOverlay) Draw(screen *ebiten.Image) {
	if !d.active {
		return
	}
	d.sample()

	selected := 0
	regions := 0
	if d.store != nil {
		selected = d.store.Count()
		regions = len(d.store.Dataset().Order)
	}

	msg := fmt.Sprintf("FPS %.1f  TPS %.1f\nregions %d  selected %d\nRSS %.1f MB  CPU %.1f%%",
		ebiten.ActualFPS(), ebiten.ActualTPS(), regions, selected, d.rssMB, d.cpuPercent)
	ebitenutil.DebugPrintAt(screen, msg, screen.Bounds().Dx()-200, 8)
}
