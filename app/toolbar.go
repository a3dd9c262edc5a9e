package app

import (
	"errors"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"taipop/exporter"
	"taipop/scale"
	"taipop/selection"
)

const toolbarHeight = 42

// toolbarButton is one clickable action in the top bar.
type toolbarButton struct {
	label   string
	action  func()
	enabled func() bool
	bounds  image.Rectangle
}

// Toolbar holds the selection-wide actions: Select All, Clear, Export CSV,
// Copy CSV. Export buttons stay visible but show the empty-selection toast
// when nothing is selected.
type Toolbar struct {
	store   *selection.Store
	buttons []*toolbarButton
	area    image.Rectangle
}

// NewToolbar builds the button row over the store.
func NewToolbar(store *selection.Store) *Toolbar {
	tb := &Toolbar{store: store}
	hasSelection := func() bool { return store.Count() > 0 }

	tb.buttons = []*toolbarButton{
		{label: "Select All", action: store.SelectAll, enabled: func() bool { return true }},
		{label: "Clear", action: store.Clear, enabled: hasSelection},
		{label: "Export CSV", action: tb.exportCSV, enabled: hasSelection},
		{label: "Copy CSV", action: tb.copyCSV, enabled: hasSelection},
	}
	return tb
}

func (tb *Toolbar) exportCSV() {
	path, err := exporter.WriteFile(tb.store.Dataset(), tb.store.Selected())
	if err != nil {
		if errors.Is(err, exporter.ErrEmptySelection) {
			NewToast().Text("Nothing selected, pick townships to export").Warning().AutoClose(4 * time.Second).Show()
			return
		}
		NewToast().Text("Export failed: " + err.Error()).Error().AutoClose(6 * time.Second).Show()
		return
	}
	NewToast().Text("Exported to " + path).AutoClose(6 * time.Second).Show()
}

func (tb *Toolbar) copyCSV() {
	if err := exporter.Copy(tb.store.Dataset(), tb.store.Selected()); err != nil {
		if errors.Is(err, exporter.ErrEmptySelection) {
			NewToast().Text("Nothing selected, pick townships to copy").Warning().AutoClose(4 * time.Second).Show()
			return
		}
		NewToast().Text("Clipboard copy failed: " + err.Error()).Error().AutoClose(6 * time.Second).Show()
		return
	}
	NewToast().Text("CSV copied to clipboard").AutoClose(3 * time.Second).Show()
}

// SetArea assigns the toolbar strip.
func (tb *Toolbar) SetArea(area image.Rectangle) {
	tb.area = area
}

// Update handles button clicks. Returns true when the click was consumed.
func (tb *Toolbar) Update() bool {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	mx, my := ebiten.CursorPosition()
	if !image.Pt(mx, my).In(tb.area) {
		return false
	}
	for _, btn := range tb.buttons {
		if image.Pt(mx, my).In(btn.bounds) {
			btn.action()
			return true
		}
	}
	return true // clicks on the bar itself don't fall through to the map
}

// Draw renders the bar, laying the button rects out left to right.
func (tb *Toolbar) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen,
		float32(tb.area.Min.X), float32(tb.area.Min.Y),
		float32(tb.area.Dx()), float32(tb.area.Dy()),
		color.RGBA{32, 36, 44, 255}, false)

	face := loadAppFont(14)
	tr := NewTextRenderer(face)
	lineH := tr.GetLineHeight()

	x := tb.area.Min.X + 10
	for _, btn := range tb.buttons {
		w := tr.MeasureString(btn.label) + 24
		h := tb.area.Dy() - 12
		btn.bounds = image.Rect(x, tb.area.Min.Y+6, x+w, tb.area.Min.Y+6+h)

		bg := color.RGBA{55, 62, 75, 255}
		fg := color.RGBA{230, 230, 230, 255}
		if !btn.enabled() {
			fg = color.RGBA{130, 130, 130, 255}
		}
		mx, my := ebiten.CursorPosition()
		if image.Pt(mx, my).In(btn.bounds) && btn.enabled() {
			bg = color.RGBA{75, 85, 102, 255}
		}

		vector.DrawFilledRect(screen,
			float32(btn.bounds.Min.X), float32(btn.bounds.Min.Y),
			float32(btn.bounds.Dx()), float32(btn.bounds.Dy()), bg, false)
		tr.DrawText(screen, btn.label, btn.bounds.Min.X+12, btn.bounds.Min.Y+(h+lineH)/2-2, fg)

		x += w + 8
	}

	// Right-aligned selection summary
	stats := tb.store.Stats()
	summary := scale.Int(stats.Count) + " selected / " + scale.Int(len(tb.store.Dataset().Order)) + " townships"
	tr.DrawTextRightAligned(screen, summary, tb.area.Max.X-12, tb.area.Min.Y+(tb.area.Dy()+lineH)/2-2, color.RGBA{180, 185, 195, 255})
}
