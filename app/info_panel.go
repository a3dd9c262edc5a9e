package app

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"taipop/scale"
	"taipop/selection"
)

// InfoPanel is the floating stats card in the map's top-left corner. With a
// region hovered it shows that region's attributes; otherwise it shows the
// aggregate stats of the selection, or a usage hint when nothing is
// selected.
type InfoPanel struct {
	store *selection.Store
	view  *MapView
}

// NewInfoPanel wires the panel to the store and the hover source.
func NewInfoPanel(store *selection.Store, view *MapView) *InfoPanel {
	return &InfoPanel{store: store, view: view}
}

// Draw renders the card anchored inside the given map area.
func (ip *InfoPanel) Draw(screen *ebiten.Image, mapArea image.Rectangle) {
	lines := ip.lines()

	face := loadAppFont(13)
	tr := NewTextRenderer(face)
	titleTr := NewTextRenderer(loadAppFont(15))
	lineH := tr.GetLineHeight() + 4

	width := 0
	for i, line := range lines {
		t := tr
		if i == 0 {
			t = titleTr
		}
		if w := t.MeasureString(line); w > width {
			width = w
		}
	}
	width += 24
	if width < 200 {
		width = 200
	}
	height := len(lines)*lineH + 20

	x := mapArea.Min.X + 12
	y := mapArea.Min.Y + 12

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height),
		color.RGBA{25, 28, 34, 225}, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(width), float32(height),
		1, color.RGBA{90, 100, 115, 255}, false)

	ty := y + 10 + lineH*3/4
	for i, line := range lines {
		if i == 0 {
			titleTr.DrawText(screen, line, x+12, ty, color.RGBA{240, 240, 240, 255})
		} else {
			tr.DrawText(screen, line, x+12, ty, color.RGBA{205, 210, 220, 255})
		}
		ty += lineH
	}
}

// lines builds the card content for the current hover/selection state.
func (ip *InfoPanel) lines() []string {
	if hovered := ip.view.HoveredRegion(); hovered != "" {
		region := ip.store.Dataset().Region(hovered)
		if region != nil {
			if !region.HasAttributes {
				return []string{
					region.FullName,
					"Population: " + scale.NA,
					"Area: " + scale.NA,
					"Density: " + scale.NA,
				}
			}
			return []string{
				region.FullName,
				"Population: " + scale.Int(region.Population),
				"Area: " + scale.Area(region.Area),
				"Density: " + scale.Density(region.Density),
			}
		}
	}

	stats := ip.store.Stats()
	if stats.Count == 0 {
		return []string{
			"Taiwan Township Density",
			"Hover a township for details",
			"Click to select, double-click to deselect",
		}
	}
	return []string{
		"Selection (" + scale.Int(stats.Count) + " townships)",
		"Population: " + scale.Int(stats.Population),
		"Area: " + scale.Area(stats.Area),
		"Avg density: " + scale.Density(stats.AvgDensity),
	}
}
