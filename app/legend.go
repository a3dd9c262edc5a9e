package app

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"taipop/scale"
)

// Legend draws the density bucket swatches in the map's bottom-left corner.
type Legend struct {
	colorScale *scale.Scale
}

// NewLegend creates a legend over the given scale.
func NewLegend(colorScale *scale.Scale) *Legend {
	return &Legend{colorScale: colorScale}
}

// Draw renders the swatch rows anchored inside the given map area.
func (l *Legend) Draw(screen *ebiten.Image, mapArea image.Rectangle) {
	entries := l.colorScale.Legend()

	face := loadAppFont(12)
	tr := NewTextRenderer(face)
	lineH := tr.GetLineHeight()

	const swatch = 14
	rowH := swatch + 6
	width := 0
	for _, entry := range entries {
		if w := tr.MeasureString(entry.Label); w > width {
			width = w
		}
	}
	width += swatch + 30
	height := len(entries)*rowH + 16 + lineH

	x := mapArea.Min.X + 12
	y := mapArea.Max.Y - height - 12

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height),
		color.RGBA{25, 28, 34, 225}, false)

	tr.DrawText(screen, "people/km²", x+8, y+8+lineH*3/4, color.RGBA{200, 205, 215, 255})

	// Darkest bucket at the top
	ry := y + 12 + lineH
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		vector.DrawFilledRect(screen, float32(x+8), float32(ry), swatch, swatch, entry.Color, false)
		vector.StrokeRect(screen, float32(x+8), float32(ry), swatch, swatch, 1, color.RGBA{70, 70, 70, 255}, false)
		tr.DrawText(screen, entry.Label, x+8+swatch+8, ry+swatch-3, color.RGBA{210, 210, 210, 255})
		ry += rowH
	}
}
