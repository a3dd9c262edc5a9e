package app

import (
	"image"
	"image/color"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"taipop/scale"
	"taipop/selection"
	"taipop/typedef"
)

const (
	chartPanelHeight = 230

	// Up to maxFitBars the bars stretch to fill the plot; beyond that the
	// chart switches to fixed-width bars with horizontal scrolling while
	// the axis column stays put.
	maxFitBars    = 15
	fixedBarWidth = 26.0
	barGap        = 4.0
	axisColWidth  = 58

	barAnimDuration = 300 * time.Millisecond
	barAnimStagger  = 25 * time.Millisecond
)

// barEntry is one bar: a region id and its plotted value.
type barEntry struct {
	id    string
	town  string
	value float64
}

// barLayout is the horizontal geometry of a chart's plot.
type barLayout struct {
	BarW       float64
	Step       float64 // bar width + gap
	ContentW   float64
	Scrollable bool
}

// computeBarLayout fits n bars into plotW, or switches to the fixed-width
// scrolling layout when there are more than maxFitBars bars.
func computeBarLayout(n int, plotW float64) barLayout {
	if n <= 0 || plotW <= 0 {
		return barLayout{}
	}
	if n <= maxFitBars {
		step := plotW / float64(n)
		barW := step - barGap
		if barW < 1 {
			barW = 1
		}
		return barLayout{BarW: barW, Step: step, ContentW: plotW}
	}
	step := fixedBarWidth + barGap
	return barLayout{
		BarW:       fixedBarWidth,
		Step:       step,
		ContentW:   step * float64(n),
		Scrollable: true,
	}
}

// sortBarsDesc orders bars by value descending, ties by name so re-renders
// are stable.
func sortBarsDesc(bars []barEntry) {
	sort.SliceStable(bars, func(i, j int) bool {
		if bars[i].value != bars[j].value {
			return bars[i].value > bars[j].value
		}
		return bars[i].id < bars[j].id
	})
}

// BarChart is a single sorted chart over the selection.
type BarChart struct {
	title   string
	dataset *typedef.Dataset
	valueOf func(*typedef.Region) float64
	format  func(float64) string
	barFill func(*typedef.Region) color.RGBA

	bars      []barEntry
	scrollX   float64
	animStart time.Time

	area       image.Rectangle
	plot       image.Rectangle
	hoveredBar int
}

// rebuild recomputes the bars from the selection snapshot and restarts the
// grow-in animation.
func (bc *BarChart) rebuild(store *selection.Store) {
	bc.bars = bc.bars[:0]
	for _, id := range store.Selected() {
		region := store.Dataset().Region(id)
		if region == nil || !region.HasAttributes {
			continue
		}
		bc.bars = append(bc.bars, barEntry{id: id, town: region.Town, value: bc.valueOf(region)})
	}
	sortBarsDesc(bc.bars)
	bc.animStart = time.Now()
	bc.hoveredBar = -1
	bc.clampScroll()
}

func (bc *BarChart) layout() barLayout {
	return computeBarLayout(len(bc.bars), float64(bc.plot.Dx()))
}

func (bc *BarChart) clampScroll() {
	l := bc.layout()
	maxScroll := l.ContentW - float64(bc.plot.Dx())
	if maxScroll < 0 {
		maxScroll = 0
	}
	if bc.scrollX < 0 {
		bc.scrollX = 0
	}
	if bc.scrollX > maxScroll {
		bc.scrollX = maxScroll
	}
}

// animFactor returns the grow-in progress of bar i, staggered by index.
func (bc *BarChart) animFactor(i int) float64 {
	elapsed := time.Since(bc.animStart) - time.Duration(i)*barAnimStagger
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= barAnimDuration {
		return 1
	}
	d := float64(elapsed) / float64(barAnimDuration)
	inv := 1 - d
	return 1 - inv*inv*inv // ease-out cubic
}

// update handles wheel scrolling and hover tracking for this chart.
func (bc *BarChart) update(mx, my int) {
	bc.hoveredBar = -1
	if !image.Pt(mx, my).In(bc.plot) {
		return
	}

	l := bc.layout()
	if l.Scrollable {
		wheelX, wheelY := ebiten.Wheel()
		delta := wheelX
		if delta == 0 {
			delta = wheelY
		}
		if delta != 0 {
			bc.scrollX -= delta * 30
			bc.clampScroll()
		}
	}

	if l.Step > 0 {
		idx := int((float64(mx-bc.plot.Min.X) + bc.scrollX) / l.Step)
		if idx >= 0 && idx < len(bc.bars) {
			bc.hoveredBar = idx
		}
	}
}

// draw renders the chart into its area; the axis column is drawn outside
// the scroll clip so it never moves.
func (bc *BarChart) draw(screen *ebiten.Image) {
	face := loadAppFont(12)
	tr := NewTextRenderer(face)
	titleTr := NewTextRenderer(loadAppFont(13))
	lineH := tr.GetLineHeight()

	titleTr.DrawText(screen, bc.title, bc.area.Min.X+8, bc.area.Min.Y+16, color.RGBA{215, 220, 230, 255})

	bc.plot = image.Rect(bc.area.Min.X+axisColWidth, bc.area.Min.Y+24, bc.area.Max.X-4, bc.area.Max.Y-10)
	if bc.plot.Dx() <= 0 || bc.plot.Dy() <= 0 {
		return
	}

	if len(bc.bars) == 0 {
		tr.DrawText(screen, "Select townships to compare", bc.plot.Min.X+12, (bc.plot.Min.Y+bc.plot.Max.Y)/2, color.RGBA{140, 145, 155, 255})
		return
	}

	maxValue := bc.bars[0].value
	for _, bar := range bc.bars {
		if bar.value > maxValue {
			maxValue = bar.value
		}
	}
	if maxValue <= 0 {
		maxValue = 1
	}

	// Axis column and gridlines at 0 / half / max.
	for _, frac := range []float64{0, 0.5, 1} {
		y := float64(bc.plot.Max.Y) - frac*float64(bc.plot.Dy())
		vector.StrokeLine(screen, float32(bc.plot.Min.X), float32(y), float32(bc.plot.Max.X), float32(y),
			1, color.RGBA{60, 66, 78, 255}, false)
		label := scale.Float(maxValue*frac, 0)
		tr.DrawTextRightAligned(screen, label, bc.plot.Min.X-6, int(y)+lineH/3, color.RGBA{165, 172, 184, 255})
	}

	clip := screen.SubImage(bc.plot).(*ebiten.Image)
	l := bc.layout()

	for i, bar := range bc.bars {
		x := float64(bc.plot.Min.X) + float64(i)*l.Step - bc.scrollX
		if x+l.BarW < float64(bc.plot.Min.X) || x > float64(bc.plot.Max.X) {
			continue
		}
		h := bc.animFactor(i) * bar.value / maxValue * float64(bc.plot.Dy())
		y := float64(bc.plot.Max.Y) - h

		fill := color.RGBA{86, 140, 200, 255}
		if bc.barFill != nil {
			fill = bc.barFill(bc.dataset.Region(bar.id))
		}
		if i == bc.hoveredBar {
			fill = color.RGBA{fill.R/2 + 110, fill.G/2 + 110, fill.B/2 + 110, 255}
		}
		vector.DrawFilledRect(clip, float32(x), float32(y), float32(l.BarW), float32(h), fill, false)
	}

	// Scroll hint when the content overflows.
	if l.Scrollable {
		trackW := float64(bc.plot.Dx())
		thumbW := trackW * trackW / l.ContentW
		thumbX := float64(bc.plot.Min.X) + bc.scrollX/l.ContentW*trackW
		vector.DrawFilledRect(screen, float32(thumbX), float32(bc.plot.Max.Y+4), float32(thumbW), 3,
			color.RGBA{110, 120, 135, 255}, false)
	}
}

// drawTooltip renders the hovered bar's tooltip at the cursor, unclipped.
func (bc *BarChart) drawTooltip(screen *ebiten.Image) {
	if bc.hoveredBar < 0 || bc.hoveredBar >= len(bc.bars) {
		return
	}
	bar := bc.bars[bc.hoveredBar]

	tr := NewTextRenderer(loadAppFont(12))
	lineH := tr.GetLineHeight()
	label := bar.town + ": " + bc.format(bar.value)
	w := tr.MeasureString(label) + 16
	h := lineH + 10

	mx, my := ebiten.CursorPosition()
	x, y := mx+14, my-h-4
	if x+w > screen.Bounds().Dx() {
		x = mx - w - 4
	}
	if y < 0 {
		y = my + 18
	}

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), color.RGBA{20, 22, 28, 240}, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, color.RGBA{100, 110, 125, 255}, false)
	tr.DrawText(screen, label, x+8, y+5+lineH*3/4, color.RGBA{235, 235, 235, 255})
}

// ChartPanel hosts the two linked charts over the selection: density
// descending on the left, population descending on the right.
type ChartPanel struct {
	store      *selection.Store
	area       image.Rectangle
	density    *BarChart
	population *BarChart
}

// NewChartPanel builds both charts and registers for selection changes.
func NewChartPanel(store *selection.Store, colorScale *scale.Scale) *ChartPanel {
	cp := &ChartPanel{store: store}

	cp.density = &BarChart{
		title:   "Density (people/km², descending)",
		valueOf: func(r *typedef.Region) float64 { return r.Density },
		format:  scale.Density,
		barFill: func(r *typedef.Region) color.RGBA {
			if r == nil {
				return color.RGBA{120, 120, 120, 255}
			}
			return colorScale.Bucket(r.Density)
		},
		dataset: store.Dataset(),
	}
	cp.population = &BarChart{
		title:   "Population (descending)",
		valueOf: func(r *typedef.Region) float64 { return float64(r.Population) },
		format:  func(v float64) string { return scale.Population(int(v)) },
		dataset: store.Dataset(),
	}

	store.Subscribe(cp.onSelectionChanged)
	return cp
}

func (cp *ChartPanel) onSelectionChanged() {
	cp.density.rebuild(cp.store)
	cp.population.rebuild(cp.store)
}

// SetArea assigns the bottom panel strip and splits it between the charts.
func (cp *ChartPanel) SetArea(area image.Rectangle) {
	cp.area = area
	half := area.Dx() / 2
	cp.density.area = image.Rect(area.Min.X, area.Min.Y, area.Min.X+half-2, area.Max.Y)
	cp.population.area = image.Rect(area.Min.X+half+2, area.Min.Y, area.Max.X, area.Max.Y)
}

// Update handles hover and scroll for both charts. Returns true when the
// cursor input belongs to the panel.
func (cp *ChartPanel) Update() bool {
	mx, my := ebiten.CursorPosition()
	cp.density.update(mx, my)
	cp.population.update(mx, my)

	if image.Pt(mx, my).In(cp.area) && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	return false
}

// Draw renders the panel background, both charts, and any tooltip on top.
func (cp *ChartPanel) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen,
		float32(cp.area.Min.X), float32(cp.area.Min.Y),
		float32(cp.area.Dx()), float32(cp.area.Dy()),
		color.RGBA{30, 33, 40, 255}, false)
	vector.StrokeLine(screen,
		float32(cp.area.Min.X+cp.area.Dx()/2), float32(cp.area.Min.Y+6),
		float32(cp.area.Min.X+cp.area.Dx()/2), float32(cp.area.Max.Y-6),
		1, color.RGBA{55, 60, 72, 255}, false)

	cp.density.draw(screen)
	cp.population.draw(screen)

	cp.density.drawTooltip(screen)
	cp.population.drawTooltip(screen)
}
