package app

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"taipop/scale"
	"taipop/selection"
	"taipop/typedef"
)

// White pixel source for DrawTriangles
var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// Border styling per selection state. Selected regions always render above
// unselected ones; hovered unselected regions rise above their peers.
var (
	selectedBorderColor   = color.RGBA{15, 15, 15, 255}
	unselectedBorderColor = color.RGBA{150, 150, 150, 170}
	hoverBorderColor      = color.RGBA{90, 90, 90, 255}
)

const (
	selectedBorderWidth   = 2.5
	unselectedBorderWidth = 1.0
	hoverBorderWidth      = 2.0
)

// RegionRenderer draws the choropleth layer. The density fills plus the
// light unselected borders go into an offscreen buffer that only depends on
// the viewport; hover and selection styling is drawn live on top each frame
// so selection changes never force a full map redraw.
type RegionRenderer struct {
	manager    *RegionsManager
	colorScale *scale.Scale
	store      *selection.Store

	baseBuffer        *ebiten.Image
	bufferW, bufferH  int
	bufferScale       float64
	bufferOffsetX     float64
	bufferOffsetY     float64
	bufferNeedsUpdate bool
}

// NewRegionRenderer creates a renderer over the indexed regions.
func NewRegionRenderer(manager *RegionsManager, colorScale *scale.Scale, store *selection.Store) *RegionRenderer {
	return &RegionRenderer{
		manager:           manager,
		colorScale:        colorScale,
		store:             store,
		bufferNeedsUpdate: true,
	}
}

// Invalidate forces a base buffer redraw on the next frame.
func (rr *RegionRenderer) Invalidate() {
	rr.bufferNeedsUpdate = true
}

// Draw renders the full layer into the map area. The transform is
// screen = area origin + world*viewScale + offset.
func (rr *RegionRenderer) Draw(screen *ebiten.Image, area image.Rectangle, viewScale, offsetX, offsetY float64, hovered string) {
	w, h := area.Dx(), area.Dy()
	if w <= 0 || h <= 0 {
		return
	}

	if rr.baseBuffer == nil || rr.bufferW != w || rr.bufferH != h {
		rr.baseBuffer = ebiten.NewImage(w, h)
		rr.bufferW, rr.bufferH = w, h
		rr.bufferNeedsUpdate = true
	}
	if rr.bufferNeedsUpdate || rr.bufferScale != viewScale || rr.bufferOffsetX != offsetX || rr.bufferOffsetY != offsetY {
		rr.redrawBase(viewScale, offsetX, offsetY)
		rr.bufferScale = viewScale
		rr.bufferOffsetX = offsetX
		rr.bufferOffsetY = offsetY
		rr.bufferNeedsUpdate = false
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(area.Min.X), float64(area.Min.Y))
	screen.DrawImage(rr.baseBuffer, op)

	clip := screen.SubImage(area).(*ebiten.Image)
	ax, ay := float64(area.Min.X), float64(area.Min.Y)

	// Hovered unselected region rises above the other unselected regions.
	if hovered != "" && !rr.store.IsSelected(hovered) {
		if region := rr.manager.Dataset().Region(hovered); region != nil {
			rr.drawRegion(clip, region, viewScale, ax+offsetX, ay+offsetY, hoverBorderColor, hoverBorderWidth)
		}
	}

	// Selected regions always come last so they stay on top of everything.
	ds := rr.manager.Dataset()
	for _, name := range ds.Order {
		if !rr.store.IsSelected(name) {
			continue
		}
		rr.drawRegion(clip, ds.Regions[name], viewScale, ax+offsetX, ay+offsetY, selectedBorderColor, selectedBorderWidth)
	}
}

// redrawBase repaints every visible region fill plus its light border into
// the offscreen buffer.
func (rr *RegionRenderer) redrawBase(viewScale, offsetX, offsetY float64) {
	rr.baseBuffer.Clear()
	rr.baseBuffer.Fill(color.RGBA{178, 208, 224, 255}) // surrounding water

	ds := rr.manager.Dataset()
	for _, name := range ds.Order {
		region := ds.Regions[name]
		if !rr.regionVisible(region, viewScale, offsetX, offsetY, rr.bufferW, rr.bufferH) {
			continue
		}
		rr.drawRegion(rr.baseBuffer, region, viewScale, offsetX, offsetY, unselectedBorderColor, unselectedBorderWidth)
	}
}

func (rr *RegionRenderer) regionVisible(region *typedef.Region, viewScale, offsetX, offsetY float64, w, h int) bool {
	minX := region.MinX*viewScale + offsetX
	maxX := region.MaxX*viewScale + offsetX
	minY := region.MinY*viewScale + offsetY
	maxY := region.MaxY*viewScale + offsetY
	return maxX >= 0 && minX <= float64(w) && maxY >= 0 && minY <= float64(h)
}

// drawRegion paints one region's fill (density bucket color, or a neutral
// gray for missing data) and strokes its border.
func (rr *RegionRenderer) drawRegion(dst *ebiten.Image, region *typedef.Region, viewScale, offsetX, offsetY float64, borderColor color.RGBA, borderWidth float32) {
	var fill color.RGBA
	if region.HasAttributes {
		fill = rr.colorScale.Bucket(region.Density)
	} else {
		fill = color.RGBA{205, 205, 205, 255}
	}

	path := regionPath(region, viewScale, offsetX, offsetY)

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	tintVertices(vs, fill)
	dst.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{
		FillRule:  ebiten.FillRuleEvenOdd,
		AntiAlias: true,
	})

	strokeOp := &vector.StrokeOptions{Width: borderWidth, LineJoin: vector.LineJoinRound}
	vs, is = path.AppendVerticesAndIndicesForStroke(nil, nil, strokeOp)
	tintVertices(vs, borderColor)
	dst.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

// regionPath builds one path over all rings so even-odd filling carves the
// holes out.
func regionPath(region *typedef.Region, viewScale, offsetX, offsetY float64) *vector.Path {
	path := &vector.Path{}
	for _, polygon := range region.PixelPolygons {
		for _, ring := range polygon {
			if len(ring) < 3 {
				continue
			}
			path.MoveTo(float32(ring[0][0]*viewScale+offsetX), float32(ring[0][1]*viewScale+offsetY))
			for _, pt := range ring[1:] {
				path.LineTo(float32(pt[0]*viewScale+offsetX), float32(pt[1]*viewScale+offsetY))
			}
			path.Close()
		}
	}
	return path
}

func tintVertices(vs []ebiten.Vertex, clr color.RGBA) {
	r := float32(clr.R) / 255
	g := float32(clr.G) / 255
	b := float32(clr.B) / 255
	a := float32(clr.A) / 255
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
}
