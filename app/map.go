package app

import (
	"image"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"taipop/selection"
)

// doubleClickWindow is the gap under which a second click on the same
// region counts as a double click.
const doubleClickWindow = 300 * time.Millisecond

// clickDragThreshold in screen pixels separates a click from a pan.
const clickDragThreshold = 5.0

// MapView owns the viewport over the projected map and translates mouse
// gestures into selection mutations:
//   - single click on a region selects it;
//   - double click on a region deselects it and suppresses the default
//     double-click zoom (a click/double-click pair on an unselected region
//     briefly flashes it selected; that flash is intentional);
//   - double click on open water zooms in;
//   - hovering an unselected region highlights it and feeds the info panel.
type MapView struct {
	manager  *RegionsManager
	renderer *RegionRenderer
	store    *selection.Store

	area    image.Rectangle
	scale   float64
	offsetX float64
	offsetY float64
	fitted  bool
	minZoom float64
	maxZoom float64

	dragging   bool
	dragMoved  float64
	lastMouseX int
	lastMouseY int

	hoveredRegion string

	lastClickTime   time.Time
	lastClickRegion string
	lastClickOnMap  bool
}

// NewMapView wires the view over the shared manager, renderer and store.
func NewMapView(manager *RegionsManager, renderer *RegionRenderer, store *selection.Store) *MapView {
	return &MapView{
		manager:  manager,
		renderer: renderer,
		store:    store,
	}
}

// SetArea assigns the screen rectangle the map renders into.
func (m *MapView) SetArea(area image.Rectangle) {
	if m.area != area {
		m.area = area
		m.renderer.Invalidate()
	}
}

// HoveredRegion returns the region under the cursor, or "".
func (m *MapView) HoveredRegion() string {
	return m.hoveredRegion
}

// fit centers the whole map in the area with a small margin and derives the
// zoom limits from that base scale.
func (m *MapView) fit() {
	ds := m.manager.Dataset()
	w, h := float64(m.area.Dx()), float64(m.area.Dy())
	if w <= 0 || h <= 0 || ds.PixelW <= 0 || ds.PixelH <= 0 {
		return
	}
	base := math.Min(w/ds.PixelW, h/ds.PixelH) * 0.95
	m.scale = base
	m.minZoom = base * 0.5
	m.maxZoom = base * 40
	m.offsetX = (w - ds.PixelW*base) / 2
	m.offsetY = (h - ds.PixelH*base) / 2
	m.fitted = true
}

// Update processes one frame of mouse input. inputConsumed is true when an
// overlay (toast, panel) already took the input this frame.
func (m *MapView) Update(inputConsumed bool) {
	if !m.fitted {
		m.fit()
	}

	mx, my := ebiten.CursorPosition()
	inArea := !inputConsumed && image.Pt(mx, my).In(m.area)

	m.updateHover(mx, my, inArea)
	m.updateZoom(mx, my, inArea)
	m.updateDragAndClicks(mx, my, inArea)
}

func (m *MapView) updateHover(mx, my int, inArea bool) {
	if !inArea || m.dragging {
		m.hoveredRegion = ""
		return
	}
	m.hoveredRegion = m.manager.RegionAtPosition(
		mx-m.area.Min.X, my-m.area.Min.Y, m.scale, m.offsetX, m.offsetY)
}

func (m *MapView) updateZoom(mx, my int, inArea bool) {
	if !inArea {
		return
	}
	_, wheelY := ebiten.Wheel()
	if wheelY == 0 {
		return
	}
	m.zoomAt(mx, my, math.Pow(1.1, wheelY))
}

// zoomAt rescales around a screen point so the world point under the
// cursor stays put.
func (m *MapView) zoomAt(mx, my int, factor float64) {
	newScale := m.scale * factor
	if m.minZoom > 0 {
		newScale = math.Max(m.minZoom, math.Min(m.maxZoom, newScale))
	}
	if newScale == m.scale {
		return
	}

	localX := float64(mx - m.area.Min.X)
	localY := float64(my - m.area.Min.Y)
	worldX := (localX - m.offsetX) / m.scale
	worldY := (localY - m.offsetY) / m.scale

	m.scale = newScale
	m.offsetX = localX - worldX*newScale
	m.offsetY = localY - worldY*newScale
}

func (m *MapView) updateDragAndClicks(mx, my int, inArea bool) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && inArea {
		m.dragging = true
		m.dragMoved = 0
		m.lastMouseX, m.lastMouseY = mx, my
	}

	if m.dragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		dx := float64(mx - m.lastMouseX)
		dy := float64(my - m.lastMouseY)
		m.dragMoved += math.Abs(dx) + math.Abs(dy)
		m.offsetX += dx
		m.offsetY += dy
		m.lastMouseX, m.lastMouseY = mx, my
	}

	if m.dragging && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		m.dragging = false
		if m.dragMoved < clickDragThreshold {
			m.handleClick(mx, my)
		}
	}
}

// handleClick performs the click/double-click disambiguation against the
// previous click's region and timestamp.
func (m *MapView) handleClick(mx, my int) {
	hit := m.manager.RegionAtPosition(
		mx-m.area.Min.X, my-m.area.Min.Y, m.scale, m.offsetX, m.offsetY)

	now := time.Now()
	isDouble := m.lastClickOnMap &&
		now.Sub(m.lastClickTime) < doubleClickWindow &&
		m.lastClickRegion == hit

	if hit != "" {
		if isDouble {
			// Deselect-only gesture; the zoom branch below never runs.
			m.store.Deselect(hit)
		} else {
			m.store.Select(hit)
		}
	} else if isDouble {
		m.zoomAt(mx, my, 2.0)
	}

	m.lastClickTime = now
	m.lastClickRegion = hit
	m.lastClickOnMap = true
}

// Draw renders the choropleth layer into the map area.
func (m *MapView) Draw(screen *ebiten.Image) {
	if !m.fitted {
		return
	}
	m.renderer.Draw(screen, m.area, m.scale, m.offsetX, m.offsetY, m.hoveredRegion)
}
