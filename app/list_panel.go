package app

import (
	"image"
	"image/color"
	"sort"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"taipop/scale"
	"taipop/selection"
)

const listPanelWidth = 300

// countyGroup is one rendered group of selected regions.
type countyGroup struct {
	name       string
	members    []string
	headerRect image.Rectangle
}

// ListPanel shows the current selection grouped by county, groups sorted by
// descending member count. Groups collapse independently; the collapsed set
// is keyed by county name so it survives re-renders and selection changes.
type ListPanel struct {
	store *selection.Store
	area  image.Rectangle

	collapsed map[string]bool
	groups    []*countyGroup
	rowRects  []struct {
		id   string
		rect image.Rectangle
	}

	scrollY  int
	contentH int
}

// NewListPanel builds the panel over the store.
func NewListPanel(store *selection.Store) *ListPanel {
	return &ListPanel{
		store:     store,
		collapsed: make(map[string]bool),
	}
}

// SetArea assigns the panel rectangle.
func (lp *ListPanel) SetArea(area image.Rectangle) {
	lp.area = area
}

// rebuildGroups derives the grouped view from the selection snapshot.
func (lp *ListPanel) rebuildGroups() {
	byCounty := make(map[string][]string)
	for _, id := range lp.store.Selected() {
		region := lp.store.Dataset().Region(id)
		if region == nil {
			continue
		}
		byCounty[region.County] = append(byCounty[region.County], id)
	}

	lp.groups = lp.groups[:0]
	for name, members := range byCounty {
		sort.Strings(members)
		lp.groups = append(lp.groups, &countyGroup{name: name, members: members})
	}
	// Largest group first; ties break by name for a stable layout.
	sort.SliceStable(lp.groups, func(i, j int) bool {
		if len(lp.groups[i].members) != len(lp.groups[j].members) {
			return len(lp.groups[i].members) > len(lp.groups[j].members)
		}
		return lp.groups[i].name < lp.groups[j].name
	})
}

// Update handles scrolling, header collapse toggles, and per-row deselect
// clicks. Returns true when the input was consumed.
func (lp *ListPanel) Update() bool {
	mx, my := ebiten.CursorPosition()
	inside := image.Pt(mx, my).In(lp.area)

	if inside {
		if _, wheelY := ebiten.Wheel(); wheelY != 0 {
			lp.scrollY -= int(wheelY * 24)
			lp.clampScroll()
		}
	}

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || !inside {
		return false
	}

	for _, group := range lp.groups {
		if image.Pt(mx, my).In(group.headerRect) {
			lp.collapsed[group.name] = !lp.collapsed[group.name]
			return true
		}
	}
	for _, row := range lp.rowRects {
		if image.Pt(mx, my).In(row.rect) {
			lp.store.Deselect(row.id)
			return true
		}
	}
	return true
}

func (lp *ListPanel) clampScroll() {
	maxScroll := lp.contentH - lp.area.Dy()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if lp.scrollY < 0 {
		lp.scrollY = 0
	}
	if lp.scrollY > maxScroll {
		lp.scrollY = maxScroll
	}
}

// Draw renders the grouped selection list.
func (lp *ListPanel) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen,
		float32(lp.area.Min.X), float32(lp.area.Min.Y),
		float32(lp.area.Dx()), float32(lp.area.Dy()),
		color.RGBA{38, 42, 50, 255}, false)

	lp.rebuildGroups()

	clip := screen.SubImage(lp.area).(*ebiten.Image)
	face := loadAppFont(13)
	tr := NewTextRenderer(face)
	headerTr := NewTextRenderer(loadAppFont(14))
	lineH := tr.GetLineHeight()

	headerTr.DrawText(clip, "Selected townships", lp.area.Min.X+10, lp.area.Min.Y+22-lp.scrollY, color.RGBA{210, 215, 225, 255})

	lp.rowRects = lp.rowRects[:0]
	y := lp.area.Min.Y + 36 - lp.scrollY
	mx, my := ebiten.CursorPosition()

	if len(lp.groups) == 0 {
		tr.DrawText(clip, "Click townships on the map", lp.area.Min.X+10, y+lineH, color.RGBA{150, 155, 165, 255})
		lp.contentH = 60
		return
	}

	const headerH = 26
	const rowH = 22

	for _, group := range lp.groups {
		group.headerRect = image.Rect(lp.area.Min.X+6, y, lp.area.Max.X-6, y+headerH-2)

		bg := color.RGBA{52, 58, 70, 255}
		if image.Pt(mx, my).In(group.headerRect) {
			bg = color.RGBA{68, 76, 90, 255}
		}
		vector.DrawFilledRect(clip, float32(group.headerRect.Min.X), float32(group.headerRect.Min.Y),
			float32(group.headerRect.Dx()), float32(group.headerRect.Dy()), bg, false)

		arrow := "v"
		if lp.collapsed[group.name] {
			arrow = ">"
		}
		title := arrow + " " + group.name + " (" + strconv.Itoa(len(group.members)) + ")"
		headerTr.DrawText(clip, title, group.headerRect.Min.X+8, group.headerRect.Min.Y+(headerH+lineH)/2-3, color.RGBA{225, 225, 225, 255})
		y += headerH

		if lp.collapsed[group.name] {
			continue
		}

		for _, id := range group.members {
			region := lp.store.Dataset().Region(id)
			row := image.Rect(lp.area.Min.X+14, y, lp.area.Max.X-6, y+rowH-2)
			lp.rowRects = append(lp.rowRects, struct {
				id   string
				rect image.Rectangle
			}{id, row})

			if image.Pt(mx, my).In(row) {
				vector.DrawFilledRect(clip, float32(row.Min.X), float32(row.Min.Y),
					float32(row.Dx()), float32(row.Dy()), color.RGBA{60, 52, 52, 255}, false)
			}

			tr.DrawText(clip, region.Town, row.Min.X+4, row.Min.Y+(rowH+lineH)/2-3, color.RGBA{215, 215, 215, 255})

			density := scale.NA
			if region.HasAttributes {
				density = scale.Float(region.Density, 0)
			}
			tr.DrawTextRightAligned(clip, density, row.Max.X-6, row.Min.Y+(rowH+lineH)/2-3, color.RGBA{170, 175, 185, 255})

			y += rowH
		}
		y += 6
	}

	lp.contentH = y + lp.scrollY - lp.area.Min.Y + 10
}
