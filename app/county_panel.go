package app

import (
	"image"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"taipop/selection"
)

const countyPanelWidth = 190

// CountyPanel lists every county as a toggle button, ordered north to south
// (the dataset pre-sorts counties by descending centroid latitude). A fully
// selected county is marked and clicking it deselects all of its members;
// otherwise a click selects the missing ones.
type CountyPanel struct {
	store *selection.Store
	area  image.Rectangle

	rowRects  []image.Rectangle
	scrollY   int
	contentH  int
	rowHeight int
}

// NewCountyPanel builds the panel over the store.
func NewCountyPanel(store *selection.Store) *CountyPanel {
	return &CountyPanel{store: store, rowHeight: 30}
}

// SetArea assigns the panel rectangle.
func (cp *CountyPanel) SetArea(area image.Rectangle) {
	cp.area = area
}

// Update handles wheel scrolling and county clicks. Returns true when the
// input was consumed.
func (cp *CountyPanel) Update() bool {
	mx, my := ebiten.CursorPosition()
	inside := image.Pt(mx, my).In(cp.area)

	if inside {
		if _, wheelY := ebiten.Wheel(); wheelY != 0 {
			cp.scrollY -= int(wheelY * 24)
			cp.clampScroll()
		}
	}

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || !inside {
		return false
	}
	counties := cp.store.Dataset().Counties
	for i, r := range cp.rowRects {
		if i < len(counties) && image.Pt(mx, my).In(r) {
			cp.store.ToggleCounty(counties[i].Name)
			return true
		}
	}
	return true
}

func (cp *CountyPanel) clampScroll() {
	maxScroll := cp.contentH - cp.area.Dy()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if cp.scrollY < 0 {
		cp.scrollY = 0
	}
	if cp.scrollY > maxScroll {
		cp.scrollY = maxScroll
	}
}

// Draw renders the county list and records the clickable row rects.
func (cp *CountyPanel) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen,
		float32(cp.area.Min.X), float32(cp.area.Min.Y),
		float32(cp.area.Dx()), float32(cp.area.Dy()),
		color.RGBA{38, 42, 50, 255}, false)

	clip := screen.SubImage(cp.area).(*ebiten.Image)
	face := loadAppFont(13)
	tr := NewTextRenderer(face)
	lineH := tr.GetLineHeight()

	counties := cp.store.Dataset().Counties
	cp.contentH = len(counties)*cp.rowHeight + 34
	cp.clampScroll()

	headerFace := loadAppFont(14)
	headerTr := NewTextRenderer(headerFace)
	headerTr.DrawText(clip, "Counties", cp.area.Min.X+10, cp.area.Min.Y+22-cp.scrollY, color.RGBA{210, 215, 225, 255})

	cp.rowRects = cp.rowRects[:0]
	y := cp.area.Min.Y + 34 - cp.scrollY
	mx, my := ebiten.CursorPosition()

	for _, county := range counties {
		row := image.Rect(cp.area.Min.X+6, y, cp.area.Max.X-6, y+cp.rowHeight-4)
		cp.rowRects = append(cp.rowRects, row)

		full := cp.store.CountyFullySelected(county.Name)
		selectedCount := 0
		for _, member := range county.Members {
			if cp.store.IsSelected(member) {
				selectedCount++
			}
		}

		bg := color.RGBA{50, 55, 66, 255}
		if full {
			bg = color.RGBA{50, 92, 60, 255}
		} else if selectedCount > 0 {
			bg = color.RGBA{62, 72, 60, 255}
		}
		if image.Pt(mx, my).In(row) {
			bg = color.RGBA{bg.R + 16, bg.G + 16, bg.B + 16, 255}
		}
		vector.DrawFilledRect(clip, float32(row.Min.X), float32(row.Min.Y),
			float32(row.Dx()), float32(row.Dy()), bg, false)

		label := county.Name
		if label == "" {
			label = "(unknown)"
		}
		tr.DrawText(clip, label, row.Min.X+8, row.Min.Y+(row.Dy()+lineH)/2-2, color.RGBA{228, 228, 228, 255})

		marker := ""
		if full {
			marker = "全"
		}
		count := marker + " " + strconv.Itoa(selectedCount) + "/" + strconv.Itoa(len(county.Members))
		tr.DrawTextRightAligned(clip, count, row.Max.X-8, row.Min.Y+(row.Dy()+lineH)/2-2, color.RGBA{170, 180, 170, 255})

		y += cp.rowHeight
	}
}

