package app

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Toast is a single notification shown in the bottom-right corner.
type Toast struct {
	ID          string
	Text        string
	AutoCloseAt *time.Time
	CreatedAt   time.Time
	Background  color.RGBA
	Border      color.RGBA

	// Set during layout each frame.
	x, y, width, height int
	closeRect           rect
}

type rect struct {
	x, y, w, h int
}

func (r rect) contains(px, py int) bool {
	return px >= r.x && px < r.x+r.w && py >= r.y && py < r.y+r.h
}

// ToastBuilder provides a fluent interface for building toasts
type ToastBuilder struct {
	toast *Toast
}

// ToastManager manages all active toasts
type ToastManager struct {
	toasts    []*Toast
	nextID    int
	maxToasts int
	margin    int
}

var globalToastManager *ToastManager

// InitToastManager initializes the global toast manager
func InitToastManager() {
	globalToastManager = &ToastManager{
		maxToasts: 5,
		margin:    12,
	}
}

// GetToastManager returns the global toast manager
func GetToastManager() *ToastManager {
	if globalToastManager == nil {
		InitToastManager()
	}
	return globalToastManager
}

// NewToast creates a new toast builder
func NewToast() *ToastBuilder {
	return &ToastBuilder{toast: &Toast{
		CreatedAt:  time.Now(),
		Background: color.RGBA{40, 40, 50, 240},
		Border:     color.RGBA{70, 130, 255, 255},
	}}
}

// Text sets the toast message
func (tb *ToastBuilder) Text(message string) *ToastBuilder {
	tb.toast.Text = message
	return tb
}

// Error styles the toast as an error notification
func (tb *ToastBuilder) Error() *ToastBuilder {
	tb.toast.Border = color.RGBA{220, 60, 60, 255}
	return tb
}

// Warning styles the toast as a warning notification
func (tb *ToastBuilder) Warning() *ToastBuilder {
	tb.toast.Border = color.RGBA{230, 180, 40, 255}
	return tb
}

// AutoClose sets the toast to automatically close after the duration
func (tb *ToastBuilder) AutoClose(duration time.Duration) *ToastBuilder {
	closeTime := time.Now().Add(duration)
	tb.toast.AutoCloseAt = &closeTime
	return tb
}

// Show adds the toast to the global manager
func (tb *ToastBuilder) Show() {
	GetToastManager().AddToast(tb.toast)
}

// AddToast appends a toast, evicting the oldest when over the cap
func (tm *ToastManager) AddToast(toast *Toast) {
	tm.nextID++
	toast.ID = fmt.Sprintf("toast_%d", tm.nextID)
	tm.toasts = append(tm.toasts, toast)
	if len(tm.toasts) > tm.maxToasts {
		tm.toasts = tm.toasts[len(tm.toasts)-tm.maxToasts:]
	}
}

// RemoveToast removes a toast by ID
func (tm *ToastManager) RemoveToast(id string) {
	for i, toast := range tm.toasts {
		if toast.ID == id {
			tm.toasts = append(tm.toasts[:i], tm.toasts[i+1:]...)
			return
		}
	}
}

// Update expires auto-close toasts
func (tm *ToastManager) Update() {
	now := time.Now()
	kept := tm.toasts[:0]
	for _, toast := range tm.toasts {
		if toast.AutoCloseAt != nil && now.After(*toast.AutoCloseAt) {
			continue
		}
		kept = append(kept, toast)
	}
	tm.toasts = kept
}

// HandleInput processes clicks on toast close buttons. Returns true when a
// toast consumed the input.
func (tm *ToastManager) HandleInput() bool {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	mx, my := ebiten.CursorPosition()
	for _, toast := range tm.toasts {
		if toast.closeRect.contains(mx, my) {
			tm.RemoveToast(toast.ID)
			return true
		}
		if mx >= toast.x && mx < toast.x+toast.width && my >= toast.y && my < toast.y+toast.height {
			// Click anywhere on a toast dismisses it.
			tm.RemoveToast(toast.ID)
			return true
		}
	}
	return false
}

// Draw renders toasts stacked upward from the bottom-right corner
func (tm *ToastManager) Draw(screen *ebiten.Image) {
	if len(tm.toasts) == 0 {
		return
	}

	screenW := screen.Bounds().Dx()
	screenH := screen.Bounds().Dy()
	face := loadAppFont(14)
	tr := NewTextRenderer(face)

	padding := 12
	lineHeight := tr.GetLineHeight()
	closeSize := 16

	y := screenH - tm.margin
	// Newest toast sits closest to the corner.
	for i := len(tm.toasts) - 1; i >= 0; i-- {
		toast := tm.toasts[i]

		textW := tr.MeasureString(toast.Text)
		width := textW + padding*2 + closeSize + 8
		if width < 220 {
			width = 220
		}
		if width > screenW/2 {
			width = screenW / 2
		}
		height := lineHeight + padding*2

		x := screenW - tm.margin - width
		y -= height

		toast.x, toast.y, toast.width, toast.height = x, y, width, height
		toast.closeRect = rect{x + width - closeSize - 6, y + 6, closeSize, closeSize}

		vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), toast.Background, false)
		vector.StrokeRect(screen, float32(x), float32(y), float32(width), float32(height), 2, toast.Border, false)
		tr.DrawText(screen, toast.Text, x+padding, y+padding+lineHeight*3/4, color.RGBA{235, 235, 235, 255})
		tr.DrawText(screen, "x", toast.closeRect.x+4, toast.closeRect.y+closeSize*3/4, color.RGBA{180, 90, 90, 255})

		y -= tm.margin / 2
	}
}
