package app

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"taipop/dataset"
	"taipop/scale"
	"taipop/selection"
	"taipop/typedef"
)

// phase tracks the app lifecycle: loading the dataset in the background,
// then either the interactive map or a terminal load failure.
type phase int

const (
	phaseLoading phase = iota
	phaseReady
	phaseFailed
)

type loadResult struct {
	ds  *typedef.Dataset
	err error
}

// App is the ebiten.Game composition root. It owns the dataset load, the
// shared selection store, and every view, and routes input to them in
// front-to-back order.
type App struct {
	phase  phase
	loadCh chan loadResult

	screenW int
	screenH int

	store    *selection.Store
	manager  *RegionsManager
	renderer *RegionRenderer

	mapView     *MapView
	toolbar     *Toolbar
	countyPanel *CountyPanel
	listPanel   *ListPanel
	infoPanel   *InfoPanel
	legend      *Legend
	chartPanel  *ChartPanel
	debug       *DebugOverlay

	mapArea image.Rectangle
}

// New starts loading the dataset in the background and returns an app that
// shows a loading screen until the load resolves.
func New(geoPath, popPath string) *App {
	app := &App{
		phase:  phaseLoading,
		loadCh: make(chan loadResult, 1),
	}

	go func() {
		ds, err := dataset.Load(geoPath, popPath)
		app.loadCh <- loadResult{ds: ds, err: err}
	}()

	return app
}

// initViews builds the view graph once the dataset is in.
func (a *App) initViews(ds *typedef.Dataset) {
	colorScale := scale.Default()

	a.store = selection.NewStore(ds)
	a.manager = NewRegionsManager(ds)
	a.renderer = NewRegionRenderer(a.manager, colorScale, a.store)

	a.mapView = NewMapView(a.manager, a.renderer, a.store)
	a.toolbar = NewToolbar(a.store)
	a.countyPanel = NewCountyPanel(a.store)
	a.listPanel = NewListPanel(a.store)
	a.infoPanel = NewInfoPanel(a.store, a.mapView)
	a.legend = NewLegend(colorScale)
	a.chartPanel = NewChartPanel(a.store, colorScale)
	a.debug = NewDebugOverlay(a.store)

	a.phase = phaseReady
	fmt.Printf("[APP] dataset ready: %d townships, %d counties\n", len(ds.Order), len(ds.Counties))
}

// layout recomputes the panel rectangles for the current window size and
// pushes them into the views. Toolbar on top, county list left, selection
// list right, charts along the bottom, map in the remainder.
func (a *App) layout() {
	w, h := a.screenW, a.screenH

	chartTop := h - chartPanelHeight
	if chartTop < toolbarHeight {
		chartTop = toolbarHeight
	}

	a.toolbar.SetArea(image.Rect(0, 0, w, toolbarHeight))
	a.countyPanel.SetArea(image.Rect(0, toolbarHeight, countyPanelWidth, chartTop))
	a.listPanel.SetArea(image.Rect(w-listPanelWidth, toolbarHeight, w, chartTop))
	a.chartPanel.SetArea(image.Rect(0, chartTop, w, h))

	a.mapArea = image.Rect(countyPanelWidth, toolbarHeight, w-listPanelWidth, chartTop)
	a.mapView.SetArea(a.mapArea)
}

// Update implements ebiten.Game.
func (a *App) Update() error {
	GetToastManager().Update()

	switch a.phase {
	case phaseLoading:
		select {
		case res := <-a.loadCh:
			if res.err != nil {
				fmt.Printf("[APP] dataset load failed: %v\n", res.err)
				NewToast().
					Text("Failed to load dataset, see log for details").
					Error().
					Show()
				a.phase = phaseFailed
			} else {
				a.initViews(res.ds)
			}
		default:
		}
		GetToastManager().HandleInput()
		return nil

	case phaseFailed:
		GetToastManager().HandleInput()
		return nil
	}

	a.layout()

	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		a.debug.Toggle()
	}

	// Front-to-back: whoever consumes a click shadows everything beneath.
	consumed := GetToastManager().HandleInput()
	if !consumed {
		consumed = a.toolbar.Update()
	}
	if !consumed {
		consumed = a.countyPanel.Update()
	}
	if !consumed {
		consumed = a.listPanel.Update()
	}
	if !consumed {
		consumed = a.chartPanel.Update()
	}
	a.mapView.Update(consumed)

	return nil
}

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{22, 24, 29, 255})

	switch a.phase {
	case phaseLoading:
		a.drawCenteredStatus(screen, "Loading township data...")
	case phaseFailed:
		a.drawCenteredStatus(screen, "Dataset failed to load")
	case phaseReady:
		a.mapView.Draw(screen)
		a.infoPanel.Draw(screen, a.mapArea)
		a.legend.Draw(screen, a.mapArea)
		a.toolbar.Draw(screen)
		a.countyPanel.Draw(screen)
		a.listPanel.Draw(screen)
		a.chartPanel.Draw(screen)
		a.debug.Draw(screen)
	}

	GetToastManager().Draw(screen)
}

func (a *App) drawCenteredStatus(screen *ebiten.Image, msg string) {
	tr := NewTextRenderer(loadAppFont(16))
	w := tr.MeasureString(msg)
	x := (a.screenW - w) / 2
	y := a.screenH / 2

	// A little pulse so the loading screen visibly ticks.
	shade := uint8(170 + 40*((time.Now().UnixMilli()/600)%2))
	tr.DrawText(screen, msg, x, y, color.RGBA{shade, shade, shade, 255})
}

// Layout implements ebiten.Game.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.screenW, a.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
