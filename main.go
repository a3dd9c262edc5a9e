package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"

	"taipop/app"
)

func main() {
	var geoPath string
	var popPath string
	flag.StringVar(&geoPath, "geo", "data/towns.geojson", "Township boundary GeoJSON (path or http(s) URL)")
	flag.StringVar(&popPath, "pop", "data/population.json", "Population attribute JSON (path or http(s) URL)")
	flag.Parse()

	// Clipboard is only initialized on supported platforms
	if runtime.GOARCH != "wasm" && runtime.GOOS != "js" {
		if err := clipboard.Init(); err != nil {
			fmt.Printf("[MAIN] clipboard unavailable: %v\n", err)
		}
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalChan
		fmt.Println("Received shutdown signal. Cleaning up...")
		os.Exit(0)
	}()

	app.InitToastManager()

	ebiten.SetWindowTitle("Taiwan Township Population Density")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1600, 900)

	if err := ebiten.RunGameWithOptions(app.New(geoPath, popPath), &ebiten.RunGameOptions{
		X11ClassName:    "Taiwan Township Population Density",
		X11InstanceName: "taipop",
	}); err != nil {
		panic(err)
	}
}
