package app

import (
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"taipop/storage"
)

// Global font cache to prevent re-parsing faces per frame
var (
	fontCache        = make(map[float64]font.Face)
	fontCacheMux     sync.RWMutex
	parsedFont       *opentype.Font
	fontLoadOnce     sync.Once
	maxFontCacheSize = 20
)

// fontCandidates lists the places an optional CJK-capable font may live.
// Township names are Chinese; without a font file the app falls back to
// basicfont and names degrade to tofu boxes.
func fontCandidates() []string {
	return []string{
		storage.DataFile(filepath.Join("fonts", "NotoSansTC-Regular.otf")),
		storage.DataFile(filepath.Join("fonts", "NotoSansTC-Regular.ttf")),
		filepath.Join("fonts", "NotoSansTC-Regular.otf"),
		filepath.Join("fonts", "NotoSansTC-Regular.ttf"),
	}
}

// initFont loads and parses the first available font file once.
func initFont() {
	for _, path := range fontCandidates() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		parsed, err := opentype.Parse(data)
		if err != nil {
			log.Printf("Failed to parse font %s: %v", path, err)
			continue
		}
		parsedFont = parsed
		log.Printf("Loaded font %s", path)
		return
	}
	log.Printf("No font file found, using built-in fallback font")
}

// loadAppFont returns a cached face for the given size, falling back to the
// built-in bitmap font when no font file could be loaded.
func loadAppFont(size float64) font.Face {
	fontLoadOnce.Do(initFont)

	size = math.Round(size*2) / 2 // half-point granularity keeps the cache small

	fontCacheMux.RLock()
	if face, ok := fontCache[size]; ok {
		fontCacheMux.RUnlock()
		return face
	}
	fontCacheMux.RUnlock()

	if parsedFont == nil {
		return basicfont.Face7x13
	}

	face, err := opentype.NewFace(parsedFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Printf("Failed to create font face: %v", err)
		return basicfont.Face7x13
	}

	fontCacheMux.Lock()
	if len(fontCache) >= maxFontCacheSize {
		for key := range fontCache {
			delete(fontCache, key)
			break
		}
	}
	fontCache[size] = face
	fontCacheMux.Unlock()

	return face
}
