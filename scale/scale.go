package scale

import "image/color"

// Scale maps a population density to a discrete color bucket via an ordered
// ascending threshold table. Thresholds[0] is always 0 so every non-negative
// density lands in a bucket.
type Scale struct {
	thresholds []float64
	colors     []color.RGBA
}

// LegendEntry is one swatch row for the legend panel.
type LegendEntry struct {
	Label string
	Color color.RGBA
}

// defaultThresholds and defaultColors form a sequential light-to-dark ramp.
// The parallel tables must stay the same length.
var defaultThresholds = []float64{0, 100, 500, 1000, 2000, 5000, 10000}

var defaultColors = []color.RGBA{
	{R: 255, G: 255, B: 204, A: 255},
	{R: 255, G: 237, B: 160, A: 255},
	{R: 254, G: 217, B: 118, A: 255},
	{R: 254, G: 178, B: 76, A: 255},
	{R: 253, G: 141, B: 60, A: 255},
	{R: 227, G: 26, B: 28, A: 255},
	{R: 177, G: 0, B: 38, A: 255},
}

// Default returns the standard density scale used by the map and legend.
func Default() *Scale {
	return &Scale{thresholds: defaultThresholds, colors: defaultColors}
}

// New builds a scale from parallel threshold/color tables. Panics when the
// tables disagree in length or thresholds do not start at 0; the tables are
// compiled-in, so a bad pair is a programming error.
func New(thresholds []float64, colors []color.RGBA) *Scale {
	if len(thresholds) == 0 || len(thresholds) != len(colors) {
		panic("scale: threshold and color tables must be non-empty and parallel")
	}
	if thresholds[0] != 0 {
		panic("scale: first threshold must be 0")
	}
	return &Scale{thresholds: thresholds, colors: colors}
}

// Index returns the bucket index for the given density: the largest i with
// density >= thresholds[i]. Negative input is treated as 0.
func (s *Scale) Index(density float64) int {
	if density < 0 {
		density = 0
	}
	idx := 0
	for i, t := range s.thresholds {
		if density >= t {
			idx = i
		} else {
			break
		}
	}
	return idx
}

// Bucket returns the fill color for the given density.
func (s *Scale) Bucket(density float64) color.RGBA {
	return s.colors[s.Index(density)]
}

// Buckets returns the number of buckets in the scale.
func (s *Scale) Buckets() int {
	return len(s.thresholds)
}

// Legend returns one entry per bucket, labelled with its density range.
func (s *Scale) Legend() []LegendEntry {
	entries := make([]LegendEntry, 0, len(s.thresholds))
	for i, t := range s.thresholds {
		var label string
		if i == len(s.thresholds)-1 {
			label = Float(t, 0) + "+"
		} else {
			label = Float(t, 0) + " - " + Float(s.thresholds[i+1], 0)
		}
		entries = append(entries, LegendEntry{Label: label, Color: s.colors[i]})
	}
	return entries
}
