package app

import (
	"testing"

	"taipop/typedef"
)

func squareRegion(name, county string, x, y, size float64) *typedef.Region {
	ring := typedef.PixelRing{
		{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}, {x, y},
	}
	return &typedef.Region{
		FullName:      name,
		County:        county,
		PixelPolygons: []typedef.PixelPolygon{{ring}},
		MinX:          x, MinY: y, MaxX: x + size, MaxY: y + size,
	}
}

func gridDataset() *typedef.Dataset {
	a := squareRegion("A", "North", 0, 0, 100)
	b := squareRegion("B", "South", 150, 0, 100)
	return &typedef.Dataset{
		Regions: map[string]*typedef.Region{"A": a, "B": b},
		Order:   []string{"A", "B"},
		PixelW:  250,
		PixelH:  100,
	}
}

func TestRegionAtWorld(t *testing.T) {
	rm := NewRegionsManager(gridDataset())

	if got := rm.RegionAtWorld(50, 50); got != "A" {
		t.Errorf("RegionAtWorld(50,50) = %q, want A", got)
	}
	if got := rm.RegionAtWorld(200, 50); got != "B" {
		t.Errorf("RegionAtWorld(200,50) = %q, want B", got)
	}
	if got := rm.RegionAtWorld(125, 50); got != "" {
		t.Errorf("RegionAtWorld in the gap = %q, want empty", got)
	}
	if got := rm.RegionAtWorld(-40, -40); got != "" {
		t.Errorf("RegionAtWorld outside the map = %q, want empty", got)
	}
}

func TestRegionAtPositionAppliesViewTransform(t *testing.T) {
	rm := NewRegionsManager(gridDataset())

	// screen = world*scale + offset, so world (50,50) at scale 2 with
	// offset (10,20) lands on screen (110,120).
	if got := rm.RegionAtPosition(110, 120, 2.0, 10, 20); got != "A" {
		t.Errorf("RegionAtPosition = %q, want A", got)
	}
}

func TestRegionWithHole(t *testing.T) {
	outer := typedef.PixelRing{{0, 0}, {100, 0}, {100, 100}, {0, 100}, {0, 0}}
	hole := typedef.PixelRing{{40, 40}, {60, 40}, {60, 60}, {40, 60}, {40, 40}}
	region := &typedef.Region{
		FullName:      "Ring",
		PixelPolygons: []typedef.PixelPolygon{{outer, hole}},
		MinX:          0, MinY: 0, MaxX: 100, MaxY: 100,
	}
	ds := &typedef.Dataset{
		Regions: map[string]*typedef.Region{"Ring": region},
		Order:   []string{"Ring"},
	}
	rm := NewRegionsManager(ds)

	if got := rm.RegionAtWorld(20, 20); got != "Ring" {
		t.Errorf("point in solid part = %q, want Ring", got)
	}
	if got := rm.RegionAtWorld(50, 50); got != "" {
		t.Errorf("point in hole = %q, want empty", got)
	}
}

func TestPointInRingDegenerate(t *testing.T) {
	if pointInRing(typedef.PixelRing{{0, 0}, {1, 1}}, 0.5, 0.5) {
		t.Error("two-point ring cannot contain anything")
	}
}
