package app

import (
	"math"

	"taipop/typedef"
)

// RegionsManager indexes the loaded regions for fast lookups from the map
// view: a spatial partition grid for cursor hit testing plus cached world
// bounds for culling.
type RegionsManager struct {
	dataset *typedef.Dataset

	grid         map[[2]int][]string // cell -> region full names
	gridCellSize float64
	gridMinX     float64
	gridMinY     float64
}

// NewRegionsManager builds the spatial grid over the dataset's pixel space.
func NewRegionsManager(ds *typedef.Dataset) *RegionsManager {
	rm := &RegionsManager{dataset: ds}
	rm.buildSpatialGrid()
	return rm
}

// Dataset returns the indexed dataset.
func (rm *RegionsManager) Dataset() *typedef.Dataset {
	return rm.dataset
}

func (rm *RegionsManager) buildSpatialGrid() {
	cellSize := 64.0 // world pixels
	grid := make(map[[2]int][]string)

	// Assign each region to all grid cells its bounding box overlaps
	for _, name := range rm.dataset.Order {
		region := rm.dataset.Regions[name]
		ix1 := int(region.MinX / cellSize)
		iy1 := int(region.MinY / cellSize)
		ix2 := int(region.MaxX / cellSize)
		iy2 := int(region.MaxY / cellSize)
		for ix := ix1; ix <= ix2; ix++ {
			for iy := iy1; iy <= iy2; iy++ {
				cell := [2]int{ix, iy}
				grid[cell] = append(grid[cell], name)
			}
		}
	}

	rm.grid = grid
	rm.gridCellSize = cellSize
	rm.gridMinX = 0
	rm.gridMinY = 0
}

// RegionAtPosition returns the region containing the given screen position,
// or "". The map transform is screen = world*scale + offset.
func (rm *RegionsManager) RegionAtPosition(mouseX, mouseY int, scale, offsetX, offsetY float64) string {
	worldX := (float64(mouseX) - offsetX) / scale
	worldY := (float64(mouseY) - offsetY) / scale
	return rm.RegionAtWorld(worldX, worldY)
}

// RegionAtWorld performs the grid lookup and exact polygon test in world
// (map pixel) coordinates.
func (rm *RegionsManager) RegionAtWorld(worldX, worldY float64) string {
	cell := [2]int{int(math.Floor(worldX / rm.gridCellSize)), int(math.Floor(worldY / rm.gridCellSize))}
	for _, name := range rm.grid[cell] {
		region := rm.dataset.Regions[name]
		if worldX < region.MinX || worldX > region.MaxX || worldY < region.MinY || worldY > region.MaxY {
			continue
		}
		if regionContains(region, worldX, worldY) {
			return name
		}
	}
	return ""
}

// regionContains runs an even-odd test over every ring of the region, so
// holes subtract and multi-polygons add up correctly.
func regionContains(region *typedef.Region, x, y float64) bool {
	inside := false
	for _, polygon := range region.PixelPolygons {
		for _, ring := range polygon {
			if pointInRing(ring, x, y) {
				inside = !inside
			}
		}
	}
	return inside
}

// pointInRing is the classic ray-casting test against one ring.
func pointInRing(ring typedef.PixelRing, x, y float64) bool {
	inside := false
	n := len(ring)
	if n < 3 {
		return false
	}
	j := n - 1
	for i := 0; i < n; i++ {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > y) != (yj > y) {
			crossX := (xj-xi)*(y-yi)/(yj-yi) + xi
			if x < crossX {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
