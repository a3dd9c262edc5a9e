package typedef

// Shared data model for the population density studio. Everything in here is
// immutable after dataset load; views and the selection store only read it.

// GeoRing is a closed loop of [lon, lat] pairs.
type GeoRing [][2]float64

// GeoPolygon is one outer ring followed by zero or more hole rings.
type GeoPolygon []GeoRing

// PixelRing is a ring projected into map-local pixel coordinates.
type PixelRing [][2]float64

// PixelPolygon mirrors GeoPolygon in pixel space.
type PixelPolygon []PixelRing

// Region is a single township/district. FullName is the unique key shared by
// the geometry and population documents.
type Region struct {
	FullName string
	County   string
	Town     string

	// Attribute bag merged from the population document. HasAttributes is
	// false when the population document had no record for this region;
	// such regions render as "N/A" and are excluded from aggregate sums.
	Population    int
	Area          float64 // km^2
	Density       float64 // people per km^2, sourced pre-computed
	HasAttributes bool

	Polygons      []GeoPolygon
	PixelPolygons []PixelPolygon

	// Pixel-space bounding box across all polygons, for culling and
	// cheap hit-test rejection.
	MinX, MinY float64
	MaxX, MaxY float64

	CentroidLat float64
}

// County groups regions by their parent administrative county.
type County struct {
	Name        string
	Members     []string // region full names in document order
	CentroidLat float64  // mean of member centroid latitudes
}

// Stats are the aggregates recomputed on every selection change.
type Stats struct {
	Count      int
	Population int
	Area       float64
	AvgDensity float64 // Population/Area when Area > 0, else 0
}

// Dataset is the merged geometry + population data, immutable after load.
type Dataset struct {
	Regions map[string]*Region
	Order   []string // full names in geometry document order

	// Counties sorted by descending centroid latitude (north to south).
	Counties []*County

	// Projected map extent in pixels.
	PixelW float64
	PixelH float64
}

// Region returns the region for the given full name, or nil.
func (d *Dataset) Region(fullName string) *Region {
	if d == nil {
		return nil
	}
	return d.Regions[fullName]
}

// HasRegion reports whether the full name exists in the dataset.
func (d *Dataset) HasRegion(fullName string) bool {
	return d.Region(fullName) != nil
}

// County returns the county entry with the given name, or nil.
func (d *Dataset) County(name string) *County {
	for _, c := range d.Counties {
		if c.Name == name {
			return c
		}
	}
	return nil
}
