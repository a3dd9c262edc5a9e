package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"taipop/typedef"
)

// ErrLoad wraps any fetch or parse failure of the two input documents.
// Loading is a single attempt; the caller surfaces the failure to the user
// and leaves the map unrendered.
var ErrLoad = errors.New("dataset load failed")

// mapPixelWidth is the width of the projected map coordinate space. Height
// follows from the dataset's lon/lat aspect ratio.
const mapPixelWidth = 2000.0

var httpClient = &http.Client{Timeout: 30 * time.Second}

// populationRecord is one entry of the attribute document, keyed by region
// full name.
type populationRecord struct {
	Population int     `json:"population"`
	Area       float64 `json:"area"`
	Density    float64 `json:"density"`
}

// Load fetches the geometry and population documents, merges population
// attributes into each region by full name, projects the geometry into map
// pixel space, and groups regions into counties sorted north to south.
func Load(geoPath, popPath string) (*typedef.Dataset, error) {
	geoBytes, err := fetch(geoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: geometry document %s: %v", ErrLoad, geoPath, err)
	}
	popBytes, err := fetch(popPath)
	if err != nil {
		return nil, fmt.Errorf("%w: population document %s: %v", ErrLoad, popPath, err)
	}

	var collection featureCollection
	if err := json.Unmarshal(geoBytes, &collection); err != nil {
		return nil, fmt.Errorf("%w: parsing geometry document: %v", ErrLoad, err)
	}

	var records map[string]populationRecord
	if err := json.Unmarshal(popBytes, &records); err != nil {
		return nil, fmt.Errorf("%w: parsing population document: %v", ErrLoad, err)
	}

	ds, err := build(collection, records)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	merged := 0
	for _, name := range ds.Order {
		if ds.Regions[name].HasAttributes {
			merged++
		}
	}
	fmt.Printf("[DATASET] Loaded %d regions (%d with population data) in %d counties\n",
		len(ds.Order), merged, len(ds.Counties))
	return ds, nil
}

// fetch reads a document from an http(s) URL or a local file path.
func fetch(path string) ([]byte, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		resp, err := httpClient.Get(path)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(path)
}

func build(collection featureCollection, records map[string]populationRecord) (*typedef.Dataset, error) {
	ds := &typedef.Dataset{Regions: make(map[string]*typedef.Region, len(collection.Features))}

	minLon, minLat := 1e18, 1e18
	maxLon, maxLat := -1e18, -1e18

	for _, feat := range collection.Features {
		props := feat.Properties
		fullName := props.FullName
		if fullName == "" {
			fullName = props.County + props.Town
		}
		if fullName == "" {
			fmt.Println("[DATASET] Skipping feature with no name properties")
			continue
		}
		if _, dup := ds.Regions[fullName]; dup {
			fmt.Printf("[DATASET] Skipping duplicate region %s\n", fullName)
			continue
		}

		polygons, coordTree, err := geometryPolygons(feat.Geometry)
		if err != nil {
			return nil, fmt.Errorf("region %s: %v", fullName, err)
		}
		if len(polygons) == 0 {
			fmt.Printf("[DATASET] Skipping region %s with empty geometry\n", fullName)
			continue
		}

		region := &typedef.Region{
			FullName:    fullName,
			County:      props.County,
			Town:        props.Town,
			Polygons:    polygons,
			CentroidLat: coordTree.MeanLat(),
		}
		if rec, ok := records[fullName]; ok {
			region.Population = rec.Population
			region.Area = rec.Area
			region.Density = rec.Density
			region.HasAttributes = true
		}

		for _, polygon := range polygons {
			for _, ring := range polygon {
				for _, pt := range ring {
					if pt[0] < minLon {
						minLon = pt[0]
					}
					if pt[0] > maxLon {
						maxLon = pt[0]
					}
					if pt[1] < minLat {
						minLat = pt[1]
					}
					if pt[1] > maxLat {
						maxLat = pt[1]
					}
				}
			}
		}

		ds.Regions[fullName] = region
		ds.Order = append(ds.Order, fullName)
	}

	if len(ds.Order) == 0 {
		return nil, fmt.Errorf("geometry document contains no usable features")
	}

	project(ds, minLon, minLat, maxLon, maxLat)
	groupCounties(ds)
	return ds, nil
}

// project maps lon/lat into a map-local pixel space, north at the top.
func project(ds *typedef.Dataset, minLon, minLat, maxLon, maxLat float64) {
	lonRange := maxLon - minLon
	latRange := maxLat - minLat
	if lonRange <= 0 {
		lonRange = 1
	}
	if latRange <= 0 {
		latRange = 1
	}

	ds.PixelW = mapPixelWidth
	ds.PixelH = mapPixelWidth * latRange / lonRange

	for _, name := range ds.Order {
		region := ds.Regions[name]
		region.MinX, region.MinY = 1e18, 1e18
		region.MaxX, region.MaxY = -1e18, -1e18
		region.PixelPolygons = make([]typedef.PixelPolygon, 0, len(region.Polygons))
		for _, polygon := range region.Polygons {
			pixelPolygon := make(typedef.PixelPolygon, 0, len(polygon))
			for _, ring := range polygon {
				pixelRing := make(typedef.PixelRing, 0, len(ring))
				for _, pt := range ring {
					x := (pt[0] - minLon) / lonRange * ds.PixelW
					y := (maxLat - pt[1]) / latRange * ds.PixelH
					pixelRing = append(pixelRing, [2]float64{x, y})
					if x < region.MinX {
						region.MinX = x
					}
					if x > region.MaxX {
						region.MaxX = x
					}
					if y < region.MinY {
						region.MinY = y
					}
					if y > region.MaxY {
						region.MaxY = y
					}
				}
				pixelPolygon = append(pixelPolygon, pixelRing)
			}
			region.PixelPolygons = append(region.PixelPolygons, pixelPolygon)
		}
	}
}

// groupCounties builds county entries and sorts them north to south by mean
// member centroid latitude.
func groupCounties(ds *typedef.Dataset) {
	byName := make(map[string]*typedef.County)
	for _, name := range ds.Order {
		region := ds.Regions[name]
		county := byName[region.County]
		if county == nil {
			county = &typedef.County{Name: region.County}
			byName[region.County] = county
			ds.Counties = append(ds.Counties, county)
		}
		county.Members = append(county.Members, name)
	}

	for _, county := range ds.Counties {
		sum := 0.0
		for _, member := range county.Members {
			sum += ds.Regions[member].CentroidLat
		}
		county.CentroidLat = sum / float64(len(county.Members))
	}

	sort.SliceStable(ds.Counties, func(i, j int) bool {
		return ds.Counties[i].CentroidLat > ds.Counties[j].CentroidLat
	})
}
