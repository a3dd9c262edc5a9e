package dataset

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	. "gopkg.in/check.v1"

	"taipop/typedef"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) { TestingT(t) }

type LoaderSuite struct {
	ds *typedef.Dataset
}

var _ = Suite(&LoaderSuite{})

func (s *LoaderSuite) SetUpSuite(c *C) {
	ds, err := Load(filepath.Join("testdata", "towns.geojson"), filepath.Join("testdata", "population.json"))
	c.Assert(err, IsNil)
	c.Assert(ds, Not(IsNil))
	s.ds = ds
}

func (s *LoaderSuite) TestRegionCountAndOrder(c *C) {
	c.Assert(len(s.ds.Order), Equals, 4)
	c.Assert(s.ds.Order[0], Equals, "台北市北投區")
	c.Assert(len(s.ds.Regions), Equals, 4)
}

func (s *LoaderSuite) TestPopulationMerge(c *C) {
	daan := s.ds.Region("台北市大安區")
	c.Assert(daan, Not(IsNil))
	c.Assert(daan.HasAttributes, Equals, true)
	c.Assert(daan.Population, Equals, 309835)
	c.Assert(daan.Area, Equals, 11.3614)
	c.Assert(daan.Density, Equals, 27270.0)
	c.Assert(daan.County, Equals, "台北市")
	c.Assert(daan.Town, Equals, "大安區")
}

func (s *LoaderSuite) TestMissingAttributesDegradeToNA(c *C) {
	// 旗津區 is present in the geometry but not in the population document.
	qijin := s.ds.Region("高雄市旗津區")
	c.Assert(qijin, Not(IsNil))
	c.Assert(qijin.HasAttributes, Equals, false)
	c.Assert(qijin.Population, Equals, 0)
}

func (s *LoaderSuite) TestFullNameFallsBackToCountyPlusTown(c *C) {
	// The 旗津區 feature has no FULLNAME property.
	c.Assert(s.ds.HasRegion("高雄市旗津區"), Equals, true)
}

func (s *LoaderSuite) TestMultiPolygonDecoding(c *C) {
	lingya := s.ds.Region("高雄市苓雅區")
	c.Assert(lingya, Not(IsNil))
	c.Assert(len(lingya.Polygons), Equals, 2)
	c.Assert(len(lingya.PixelPolygons), Equals, 2)
}

func (s *LoaderSuite) TestCountiesSortedNorthToSouth(c *C) {
	c.Assert(len(s.ds.Counties), Equals, 2)
	c.Assert(s.ds.Counties[0].Name, Equals, "台北市")
	c.Assert(s.ds.Counties[1].Name, Equals, "高雄市")
	c.Assert(s.ds.Counties[0].CentroidLat > s.ds.Counties[1].CentroidLat, Equals, true)
	c.Assert(len(s.ds.Counties[0].Members), Equals, 2)
	c.Assert(len(s.ds.Counties[1].Members), Equals, 2)
}

func (s *LoaderSuite) TestProjectionNorthAtTop(c *C) {
	c.Assert(s.ds.PixelW > 0, Equals, true)
	c.Assert(s.ds.PixelH > 0, Equals, true)

	north := s.ds.Region("台北市北投區")
	south := s.ds.Region("高雄市旗津區")
	// Smaller pixel Y means further north.
	c.Assert(north.MinY < south.MinY, Equals, true)

	for _, name := range s.ds.Order {
		region := s.ds.Regions[name]
		c.Assert(region.MinX >= 0, Equals, true)
		c.Assert(region.MaxX <= s.ds.PixelW+1e-9, Equals, true)
		c.Assert(region.MinY >= 0, Equals, true)
		c.Assert(region.MaxY <= s.ds.PixelH+1e-9, Equals, true)
	}
}

func (s *LoaderSuite) TestLoadErrorOnMissingFile(c *C) {
	_, err := Load(filepath.Join("testdata", "nope.geojson"), filepath.Join("testdata", "population.json"))
	c.Assert(err, Not(IsNil))
	c.Assert(errors.Is(err, ErrLoad), Equals, true)
}

func (s *LoaderSuite) TestLoadErrorOnBadJSON(c *C) {
	_, err := Load(filepath.Join("testdata", "population.json"), filepath.Join("testdata", "population.json"))
	// A population document is valid JSON but not a FeatureCollection with
	// usable features.
	c.Assert(err, Not(IsNil))
	c.Assert(errors.Is(err, ErrLoad), Equals, true)
}

type CoordSuite struct{}

var _ = Suite(&CoordSuite{})

func (s *CoordSuite) TestParseCoordNodeLeaf(c *C) {
	node, err := parseCoordNode(json.RawMessage(`[121.5, 25.0]`))
	c.Assert(err, IsNil)
	c.Assert(node.IsPoint, Equals, true)
	c.Assert(node.Point, Equals, [2]float64{121.5, 25.0})
}

func (s *CoordSuite) TestParseCoordNodeBranch(c *C) {
	node, err := parseCoordNode(json.RawMessage(`[[[0, 0], [1, 0], [1, 1]]]`))
	c.Assert(err, IsNil)
	c.Assert(node.IsPoint, Equals, false)
	c.Assert(len(node.Children), Equals, 1)
	c.Assert(len(node.Children[0].Children), Equals, 3)
	c.Assert(node.Children[0].Children[2].Point, Equals, [2]float64{1.0, 1.0})
}

func (s *CoordSuite) TestParseCoordNodeRejectsScalars(c *C) {
	_, err := parseCoordNode(json.RawMessage(`42`))
	c.Assert(err, Not(IsNil))
}

func (s *CoordSuite) TestUnsupportedGeometryType(c *C) {
	_, _, err := geometryPolygons(geometry{Type: "Point", Coordinates: json.RawMessage(`[121.5, 25.0]`)})
	c.Assert(err, Not(IsNil))
}
