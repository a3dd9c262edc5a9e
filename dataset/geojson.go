package dataset

import (
	"encoding/json"
	"fmt"

	"taipop/typedef"
)

// Minimal GeoJSON decoder for the geometry document: a FeatureCollection of
// Polygon/MultiPolygon features with full-name/county/town properties.
// Coordinates are decoded into typedef.CoordNode trees first so downstream
// walks never inspect raw JSON shapes.

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string            `json:"type"`
	Properties featureProperties `json:"properties"`
	Geometry   geometry          `json:"geometry"`
}

type featureProperties struct {
	FullName string `json:"FULLNAME"`
	County   string `json:"COUNTYNAME"`
	Town     string `json:"TOWNNAME"`
}

type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// parseCoordNode turns one GeoJSON coordinates value into a tagged tree.
// A node is a leaf when its first element is a number, otherwise a branch.
func parseCoordNode(raw json.RawMessage) (typedef.CoordNode, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return typedef.CoordNode{}, fmt.Errorf("coordinates are not a list: %w", err)
	}
	if len(items) == 0 {
		return typedef.CoordNode{}, nil
	}

	var first float64
	if err := json.Unmarshal(items[0], &first); err == nil {
		// Leaf pair. GeoJSON allows extra ordinates (altitude); only the
		// first two matter here.
		if len(items) < 2 {
			return typedef.CoordNode{}, fmt.Errorf("coordinate pair has %d elements", len(items))
		}
		var second float64
		if err := json.Unmarshal(items[1], &second); err != nil {
			return typedef.CoordNode{}, fmt.Errorf("coordinate pair is mixed: %w", err)
		}
		return typedef.CoordNode{IsPoint: true, Point: [2]float64{first, second}}, nil
	}

	children := make([]typedef.CoordNode, 0, len(items))
	for _, item := range items {
		child, err := parseCoordNode(item)
		if err != nil {
			return typedef.CoordNode{}, err
		}
		children = append(children, child)
	}
	return typedef.CoordNode{Children: children}, nil
}

// nodeRing converts a branch whose children are leaf pairs into a GeoRing.
func nodeRing(node typedef.CoordNode) (typedef.GeoRing, error) {
	ring := make(typedef.GeoRing, 0, len(node.Children))
	for _, child := range node.Children {
		if !child.IsPoint {
			return nil, fmt.Errorf("ring contains a nested list where a pair was expected")
		}
		ring = append(ring, child.Point)
	}
	return ring, nil
}

// nodePolygon converts a branch of rings into a GeoPolygon.
func nodePolygon(node typedef.CoordNode) (typedef.GeoPolygon, error) {
	polygon := make(typedef.GeoPolygon, 0, len(node.Children))
	for _, ringNode := range node.Children {
		ring, err := nodeRing(ringNode)
		if err != nil {
			return nil, err
		}
		if len(ring) >= 3 {
			polygon = append(polygon, ring)
		}
	}
	return polygon, nil
}

// geometryPolygons normalizes Polygon and MultiPolygon geometries into a
// polygon slice and returns the coordinate tree for centroid walks.
func geometryPolygons(geom geometry) ([]typedef.GeoPolygon, typedef.CoordNode, error) {
	node, err := parseCoordNode(geom.Coordinates)
	if err != nil {
		return nil, typedef.CoordNode{}, err
	}

	switch geom.Type {
	case "Polygon":
		polygon, err := nodePolygon(node)
		if err != nil {
			return nil, typedef.CoordNode{}, err
		}
		return []typedef.GeoPolygon{polygon}, node, nil
	case "MultiPolygon":
		polygons := make([]typedef.GeoPolygon, 0, len(node.Children))
		for _, polyNode := range node.Children {
			polygon, err := nodePolygon(polyNode)
			if err != nil {
				return nil, typedef.CoordNode{}, err
			}
			polygons = append(polygons, polygon)
		}
		return polygons, node, nil
	default:
		return nil, typedef.CoordNode{}, fmt.Errorf("unsupported geometry type %q", geom.Type)
	}
}
