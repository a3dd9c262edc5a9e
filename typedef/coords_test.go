package typedef

import (
	"math"
	"testing"
)

func branch(children ...CoordNode) CoordNode {
	return CoordNode{Children: children}
}

func leaf(lon, lat float64) CoordNode {
	return CoordNode{IsPoint: true, Point: [2]float64{lon, lat}}
}

func TestWalkPointsKeepsDocumentOrder(t *testing.T) {
	node := branch(
		branch(leaf(1, 10), leaf(2, 20)),
		branch(branch(leaf(3, 30)), leaf(4, 40)),
	)

	var lats []float64
	node.WalkPoints(func(_, lat float64) {
		lats = append(lats, lat)
	})

	want := []float64{10, 20, 30, 40}
	if len(lats) != len(want) {
		t.Fatalf("visited %d points, want %d", len(lats), len(want))
	}
	for i := range want {
		if lats[i] != want[i] {
			t.Errorf("visit %d: lat = %v, want %v", i, lats[i], want[i])
		}
	}
}

func TestMeanLat(t *testing.T) {
	node := branch(leaf(0, 22), branch(leaf(0, 24), leaf(0, 26)))
	if got := node.MeanLat(); math.Abs(got-24) > 1e-12 {
		t.Errorf("MeanLat = %v, want 24", got)
	}
}

func TestMeanLatEmpty(t *testing.T) {
	if got := branch().MeanLat(); got != 0 {
		t.Errorf("MeanLat of empty node = %v, want 0", got)
	}
}
