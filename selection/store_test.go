package selection

import (
	"math"
	"reflect"
	"testing"

	"taipop/typedef"
)

// testDataset builds the two-region dataset from the acceptance scenario:
// A: pop=100 area=10 (density 10), B: pop=400 area=20 (density 20), both in
// county "North", plus region C in county "South" without attributes.
func testDataset() *typedef.Dataset {
	regions := map[string]*typedef.Region{
		"A": {FullName: "A", County: "North", Town: "A town", Population: 100, Area: 10, Density: 10, HasAttributes: true},
		"B": {FullName: "B", County: "North", Town: "B town", Population: 400, Area: 20, Density: 20, HasAttributes: true},
		"C": {FullName: "C", County: "South", Town: "C town"},
	}
	return &typedef.Dataset{
		Regions: regions,
		Order:   []string{"A", "B", "C"},
		Counties: []*typedef.County{
			{Name: "North", Members: []string{"A", "B"}, CentroidLat: 25},
			{Name: "South", Members: []string{"C"}, CentroidLat: 22},
		},
	}
}

func TestSelectIdempotent(t *testing.T) {
	store := NewStore(testDataset())
	notifies := 0
	store.Subscribe(func() { notifies++ })

	store.Select("A")
	store.Select("A")

	if !store.IsSelected("A") || store.Count() != 1 {
		t.Fatalf("after double Select(A): selected=%v count=%d", store.IsSelected("A"), store.Count())
	}
	if notifies != 1 {
		t.Errorf("notifies = %d, want 1 (idempotent re-select is a no-op)", notifies)
	}
}

func TestDeselectIdempotent(t *testing.T) {
	store := NewStore(testDataset())
	notifies := 0
	store.Subscribe(func() { notifies++ })

	store.Deselect("A") // not selected, no-op
	if notifies != 0 {
		t.Fatalf("deselecting an unselected id notified %d times", notifies)
	}

	store.Select("A")
	store.Deselect("A")
	store.Deselect("A")
	if store.IsSelected("A") {
		t.Error("A still selected after Deselect")
	}
	if notifies != 2 {
		t.Errorf("notifies = %d, want 2", notifies)
	}
}

func TestUnknownIdIgnored(t *testing.T) {
	store := NewStore(testDataset())
	store.Select("Atlantis")
	if store.Count() != 0 {
		t.Error("unknown id entered the selection")
	}
}

func TestSelectAllStatsScenario(t *testing.T) {
	store := NewStore(testDataset())
	store.SelectAll()

	stats := store.Stats()
	if stats.Count != 3 {
		t.Errorf("Count = %d, want 3", stats.Count)
	}
	if stats.Population != 500 {
		t.Errorf("Population = %d, want 500", stats.Population)
	}
	if stats.Area != 30 {
		t.Errorf("Area = %v, want 30", stats.Area)
	}
	if math.Round(stats.AvgDensity) != 17 {
		t.Errorf("round(AvgDensity) = %v, want 17", math.Round(stats.AvgDensity))
	}
}

func TestStatsSkipMissingAttributes(t *testing.T) {
	store := NewStore(testDataset())
	store.Select("C")

	stats := store.Stats()
	if stats.Count != 1 {
		t.Errorf("Count = %d, want 1 (C counts toward the selection)", stats.Count)
	}
	if stats.Population != 0 || stats.Area != 0 || stats.AvgDensity != 0 {
		t.Errorf("attribute-less region leaked into sums: %+v", stats)
	}
}

func TestStatsMatchIndividualSums(t *testing.T) {
	store := NewStore(testDataset())
	sequence := []struct {
		op string
		id string
	}{
		{"select", "A"}, {"select", "B"}, {"deselect", "A"},
		{"select", "C"}, {"select", "A"}, {"deselect", "B"},
	}

	for _, step := range sequence {
		if step.op == "select" {
			store.Select(step.id)
		} else {
			store.Deselect(step.id)
		}

		wantPop, wantArea := 0, 0.0
		for _, id := range store.Selected() {
			region := store.Dataset().Regions[id]
			if region.HasAttributes {
				wantPop += region.Population
				wantArea += region.Area
			}
		}
		stats := store.Stats()
		if stats.Population != wantPop || stats.Area != wantArea {
			t.Fatalf("after %s(%s): stats %+v, want pop=%d area=%v", step.op, step.id, stats, wantPop, wantArea)
		}
	}
}

func TestToggleCountySelectsMissingMembers(t *testing.T) {
	store := NewStore(testDataset())
	store.Select("A")

	store.ToggleCounty("North")
	if !store.IsSelected("A") || !store.IsSelected("B") {
		t.Error("ToggleCounty did not select the missing member")
	}
	if !store.CountyFullySelected("North") {
		t.Error("North should be fully selected")
	}

	// Fully selected county toggles off as one operation.
	store.ToggleCounty("North")
	if store.IsSelected("A") || store.IsSelected("B") {
		t.Error("ToggleCounty on a fully selected county did not deselect its members")
	}
}

func TestToggleCountyInvolution(t *testing.T) {
	store := NewStore(testDataset())
	store.Select("A")
	store.Select("C")
	before := store.Selected()

	store.ToggleCounty("North")
	store.ToggleCounty("North")

	if !reflect.DeepEqual(store.Selected(), before) {
		t.Errorf("double ToggleCounty changed the selection: %v -> %v", before, store.Selected())
	}
}

func TestClear(t *testing.T) {
	store := NewStore(testDataset())
	notifies := 0
	store.Subscribe(func() { notifies++ })

	store.Clear() // already empty, no notify
	if notifies != 0 {
		t.Fatal("Clear on empty selection notified")
	}

	store.SelectAll()
	store.Clear()
	if store.Count() != 0 {
		t.Error("selection not empty after Clear")
	}
	if stats := store.Stats(); stats != (typedef.Stats{}) {
		t.Errorf("stats not zeroed after Clear: %+v", stats)
	}
}

func TestClickThenDoubleClickNetEffect(t *testing.T) {
	// The map view translates a double click into Select followed by
	// Deselect; the net effect must be "not selected".
	store := NewStore(testDataset())
	store.Select("A")
	store.Deselect("A")
	if store.IsSelected("A") {
		t.Error("A selected after select/deselect pair")
	}

	store.Select("B")
	if !store.IsSelected("B") {
		t.Error("single select left B unselected")
	}
}

func TestNotifyFanOutReachesAllSubscribers(t *testing.T) {
	store := NewStore(testDataset())
	var order []string
	store.Subscribe(func() { order = append(order, "info") })
	store.Subscribe(func() { order = append(order, "list") })
	store.Subscribe(func() { order = append(order, "charts") })

	store.Select("A")
	if len(order) != 3 {
		t.Fatalf("notified %d subscribers, want 3", len(order))
	}
}
