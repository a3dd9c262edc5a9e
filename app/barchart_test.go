package app

import (
	"testing"
)

func TestComputeBarLayoutFitsSmallSelections(t *testing.T) {
	l := computeBarLayout(10, 500)
	if l.Scrollable {
		t.Error("10 bars should fit without scrolling")
	}
	if l.Step*10 > 500+1e-9 {
		t.Errorf("10 bars at step %v overflow a 500px plot", l.Step)
	}
	if l.ContentW != 500 {
		t.Errorf("ContentW = %v, want plot width", l.ContentW)
	}
}

func TestComputeBarLayoutBoundary(t *testing.T) {
	if computeBarLayout(maxFitBars, 500).Scrollable {
		t.Errorf("%d bars must still fit", maxFitBars)
	}
	l := computeBarLayout(maxFitBars+1, 500)
	if !l.Scrollable {
		t.Errorf("%d bars must switch to the scrolling layout", maxFitBars+1)
	}
	if l.BarW != fixedBarWidth {
		t.Errorf("scrolling layout bar width = %v, want %v", l.BarW, fixedBarWidth)
	}
	if l.ContentW <= 500 {
		t.Errorf("scrolling layout content width %v should exceed the plot", l.ContentW)
	}
}

func TestComputeBarLayoutEmpty(t *testing.T) {
	if l := computeBarLayout(0, 500); l.Step != 0 || l.Scrollable {
		t.Errorf("empty layout = %+v", l)
	}
}

func TestSortBarsDescScenario(t *testing.T) {
	// Scenario from the acceptance criteria: A density 10, B density 20;
	// the density chart orders [B, A].
	bars := []barEntry{
		{id: "A", town: "A town", value: 10},
		{id: "B", town: "B town", value: 20},
	}
	sortBarsDesc(bars)
	if bars[0].id != "B" || bars[1].id != "A" {
		t.Errorf("order = [%s %s], want [B A]", bars[0].id, bars[1].id)
	}
}

func TestSortBarsDescStableTies(t *testing.T) {
	bars := []barEntry{
		{id: "C", value: 5},
		{id: "A", value: 5},
		{id: "B", value: 7},
	}
	sortBarsDesc(bars)
	if bars[0].id != "B" || bars[1].id != "A" || bars[2].id != "C" {
		t.Errorf("order = [%s %s %s], want [B A C]", bars[0].id, bars[1].id, bars[2].id)
	}
}
