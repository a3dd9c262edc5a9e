package scale

import "testing"

func TestBucketZeroIsFirstColor(t *testing.T) {
	s := Default()
	if s.Bucket(0) != defaultColors[0] {
		t.Errorf("Bucket(0) = %v, want first color %v", s.Bucket(0), defaultColors[0])
	}
}

func TestBucketNegativeTreatedAsZero(t *testing.T) {
	s := Default()
	if s.Bucket(-50) != s.Bucket(0) {
		t.Errorf("Bucket(-50) = %v, want Bucket(0) = %v", s.Bucket(-50), s.Bucket(0))
	}
}

func TestIndexMonotonicNonDecreasing(t *testing.T) {
	s := Default()
	prev := -1
	for d := 0.0; d <= 20000; d += 37.5 {
		idx := s.Index(d)
		if idx < prev {
			t.Fatalf("Index(%v) = %d went below previous index %d", d, idx, prev)
		}
		prev = idx
	}
}

func TestIndexThresholdBoundaries(t *testing.T) {
	s := Default()
	for i, threshold := range defaultThresholds {
		if got := s.Index(threshold); got != i {
			t.Errorf("Index(%v) = %d, want %d (value on threshold belongs to its bucket)", threshold, got, i)
		}
		if i > 0 {
			if got := s.Index(threshold - 0.001); got != i-1 {
				t.Errorf("Index(%v) = %d, want %d (value just below threshold)", threshold-0.001, got, i-1)
			}
		}
	}
}

func TestLegendCoversAllBuckets(t *testing.T) {
	s := Default()
	legend := s.Legend()
	if len(legend) != s.Buckets() {
		t.Fatalf("legend has %d entries, want %d", len(legend), s.Buckets())
	}
	for i, entry := range legend {
		if entry.Color != defaultColors[i] {
			t.Errorf("legend[%d] color = %v, want %v", i, entry.Color, defaultColors[i])
		}
		if entry.Label == "" {
			t.Errorf("legend[%d] has empty label", i)
		}
	}
	last := legend[len(legend)-1]
	if last.Label != "10,000+" {
		t.Errorf("last legend label = %q, want %q", last.Label, "10,000+")
	}
}

func TestNewPanicsOnBadTables(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("New with mismatched tables did not panic")
		}
	}()
	New([]float64{0, 10}, defaultColors[:1])
}

func TestFormatThousands(t *testing.T) {
	if got := Int(1234567); got != "1,234,567" {
		t.Errorf("Int(1234567) = %q", got)
	}
	if got := Density(16342); got != "16,342 people/km²" {
		t.Errorf("Density(16342) = %q", got)
	}
	if got := Area(271.7997); got != "271.80 km²" {
		t.Errorf("Area(271.7997) = %q", got)
	}
}
