package exporter

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"taipop/typedef"
)

func testDataset() *typedef.Dataset {
	return &typedef.Dataset{
		Regions: map[string]*typedef.Region{
			"A": {FullName: "A", County: "North", Town: "A town", Population: 100, Area: 10, Density: 10, HasAttributes: true},
			"B": {FullName: "B", County: "North", Town: "B town", Population: 400, Area: 20, Density: 20, HasAttributes: true},
			"C": {FullName: "C", County: "South", Town: "C town"},
		},
		Order: []string{"A", "B", "C"},
	}
}

func TestRenderEmptySelection(t *testing.T) {
	_, err := Render(testDataset(), nil)
	if !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("err = %v, want ErrEmptySelection", err)
	}
}

func TestRenderSingleRegion(t *testing.T) {
	payload, err := Render(testDataset(), []string{"A"})
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.HasPrefix(payload, utf8BOM) {
		t.Error("payload does not start with a UTF-8 BOM")
	}

	lines := strings.Split(strings.TrimRight(string(bytes.TrimPrefix(payload, utf8BOM)), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header + 1 row: %q", len(lines), lines)
	}
	if lines[0] != "Township,County,District,Population,Area_km2,Density" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "A,North,A town,100,10,10" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestRenderSortsByFullName(t *testing.T) {
	payload, err := Render(testDataset(), []string{"B", "A"})
	if err != nil {
		t.Fatal(err)
	}
	body := string(bytes.TrimPrefix(payload, utf8BOM))
	if strings.Index(body, "\nA,") > strings.Index(body, "\nB,") {
		t.Errorf("rows not sorted by full name:\n%s", body)
	}
}

func TestRenderMissingAttributesAsNA(t *testing.T) {
	payload, err := Render(testDataset(), []string{"C"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(payload), "C,South,C town,N/A,N/A,N/A") {
		t.Errorf("missing-attribute row not rendered as N/A:\n%s", payload)
	}
}

func TestWriteFileProducesCSV(t *testing.T) {
	t.Setenv("TAIPOP_DATA_DIR", t.TempDir())

	path, err := WriteFile(testDataset(), []string{"A", "B"})
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(bytes.TrimPrefix(data, utf8BOM)), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("exported file has %d lines, want 3", len(lines))
	}
}

func TestWriteFileEmptySelectionWritesNothing(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TAIPOP_DATA_DIR", dir)

	if _, err := WriteFile(testDataset(), nil); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("err = %v, want ErrEmptySelection", err)
	}
	entries, _ := os.ReadDir(dir)
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".csv") {
			t.Errorf("a CSV was written for an empty selection: %s", entry.Name())
		}
	}
}
