package exporter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/atotto/clipboard"

	"taipop/storage"
	"taipop/typedef"
)

// ErrEmptySelection is returned when an export is requested with nothing
// selected. Callers surface it as a toast notice, not a failure.
var ErrEmptySelection = errors.New("no regions selected")

// utf8BOM makes the produced CSV open correctly in spreadsheet tools that
// guess the encoding from a byte-order mark.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var header = []string{"Township", "County", "District", "Population", "Area_km2", "Density"}

// Render produces the CSV payload for the given region ids: UTF-8 with BOM,
// header row, one row per region sorted by full name. Regions without
// population attributes export as N/A.
func Render(ds *typedef.Dataset, ids []string) ([]byte, error) {
	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}

	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, id := range sorted {
		region := ds.Region(id)
		if region == nil {
			continue
		}
		if err := w.Write(row(region)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func row(region *typedef.Region) []string {
	if !region.HasAttributes {
		return []string{region.FullName, region.County, region.Town, "N/A", "N/A", "N/A"}
	}
	return []string{
		region.FullName,
		region.County,
		region.Town,
		strconv.Itoa(region.Population),
		strconv.FormatFloat(region.Area, 'f', -1, 64),
		strconv.FormatFloat(region.Density, 'f', -1, 64),
	}
}

// WriteFile renders the selection and writes it to a timestamped CSV under
// the exports directory, returning the written path.
func WriteFile(ds *typedef.Dataset, ids []string) (string, error) {
	payload, err := Render(ds, ids)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("townships_%s.csv", time.Now().Format("20060102_150405"))
	path, err := storage.ExportFile(name)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", err
	}
	fmt.Printf("[EXPORT] Wrote %d regions to %s\n", len(ids), path)
	return path, nil
}

// Copy renders the selection and places the CSV on the system clipboard.
func Copy(ds *typedef.Dataset, ids []string) error {
	payload, err := Render(ds, ids)
	if err != nil {
		return err
	}
	// Clipboard text does not want the BOM.
	return clipboard.WriteAll(string(bytes.TrimPrefix(payload, utf8BOM)))
}
