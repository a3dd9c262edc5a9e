package selection

import (
	"sort"

	"taipop/typedef"
)

// Store owns the set of selected region ids and the aggregate statistics
// derived from it. It is an explicit instance handed to view components;
// views subscribe for change notifications instead of polling globals.
//
// All mutations happen on the UI thread inside a single event handler, so
// the store is deliberately unlocked. Every mutation that changes the set
// runs one full stats recompute followed by one synchronous notify fan-out.
type Store struct {
	dataset     *typedef.Dataset
	selected    map[string]struct{}
	stats       typedef.Stats
	subscribers []func()
}

// NewStore creates an empty selection over the given dataset.
func NewStore(ds *typedef.Dataset) *Store {
	return &Store{
		dataset:  ds,
		selected: make(map[string]struct{}),
	}
}

// Subscribe registers a callback invoked after every selection change.
func (s *Store) Subscribe(fn func()) {
	s.subscribers = append(s.subscribers, fn)
}

// Select adds a region to the selection. Idempotent; unknown ids are
// ignored so the selection always stays a subset of the dataset keys.
func (s *Store) Select(id string) {
	if !s.dataset.HasRegion(id) {
		return
	}
	if _, ok := s.selected[id]; ok {
		return
	}
	s.selected[id] = struct{}{}
	s.changed()
}

// Deselect removes a region from the selection. Idempotent.
func (s *Store) Deselect(id string) {
	if _, ok := s.selected[id]; !ok {
		return
	}
	delete(s.selected, id)
	s.changed()
}

// SelectAll adds every known region to the selection.
func (s *Store) SelectAll() {
	added := false
	for _, name := range s.dataset.Order {
		if _, ok := s.selected[name]; !ok {
			s.selected[name] = struct{}{}
			added = true
		}
	}
	if added {
		s.changed()
	}
}

// Clear empties the selection.
func (s *Store) Clear() {
	if len(s.selected) == 0 {
		return
	}
	s.selected = make(map[string]struct{})
	s.changed()
}

// ToggleCounty toggles a whole county as one logical operation: when every
// member region is already selected the county is deselected, otherwise the
// not-yet-selected members are added.
func (s *Store) ToggleCounty(countyName string) {
	county := s.dataset.County(countyName)
	if county == nil || len(county.Members) == 0 {
		return
	}

	if s.CountyFullySelected(countyName) {
		for _, member := range county.Members {
			delete(s.selected, member)
		}
	} else {
		for _, member := range county.Members {
			s.selected[member] = struct{}{}
		}
	}
	s.changed()
}

// IsSelected reports membership of a region id.
func (s *Store) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// CountyFullySelected reports whether every member of the county is
// currently selected.
func (s *Store) CountyFullySelected(countyName string) bool {
	county := s.dataset.County(countyName)
	if county == nil || len(county.Members) == 0 {
		return false
	}
	for _, member := range county.Members {
		if _, ok := s.selected[member]; !ok {
			return false
		}
	}
	return true
}

// Count returns the number of selected regions.
func (s *Store) Count() int {
	return len(s.selected)
}

// Selected returns a name-sorted snapshot of the selected ids.
func (s *Store) Selected() []string {
	out := make([]string, 0, len(s.selected))
	for id := range s.selected {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Stats returns the aggregates for the current selection.
func (s *Store) Stats() typedef.Stats {
	return s.stats
}

// Dataset returns the merged dataset the selection is defined over.
func (s *Store) Dataset() *typedef.Dataset {
	return s.dataset
}

// changed recomputes the aggregates from scratch and notifies subscribers.
// Full recompute on every change: the dataset is a few hundred regions.
func (s *Store) changed() {
	stats := typedef.Stats{Count: len(s.selected)}
	for id := range s.selected {
		region := s.dataset.Regions[id]
		if region == nil || !region.HasAttributes {
			continue
		}
		stats.Population += region.Population
		stats.Area += region.Area
	}
	if stats.Area > 0 {
		stats.AvgDensity = float64(stats.Population) / stats.Area
	}
	s.stats = stats

	for _, fn := range s.subscribers {
		fn()
	}
}
