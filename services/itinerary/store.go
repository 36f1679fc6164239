package itinerary

import (
	"errors"
	"sort"
	"strconv"

	"winetrail/models"
)

// ErrEntryNotFound is returned when an update names a winery that is not in the itinerary.
var ErrEntryNotFound = errors.New("winery is not in the itinerary")

// Action computes a candidate next state from the current one.
type Action func(s *Store, current models.Itinerary) (models.Itinerary, error)

// Listener is notified after a change is committed.
type Listener func(models.Itinerary)

// Store owns one itinerary. Every mutation goes through Dispatch, which commits the
// candidate state only when it differs structurally from the current one, so derived
// recomputations never feed back into the store. A Store is not safe for concurrent use.
type Store struct {
	state     models.Itinerary
	version   int
	listeners []Listener
	indexes   map[string]*SlotIndex
}

// NewStore returns a store seeded with a copy of initial.
func NewStore(initial models.Itinerary) *Store {
	return &Store{
		state:   initial.Clone(),
		indexes: make(map[string]*SlotIndex),
	}
}

// Subscribe registers l for committed changes.
func (s *Store) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Version counts committed changes.
func (s *Store) Version() int {
	return s.version
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() models.Itinerary {
	return s.state.Clone()
}

// Len is the number of entries.
func (s *Store) Len() int {
	return len(s.state.Entries)
}

// Entry returns the entry for wineryID.
func (s *Store) Entry(wineryID string) (models.ItineraryEntry, bool) {
	for _, e := range s.state.Entries {
		if e.Winery.ID == wineryID {
			return models.ItineraryEntry{Winery: e.Winery, Selection: e.Selection.Clone()}, true
		}
	}
	return models.ItineraryEntry{}, false
}

// Dispatch applies a, commits the result if it changed, and reports whether it did.
func (s *Store) Dispatch(a Action) (bool, error) {
	next, err := a(s, s.state.Clone())
	if err != nil {
		return false, err
	}
	if next.Equal(s.state) {
		return false, nil
	}
	s.state = next
	s.version++
	for _, l := range s.listeners {
		l(s.state.Clone())
	}
	return true, nil
}

// Add appends a winery with an empty selection. Adding a winery already present is a no-op.
func (s *Store) Add(w models.Winery) bool {
	changed, _ := s.Dispatch(AddWinery(w))
	return changed
}

// Update replaces the selection of one entry.
func (s *Store) Update(wineryID string, sel models.BookingSelection) (bool, error) {
	return s.Dispatch(UpdateSelection(wineryID, sel))
}

// Remove drops the entry for wineryID.
func (s *Store) Remove(wineryID string) bool {
	changed, _ := s.Dispatch(RemoveWinery(wineryID))
	return changed
}

// Clear empties the itinerary.
func (s *Store) Clear() bool {
	changed, _ := s.Dispatch(ClearAll())
	return changed
}

// AddWinery appends w unless an entry with the same id exists.
func AddWinery(w models.Winery) Action {
	return func(_ *Store, cur models.Itinerary) (models.Itinerary, error) {
		for _, e := range cur.Entries {
			if e.Winery.ID == w.ID {
				return cur, nil
			}
		}
		cur.Entries = append(cur.Entries, models.ItineraryEntry{Winery: w})
		return cur, nil
	}
}

// UpdateSelection resolves sel against the entry's winery and replaces only that entry's selection.
func UpdateSelection(wineryID string, sel models.BookingSelection) Action {
	return func(s *Store, cur models.Itinerary) (models.Itinerary, error) {
		for i, e := range cur.Entries {
			if e.Winery.ID != wineryID {
				continue
			}
			resolved, err := ResolveSelection(e.Winery, s.index(e.Winery, sel.TastingIndex), e.Selection, sel)
			if err != nil {
				return cur, err
			}
			cur.Entries[i].Selection = resolved
			return cur, nil
		}
		return cur, ErrEntryNotFound
	}
}

// RemoveWinery filters out the entry for wineryID.
func RemoveWinery(wineryID string) Action {
	return func(_ *Store, cur models.Itinerary) (models.Itinerary, error) {
		kept := cur.Entries[:0]
		for _, e := range cur.Entries {
			if e.Winery.ID != wineryID {
				kept = append(kept, e)
			}
		}
		cur.Entries = kept
		return cur, nil
	}
}

// ClearAll empties the itinerary.
func ClearAll() Action {
	return func(_ *Store, _ models.Itinerary) (models.Itinerary, error) {
		return models.Itinerary{}, nil
	}
}

// SlotIndex returns the memoized slot index of one tasting of an entry's winery.
func (s *Store) SlotIndex(wineryID string, tastingIndex int) (*SlotIndex, bool) {
	for _, e := range s.state.Entries {
		if e.Winery.ID == wineryID {
			return s.index(e.Winery, tastingIndex), true
		}
	}
	return nil, false
}

func (s *Store) index(w models.Winery, tastingIndex int) *SlotIndex {
	key := w.ID + "#" + strconv.Itoa(tastingIndex)
	if idx, ok := s.indexes[key]; ok {
		return idx
	}
	tasting, _ := w.Tasting(tastingIndex)
	idx := GroupByDate(tasting.Slots())
	s.indexes[key] = idx
	return idx
}

// Ordered returns the entries sorted by selected time, entries without a time last.
// It never writes back to the store.
func (s *Store) Ordered() []models.ItineraryEntry {
	return OrderByTime(s.state)
}

// OrderByTime sorts a copy of the itinerary's entries by selected time ascending.
func OrderByTime(it models.Itinerary) []models.ItineraryEntry {
	entries := it.Clone().Entries
	at := make(map[string]int64, len(entries))
	has := make(map[string]bool, len(entries))
	for _, e := range entries {
		if t, ok := ParseSlot(e.Selection.Time); ok && e.Selection.Time != "" {
			at[e.Winery.ID] = t.UnixNano()
			has[e.Winery.ID] = true
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Winery.ID, entries[j].Winery.ID
		if has[a] != has[b] {
			return has[a]
		}
		return at[a] < at[b]
	})
	return entries
}
