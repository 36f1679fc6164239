package itinerary

import (
	"sort"
	"strings"
	"time"
)

// DateLayout is the calendar-date key used for slot buckets.
const DateLayout = "2006-01-02"

var slotLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseSlot parses a slot timestamp. Timestamps without a zone are read as UTC.
func ParseSlot(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range slotLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Slot is one bookable timestamp of a winery.
type Slot struct {
	Raw string    `json:"slot"`
	At  time.Time `json:"-"`
}

// Label is the time-of-day part of the raw timestamp, e.g. "10:00Z".
func (s Slot) Label() string {
	if i := strings.IndexByte(s.Raw, 'T'); i >= 0 {
		return s.Raw[i+1:]
	}
	return s.Raw
}

// SlotIndex groups a winery's slots by calendar date. It is built once and only read afterwards.
type SlotIndex struct {
	buckets map[string][]Slot
	dates   []string
	raw     map[string]string
	invalid []string
}

// GroupByDate partitions timestamps into per-date buckets sorted ascending.
// Unparseable timestamps are kept aside and reported by Invalid.
func GroupByDate(slots []string) *SlotIndex {
	idx := &SlotIndex{
		buckets: make(map[string][]Slot),
		raw:     make(map[string]string, len(slots)),
	}
	for _, raw := range slots {
		at, ok := ParseSlot(raw)
		if !ok {
			idx.invalid = append(idx.invalid, raw)
			continue
		}
		key := at.Format(DateLayout)
		idx.buckets[key] = append(idx.buckets[key], Slot{Raw: raw, At: at})
		idx.raw[raw] = key
	}
	for key, bucket := range idx.buckets {
		sort.SliceStable(bucket, func(i, j int) bool { return bucket[i].At.Before(bucket[j].At) })
		idx.dates = append(idx.dates, key)
	}
	sort.Strings(idx.dates)
	return idx
}

// Dates returns the bucket keys in ascending order.
func (idx *SlotIndex) Dates() []string {
	return append([]string(nil), idx.dates...)
}

// Bounds returns the first and last bucket keys, for bounding a date picker.
func (idx *SlotIndex) Bounds() (first, last string, ok bool) {
	if len(idx.dates) == 0 {
		return "", "", false
	}
	return idx.dates[0], idx.dates[len(idx.dates)-1], true
}

// TimesFor returns the sorted bucket for date, or nil if the date has no slots.
func (idx *SlotIndex) TimesFor(date string) []Slot {
	return append([]Slot(nil), idx.buckets[date]...)
}

// HasDate reports whether date is one of the bucket keys.
func (idx *SlotIndex) HasDate(date string) bool {
	_, ok := idx.buckets[date]
	return ok
}

// DateOf returns the bucket key of a raw slot, if the slot belongs to the index.
func (idx *SlotIndex) DateOf(raw string) (string, bool) {
	key, ok := idx.raw[raw]
	return key, ok
}

// Contains reports whether raw is one of the indexed slots.
func (idx *SlotIndex) Contains(raw string) bool {
	_, ok := idx.raw[raw]
	return ok
}

// SelectDate returns candidate if it is a known date, otherwise current.
// The bool reports whether candidate was accepted.
func (idx *SlotIndex) SelectDate(current, candidate string) (string, bool) {
	if idx.HasDate(candidate) {
		return candidate, true
	}
	return current, false
}

// Flatten returns every indexed slot in date then time order.
func (idx *SlotIndex) Flatten() []string {
	out := make([]string, 0, len(idx.raw))
	for _, d := range idx.dates {
		for _, s := range idx.buckets[d] {
			out = append(out, s.Raw)
		}
	}
	return out
}

// Invalid returns the timestamps that could not be parsed.
func (idx *SlotIndex) Invalid() []string {
	return append([]string(nil), idx.invalid...)
}

// Availability is the date-picker view of a tasting's slots.
type Availability struct {
	Dates   []string            `json:"dates"`
	MinDate string              `json:"minDate,omitempty"`
	MaxDate string              `json:"maxDate,omitempty"`
	Times   map[string][]string `json:"times"`
}

// View renders the index for a client date/time picker.
func (idx *SlotIndex) View() Availability {
	v := Availability{Dates: idx.Dates(), Times: make(map[string][]string, len(idx.dates))}
	v.MinDate, v.MaxDate, _ = idx.Bounds()
	for _, d := range idx.dates {
		for _, s := range idx.buckets[d] {
			v.Times[d] = append(v.Times[d], s.Raw)
		}
	}
	return v
}
